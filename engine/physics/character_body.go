package physics

import (
	"math"

	"github.com/Carmen-Shannon/oxy-fps/engine/game_object"
	"github.com/go-gl/mathgl/mgl32"
)

// CharacterBody moves a capsule-shaped character through a World, resolving penetration
// against solid colliders. The object's world position is the capsule centre.
type CharacterBody interface {
	// Object returns the game object driven by this body.
	//
	// Returns:
	//   - game_object.GameObject: the body's object
	Object() game_object.GameObject

	// Height returns the capsule height.
	//
	// Returns:
	//   - float32: total height in world units
	Height() float32

	// SetHeight resizes the capsule around its centre.
	//
	// Parameters:
	//   - height: new total height (values below 2*radius are raised to 2*radius)
	SetHeight(height float32)

	// Radius returns the capsule radius.
	//
	// Returns:
	//   - float32: radius in world units
	Radius() float32

	// Move requests a translation and applies as much of it as the world allows.
	//
	// Parameters:
	//   - delta: requested world-space displacement
	//
	// Returns:
	//   - mgl32.Vec3: displacement actually applied
	Move(delta mgl32.Vec3) mgl32.Vec3
}

type characterBody struct {
	obj    game_object.GameObject
	world  *worldImpl
	height float32
	radius float32
}

var _ CharacterBody = &characterBody{}

// NewCharacterBody creates a body for obj that collides with the colliders of w.
// Defaults to a height of 2 and a radius of 0.5.
//
// Parameters:
//   - obj: the game object to move
//   - w: the world to collide against (must come from NewWorld)
//   - options: functional options to configure the body
//
// Returns:
//   - CharacterBody: the new body
func NewCharacterBody(obj game_object.GameObject, w World, options ...CharacterBodyBuilderOption) CharacterBody {
	b := &characterBody{
		obj:    obj,
		height: 2,
		radius: 0.5,
	}
	if impl, ok := w.(*worldImpl); ok {
		b.world = impl
	}
	for _, option := range options {
		option(b)
	}
	b.SetHeight(b.height)
	return b
}

func (b *characterBody) Object() game_object.GameObject {
	return b.obj
}

func (b *characterBody) Height() float32 {
	return b.height
}

// SetHeight resizes the body about its centre. Growth is limited to the free vertical span
// between the nearest solid below and the nearest solid above, and the grown box is shifted
// inside that span, so resizing never leaves the body overlapping a solid.
func (b *characterBody) SetHeight(height float32) {
	height = max(height, 2*b.radius)
	if b.world == nil || height <= b.height {
		b.height = height
		return
	}

	floor, ceiling := b.verticalSpan()
	room := ceiling - floor
	if room < b.height {
		// already wedged; refuse to grow
		return
	}
	b.height = min(height, room)

	box := b.bounds()
	var push float32
	switch {
	case box.Min[1] < floor:
		push = floor - box.Min[1]
	case box.Max[1] > ceiling:
		push = ceiling - box.Max[1]
	}
	if push != 0 {
		b.obj.Translate(mgl32.Vec3{0, push, 0})
	}
}

// verticalSpan returns the top of the nearest solid below the body's centre and the bottom of
// the nearest solid above it, among solids under or over the body's footprint.
func (b *characterBody) verticalSpan() (floor, ceiling float32) {
	floor, ceiling = float32(math.Inf(-1)), float32(math.Inf(1))
	box := b.bounds()
	centre := box.Center().Y()
	for _, s := range b.world.solidBounds(b.obj) {
		if !box.overlapsExcept(s, 1) {
			continue
		}
		if s.Center().Y() <= centre {
			floor = max(floor, s.Max[1])
		} else {
			ceiling = min(ceiling, s.Min[1])
		}
	}
	return floor, ceiling
}

func (b *characterBody) Radius() float32 {
	return b.radius
}

// Move sweeps the body's bounding box one axis at a time, vertical first so a step
// off a ledge settles before horizontal motion is resolved.
func (b *characterBody) Move(delta mgl32.Vec3) mgl32.Vec3 {
	if delta == (mgl32.Vec3{}) {
		return mgl32.Vec3{}
	}
	if b.world == nil {
		b.obj.Translate(delta)
		return delta
	}

	solids := b.world.solidBounds(b.obj)
	box := b.bounds()
	var applied mgl32.Vec3
	for _, axis := range [3]int{1, 0, 2} {
		if delta[axis] == 0 {
			continue
		}
		allowed := sweepAxis(box, solids, axis, delta[axis], b.world.skinWidth)
		box.Min[axis] += allowed
		box.Max[axis] += allowed
		applied[axis] = allowed
	}

	if applied != (mgl32.Vec3{}) {
		b.obj.Translate(applied)
	}
	return applied
}

func (b *characterBody) bounds() AABB {
	half := mgl32.Vec3{b.radius, b.height / 2, b.radius}
	center := b.obj.Position()
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// sweepAxis returns how far box can travel along axis towards delta before touching a solid.
// A box already penetrating a solid may move away from that solid's centre but not towards it.
func sweepAxis(box AABB, solids []AABB, axis int, delta, skin float32) float32 {
	allowed := delta
	for _, s := range solids {
		if !box.overlapsExcept(s, axis) {
			continue
		}
		if box.overlapsExcept(s, -1) {
			if towards := s.Center()[axis] - box.Center()[axis]; towards*delta > 0 {
				return 0
			}
			continue
		}
		if delta > 0 && s.Min[axis] >= box.Max[axis]-skin {
			gap := s.Min[axis] - box.Max[axis]
			if gap < 0 {
				gap = 0
			}
			if gap < allowed {
				allowed = gap
			}
		}
		if delta < 0 && s.Max[axis] <= box.Min[axis]+skin {
			gap := s.Max[axis] - box.Min[axis]
			if gap > 0 {
				gap = 0
			}
			if gap > allowed {
				allowed = gap
			}
		}
	}
	return allowed
}
