package physics

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-fps/common"
	"github.com/Carmen-Shannon/oxy-fps/engine/game_object"
	"github.com/go-gl/mathgl/mgl32"
)

// RaycastHit describes the first surface a ray met.
type RaycastHit struct {
	// Point is the world-space hit position.
	Point mgl32.Vec3
	// Normal is the outward face normal of the box at Point.
	Normal mgl32.Vec3
	// Distance is the distance from the ray origin to Point.
	Distance float32
	// Collider is the collider that was hit.
	Collider Collider
	// Object is the game object owning the collider.
	Object game_object.GameObject
}

// World is the physics query service the controllers talk to. It owns the set of
// colliders for one scene and answers raycasts against them.
type World interface {
	// Raycast casts a ray and returns the nearest hit within maxDistance on the masked layers.
	// Colliders that contain the ray origin and colliders on disabled objects are ignored.
	//
	// Parameters:
	//   - origin: world-space ray start
	//   - direction: ray direction (need not be normalized)
	//   - maxDistance: maximum hit distance
	//   - mask: layers the ray can hit
	//
	// Returns:
	//   - RaycastHit: the nearest hit, zero when none
	//   - bool: true if something was hit
	Raycast(origin, direction mgl32.Vec3, maxDistance float32, mask common.LayerMask) (RaycastHit, bool)

	// AddCollider registers a collider. Adding the same collider twice is a no-op.
	//
	// Parameters:
	//   - c: the collider to add
	AddCollider(c Collider)

	// RemoveCollider unregisters a collider.
	//
	// Parameters:
	//   - c: the collider to remove
	RemoveCollider(c Collider)

	// RemoveObject unregisters every collider attached to obj.
	//
	// Parameters:
	//   - obj: the object whose colliders are removed
	RemoveObject(obj game_object.GameObject)

	// Colliders returns a copy of the registered colliders in insertion order.
	//
	// Returns:
	//   - []Collider: the colliders
	Colliders() []Collider

	// SkinWidth returns the contact tolerance used when resolving character motion.
	//
	// Returns:
	//   - float32: skin width in world units
	SkinWidth() float32
}

type worldImpl struct {
	mu *sync.Mutex

	colliders []Collider
	skinWidth float32
}

var _ World = &worldImpl{}

// NewWorld creates an empty physics world.
//
// Parameters:
//   - options: functional options to configure the world
//
// Returns:
//   - World: the new world
func NewWorld(options ...WorldBuilderOption) World {
	w := &worldImpl{
		mu:        &sync.Mutex{},
		skinWidth: 1e-4,
	}
	for _, option := range options {
		option(w)
	}
	return w
}

func (w *worldImpl) Raycast(origin, direction mgl32.Vec3, maxDistance float32, mask common.LayerMask) (RaycastHit, bool) {
	if direction.Len() == 0 || maxDistance <= 0 {
		return RaycastHit{}, false
	}
	dir := direction.Normalize()

	w.mu.Lock()
	defer w.mu.Unlock()

	var best RaycastHit
	found := false
	for _, c := range w.colliders {
		obj := c.Object()
		if !obj.Enabled() || !mask.Contains(obj.Layer()) {
			continue
		}
		box := c.Bounds()
		if box.Contains(origin) {
			continue
		}
		t, normal, ok := intersectRay(origin, dir, box)
		if !ok || t > maxDistance {
			continue
		}
		if found && t >= best.Distance {
			continue
		}
		best = RaycastHit{
			Point:    origin.Add(dir.Mul(t)),
			Normal:   normal,
			Distance: t,
			Collider: c,
			Object:   obj,
		}
		found = true
	}
	return best, found
}

func (w *worldImpl) AddCollider(c Collider) {
	if c == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, existing := range w.colliders {
		if existing == c {
			return
		}
	}
	w.colliders = append(w.colliders, c)
}

func (w *worldImpl) RemoveCollider(c Collider) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, existing := range w.colliders {
		if existing == c {
			w.colliders = append(w.colliders[:i], w.colliders[i+1:]...)
			return
		}
	}
}

func (w *worldImpl) RemoveObject(obj game_object.GameObject) {
	w.mu.Lock()
	defer w.mu.Unlock()
	kept := w.colliders[:0]
	for _, c := range w.colliders {
		if c.Object() != obj {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(w.colliders); i++ {
		w.colliders[i] = nil
	}
	w.colliders = kept
}

func (w *worldImpl) Colliders() []Collider {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Collider, len(w.colliders))
	copy(out, w.colliders)
	return out
}

func (w *worldImpl) SkinWidth() float32 {
	return w.skinWidth
}

// solidBounds returns the bounds of every enabled solid collider, skipping those attached to ignore.
func (w *worldImpl) solidBounds(ignore game_object.GameObject) []AABB {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]AABB, 0, len(w.colliders))
	for _, c := range w.colliders {
		obj := c.Object()
		if !c.Solid() || !obj.Enabled() || obj == ignore {
			continue
		}
		out = append(out, c.Bounds())
	}
	return out
}

// intersectRay runs the slab test of a normalized ray against a box.
// Returns the entry distance and the face normal of the entry slab.
func intersectRay(origin, dir mgl32.Vec3, box AABB) (float32, mgl32.Vec3, bool) {
	tMin := float32(math.Inf(-1))
	tMax := float32(math.Inf(1))
	entryAxis := -1
	var entrySign float32

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < box.Min[axis] || origin[axis] > box.Max[axis] {
				return 0, mgl32.Vec3{}, false
			}
			continue
		}
		inv := 1 / dir[axis]
		t1 := (box.Min[axis] - origin[axis]) * inv
		t2 := (box.Max[axis] - origin[axis]) * inv
		sign := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tMin {
			tMin = t1
			entryAxis = axis
			entrySign = sign
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, mgl32.Vec3{}, false
		}
	}

	if tMax < 0 || tMin < 0 || entryAxis < 0 {
		return 0, mgl32.Vec3{}, false
	}
	var normal mgl32.Vec3
	normal[entryAxis] = entrySign
	return tMin, normal, true
}
