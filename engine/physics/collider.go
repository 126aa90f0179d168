package physics

import (
	"github.com/Carmen-Shannon/oxy-fps/engine/game_object"
	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned bounding box in world space.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Contains reports whether p lies strictly inside the box.
func (b AABB) Contains(p mgl32.Vec3) bool {
	return p[0] > b.Min[0] && p[0] < b.Max[0] &&
		p[1] > b.Min[1] && p[1] < b.Max[1] &&
		p[2] > b.Min[2] && p[2] < b.Max[2]
}

// overlapsExcept reports whether two boxes overlap with positive volume on every axis other than skip.
// Touching faces do not count as overlap.
func (b AABB) overlapsExcept(o AABB, skip int) bool {
	for axis := 0; axis < 3; axis++ {
		if axis == skip {
			continue
		}
		if b.Max[axis] <= o.Min[axis] || b.Min[axis] >= o.Max[axis] {
			return false
		}
	}
	return true
}

// Collider is an axis-aligned box attached to a game object. The box is centred on the
// object's world position plus an offset and does not rotate with the object.
type Collider interface {
	// Object returns the game object this collider is attached to.
	//
	// Returns:
	//   - game_object.GameObject: the owning object
	Object() game_object.GameObject

	// HalfExtents returns half the box size along each axis.
	//
	// Returns:
	//   - mgl32.Vec3: half extents
	HalfExtents() mgl32.Vec3

	// Offset returns the box centre relative to the object's world position.
	//
	// Returns:
	//   - mgl32.Vec3: centre offset
	Offset() mgl32.Vec3

	// Solid reports whether character bodies collide with this box.
	// Non-solid colliders still answer raycasts.
	//
	// Returns:
	//   - bool: true if solid
	Solid() bool

	// Bounds returns the current world-space box.
	//
	// Returns:
	//   - AABB: the world bounds
	Bounds() AABB
}

type boxCollider struct {
	obj         game_object.GameObject
	halfExtents mgl32.Vec3
	offset      mgl32.Vec3
	solid       bool
}

var _ Collider = &boxCollider{}

// NewBoxCollider creates a solid box collider around obj. Half extents default to 0.5 (a unit cube).
//
// Parameters:
//   - obj: the game object the collider follows
//   - options: functional options to configure the collider
//
// Returns:
//   - Collider: the new collider (not yet registered with a World)
func NewBoxCollider(obj game_object.GameObject, options ...ColliderBuilderOption) Collider {
	c := &boxCollider{
		obj:         obj,
		halfExtents: mgl32.Vec3{0.5, 0.5, 0.5},
		solid:       true,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *boxCollider) Object() game_object.GameObject {
	return c.obj
}

func (c *boxCollider) HalfExtents() mgl32.Vec3 {
	return c.halfExtents
}

func (c *boxCollider) Offset() mgl32.Vec3 {
	return c.offset
}

func (c *boxCollider) Solid() bool {
	return c.solid
}

func (c *boxCollider) Bounds() AABB {
	center := c.obj.Position().Add(c.offset)
	return AABB{
		Min: center.Sub(c.halfExtents),
		Max: center.Add(c.halfExtents),
	}
}
