package physics

import "github.com/go-gl/mathgl/mgl32"

// WorldBuilderOption is a functional option for configuring a World.
type WorldBuilderOption func(*worldImpl)

// WithSkinWidth sets the contact tolerance used when resolving character motion.
//
// Parameters:
//   - skin: tolerance in world units (values <= 0 are ignored)
//
// Returns:
//   - WorldBuilderOption: functional option to set the skin width
func WithSkinWidth(skin float32) WorldBuilderOption {
	return func(w *worldImpl) {
		if skin > 0 {
			w.skinWidth = skin
		}
	}
}

// WithColliders registers colliders with the world at construction.
//
// Parameters:
//   - colliders: the colliders to add
//
// Returns:
//   - WorldBuilderOption: functional option to add colliders
func WithColliders(colliders ...Collider) WorldBuilderOption {
	return func(w *worldImpl) {
		w.colliders = append(w.colliders, colliders...)
	}
}

// ColliderBuilderOption is a functional option for configuring a box Collider.
type ColliderBuilderOption func(*boxCollider)

// WithHalfExtents sets the half size of the box along each axis.
//
// Parameters:
//   - x, y, z: half extents
//
// Returns:
//   - ColliderBuilderOption: functional option to set the half extents
func WithHalfExtents(x, y, z float32) ColliderBuilderOption {
	return func(c *boxCollider) {
		c.halfExtents = mgl32.Vec3{x, y, z}
	}
}

// WithSize sets the full size of the box along each axis.
//
// Parameters:
//   - x, y, z: full box dimensions
//
// Returns:
//   - ColliderBuilderOption: functional option to set the size
func WithSize(x, y, z float32) ColliderBuilderOption {
	return func(c *boxCollider) {
		c.halfExtents = mgl32.Vec3{x / 2, y / 2, z / 2}
	}
}

// WithOffset shifts the box centre relative to the object's position.
//
// Parameters:
//   - x, y, z: centre offset
//
// Returns:
//   - ColliderBuilderOption: functional option to set the offset
func WithOffset(x, y, z float32) ColliderBuilderOption {
	return func(c *boxCollider) {
		c.offset = mgl32.Vec3{x, y, z}
	}
}

// WithSolid sets whether character bodies collide with the box.
//
// Parameters:
//   - solid: false makes the collider raycast-only
//
// Returns:
//   - ColliderBuilderOption: functional option to set the solid flag
func WithSolid(solid bool) ColliderBuilderOption {
	return func(c *boxCollider) {
		c.solid = solid
	}
}

// CharacterBodyBuilderOption is a functional option for configuring a CharacterBody.
type CharacterBodyBuilderOption func(*characterBody)

// WithHeight sets the initial capsule height. This becomes the standing height of a movement controller.
//
// Parameters:
//   - height: total height
//
// Returns:
//   - CharacterBodyBuilderOption: functional option to set the height
func WithHeight(height float32) CharacterBodyBuilderOption {
	return func(b *characterBody) {
		b.height = height
	}
}

// WithRadius sets the capsule radius.
//
// Parameters:
//   - radius: capsule radius
//
// Returns:
//   - CharacterBodyBuilderOption: functional option to set the radius
func WithRadius(radius float32) CharacterBodyBuilderOption {
	return func(b *characterBody) {
		b.radius = radius
	}
}
