package game_object

import (
	"errors"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-fps/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrParentCycle is returned by SetParent when the requested parent is the object itself or one of its descendants.
var ErrParentCycle = errors.New("game_object: parent would create a cycle")

type gameObject struct {
	id      uint64
	name    string
	enabled atomic.Bool
	layer   common.Layer

	// local pose relative to parent (or world when parent is nil)
	localPosition mgl32.Vec3
	localRotation mgl32.Quat
	scale         mgl32.Vec3

	parent *gameObject
}

// GameObject defines the interface for a scene entity with a transform.
// Pose is stored locally relative to the parent; world-space accessors walk the parent chain.
// Only position and rotation propagate through the hierarchy, scale is per-object.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's name.
	//
	// Returns:
	//   - string: the name, empty if unset
	Name() string

	// Enabled returns whether this object takes part in updates and queries.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Layer returns the physics layer this object belongs to.
	//
	// Returns:
	//   - common.Layer: the layer
	Layer() common.Layer

	// Position returns the world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world position
	Position() mgl32.Vec3

	// Rotation returns the world-space orientation.
	//
	// Returns:
	//   - mgl32.Quat: world rotation
	Rotation() mgl32.Quat

	// LocalPosition returns the position relative to the parent.
	//
	// Returns:
	//   - mgl32.Vec3: local position
	LocalPosition() mgl32.Vec3

	// LocalRotation returns the orientation relative to the parent.
	//
	// Returns:
	//   - mgl32.Quat: local rotation
	LocalRotation() mgl32.Quat

	// Scale returns the object's scale.
	//
	// Returns:
	//   - mgl32.Vec3: scale factors
	Scale() mgl32.Vec3

	// Parent returns the parent object, or nil when the object sits at the scene root.
	//
	// Returns:
	//   - GameObject: the parent or nil
	Parent() GameObject

	// Forward returns the world-space forward axis (-Z rotated by the world rotation).
	//
	// Returns:
	//   - mgl32.Vec3: unit forward vector
	Forward() mgl32.Vec3

	// Right returns the world-space right axis (+X rotated by the world rotation).
	//
	// Returns:
	//   - mgl32.Vec3: unit right vector
	Right() mgl32.Vec3

	// Up returns the world-space up axis (+Y rotated by the world rotation).
	//
	// Returns:
	//   - mgl32.Vec3: unit up vector
	Up() mgl32.Vec3

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetName sets the object's name.
	//
	// Parameters:
	//   - name: the new name
	SetName(name string)

	// SetEnabled sets whether the object takes part in updates and queries.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetLayer moves the object to a physics layer.
	//
	// Parameters:
	//   - layer: the new layer
	SetLayer(layer common.Layer)

	// SetPosition sets the world-space position, converting to local space when parented.
	//
	// Parameters:
	//   - p: world position
	SetPosition(p mgl32.Vec3)

	// SetRotation sets the world-space orientation, converting to local space when parented.
	//
	// Parameters:
	//   - q: world rotation
	SetRotation(q mgl32.Quat)

	// SetLocalPosition sets the position relative to the parent.
	//
	// Parameters:
	//   - p: local position
	SetLocalPosition(p mgl32.Vec3)

	// SetLocalRotation sets the orientation relative to the parent.
	//
	// Parameters:
	//   - q: local rotation
	SetLocalRotation(q mgl32.Quat)

	// SetScale sets the object's scale.
	//
	// Parameters:
	//   - s: scale factors
	SetScale(s mgl32.Vec3)

	// SetParent attaches the object to a new parent, or detaches it to the scene root when parent is nil.
	// With worldPositionStays the world pose is preserved and the local pose recomputed;
	// otherwise the local pose is kept and the world pose moves with the new parent.
	//
	// Parameters:
	//   - parent: the new parent or nil
	//   - worldPositionStays: preserve the world pose across the change
	//
	// Returns:
	//   - error: ErrParentCycle if parent is this object or a descendant of it
	SetParent(parent GameObject, worldPositionStays bool) error

	// Rotate applies a rotation of the given degrees around an axis expressed in local space.
	//
	// Parameters:
	//   - axis: local rotation axis (need not be normalized)
	//   - degrees: rotation angle in degrees
	Rotate(axis mgl32.Vec3, degrees float32)

	// Translate moves the object by a world-space delta.
	//
	// Parameters:
	//   - delta: world-space offset
	Translate(delta mgl32.Vec3)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// The object starts enabled, at the origin, with identity rotation and unit scale.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		localRotation: mgl32.QuatIdent(),
		scale:         mgl32.Vec3{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Layer() common.Layer {
	return g.layer
}

func (g *gameObject) Position() mgl32.Vec3 {
	if g.parent == nil {
		return g.localPosition
	}
	return g.parent.Position().Add(g.parent.Rotation().Rotate(g.localPosition))
}

func (g *gameObject) Rotation() mgl32.Quat {
	if g.parent == nil {
		return g.localRotation
	}
	return g.parent.Rotation().Mul(g.localRotation).Normalize()
}

func (g *gameObject) LocalPosition() mgl32.Vec3 {
	return g.localPosition
}

func (g *gameObject) LocalRotation() mgl32.Quat {
	return g.localRotation
}

func (g *gameObject) Scale() mgl32.Vec3 {
	return g.scale
}

func (g *gameObject) Parent() GameObject {
	if g.parent == nil {
		return nil
	}
	return g.parent
}

func (g *gameObject) Forward() mgl32.Vec3 {
	return g.Rotation().Rotate(common.WorldForward)
}

func (g *gameObject) Right() mgl32.Vec3 {
	return g.Rotation().Rotate(common.WorldRight)
}

func (g *gameObject) Up() mgl32.Vec3 {
	return g.Rotation().Rotate(common.WorldUp)
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) SetName(name string) {
	g.name = name
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetLayer(layer common.Layer) {
	g.layer = layer
}

func (g *gameObject) SetPosition(p mgl32.Vec3) {
	if g.parent == nil {
		g.localPosition = p
		return
	}
	g.localPosition = g.parent.Rotation().Inverse().Rotate(p.Sub(g.parent.Position()))
}

func (g *gameObject) SetRotation(q mgl32.Quat) {
	if g.parent == nil {
		g.localRotation = q
		return
	}
	g.localRotation = g.parent.Rotation().Inverse().Mul(q).Normalize()
}

func (g *gameObject) SetLocalPosition(p mgl32.Vec3) {
	g.localPosition = p
}

func (g *gameObject) SetLocalRotation(q mgl32.Quat) {
	g.localRotation = q
}

func (g *gameObject) SetScale(s mgl32.Vec3) {
	g.scale = s
}

func (g *gameObject) SetParent(parent GameObject, worldPositionStays bool) error {
	var p *gameObject
	if parent != nil {
		// foreign GameObject implementations cannot take part in the hierarchy
		impl, ok := parent.(*gameObject)
		if !ok {
			return errors.New("game_object: unsupported parent implementation")
		}
		for cur := impl; cur != nil; cur = cur.parent {
			if cur == g {
				return ErrParentCycle
			}
		}
		p = impl
	}

	if !worldPositionStays {
		g.parent = p
		return nil
	}

	pos, rot := g.Position(), g.Rotation()
	g.parent = p
	g.SetPosition(pos)
	g.SetRotation(rot)
	return nil
}

func (g *gameObject) Rotate(axis mgl32.Vec3, degrees float32) {
	if axis.Len() == 0 {
		return
	}
	q := mgl32.QuatRotate(mgl32.DegToRad(degrees), axis.Normalize())
	g.localRotation = g.localRotation.Mul(q).Normalize()
}

func (g *gameObject) Translate(delta mgl32.Vec3) {
	g.SetPosition(g.Position().Add(delta))
}
