package game_object

import (
	"github.com/Carmen-Shannon/oxy-fps/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName sets the name of the GameObject. Scenes can look objects up by name.
//
// Parameters:
//   - name: the object name
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled sets whether the GameObject is enabled.
//
// Parameters:
//   - enabled: true to enable the object, false to skip it in updates and queries
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithLayer sets the physics layer of the GameObject.
//
// Parameters:
//   - layer: the layer to place the object on
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the layer
func WithLayer(layer common.Layer) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.layer = layer
	}
}

// WithPosition sets the initial local position. Without a parent this is the world position.
//
// Parameters:
//   - x: the x position
//   - y: the y position
//   - z: the z position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.localPosition = mgl32.Vec3{x, y, z}
	}
}

// WithRotation sets the initial local rotation from Euler angles in degrees, applied in Y-X-Z order (yaw, pitch, roll).
//
// Parameters:
//   - pitch: rotation around X in degrees
//   - yaw: rotation around Y in degrees
//   - roll: rotation around Z in degrees
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial rotation
func WithRotation(pitch, yaw, roll float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.localRotation = mgl32.AnglesToQuat(
			mgl32.DegToRad(yaw), mgl32.DegToRad(pitch), mgl32.DegToRad(roll), mgl32.YXZ,
		)
	}
}

// WithScale sets the initial scale of the GameObject.
//
// Parameters:
//   - sx: the x scale factor
//   - sy: the y scale factor
//   - sz: the z scale factor
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial scale
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = mgl32.Vec3{sx, sy, sz}
	}
}

// WithParent attaches the GameObject to a parent at construction. The initial position
// and rotation are interpreted relative to the parent. Parents from other GameObject
// implementations and cyclic parents are ignored.
//
// Parameters:
//   - parent: the parent object
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the parent
func WithParent(parent GameObject) GameObjectBuilderOption {
	return func(obj *gameObject) {
		_ = obj.SetParent(parent, false)
	}
}
