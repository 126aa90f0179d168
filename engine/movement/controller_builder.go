package movement

import "github.com/Carmen-Shannon/oxy-fps/common"

// ControllerBuilderOption is a functional option for configuring a movement Controller.
type ControllerBuilderOption func(*controllerImpl)

// WithMoveSpeed sets the walking speed.
//
// Parameters:
//   - speed: units per second
//
// Returns:
//   - ControllerBuilderOption: functional option to set the move speed
func WithMoveSpeed(speed float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.moveSpeed = speed
	}
}

// WithLookSpeed sets the multiplier applied to mouse look input.
//
// Parameters:
//   - speed: degrees per look unit
//
// Returns:
//   - ControllerBuilderOption: functional option to set the look speed
func WithLookSpeed(speed float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.lookSpeed = speed
	}
}

// WithGravity sets the vertical acceleration applied while airborne.
//
// Parameters:
//   - gravity: units per second squared, negative pulls down
//
// Returns:
//   - ControllerBuilderOption: functional option to set gravity
func WithGravity(gravity float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.gravity = gravity
	}
}

// WithCrouchSpeed sets how quickly the height blends towards its target.
//
// Parameters:
//   - speed: blend rate per second
//
// Returns:
//   - ControllerBuilderOption: functional option to set the crouch speed
func WithCrouchSpeed(speed float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.crouchSpeed = speed
	}
}

// WithCrouchHeight sets the body height while crouching. It must be above 0 and below the
// standing height.
//
// Parameters:
//   - height: crouched body height
//
// Returns:
//   - ControllerBuilderOption: functional option to set the crouch height
func WithCrouchHeight(height float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.crouchHeight = height
	}
}

// WithGroundMask limits which layers the ground and ceiling casts can hit. Defaults to all layers.
//
// Parameters:
//   - mask: layers considered solid for the casts
//
// Returns:
//   - ControllerBuilderOption: functional option to set the cast mask
func WithGroundMask(mask common.LayerMask) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.groundMask = mask
	}
}
