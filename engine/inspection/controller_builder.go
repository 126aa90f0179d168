package inspection

import "github.com/Carmen-Shannon/oxy-fps/common"

// ControllerBuilderOption is a functional option for configuring an inspection Controller.
type ControllerBuilderOption func(*controllerImpl)

// WithRotateSpeed sets the degrees of tumble per unit of mouse input per second.
//
// Parameters:
//   - speed: rotation speed
//
// Returns:
//   - ControllerBuilderOption: functional option to set the rotate speed
func WithRotateSpeed(speed float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.rotateSpeed = speed
	}
}

// WithZoomSpeed sets how far the anchor moves per scroll step.
//
// Parameters:
//   - speed: distance per scroll step
//
// Returns:
//   - ControllerBuilderOption: functional option to set the zoom speed
func WithZoomSpeed(speed float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.zoomSpeed = speed
	}
}

// WithZoomDistance sets how far the anchor may drift from its starting position.
//
// Parameters:
//   - distance: maximum offset length
//
// Returns:
//   - ControllerBuilderOption: functional option to set the zoom distance
func WithZoomDistance(distance float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.zoomDistance = distance
	}
}

// WithSelectDistance sets the reach of the selection ray.
//
// Parameters:
//   - distance: ray length
//
// Returns:
//   - ControllerBuilderOption: functional option to set the select distance
func WithSelectDistance(distance float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.selectDistance = distance
	}
}

// WithInspectMask sets the layers the selection ray can pick from.
//
// Parameters:
//   - mask: inspectable layers
//
// Returns:
//   - ControllerBuilderOption: functional option to set the inspect mask
func WithInspectMask(mask common.LayerMask) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.inspectMask = mask
	}
}

// WithSelectButton sets the mouse button that picks an object up.
//
// Parameters:
//   - button: button index
//
// Returns:
//   - ControllerBuilderOption: functional option to set the select button
func WithSelectButton(button int) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.selectButton = button
	}
}

// WithReleaseButton sets the mouse button that puts the held object back.
//
// Parameters:
//   - button: button index
//
// Returns:
//   - ControllerBuilderOption: functional option to set the release button
func WithReleaseButton(button int) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.releaseButton = button
	}
}
