package input

// GatewayBuilderOption is a functional option for configuring a Gateway.
type GatewayBuilderOption func(*gatewayImpl)

// WithMoveKeys binds the four movement keys.
//
// Parameters:
//   - forward, back, left, right: GLFW key codes
//
// Returns:
//   - GatewayBuilderOption: functional option to set the movement bindings
func WithMoveKeys(forward, back, left, right int) GatewayBuilderOption {
	return func(g *gatewayImpl) {
		g.forwardKey = forward
		g.backKey = back
		g.leftKey = left
		g.rightKey = right
	}
}

// WithCrouchKey binds the crouch key.
//
// Parameters:
//   - key: GLFW key code
//
// Returns:
//   - GatewayBuilderOption: functional option to set the crouch binding
func WithCrouchKey(key int) GatewayBuilderOption {
	return func(g *gatewayImpl) {
		g.crouchKey = key
	}
}

// WithMouseAxisScale sets the factor converting cursor pixels into look input.
//
// Parameters:
//   - scale: look units per pixel
//
// Returns:
//   - GatewayBuilderOption: functional option to set the mouse scale
func WithMouseAxisScale(scale float32) GatewayBuilderOption {
	return func(g *gatewayImpl) {
		g.mouseAxisScale = scale
	}
}

// WithScrollAxisScale sets the factor converting wheel notches into scroll input.
//
// Parameters:
//   - scale: scroll units per notch
//
// Returns:
//   - GatewayBuilderOption: functional option to set the scroll scale
func WithScrollAxisScale(scale float32) GatewayBuilderOption {
	return func(g *gatewayImpl) {
		g.scrollAxisScale = scale
	}
}

// WithInvertY flips the vertical look axis.
//
// Parameters:
//   - invert: true to treat moving the mouse down as looking up
//
// Returns:
//   - GatewayBuilderOption: functional option to set Y inversion
func WithInvertY(invert bool) GatewayBuilderOption {
	return func(g *gatewayImpl) {
		g.invertY = invert
	}
}
