package scene

import (
	"github.com/Carmen-Shannon/oxy-fps/engine/game_object"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is ticked by the engine.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithObjects adds initial objects to the scene.
// Objects without IDs will be assigned new IDs. Colliders are added separately through Add.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.add(obj)
		}
	}
}

// WithBehaviours registers initial behaviours in update order.
//
// Parameters:
//   - behaviours: the behaviours to run each tick
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBehaviours(behaviours ...Behaviour) SceneBuilderOption {
	return func(s *scene) {
		s.behaviours = append(s.behaviours, behaviours...)
	}
}
