// package common contains small value types and helpers that are used throughout this engine. They are not interface-wrapped
// structs, just plain types that express commonly used data.
package common

// Layer classifies a game object for physics queries. Valid layers are 0 through 31.
type Layer uint8

// LayerMask is a bit set of layers. Bit n selects Layer n.
type LayerMask uint32

// Predefined layers. Everything not explicitly classified lives on LayerDefault.
const (
	LayerDefault     Layer = 0
	LayerInspectable Layer = 8
)

// AllLayers selects every layer.
const AllLayers LayerMask = 0xFFFFFFFF

// LayerMaskOf builds a mask selecting the given layers. Layers above 31 are ignored.
//
// Parameters:
//   - layers: the layers to include
//
// Returns:
//   - LayerMask: mask with one bit per layer
func LayerMaskOf(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		if l > 31 {
			continue
		}
		m |= 1 << l
	}
	return m
}

// Contains reports whether the mask selects the given layer.
//
// Parameters:
//   - l: the layer to test
//
// Returns:
//   - bool: true if the layer's bit is set
func (m LayerMask) Contains(l Layer) bool {
	if l > 31 {
		return false
	}
	return m&(1<<l) != 0
}
