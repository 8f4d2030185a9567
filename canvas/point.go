package canvas

// Point is a location in a layer's local drawing space, after delta
// decoding but before the layer's current transform is applied.
type Point struct {
	X, Y float64
}
