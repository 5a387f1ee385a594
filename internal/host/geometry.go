package host

// Point is a shape's top-left corner in points.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Size is a shape's extent in points.
type Size struct {
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}
