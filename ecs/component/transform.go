package component

// Transform is an entity's canvas-space position. For fighters the point is
// the top-center of the bounding box; the foot line is Y + Body.Height.
type Transform struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[Transform]()
