package component

// Body is a fighter's fixed bounding box. X extends Width/2 either side of
// the transform; the foot line sits at transform.Y + Height.
type Body struct {
	Width  float64
	Height float64
}

var BodyComponent = NewComponent[Body]()
