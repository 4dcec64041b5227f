package component

// Animation tracks the current clip only as far as the simulation needs it:
// clip name, pacing, and elapsed time. Mechanical events (projectile spawn)
// key off elapsed seconds, never off the rendered frame counter.
type Animation struct {
	Current    string
	FPS        float64
	FrameCount int
	Elapsed    float64
}

// Frame derives the current frame index for presentation.
func (a *Animation) Frame() int {
	if a == nil || a.FPS <= 0 || a.FrameCount <= 0 {
		return 0
	}
	f := int(a.Elapsed * a.FPS)
	if f >= a.FrameCount {
		f = a.FrameCount - 1
	}
	return f
}

var AnimationComponent = NewComponent[Animation]()
