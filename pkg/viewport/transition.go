package viewport

import (
	"time"
)

// Transition is an animated change between two transforms. The controller
// already holds To when a Transition is returned; hosts only replay the
// frames.
type Transition struct {
	From     Transform     `json:"from"`
	To       Transform     `json:"to"`
	Duration time.Duration `json:"duration"`
}

// At returns the transform at progress t in [0, 1], eased with a cubic
// in-out curve. t outside the range is clamped.
func (tr Transition) At(t float64) Transform {
	t = min(max(t, 0), 1)
	e := cubicInOut(t)
	return Transform{
		X: tr.From.X + (tr.To.X-tr.From.X)*e,
		Y: tr.From.Y + (tr.To.Y-tr.From.Y)*e,
		K: tr.From.K + (tr.To.K-tr.From.K)*e,
	}
}

// Frames samples the transition at fps frames per second. The last frame is
// always To.
func (tr Transition) Frames(fps int) []Transform {
	if fps <= 0 || tr.Duration <= 0 {
		return []Transform{tr.To}
	}
	n := max(int(tr.Duration.Seconds()*float64(fps)), 1)
	out := make([]Transform, n)
	for i := range out {
		out[i] = tr.At(float64(i+1) / float64(n))
	}
	return out
}

func cubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}
