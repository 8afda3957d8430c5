package model

// Bounds is the playable rectangle, anchored at the origin.
type Bounds struct {
	Width  float64
	Height float64
}

// Clamp pulls (x, y) inside the bounds, keeping margin away from the edges
// when the world is large enough.
func (b Bounds) Clamp(x, y, margin float64) (float64, float64) {
	return clampAxis(x, b.Width, margin), clampAxis(y, b.Height, margin)
}

func clampAxis(v, size, margin float64) float64 {
	if 2*margin > size {
		margin = size / 2
	}
	if v < margin {
		return margin
	}
	if v > size-margin {
		return size - margin
	}
	return v
}
