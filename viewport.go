package main

// viewport is the visible world rectangle. Width and height track the
// display surface; x and y are recomputed on every relevant update.
type viewport struct {
	X, Y, W, H float64
}

// recomputeViewport centers the view on the local player and clamps both
// axes into [0, world-view]. With no local player yet the view rests at
// the world origin. Pure and idempotent.
func recomputeViewport(local *Player, worldW, worldH, viewW, viewH float64) viewport {
	v := viewport{W: viewW, H: viewH}
	if local == nil {
		return v
	}
	v.X = clampf(local.X-viewW/2, 0, maxf(0, worldW-viewW))
	v.Y = clampf(local.Y-viewH/2, 0, maxf(0, worldH-viewH))
	return v
}

// screenToWorld converts surface coordinates to world coordinates, clamped
// into world bounds.
func (v viewport) screenToWorld(sx, sy float64) (float64, float64) {
	wx := clampf(sx+v.X, 0, worldWidth)
	wy := clampf(sy+v.Y, 0, worldHeight)
	return wx, wy
}

// contains reports whether a world point falls inside the view expanded by
// margin on every side. Used for draw culling.
func (v viewport) contains(x, y, margin float64) bool {
	return x >= v.X-margin && x <= v.X+v.W+margin &&
		y >= v.Y-margin && y <= v.Y+v.H+margin
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
