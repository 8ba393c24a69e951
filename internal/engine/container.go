package engine

// Container is the mount point a visualization draws into.
// Zero dimensions fall back to the theme's canvas size.
type Container struct {
	ID     string  `json:"id"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	// Notice is an inline message shown instead of the graph when it cannot be drawn
	Notice string `json:"notice,omitempty"`
}
