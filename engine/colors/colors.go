package colors

type Color [4]float32

var (
	White    = Color{1, 1, 1, 1}
	DarkBlue = Color{0, 0, 0.5, 1}
)

// RGBA splits the color into its components.
func (c Color) RGBA() (r, g, b, a float32) { return c[0], c[1], c[2], c[3] }
