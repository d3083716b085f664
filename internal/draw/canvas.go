package draw

import (
	"io"
	"math"
	"strings"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int     // Terminal columns
	termHeight     int     // Terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []uint8 // Flat slice: [y * termWidth + x] - ink of the pixel, 0 if unset
	ink            uint8   // Ink used by the next drawing calls

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	renderBuf strings.Builder
}

// NewCanvas creates a canvas for the given terminal dimensions with a 1:1
// mapping (height*2 logical rows).
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		ink:           1,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]uint8, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// SetInk selects the ink for subsequent drawing. Where drawings overlap
// the higher ink wins. Ink 0 is treated as 1.
func (c *Canvas) SetInk(ink uint8) {
	c.ink = max(ink, 1)
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		i := y*c.termWidth + x
		c.pixels[i] = max(c.pixels[i], c.ink)
	}
}

// Pixel reports whether a terminal sub-pixel is set.
func (c *Canvas) Pixel(x, y int) bool {
	return c.Ink(x, y) != 0
}

// Ink returns the ink of a terminal sub-pixel, 0 if unset or out of range.
func (c *Canvas) Ink(x, y int) uint8 {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return 0
	}
	return c.pixels[y*c.termWidth+x]
}

// toPixel scales a logical coordinate to terminal sub-pixels.
func (c *Canvas) toPixel(x, y float64) (int, int) {
	return int(math.Round(x * c.scaleX)), int(math.Round(y * c.scaleY))
}

// Set sets a pixel at logical coordinates (applies scaling).
func (c *Canvas) Set(x, y int) {
	c.setPixel(c.toPixel(float64(x), float64(y)))
}

// SetFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64) {
	c.setPixel(c.toPixel(x, y))
}

// pixelLine draws a line in pixel space using Bresenham's algorithm.
func (c *Canvas) pixelLine(x1, y1, x2, y2 int) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawCircle draws the outline of a circle centered at (cx, cy) in logical
// space. With 1:1 scaling it uses the midpoint algorithm; a scaled canvas
// turns the circle into an ellipse traced as a closed polyline.
func (c *Canvas) DrawCircle(cx, cy, r float64) {
	if r <= 0 {
		c.SetFloat(cx, cy)
		return
	}
	if c.scaleX == 1 && c.scaleY == 1 {
		c.midpointCircle(int(math.Round(cx)), int(math.Round(cy)), int(math.Round(r)))
		return
	}

	px, py := cx*c.scaleX, cy*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY

	// Enough segments that neighbouring vertices are about a pixel apart
	segments := max(8, int(math.Ceil(2*math.Pi*max(rx, ry))))
	prevX, prevY := int(math.Round(px+rx)), int(math.Round(py))
	for i := 1; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		x := int(math.Round(px + rx*math.Cos(a)))
		y := int(math.Round(py + ry*math.Sin(a)))
		c.pixelLine(prevX, prevY, x, y)
		prevX, prevY = x, y
	}
}

// midpointCircle plots an unscaled circle outline in pixel space.
func (c *Canvas) midpointCircle(cx, cy, r int) {
	x, y := r, 0
	d := 1 - r
	for x >= y {
		c.setPixel(cx+x, cy+y)
		c.setPixel(cx-x, cy+y)
		c.setPixel(cx+x, cy-y)
		c.setPixel(cx-x, cy-y)
		c.setPixel(cx+y, cy+x)
		c.setPixel(cx-y, cy+x)
		c.setPixel(cx+y, cy-x)
		c.setPixel(cx-y, cy-x)

		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// PaintFunc styles a run of cells that share one ink.
type PaintFunc func(ink uint8, run string) string

// String renders the canvas as half-block characters, one line per
// terminal row, without a trailing newline.
func (c *Canvas) String() string {
	return c.Paint(nil)
}

// Paint renders like String but hands every run of equally inked cells to
// paint. Empty cells are passed with ink 0. A nil paint leaves runs as is.
func (c *Canvas) Paint(paint PaintFunc) string {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termHeight * (c.termWidth*3 + 1))

	var run strings.Builder
	flush := func(ink uint8) {
		if run.Len() == 0 {
			return
		}
		if paint == nil {
			c.renderBuf.WriteString(run.String())
		} else {
			c.renderBuf.WriteString(paint(ink, run.String()))
		}
		run.Reset()
	}

	for row := 0; row < c.termHeight; row++ {
		if row > 0 {
			c.renderBuf.WriteByte('\n')
		}
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		var runInk uint8
		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			ink := max(top, bottom)
			if ink != runInk {
				flush(runInk)
				runInk = ink
			}

			switch {
			case top != 0 && bottom != 0:
				run.WriteRune(BlockFull)
			case top != 0:
				run.WriteRune(BlockUpperHalf)
			case bottom != 0:
				run.WriteRune(BlockLowerHalf)
			default:
				run.WriteRune(BlockEmpty)
			}
		}
		flush(runInk)
	}
	return c.renderBuf.String()
}

// Render writes the canvas followed by a newline.
func (c *Canvas) Render(w io.Writer) error {
	_, err := io.WriteString(w, c.String()+"\n")
	return err
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
