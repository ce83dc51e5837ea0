package out

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/SdReum/classmood-cli/internal/modules/analysis/domain"
	analysisout "github.com/SdReum/classmood-cli/internal/modules/analysis/port/out"
)

var (
	chartBackground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	chartAxis       = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	chartLine       = color.RGBA{R: 31, G: 111, B: 235, A: 255}
)

// PNGRenderer rasterizes plots with the standard image packages and the
// fixed 7x13 bitmap face for tick labels.
type PNGRenderer struct{}

func NewPNGRenderer() analysisout.Renderer {
	return PNGRenderer{}
}

func (PNGRenderer) RenderPNG(_ context.Context, plot domain.Plot, path string) error {
	layout := plot.Layout
	img := image.NewRGBA(image.Rect(0, 0, layout.Width, layout.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(chartBackground), image.Point{}, draw.Src)

	for _, axis := range plot.Axes {
		drawSegment(img, axis.From, axis.To, chartAxis)
	}
	for _, tick := range plot.XTicks {
		drawSegment(img, tick.At, domain.Pixel{X: tick.At.X, Y: tick.At.Y + 4}, chartAxis)
		width := labelWidth(tick.Label)
		drawLabel(img, tick.At.X-width/2, tick.At.Y+18, tick.Label)
	}
	for _, tick := range plot.YTicks {
		drawSegment(img, domain.Pixel{X: tick.At.X - 4, Y: tick.At.Y}, tick.At, chartAxis)
		width := labelWidth(tick.Label)
		drawLabel(img, tick.At.X-width-8, tick.At.Y+4, tick.Label)
	}
	for i := 1; i < len(plot.Polyline); i++ {
		drawSegment(img, plot.Polyline[i-1], plot.Polyline[i], chartLine)
	}
	if len(plot.Polyline) == 1 {
		drawSegment(img, plot.Polyline[0], plot.Polyline[0], chartLine)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}
	return nil
}

// drawSegment interpolates along the longer delta, so lines stay
// connected at any slope.
func drawSegment(img *image.RGBA, from, to domain.Pixel, col color.Color) {
	dx, dy := to.X-from.X, to.Y-from.Y
	steps := abs(dx)
	if abs(dy) > steps {
		steps = abs(dy)
	}
	if steps == 0 {
		img.Set(from.X, from.Y, col)
		return
	}
	for i := 0; i <= steps; i++ {
		x := from.X + int(math.Round(float64(i*dx)/float64(steps)))
		y := from.Y + int(math.Round(float64(i*dy)/float64(steps)))
		img.Set(x, y, col)
	}
}

func drawLabel(img *image.RGBA, x, y int, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(chartAxis),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

func labelWidth(text string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(text).Ceil()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
