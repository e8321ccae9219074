// Package render draws a digitized data table as a line plot, useful
// for eyeballing a digitization against the source figure.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/plotdig/plotdig/model"
)

// ErrEmptyTable indicates a table with no rows to plot.
var ErrEmptyTable = errors.New("render: table has no rows")

// Config controls the rendered image.
type Config struct {
	Width  int
	Height int

	// Margin is the border, in pixels, around the plot area that holds
	// the axis labels.
	Margin int

	// LineWidth is the stroke width of the curve, in pixels.
	LineWidth float64

	// XColumn and YColumn name the table columns to plot.
	XColumn string
	YColumn string

	// Title is drawn above the plot area, empty for none.
	Title string
}

// DefaultConfig returns the rendering defaults.
func DefaultConfig() Config {
	return Config{
		Width:     800,
		Height:    600,
		Margin:    60,
		LineWidth: 2,
		XColumn:   "x",
		YColumn:   "y",
	}
}

var (
	background = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	frameColor = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	lineColor  = color.RGBA{R: 0, G: 90, B: 181, A: 255}
)

// Render draws the table as a line plot. Rows are connected in order,
// so sweep reversals show as retraced segments rather than being
// sorted away.
func Render(table *model.DataTable, cfg Config) (*image.RGBA, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		def := DefaultConfig()
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	if cfg.Margin <= 0 {
		cfg.Margin = DefaultConfig().Margin
	}
	if cfg.LineWidth <= 0 {
		cfg.LineWidth = DefaultConfig().LineWidth
	}
	if cfg.XColumn == "" {
		cfg.XColumn = "x"
	}
	if cfg.YColumn == "" {
		cfg.YColumn = "y"
	}

	xs, err := table.Column(cfg.XColumn)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	ys, err := table.Column(cfg.YColumn)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if len(xs) == 0 {
		return nil, ErrEmptyTable
	}

	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	area := image.Rect(cfg.Margin, cfg.Margin, cfg.Width-cfg.Margin, cfg.Height-cfg.Margin)
	xMin, xMax := bounds(xs)
	yMin, yMax := bounds(ys)

	toPx := func(x, y float64) (float32, float32) {
		px := float64(area.Min.X) + (x-xMin)/(xMax-xMin)*float64(area.Dx())
		// Data values grow upward, image y grows downward.
		py := float64(area.Max.Y) - (y-yMin)/(yMax-yMin)*float64(area.Dy())
		return float32(px), float32(py)
	}

	drawFrame(img, area)
	drawPolyline(img, xs, ys, toPx, cfg.LineWidth)
	drawLabels(img, area, cfg, xMin, xMax, yMin, yMax)

	return img, nil
}

// WritePNG renders the table and encodes it as PNG.
func WritePNG(w io.Writer, table *model.DataTable, cfg Config) error {
	img, err := Render(table, cfg)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: encoding png: %w", err)
	}
	return nil
}

// bounds returns the min and max of vs, padded when the series is
// constant so the projection never divides by zero.
func bounds(vs []float64) (float64, float64) {
	lo, hi := vs[0], vs[0]
	for _, v := range vs[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return lo, hi
}

func drawFrame(img *image.RGBA, area image.Rectangle) {
	frame := image.NewUniform(frameColor)
	draw.Draw(img, image.Rect(area.Min.X, area.Max.Y, area.Max.X+1, area.Max.Y+1), frame, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(area.Min.X, area.Min.Y, area.Min.X+1, area.Max.Y+1), frame, image.Point{}, draw.Src)
}

// drawPolyline strokes the data series by filling one thin quad per
// segment with the scanline rasterizer.
func drawPolyline(img *image.RGBA, xs, ys []float64, toPx func(float64, float64) (float32, float32), width float64) {
	r := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	half := float32(width / 2)

	for i := 1; i < len(xs); i++ {
		ax, ay := toPx(xs[i-1], ys[i-1])
		bx, by := toPx(xs[i], ys[i])

		dx, dy := bx-ax, by-ay
		length := float32(math.Hypot(float64(dx), float64(dy)))
		if length == 0 {
			continue
		}
		// Perpendicular offset of half the stroke width.
		ox, oy := -dy/length*half, dx/length*half

		r.MoveTo(ax+ox, ay+oy)
		r.LineTo(bx+ox, by+oy)
		r.LineTo(bx-ox, by-oy)
		r.LineTo(ax-ox, ay-oy)
		r.ClosePath()
	}

	r.Draw(img, img.Bounds(), image.NewUniform(lineColor), image.Point{})
}

func drawLabels(img *image.RGBA, area image.Rectangle, cfg Config, xMin, xMax, yMin, yMax float64) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(frameColor),
		Face: basicfont.Face7x13,
	}

	label := func(x, y int, s string) {
		d.Dot = fixed.P(x, y)
		d.DrawString(s)
	}

	format := func(v float64) string {
		return strconv.FormatFloat(v, 'g', 4, 64)
	}

	label(area.Min.X, area.Max.Y+16, format(xMin))
	maxLabel := format(xMax)
	label(area.Max.X-7*len(maxLabel), area.Max.Y+16, maxLabel)
	label(2, area.Max.Y, format(yMin))
	label(2, area.Min.Y+10, format(yMax))

	if cfg.Title != "" {
		label(area.Min.X, area.Min.Y-8, cfg.Title)
	}
}
