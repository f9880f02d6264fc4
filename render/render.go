// Package render draws a level with its graph and, optionally, a search
// result and agent markers on top. It is meant for debugging pathfinders
// and for the HTTP preview, not for the game itself.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strconv"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/katalvlaran/mazechase/level"
	"github.com/katalvlaran/mazechase/maze"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// ErrOptionViolation is returned by Draw for an invalid option.
var ErrOptionViolation = errors.New("render: invalid option supplied")

// Marker is an agent drawn as a disc.
type Marker struct {
	Center image.Point
	Color  color.Color
	Label  string
}

// Overlay is what is drawn over the maze.
type Overlay struct {
	Expanded []*maze.Node
	Path     []*maze.Node
	Markers  []Marker
}

// Palette holds the colours of a drawing.
type Palette struct {
	Wall, Floor, Edge, Node, Expanded, Path, Text color.Color
}

// DefaultPalette is a dark maze with a yellow path.
var DefaultPalette = Palette{
	Wall:     color.RGBA{0x1f, 0x2a, 0x8c, 0xff},
	Floor:    color.Black,
	Edge:     color.RGBA{0x55, 0x55, 0x55, 0xff},
	Node:     color.RGBA{0xcc, 0xcc, 0xcc, 0xff},
	Expanded: color.RGBA{0x30, 0x80, 0x30, 0xff},
	Path:     color.RGBA{0xff, 0xd7, 0x00, 0xff},
	Text:     color.White,
}

// Options configures Draw.
type Options struct {
	Scale    float64
	Labels   bool
	FontSize float64
	Palette  Palette

	err error
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions draws at native size with cost labels.
func DefaultOptions() Options {
	return Options{Scale: 1, Labels: true, FontSize: 8, Palette: DefaultPalette}
}

// WithScale resizes the result by f; f must be positive.
func WithScale(f float64) Option {
	return func(o *Options) {
		if f <= 0 {
			o.err = fmt.Errorf("%w: scale must be positive (%v)", ErrOptionViolation, f)
			return
		}
		o.Scale = f
	}
}

// WithLabels turns edge cost labels on or off.
func WithLabels(on bool) Option { return func(o *Options) { o.Labels = on } }

// WithFontSize sets the label size in points; it must be positive.
func WithFontSize(pt float64) Option {
	return func(o *Options) {
		if pt <= 0 {
			o.err = fmt.Errorf("%w: font size must be positive (%v)", ErrOptionViolation, pt)
			return
		}
		o.FontSize = pt
	}
}

// WithPalette replaces the colours.
func WithPalette(p Palette) Option { return func(o *Options) { o.Palette = p } }

var (
	fontOnce sync.Once
	fontTT   *truetype.Font
	fontErr  error
)

func face(size float64) (font.Face, error) {
	fontOnce.Do(func() { fontTT, fontErr = truetype.Parse(goregular.TTF) })
	if fontErr != nil {
		return nil, fmt.Errorf("render: font: %w", fontErr)
	}
	return truetype.NewFace(fontTT, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// Draw renders l, which must be built, with ov on top.
func Draw(l *level.Layout, ov Overlay, opts ...Option) (image.Image, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	g, err := l.Graph()
	if err != nil {
		return nil, err
	}
	geom := g.Geometry()
	ts := float64(geom.TileSize)

	dc := gg.NewContext(l.Width()*geom.TileSize, l.Height()*geom.TileSize)
	dc.Translate(-float64(geom.Offset.X), -float64(geom.Offset.Y))

	for y := 0; y < l.Height(); y++ {
		for x := 0; x < l.Width(); x++ {
			r := geom.Rect(maze.C(x, y))
			if l.Kind(maze.C(x, y)) == level.Wall {
				dc.SetColor(o.Palette.Wall)
			} else {
				dc.SetColor(o.Palette.Floor)
			}
			dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), ts, ts)
			dc.Fill()
		}
	}

	for _, n := range ov.Expanded {
		c := g.Center(n)
		dc.SetColor(o.Palette.Expanded)
		dc.DrawRectangle(float64(c.X)-ts/4, float64(c.Y)-ts/4, ts/2, ts/2)
		dc.Fill()
	}

	// each undirected edge once, from its left or upper end
	dc.SetLineWidth(1)
	dc.SetColor(o.Palette.Edge)
	for _, n := range g.SortedNodes() {
		for _, d := range [...]maze.Direction{maze.Right, maze.Down} {
			if e, ok := g.Edge(n, d); ok {
				a, b := g.Center(n), g.Center(e.To)
				dc.DrawLine(float64(a.X), float64(a.Y), float64(b.X), float64(b.Y))
				dc.Stroke()
			}
		}
	}

	if len(ov.Path) > 1 {
		dc.SetColor(o.Palette.Path)
		dc.SetLineWidth(ts / 4)
		for i, n := range ov.Path {
			c := g.Center(n)
			if i == 0 {
				dc.MoveTo(float64(c.X), float64(c.Y))
				continue
			}
			dc.LineTo(float64(c.X), float64(c.Y))
		}
		dc.Stroke()
	}

	dc.SetColor(o.Palette.Node)
	for _, n := range g.SortedNodes() {
		c := g.Center(n)
		dc.DrawCircle(float64(c.X), float64(c.Y), ts/6)
		dc.Fill()
	}

	for _, m := range ov.Markers {
		dc.SetColor(m.Color)
		dc.DrawCircle(float64(m.Center.X), float64(m.Center.Y), ts*3/8)
		dc.Fill()
	}

	if o.Labels {
		f, err := face(o.FontSize)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(f)
		dc.SetColor(o.Palette.Text)
		for _, n := range g.SortedNodes() {
			for _, d := range [...]maze.Direction{maze.Right, maze.Down} {
				if e, ok := g.Edge(n, d); ok {
					a, b := g.Center(n), g.Center(e.To)
					dc.DrawStringAnchored(strconv.Itoa(e.Cost),
						float64(a.X+b.X)/2, float64(a.Y+b.Y)/2, 0.5, 0.5)
				}
			}
		}
		for _, m := range ov.Markers {
			if m.Label != "" {
				dc.DrawStringAnchored(m.Label, float64(m.Center.X), float64(m.Center.Y)-ts/2, 0.5, 1)
			}
		}
	}

	img := dc.Image()
	if o.Scale != 1 {
		w := int(float64(img.Bounds().Dx()) * o.Scale)
		img = imaging.Resize(img, max(w, 1), 0, imaging.NearestNeighbor)
	}
	return img, nil
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: encode: %w", err)
	}
	return nil
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}
