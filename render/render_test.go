package render_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/mazechase/level"
	"github.com/katalvlaran/mazechase/maze"
	"github.com/katalvlaran/mazechase/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loop = "=======\n=S...G=\n=.=.=.=\n=.....=\n=======\n"

func built(t *testing.T) (*level.Layout, *maze.Graph) {
	t.Helper()
	l, err := level.ParseString(loop)
	require.NoError(t, err)
	require.NoError(t, l.Build())
	g, err := l.Graph()
	require.NoError(t, err)
	return l, g
}

func node(t *testing.T, g *maze.Graph, x, y int) *maze.Node {
	t.Helper()
	n, ok := g.NodeAt(maze.C(x, y))
	require.True(t, ok)
	return n
}

func TestDraw(t *testing.T) {
	l, g := built(t)
	a, b := node(t, g, 1, 1), node(t, g, 3, 1)

	img, err := render.Draw(l, render.Overlay{
		Expanded: []*maze.Node{a},
		Path:     []*maze.Node{a, b},
	}, render.WithLabels(false))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 112, 80), img.Bounds())

	p := render.DefaultPalette
	assert.Equal(t, p.Wall, img.At(8, 8))
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, img.At(40, 20))
	assert.Equal(t, p.Path, img.At(34, 24))
	assert.Equal(t, p.Expanded, img.At(21, 21))
}

func TestDraw_LabelsAndMarkers(t *testing.T) {
	l, _ := built(t)
	img, err := render.Draw(l, render.Overlay{
		Markers: []render.Marker{{Center: image.Pt(88, 24), Color: color.RGBA{0xff, 0, 0, 0xff}, Label: "G"}},
	})
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0xff, 0, 0, 0xff}, img.At(88, 28))
}

func TestDraw_Scale(t *testing.T) {
	l, _ := built(t)
	img, err := render.Draw(l, render.Overlay{}, render.WithScale(2), render.WithLabels(false))
	require.NoError(t, err)
	assert.Equal(t, 224, img.Bounds().Dx())
	assert.Equal(t, 160, img.Bounds().Dy())
}

func TestDraw_Errors(t *testing.T) {
	l, err := level.ParseString(loop)
	require.NoError(t, err)
	_, err = render.Draw(l, render.Overlay{})
	assert.ErrorIs(t, err, level.ErrNotBuilt)

	require.NoError(t, l.Build())
	_, err = render.Draw(l, render.Overlay{}, render.WithScale(0))
	assert.ErrorIs(t, err, render.ErrOptionViolation)
	_, err = render.Draw(l, render.Overlay{}, render.WithFontSize(-1))
	assert.ErrorIs(t, err, render.ErrOptionViolation)
}

func TestEncodeAndSave(t *testing.T) {
	l, _ := built(t)
	img, err := render.Draw(l, render.Overlay{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, render.Encode(&buf, img))
	back, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), back.Bounds())

	path := filepath.Join(t.TempDir(), "maze.png")
	require.NoError(t, render.SavePNG(path, img))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
