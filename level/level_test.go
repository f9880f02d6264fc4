package level_test

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/katalvlaran/mazechase/level"
	"github.com/katalvlaran/mazechase/maze"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demo = `# loop with spawns
=======
=S...G=
=.=.=.=

=.S...=
=======
`

func TestParse(t *testing.T) {
	l, err := level.ParseString(demo)
	require.NoError(t, err)

	assert.Equal(t, 7, l.Width())
	assert.Equal(t, 4, l.Height())
	assert.Equal(t, []maze.Coord{maze.C(1, 1), maze.C(2, 3)}, l.Spawns(level.PursuerSpawn))
	assert.Equal(t, []maze.Coord{maze.C(5, 1)}, l.Spawns(level.TargetSpawn))
	assert.Empty(t, l.Spawns(level.Space))

	assert.Equal(t, level.Wall, l.Kind(maze.C(0, 0)))
	assert.Equal(t, level.PursuerSpawn, l.Kind(maze.C(1, 1)))
	assert.Equal(t, level.Space, l.Kind(maze.C(3, 1)))
	assert.Equal(t, level.Wall, l.Kind(maze.C(-1, 0)), "outside is wall")
	assert.Equal(t, level.Wall, l.Kind(maze.C(7, 1)))

	costs := l.Costs()
	assert.Equal(t, maze.WallCost, costs[0][0])
	assert.Equal(t, maze.SpaceCost, costs[1][1])
	costs[1][1] = 99
	assert.Equal(t, maze.SpaceCost, l.Costs()[1][1], "Costs returns a copy")

	assert.Equal(t, "=======\n=S...G=\n=.=.=.=\n=.S...=\n=======\n", l.String())
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"InvalidChar", "===\n=x=\n===", level.ErrInvalidChar},
		{"Ragged", "===\n==\n===", level.ErrNonRectangular},
		{"Empty", "", level.ErrEmpty},
		{"OnlyComments", "# nothing\n\n# here\n", level.ErrEmpty},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := level.ParseString(tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := level.ParseString("===\n=.=\n=?=")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3, column 2")
}

func TestParse_CRLF(t *testing.T) {
	l, err := level.ParseString("===\r\n=S=\r\n===\r\n")
	require.NoError(t, err)
	assert.Equal(t, 3, l.Width())
}

func TestBuild(t *testing.T) {
	l, err := level.ParseString(demo)
	require.NoError(t, err)

	_, err = l.Graph()
	assert.ErrorIs(t, err, level.ErrNotBuilt)
	_, err = l.SpawnNodes(level.PursuerSpawn)
	assert.ErrorIs(t, err, level.ErrNotBuilt)

	require.NoError(t, l.Build())
	g, err := l.Graph()
	require.NoError(t, err)
	assert.Equal(t, 6, g.Len())

	nodes, err := l.SpawnNodes(level.PursuerSpawn)
	require.NoError(t, err)
	assert.Equal(t, []maze.Coord{maze.C(1, 1), maze.C(1, 3)}, positions(nodes), "a corridor spawn maps to its edge")

	nodes, err = l.SpawnNodes(level.TargetSpawn)
	require.NoError(t, err)
	assert.Equal(t, []maze.Coord{maze.C(5, 1)}, positions(nodes))

	_, err = l.SpawnNodes(level.Space)
	assert.ErrorIs(t, err, level.ErrNoSpawn)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.txt")
	require.NoError(t, os.WriteFile(path, []byte(demo), 0o644))

	l, err := level.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, l.Width())

	_, err = level.Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(path, []byte("=?="), 0o644))
	_, err = level.Load(path)
	assert.ErrorIs(t, err, level.ErrInvalidChar)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.txt")
	require.NoError(t, os.WriteFile(path, []byte(demo), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	log, _ := logtest.NewNullLogger()
	got := make(chan *level.Layout, 16)
	done := make(chan error, 1)
	go func() {
		done <- level.Watch(ctx, path, log, func(l *level.Layout, err error) {
			if err == nil {
				got <- l
			}
		})
	}()

	edited := strings.Replace(demo, "=S...G=", "=S.G..=", 1)
	// keep writing until the watcher is up and reports
	require.Eventually(t, func() bool {
		if err := os.WriteFile(path, []byte(edited), 0o644); err != nil {
			return false
		}
		select {
		case l := <-got:
			return assert.Equal(t, []maze.Coord{maze.C(3, 1)}, l.Spawns(level.TargetSpawn))
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not stop")
	}
}

func TestPicker(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	p := level.NewPicker(items, rand.New(rand.NewSource(3)))
	assert.Equal(t, 4, p.Len())

	for round := 0; round < 3; round++ {
		seen := map[string]int{}
		for i := 0; i < len(items); i++ {
			it, ok := p.Next()
			require.True(t, ok)
			seen[it]++
		}
		assert.Len(t, seen, len(items), "every item once per round")
	}

	q := level.NewPicker(items, rand.New(rand.NewSource(3)))
	r := level.NewPicker(items, rand.New(rand.NewSource(3)))
	for i := 0; i < 8; i++ {
		a, _ := q.Next()
		b, _ := r.Next()
		assert.Equal(t, a, b)
	}

	_, ok := level.NewPicker[int](nil, rand.New(rand.NewSource(1))).Next()
	assert.False(t, ok)
}

func TestLayout_Stranded(t *testing.T) {
	l, err := level.ParseString("S.G\n===\nS.S\n")
	require.NoError(t, err)
	_, err = l.Stranded()
	assert.ErrorIs(t, err, level.ErrNotBuilt)

	require.NoError(t, l.Build())
	got, err := l.Stranded()
	require.NoError(t, err)
	assert.Equal(t, []maze.Coord{maze.C(0, 2), maze.C(2, 2)}, got)

	none, err := level.ParseString("S..\n")
	require.NoError(t, err)
	require.NoError(t, none.Build())
	_, err = none.Stranded()
	assert.ErrorIs(t, err, level.ErrNoSpawn)
}

func positions(nodes []*maze.Node) []maze.Coord {
	out := make([]maze.Coord, len(nodes))
	for i, n := range nodes {
		out[i] = n.Pos
	}
	return out
}
