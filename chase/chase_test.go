package chase_test

import (
	"sync"
	"testing"
	"time"

	"github.com/katalvlaran/mazechase/chase"
	"github.com/katalvlaran/mazechase/config"
	"github.com/katalvlaran/mazechase/level"
	"github.com/katalvlaran/mazechase/pathfinder"
	"github.com/katalvlaran/mazechase/stats"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loop = "=======\n=S...G=\n=.=.=.=\n=.....=\n=======\n"

func setup(t *testing.T, text string) (*level.Layout, config.Config) {
	t.Helper()
	l, err := level.ParseString(text)
	require.NoError(t, err)
	require.NoError(t, l.Build())

	cfg := config.Default()
	cfg.Seed = 1
	cfg.Target.Speed = 8
	cfg.Dispatcher.RefreshInterval = 100 * time.Millisecond
	cfg.Pursuers = []config.Pursuer{{Name: "blinky", Algorithm: "astar"}}
	return l, cfg
}

func newSession(t *testing.T, l *level.Layout, cfg config.Config, opts ...chase.Option) *chase.Session {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	s, err := chase.New(l, cfg, append([]chase.Option{chase.WithLogger(log)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestSession_InitialSnapshot(t *testing.T) {
	l, cfg := setup(t, loop)
	s := newSession(t, l, cfg)

	snap := s.Snapshot()
	assert.Zero(t, snap.Frame)
	assert.Zero(t, snap.Catches)
	assert.Equal(t, 88, snap.Target.X)
	assert.Equal(t, 24, snap.Target.Y)
	require.Len(t, snap.Pursuers, 1)
	assert.Equal(t, chase.AgentState{Name: "blinky", Algorithm: "astar", X: 24, Y: 24}, snap.Pursuers[0])
	assert.Same(t, l, s.Layout())
	assert.Equal(t, 1, s.Dispatcher().Len())
}

func TestSession_CatchAndRespawn(t *testing.T) {
	l, cfg := setup(t, loop)
	s := newSession(t, l, cfg)

	require.Eventually(t, func() bool {
		s.Step(16 * time.Millisecond)
		return s.Snapshot().Catches > 0
	}, 5*time.Second, time.Millisecond)

	snap := s.Snapshot()
	assert.Positive(t, snap.Frame)
	assert.Equal(t, 24, snap.Target.X, "respawned at the far spawn")
	assert.Positive(t, snap.Stats.Submitted+snap.Stats.Direct)
}

func TestSession_Sinks(t *testing.T) {
	l, cfg := setup(t, loop)
	cfg.Pursuers = append(cfg.Pursuers, config.Pursuer{Name: "sue"})

	var (
		mu     sync.Mutex
		labels = map[string]string{}
		allocs uint64
	)
	sink := stats.SinkFunc(func(s stats.Sample) error {
		mu.Lock()
		defer mu.Unlock()
		labels[s.Label] = s.Algorithm
		allocs += s.AllocBytes
		return nil
	})
	s := newSession(t, l, cfg, chase.WithSinks(sink))

	require.Eventually(t, func() bool {
		s.Step(16 * time.Millisecond)
		mu.Lock()
		defer mu.Unlock()
		return len(labels) == 2
	}, 5*time.Second, time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, map[string]string{"blinky": "astar", "sue": "astar"}, labels)
	assert.Zero(t, allocs, "concurrent searches record no allocation figure")
}

func TestSession_Close(t *testing.T) {
	l, cfg := setup(t, loop)
	log, _ := logtest.NewNullLogger()
	s, err := chase.New(l, cfg, chase.WithLogger(log))
	require.NoError(t, err)

	s.Close()
	s.Close()
	s.Step(time.Second)
	assert.Zero(t, s.Snapshot().Frame)
	assert.Zero(t, s.Dispatcher().Len())
}

func TestNew_Errors(t *testing.T) {
	l, err := level.ParseString(loop)
	require.NoError(t, err)
	_, err = chase.New(l, config.Default())
	assert.ErrorIs(t, err, level.ErrNotBuilt)

	noTarget, cfg := setup(t, "=====\n=S..=\n=====\n")
	_, err = chase.New(noTarget, cfg)
	assert.ErrorIs(t, err, level.ErrNoSpawn)

	built, cfg := setup(t, loop)
	cfg.Pursuers = []config.Pursuer{{Name: "x", Algorithm: "teleport"}}
	log, _ := logtest.NewNullLogger()
	_, err = chase.New(built, cfg, chase.WithLogger(log))
	assert.ErrorIs(t, err, pathfinder.ErrUnknown)
}
