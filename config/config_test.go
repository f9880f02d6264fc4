package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/katalvlaran/mazechase/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 2*time.Second, c.Dispatcher.RefreshInterval)
	require.Len(t, c.Pursuers, 4)
	assert.Equal(t, "inky", c.Pursuers[0].Name)
	assert.Equal(t, "bfs", c.Pursuers[0].Algorithm)
	assert.Len(t, c.DispatcherOptions(), 4)
}

func TestParse(t *testing.T) {
	c, err := config.Parse(strings.NewReader(`
level: levels/classic.txt
dispatcher:
  refresh_interval: 500ms
  workers: 2
pursuers:
  - name: blinky
    algorithm: astar
    speed: 96
  - name: sue
log:
  level: debug
  format: json
`))
	require.NoError(t, err)
	assert.Equal(t, "levels/classic.txt", c.Level)
	assert.Equal(t, 500*time.Millisecond, c.Dispatcher.RefreshInterval)
	assert.Equal(t, 2, c.Dispatcher.Workers)
	assert.Equal(t, "astar", c.Dispatcher.Algorithm, "untouched defaults stay")
	assert.Equal(t, []config.Pursuer{
		{Name: "blinky", Algorithm: "astar", Speed: 96},
		{Name: "sue"},
	}, c.Pursuers)

	var buf bytes.Buffer
	l := c.Logger(&buf)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	l.Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestParse_Empty(t *testing.T) {
	c, err := config.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"UnknownKey":         "levle: x\n",
		"BadAlgorithm":       "dispatcher:\n  algorithm: greedy\n",
		"BadPursuerAlg":      "pursuers:\n  - name: a\n    algorithm: nope\n",
		"DuplicatePursuer":   "pursuers:\n  - name: a\n  - name: a\n",
		"NamelessPursuer":    "pursuers:\n  - algorithm: bfs\n",
		"ZeroWorkers":        "dispatcher:\n  workers: 0\n",
		"NegativeCooldown":   "dispatcher:\n  cooldown_run: -1s\n",
		"BadLogLevel":        "log:\n  level: loud\n",
		"BadLogFormat":       "log:\n  format: xml\n",
		"EmptyLevel":         "level: \"\"\n",
		"ZeroTick":           "server:\n  tick: 0s\n",
		"NonPositiveSpeed":   "target:\n  speed: 0\n",
		"NegativePursuerSpd": "pursuers:\n  - name: a\n    speed: -3\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse(strings.NewReader(in))
			require.Error(t, err)
			if name != "UnknownKey" {
				assert.ErrorIs(t, err, config.ErrInvalid)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chase.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 42\n"), 0o644))
	c, err := config.Load(path)
	require.NoError(t, err)
	assert.EqualValues(t, 42, c.Seed)

	_, err = config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
