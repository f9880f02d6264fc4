// Package cli holds the start-up steps shared by the commands.
package cli

import (
	"errors"
	"io"

	"github.com/katalvlaran/mazechase/config"
	"github.com/katalvlaran/mazechase/gridgraph"
	"github.com/katalvlaran/mazechase/level"
	"github.com/katalvlaran/mazechase/maze"
	"github.com/katalvlaran/mazechase/stats"
)

// LoadConfig reads path, or returns the defaults when path is empty.
// A non-empty levelPath replaces the configured level.
func LoadConfig(path, levelPath string) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}
	if levelPath != "" {
		cfg.Level = levelPath
	}
	return cfg, nil
}

// BuildLevel loads and compiles the configured level.
func BuildLevel(cfg config.Config) (*level.Layout, error) {
	l, err := level.Load(cfg.Level)
	if err != nil {
		return nil, err
	}
	return l, Build(l, cfg)
}

// Build compiles l with the configured tile size.
func Build(l *level.Layout, cfg config.Config) error {
	return l.Build(gridgraph.WithGeometry(maze.Geometry{TileSize: cfg.TileSize}))
}

// Sinks opens the sample sinks named in cfg.Stats. The returned closer
// closes all of them; it is never nil.
func Sinks(cfg config.Config) (*stats.Store, []stats.Sink, io.Closer, error) {
	var (
		store   *stats.Store
		sinks   []stats.Sink
		closers multiCloser
	)
	if cfg.Stats.DB != "" {
		s, err := stats.Open(cfg.Stats.DB)
		if err != nil {
			return nil, nil, closers, err
		}
		store = s
		sinks = append(sinks, s)
		closers = append(closers, s)
	}
	if cfg.Stats.CSV != "" {
		c, err := stats.AppendCSV(cfg.Stats.CSV)
		if err != nil {
			closers.Close()
			return nil, nil, multiCloser(nil), err
		}
		sinks = append(sinks, c)
		closers = append(closers, c)
	}
	return store, sinks, closers, nil
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var errs []error
	for _, c := range m {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
