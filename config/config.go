// Package config loads the YAML configuration of the chase binaries.
//
// Every field has a default (see Default), so a config file only needs the
// values it changes:
//
//	level: levels/classic.txt
//	dispatcher:
//	  refresh_interval: 1s
//	pursuers:
//	  - name: blinky
//	    algorithm: astar
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/katalvlaran/mazechase/dispatcher"
	"github.com/katalvlaran/mazechase/maze"
	"github.com/katalvlaran/mazechase/pathfinder"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid")

// Config is the whole configuration.
type Config struct {
	Level      string     `yaml:"level"`
	TileSize   int        `yaml:"tile_size"`
	Seed       int64      `yaml:"seed"`
	Dispatcher Dispatcher `yaml:"dispatcher"`
	Target     Target     `yaml:"target"`
	Pursuers   []Pursuer  `yaml:"pursuers"`
	Server     Server     `yaml:"server"`
	Stats      Stats      `yaml:"stats"`
	Log        Log        `yaml:"log"`
}

// Dispatcher configures the path dispatcher.
type Dispatcher struct {
	Algorithm       string        `yaml:"algorithm"`
	Workers         int           `yaml:"workers"`
	QueueSize       int           `yaml:"queue_size"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	CooldownRun     time.Duration `yaml:"cooldown_run"`
	CooldownPause   time.Duration `yaml:"cooldown_pause"`
}

// Target configures the wandering target.
type Target struct {
	Speed float64 `yaml:"speed"`
	Seed  int64   `yaml:"seed"`
}

// Pursuer configures one pursuer. An empty algorithm uses the dispatcher's.
type Pursuer struct {
	Name      string  `yaml:"name"`
	Algorithm string  `yaml:"algorithm,omitempty"`
	Speed     float64 `yaml:"speed,omitempty"`
}

// Server configures the HTTP surface.
type Server struct {
	Addr string        `yaml:"addr"`
	Tick time.Duration `yaml:"tick"`
}

// Stats configures search sampling. Empty paths turn a sink off.
type Stats struct {
	DB  string `yaml:"db,omitempty"`
	CSV string `yaml:"csv,omitempty"`
}

// Log configures logging.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration: four pursuers, one per graph
// search.
func Default() Config {
	return Config{
		Level:    "level.txt",
		TileSize: maze.DefaultTileSize,
		Dispatcher: Dispatcher{
			Algorithm:       "astar",
			Workers:         dispatcher.DefaultWorkers,
			QueueSize:       dispatcher.DefaultQueueSize,
			RefreshInterval: dispatcher.DefaultRefreshInterval,
			CooldownRun:     dispatcher.DefaultCooldownRun,
			CooldownPause:   dispatcher.DefaultCooldownPause,
		},
		Target: Target{Speed: 6 * maze.DefaultTileSize, Seed: 1},
		Pursuers: []Pursuer{
			{Name: "inky", Algorithm: "bfs"},
			{Name: "clyde", Algorithm: "ucs"},
			{Name: "pinky", Algorithm: "dfs"},
			{Name: "blinky", Algorithm: "astar"},
		},
		Server: Server{Addr: ":8080", Tick: 50 * time.Millisecond},
		Log:    Log{Level: "info", Format: "text"},
	}
}

// Parse reads YAML from r over the defaults and validates the result.
// Unknown keys are errors.
func Parse(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load parses the file at path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	c, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate reports the first invalid value.
func (c Config) Validate() error {
	known := map[string]bool{}
	for _, n := range pathfinder.Names() {
		known[n] = true
	}
	switch {
	case c.Level == "":
		return fmt.Errorf("%w: level is empty", ErrInvalid)
	case c.TileSize < 2:
		return fmt.Errorf("%w: tile_size must be ≥ 2 (%d)", ErrInvalid, c.TileSize)
	case !known[c.Dispatcher.Algorithm]:
		return fmt.Errorf("%w: dispatcher.algorithm %q is not one of %v", ErrInvalid, c.Dispatcher.Algorithm, pathfinder.Names())
	case c.Dispatcher.Workers < 1:
		return fmt.Errorf("%w: dispatcher.workers must be ≥ 1", ErrInvalid)
	case c.Dispatcher.QueueSize < 1:
		return fmt.Errorf("%w: dispatcher.queue_size must be ≥ 1", ErrInvalid)
	case c.Dispatcher.RefreshInterval <= 0:
		return fmt.Errorf("%w: dispatcher.refresh_interval must be positive", ErrInvalid)
	case c.Dispatcher.CooldownRun < 0 || c.Dispatcher.CooldownPause < 0:
		return fmt.Errorf("%w: dispatcher cooldowns cannot be negative", ErrInvalid)
	case c.Target.Speed <= 0:
		return fmt.Errorf("%w: target.speed must be positive", ErrInvalid)
	case c.Server.Tick <= 0:
		return fmt.Errorf("%w: server.tick must be positive", ErrInvalid)
	}
	seen := map[string]bool{}
	for i, p := range c.Pursuers {
		if p.Name == "" {
			return fmt.Errorf("%w: pursuers[%d] has no name", ErrInvalid, i)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: pursuer %q appears twice", ErrInvalid, p.Name)
		}
		seen[p.Name] = true
		if p.Algorithm != "" && !known[p.Algorithm] {
			return fmt.Errorf("%w: pursuer %q: algorithm %q is not one of %v", ErrInvalid, p.Name, p.Algorithm, pathfinder.Names())
		}
		if p.Speed < 0 {
			return fmt.Errorf("%w: pursuer %q: speed cannot be negative", ErrInvalid, p.Name)
		}
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("%w: log.format must be text or json (%q)", ErrInvalid, c.Log.Format)
	}
	return nil
}

// Logger returns a logger writing to w at the configured level and format.
func (c Config) Logger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	if lvl, err := logrus.ParseLevel(c.Log.Level); err == nil {
		l.SetLevel(lvl)
	}
	if c.Log.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}

// DispatcherOptions translates the dispatcher section.
func (c Config) DispatcherOptions() []dispatcher.Option {
	d := c.Dispatcher
	return []dispatcher.Option{
		dispatcher.WithWorkers(d.Workers),
		dispatcher.WithQueueSize(d.QueueSize),
		dispatcher.WithRefreshInterval(d.RefreshInterval),
		dispatcher.WithCooldown(d.CooldownRun, d.CooldownPause),
	}
}
