// Command mazechase plays a chase in the terminal: the configured pursuers
// hunt a wandering target through the level.
//
// Keys: space pauses, q or Esc quits.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/katalvlaran/mazechase/chase"
	"github.com/katalvlaran/mazechase/config"
	"github.com/katalvlaran/mazechase/internal/cli"
	"github.com/katalvlaran/mazechase/level"
	"github.com/katalvlaran/mazechase/maze"
	log "github.com/sirupsen/logrus"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

var (
	wallStyle   = tcell.StyleDefault.Background(tcell.ColorNavy)
	floorStyle  = tcell.StyleDefault
	targetStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)

	pursuerColors = []tcell.Color{tcell.ColorRed, tcell.ColorFuchsia, tcell.ColorAqua, tcell.ColorOrange, tcell.ColorGreen}
)

type game struct {
	screen  tcell.Screen
	session *chase.Session
	layout  *level.Layout
	sinks   io.Closer
	tile    int
	paused  bool
}

func main() {
	var (
		configPath = flag.String("config", "", "YAML configuration file")
		levelPath  = flag.String("level", "", "level file, overrides the configuration")
		logPath    = flag.String("log", "", "write logs to this file")
	)
	flag.Parse()

	cfg, err := cli.LoadConfig(*configPath, *levelPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// the terminal belongs to the game; logs go to a file or nowhere
	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	logger := cfg.Logger(out)

	g, err := newGame(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer g.cleanup()

	g.run()
}

func newGame(cfg config.Config, logger *log.Logger) (*game, error) {
	l, err := cli.BuildLevel(cfg)
	if err != nil {
		return nil, err
	}
	_, sinks, closer, err := cli.Sinks(cfg)
	if err != nil {
		return nil, err
	}
	session, err := chase.New(l, cfg, chase.WithLogger(logger), chase.WithSinks(sinks...))
	if err != nil {
		closer.Close()
		return nil, err
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		session.Close()
		closer.Close()
		return nil, err
	}
	if err := screen.Init(); err != nil {
		session.Close()
		closer.Close()
		return nil, err
	}
	return &game{screen: screen, session: session, layout: l, sinks: closer, tile: cfg.TileSize}, nil
}

func (g *game) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if !g.paused {
				g.session.Step(dt)
			}
			g.draw()
		}
	}
}

func (g *game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
			g.paused = !g.paused
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

// cell maps a tile to the screen; every tile is two columns wide.
func cell(c maze.Coord) (int, int) { return 2 * c.X, c.Y }

func (g *game) put(c maze.Coord, r rune, style tcell.Style) {
	x, y := cell(c)
	g.screen.SetContent(x, y, r, nil, style)
	g.screen.SetContent(x+1, y, ' ', nil, style)
}

func (g *game) tileAt(x, y int) maze.Coord {
	return maze.C(x/g.tile, y/g.tile)
}

func (g *game) draw() {
	g.screen.Clear()
	for y := 0; y < g.layout.Height(); y++ {
		for x := 0; x < g.layout.Width(); x++ {
			c := maze.C(x, y)
			if g.layout.Kind(c) == level.Wall {
				g.put(c, ' ', wallStyle)
			} else {
				g.put(c, ' ', floorStyle)
			}
		}
	}

	snap := g.session.Snapshot()
	for i, p := range snap.Pursuers {
		style := tcell.StyleDefault.Foreground(pursuerColors[i%len(pursuerColors)])
		for _, c := range p.Path {
			g.put(c, '·', style)
		}
	}
	for i, p := range snap.Pursuers {
		style := tcell.StyleDefault.Foreground(pursuerColors[i%len(pursuerColors)]).Bold(true)
		r := 'M'
		if p.Name != "" {
			r = []rune(p.Name)[0]
		}
		g.put(g.tileAt(p.X, p.Y), r, style)
	}
	g.put(g.tileAt(snap.Target.X, snap.Target.Y), '@', targetStyle)

	status := fmt.Sprintf("frame %d  caught %d  searches %d  reroutes %d",
		snap.Frame, snap.Catches, snap.Stats.Submitted, snap.Stats.Reroutes)
	if g.paused {
		status += "  [paused]"
	}
	for i, r := range status {
		g.screen.SetContent(i, g.layout.Height()+1, r, nil, statusStyle)
	}
	g.screen.Show()
}

func (g *game) cleanup() {
	g.session.Close()
	g.sinks.Close()
	g.screen.Fini()
}
