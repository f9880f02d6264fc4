// Command mazepath runs the maze searches between two tiles of a level and
// prints the paths they find.
//
//	mazepath -level level.txt -algorithm all -from 1,1 -to 10,5 -png out.png
//
// Without -from and -to the first pursuer spawn and the first target spawn
// are used.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/katalvlaran/mazechase/internal/cli"
	"github.com/katalvlaran/mazechase/level"
	"github.com/katalvlaran/mazechase/maze"
	"github.com/katalvlaran/mazechase/navigator"
	"github.com/katalvlaran/mazechase/pathfinder"
	"github.com/katalvlaran/mazechase/render"
	"github.com/katalvlaran/mazechase/search"
	"github.com/katalvlaran/mazechase/stats"
	log "github.com/sirupsen/logrus"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML configuration file")
		levelPath  = flag.String("level", "", "level file, overrides the configuration")
		algorithm  = flag.String("algorithm", "all", "search to run: "+strings.Join(pathfinder.Names(), ", ")+" or all")
		from       = flag.String("from", "", "start tile x,y")
		to         = flag.String("to", "", "target tile x,y")
		pngPath    = flag.String("png", "", "write a picture of the last search to this file")
		dbPath     = flag.String("db", "", "record samples in this SQLite database")
		csvPath    = flag.String("csv", "", "append samples to this CSV file")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	cfg, err := cli.LoadConfig(*configPath, *levelPath)
	if err != nil {
		log.Fatal(err)
	}
	if *dbPath != "" {
		cfg.Stats.DB = *dbPath
	}
	if *csvPath != "" {
		cfg.Stats.CSV = *csvPath
	}
	logger := cfg.Logger(os.Stderr)
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	l, err := cli.BuildLevel(cfg)
	if err != nil {
		logger.Fatal(err)
	}
	g, _ := l.Graph()
	start, target, err := endpoints(l, g, *from, *to)
	if err != nil {
		logger.Fatal(err)
	}

	names := []string{*algorithm}
	if *algorithm == "all" {
		names = pathfinder.Searches()
	}

	store, sinks, closer, err := cli.Sinks(cfg)
	if err != nil {
		logger.Fatal(err)
	}
	defer closer.Close()

	var last search.Result
	for _, name := range names {
		pf, err := pathfinder.Lookup(name, pathfinder.WithSeed(cfg.Seed))
		if err != nil {
			logger.Fatal(err)
		}
		opts := []stats.Option{stats.WithLogger(logger), stats.WithLabel("mazepath"), stats.WithMemStats(true)}
		for _, s := range sinks {
			opts = append(opts, stats.WithSink(s))
		}
		m := stats.NewMonitor(pf, opts...)
		res, err := m.Search(context.Background(), g, start, target)
		if err != nil {
			logger.WithField("algorithm", name).Fatal(err)
		}
		sample, _ := m.Last()
		fmt.Printf("%-8s found=%-5t weight=%-4d expanded=%-4d time=%v\n",
			name, res.Found(), res.Weight(), len(res.Expanded), sample.Duration)
		if res.Found() {
			fmt.Printf("         %s\n", maze.FormatPath(res.Path))
		}
		last = res
	}

	if store != nil {
		sums, err := store.Summaries(context.Background())
		if err != nil {
			logger.Fatal(err)
		}
		for _, s := range sums {
			fmt.Printf("%-8s runs=%d found=%d mean time=%v mean expanded=%.1f\n",
				s.Algorithm, s.Runs, s.Found, s.MeanDuration, s.MeanExpanded)
		}
	}

	if *pngPath != "" {
		img, err := render.Draw(l, render.Overlay{Expanded: last.Expanded, Path: last.Path}, render.WithLabels(true))
		if err != nil {
			logger.Fatal(err)
		}
		if err := render.SavePNG(*pngPath, img); err != nil {
			logger.Fatal(err)
		}
		logger.WithField("file", *pngPath).Info("picture written")
	}
}

// endpoints resolves the -from and -to flags, falling back to the spawns.
func endpoints(l *level.Layout, g *maze.Graph, from, to string) (maze.Location, maze.Location, error) {
	nv, err := navigator.New(g)
	if err != nil {
		return maze.Location{}, maze.Location{}, err
	}
	resolve := func(flagValue string, k level.Kind) (maze.Location, error) {
		if flagValue == "" {
			nodes, err := l.SpawnNodes(k)
			if err != nil {
				return maze.Location{}, err
			}
			return maze.At(nodes[0]), nil
		}
		var c maze.Coord
		if _, err := fmt.Sscanf(flagValue, "%d,%d", &c.X, &c.Y); err != nil {
			return maze.Location{}, fmt.Errorf("tile %q: want x,y", flagValue)
		}
		loc, ok := nv.Locate(navigator.Single(c))
		if !ok {
			return maze.Location{}, fmt.Errorf("tile %v is not on the graph", c)
		}
		return loc, nil
	}
	start, err := resolve(from, level.PursuerSpawn)
	if err != nil {
		return maze.Location{}, maze.Location{}, fmt.Errorf("start: %w", err)
	}
	target, err := resolve(to, level.TargetSpawn)
	if err != nil {
		return maze.Location{}, maze.Location{}, fmt.Errorf("target: %w", err)
	}
	return start, target, nil
}
