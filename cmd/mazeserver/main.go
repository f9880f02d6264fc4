// Command mazeserver serves a level over HTTP and reloads it whenever the
// level file changes.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/katalvlaran/mazechase/chase"
	"github.com/katalvlaran/mazechase/internal/cli"
	"github.com/katalvlaran/mazechase/level"
	"github.com/katalvlaran/mazechase/render"
	"github.com/katalvlaran/mazechase/server"
	log "github.com/sirupsen/logrus"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML configuration file")
		levelPath  = flag.String("level", "", "level file, overrides the configuration")
		addr       = flag.String("addr", "", "listen address, overrides the configuration")
	)
	flag.Parse()

	cfg, err := cli.LoadConfig(*configPath, *levelPath)
	if err != nil {
		log.Fatal(err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	logger := cfg.Logger(os.Stderr)
	if logger.IsLevelEnabled(log.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	l, err := cli.BuildLevel(cfg)
	if err != nil {
		logger.Fatal(err)
	}
	store, sinks, closer, err := cli.Sinks(cfg)
	if err != nil {
		logger.Fatal(err)
	}
	defer closer.Close()

	srv, err := server.New(l,
		server.WithLogger(logger),
		server.WithStore(store),
		server.WithTick(cfg.Server.Tick),
		server.WithRenderOptions(render.WithLabels(true)),
		server.WithSession(func(l *level.Layout) (*chase.Session, error) {
			return chase.New(l, cfg, chase.WithLogger(logger), chase.WithSinks(sinks...))
		}))
	if err != nil {
		logger.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		err := level.Watch(ctx, cfg.Level, logger, func(next *level.Layout, err error) {
			if err == nil {
				err = cli.Build(next, cfg)
			}
			if err == nil {
				err = srv.SetLayout(next)
			}
			if err != nil {
				logger.WithError(err).Warn("level reload rejected, keeping the current level")
			}
		})
		if err != nil {
			logger.WithError(err).Error("level watch stopped")
		}
	}()

	errc := make(chan error, 1)
	go func() { errc <- srv.Run(cfg.Server.Addr) }()
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errc:
		logger.WithError(err).Error("server stopped")
	}
}
