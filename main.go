package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"snake-sim/config"
	"snake-sim/game"
	"snake-sim/logging"
	"snake-sim/metrics"
	"snake-sim/sound"
	"snake-sim/spectate"
	"snake-sim/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "TOML config file")
	speed := flag.Float64("speed", 0, "Speed multiplier (higher = faster), overrides the config")
	seed := flag.Uint64("seed", 0, "Food placement seed, overrides the config")
	debug := flag.Bool("debug", false, "Enable the grid overlay and the grow key")
	listen := flag.String("listen", "", "Address for the spectator server, e.g. :8080")
	mute := flag.Bool("mute", false, "Disable sound cues")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *speed > 0 {
		cfg.Snake.Speed = *speed
	}
	if *seed != 0 {
		cfg.Session.Seed = *seed
	}
	if *debug {
		cfg.Session.Debug = true
	}
	if *listen != "" {
		cfg.Spectate.Listen = *listen
	}

	logger, err := logging.New(cfg.Log, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	entry := logger.WithField("frontend", "raylib")

	if err := run(cfg, entry, *mute); err != nil {
		entry.WithError(err).Fatal("snake exited")
	}
}

func run(cfg config.Config, entry *log.Entry, mute bool) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	collector, err := metrics.NewCollector(prometheus.NewRegistry())
	if err != nil {
		return err
	}

	rl.InitWindow(1280, 800, "Snake")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)

	renderer := ui.NewRenderer(cfg.Session.Debug)
	opts := []game.Option{
		game.WithLogger(entry),
		game.WithMetrics(collector),
		game.WithObserver(renderer),
	}

	if !mute {
		player := sound.NewPlayer()
		if err := player.Initialize(); err != nil {
			entry.WithError(err).Warn("sound disabled")
		} else {
			defer player.Close()
			opts = append(opts, game.WithObserver(player))
		}
	}

	if cfg.Spectate.Listen != "" {
		hub := spectate.NewHub(entry.WithField("component", "spectate"))
		go hub.Run(ctx)
		srv := spectate.NewServer(hub, collector.Handler(), entry.WithField("component", "spectate"))
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.Spectate.Listen); err != nil {
				entry.WithError(err).Error("spectator server stopped")
			}
		}()
		opts = append(opts, game.WithObserver(hub))
	}

	g, err := game.NewGame(cfg, opts...)
	if err != nil {
		return err
	}

	sched := game.NewScheduler(g)
	renderer.OnFrame(g.Snapshot())

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			break
		}

		if rl.IsWindowResized() {
			renderer.UpdateDimensions()
		}

		in := ui.ReadInput(g.Debug())
		if in.Start {
			if err := sched.Apply(game.Command{Kind: game.CmdStart}); err != nil {
				entry.WithError(err).Warn("start")
			}
		}
		if !in.Axis.IsZero() {
			sched.Apply(game.SteerCommand(in.Axis))
		}
		if in.Grow {
			sched.Apply(game.Command{Kind: game.CmdGrow})
		}
		if in.Faster {
			sched.Apply(game.Command{Kind: game.CmdFaster})
		}
		if in.Slower {
			sched.Apply(game.Command{Kind: game.CmdSlower})
		}

		if _, err := sched.Poll(time.Now()); err != nil {
			entry.WithError(err).Warn("tick")
		}

		renderer.Draw(g.History(), rl.GetFrameTime())
	}

	entry.WithField("high_score", g.HighScore()).Info("session closed")
	return nil
}
