// Command snake-term plays a session in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"snake-sim/config"
	"snake-sim/game"
	"snake-sim/logging"
	"snake-sim/metrics"
	"snake-sim/sound"
	"snake-sim/spectate"
	"snake-sim/term"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const frameInterval = 33 * time.Millisecond

func main() {
	configPath := flag.String("config", "", "TOML config file")
	speed := flag.Float64("speed", 0, "Speed multiplier (higher = faster), overrides the config")
	seed := flag.Uint64("seed", 0, "Food placement seed, overrides the config")
	debug := flag.Bool("debug", false, "Enable the grid overlay and the grow key")
	listen := flag.String("listen", "", "Address for the spectator server, e.g. :8080")
	logPath := flag.String("log", "", "Log file; logs are dropped when empty since the screen is in use")
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
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	logger, err := logging.New(cfg.Log, out)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	entry := logger.WithField("frontend", "terminal")

	if err := run(cfg, entry, *mute); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config, entry *log.Entry, mute bool) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	collector, err := metrics.NewCollector(prometheus.NewRegistry())
	if err != nil {
		return err
	}

	view := term.NewView(screen, cfg.Session.Debug)
	opts := []game.Option{
		game.WithLogger(entry),
		game.WithMetrics(collector),
		game.WithObserver(view),
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
	view.OnFrame(g.Snapshot())

	cmds := make(chan game.Command, 16)
	done := make(chan error, 1)
	go func() { done <- game.NewScheduler(g).Run(ctx, cmds) }()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

loop:
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				cmd, action := term.MapKey(ev.Key(), ev.Rune(), cfg.Session.Debug)
				switch action {
				case term.ActionQuit:
					break loop
				case term.ActionCommand:
					select {
					case cmds <- cmd:
					default:
						entry.Warn("input queue full, dropping key")
					}
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case now := <-ticker.C:
			view.Draw(float32(now.Sub(last).Seconds()))
			last = now

		case err := <-done:
			return err
		}
	}

	cancel()
	<-done
	entry.WithField("high_score", g.HighScore()).Info("session closed")
	return nil
}
