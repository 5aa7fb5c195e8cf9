package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/outpost/audio"
	"github.com/lixenwraith/outpost/config"
	"github.com/lixenwraith/outpost/core"
	"github.com/lixenwraith/outpost/game"
	"github.com/lixenwraith/outpost/host"
	"github.com/lixenwraith/outpost/logging"
	"github.com/lixenwraith/outpost/metrics"
	"github.com/lixenwraith/outpost/save"
	"github.com/lixenwraith/outpost/screen"
	"github.com/lixenwraith/outpost/service"
	"github.com/lixenwraith/outpost/ui"
)

var (
	configFlag = flag.String("config", "", "Path to a YAML config file")
	colorFlag  = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
	muteFlag   = flag.Bool("mute", false, "Disable sound regardless of config")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "outpost: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}

	logFile, err := openLog(cfg.Log)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
		logging.Configure(logging.Config{Level: cfg.Log.Level, Output: logFile})
	}
	log := logging.WithComponent("main")
	core.SetCrashLogger(logging.WithComponent("crash"))

	store, err := save.NewStore(cfg.Save.Backend, cfg.Save.Dir, logging.WithComponent("save"))
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("close store")
		}
	}()

	// Latest session view for the debug endpoint, refreshed once per second
	var status atomic.Pointer[save.Snapshot]
	chime := audio.NewChime(audio.Config{Enabled: cfg.Audio.Enabled, Volume: cfg.Audio.Volume}, logging.WithComponent("audio"))
	server := metrics.NewServer(cfg.Metrics.Addr, func() any {
		if snap := status.Load(); snap != nil {
			return snap
		}
		return nil
	}, logging.WithComponent("metrics"))

	hub := service.NewHub(logging.WithComponent("service"))
	for _, svc := range []service.Service{chime, server} {
		if err := hub.Register(svc); err != nil {
			return err
		}
	}
	if err := hub.InitAll(*muteFlag); err != nil {
		return err
	}
	if err := hub.StartAll(); err != nil {
		return err
	}
	defer func() {
		if err := hub.StopAll(); err != nil {
			log.Warn().Err(err).Msg("stop services")
		}
	}()

	games := &game.Factory{
		Config:    cfg.Game(),
		Scheduler: cfg.Scheduler(),
		Source:    cfg.Source(),
		Store:     store,
		Death:     ui.NewDeathScreen,
		Log:       logging.WithComponent("game"),
	}
	menu := ui.NewMainMenu(games, logging.WithComponent("ui"))

	tps := cfg.Sim.TicksPerSecond
	stack := screen.NewStack(menu, tps,
		screen.WithPopupHook(func(p screen.Popup) {
			metrics.RecordPopup(p.Kind.String())
			chime.OnPopup(p)
		}),
		screen.WithDepthHook(metrics.SetStackDepth),
		screen.WithLogger(logging.WithComponent("screen")),
	)

	applyColorMode(*colorFlag)
	canvas, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create terminal: %w", err)
	}
	if err := canvas.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer canvas.Fini()
	core.SetCrashTerminal(canvas)

	loop := host.New(stack, canvas, tps, logging.WithComponent("host"))
	loop.OnTick(func(tick uint64, top screen.Screen) {
		session, ok := top.(*game.Session)
		if !ok {
			status.Store(nil)
			return
		}
		if tick%uint64(tps) != 0 {
			return
		}
		if snap, err := session.Snapshot(); err == nil {
			status.Store(snap)
		}
	})

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return loop.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		if sigCtx.Err() != nil {
			log.Info().Msg("signal received, shutting down")
		}
		stack.Close()
		return nil
	})

	err = g.Wait()
	log.Info().Uint64("ticks", loop.Tick()).Err(err).Msg("exit")
	return err
}

// openLog opens the configured log file, nil when logging is discarded
func openLog(cfg config.LogConfig) (*os.File, error) {
	if cfg.File == "" {
		return nil, nil
	}
	return logging.OpenFile(filepath.Dir(cfg.File), filepath.Base(cfg.File))
}

// applyColorMode steers tcell's color detection from the -color flag
func applyColorMode(mode string) {
	switch mode {
	case "256":
		_ = os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor", "true", "24bit":
		_ = os.Setenv("COLORTERM", "truecolor")
	}
}
