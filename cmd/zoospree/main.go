package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"

	"github.com/lixenwraith/zoo-spree/audio"
	"github.com/lixenwraith/zoo-spree/config"
	"github.com/lixenwraith/zoo-spree/engine"
	"github.com/lixenwraith/zoo-spree/game"
	"github.com/lixenwraith/zoo-spree/input"
	"github.com/lixenwraith/zoo-spree/render"
	"github.com/lixenwraith/zoo-spree/status"
)

var (
	configFlag    = flag.String("config", config.DefaultPath, "Settings file")
	debugFlag     = flag.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName)
	gameFlag      = flag.String("game", game.SumoName, "Minigame: "+strings.Join(game.Names(), ", "))
	profileFlag   = flag.String("profile", "", "Profile mode: cpu, mem or empty")
	debugDrawFlag = flag.Bool("debug-draw", false, "Overlay physics debug geometry")
	initConfig    = flag.Bool("init-config", false, "Write default settings to -config and exit")
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	if *initConfig {
		if err := config.Default().Save(*configFlag); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", *configFlag)
		return
	}

	switch *profileFlag {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "":
	default:
		fmt.Fprintf(os.Stderr, "unknown profile mode %q\n", *profileFlag)
		os.Exit(2)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "zoospree: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()

	// Restore the terminal before printing a crash, or the trace is lost in raw mode
	crash := func(r any) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "\r\n\x1b[31mZOOSPREE CRASHED: %v\x1b[0m\r\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	}
	defer func() {
		if r := recover(); r != nil {
			crash(r)
		}
	}()

	w, h := screen.Size()
	if cfg.Video.AutoResolution() {
		cfg.Video.SetAutoResolution(w, h)
	}
	log.Printf("video: %dx%d cells, resolution %dx%d", w, h, cfg.Video.XResolution(), cfg.Video.YResolution())

	sounds := audio.NewSoundManager()
	var player game.Sounds = game.NopSounds{}
	if cfg.Audio.Enabled {
		if err := sounds.Initialize(); err != nil {
			log.Printf("audio: %v (continuing without audio)", err)
		} else {
			sounds.SetVolume(cfg.Audio.Volume)
			player = sounds
			defer sounds.Cleanup()
		}
	}

	opts := game.Options{Physics: cfg.Physics, Sounds: player}
	if *debugDrawFlag {
		opts.Draw = cfg.Debug.DrawFlags()
	}
	g, err := game.New(*gameFlag, opts)
	if err != nil {
		return err
	}
	defer g.Close()

	canvas := render.NewCanvas(screen, render.NewCamera(float64(cfg.Video.Scale)))
	in := input.NewState(cfg.Input.Keyboard, cfg.Input.Deadzone)
	stats := status.NewStats(status.NewRegistry())

	loop := engine.NewLoop(canvas, in, g, stats, engine.RealClock{}, opts.StepDuration())
	loop.CrashHandler = crash

	log.Printf("starting %s", g.Name())
	err = loop.Run(context.Background())
	log.Printf("stopped after %d frames, %d steps", stats.Frames(), stats.Steps())
	return err
}
