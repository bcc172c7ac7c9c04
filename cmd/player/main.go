package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/jscyril/golang_video_player/internal/config"
	"github.com/jscyril/golang_video_player/internal/control"
	"github.com/jscyril/golang_video_player/internal/logging"
	"github.com/jscyril/golang_video_player/internal/media"
	"github.com/jscyril/golang_video_player/internal/state"
	"github.com/jscyril/golang_video_player/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, logFile, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	logger.Info("starting player", "source", cfg.Source, "config", cfg.ConfigFile)

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	element := media.NewElement(cfg.Source, media.WithLogger(logger))
	ref := media.NewRef()
	ref.Set(element)

	feed := ui.NewFeed()
	mirror := state.NewMirror(ref,
		state.WithLogger(logger),
		state.WithOnChange(feed.Push),
	)
	mirror.Attach()

	screen := ui.NewScreen()
	commands := control.New(ref, screen, control.WithLogger(logger))

	model := ui.NewModel(ui.Options{
		Source:     cfg.Source,
		SeekStep:   cfg.SeekStep,
		VolumeStep: cfg.VolumeStep,
		Fade:       cfg.Fade,
		Accent:     cfg.Color,
	}, ui.Deps{
		Loader:   element,
		Mirror:   mirror,
		Commands: commands,
		Screen:   screen,
		Feed:     feed,
		Logger:   logger,
	})
	program := ui.NewProgram(model)

	// Run UI until it quits or a signal arrives
	g, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	g.Go(func() error {
		defer close(done)
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("run ui: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-ctx.Done():
			program.Quit()
		case <-done:
		}
		return nil
	})
	err = g.Wait()

	// Stop observing before the element goes away
	mirror.Detach()
	screen.Close()
	commands.Wait()
	ref.Clear()
	if cerr := element.Close(); cerr != nil {
		logger.Error("close media", "source", cfg.Source, "error", cerr)
	}
	logger.Info("player stopped")

	return err
}
