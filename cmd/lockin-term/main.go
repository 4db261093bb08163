package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"lockin/config"
	"lockin/term"
)

const envLogFile = "LOCKIN_LOG_FILE"

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	// the screen owns the terminal, so logs only go to a file when asked for
	logger := log.New(io.Discard)
	if path := config.GetEnv(envLogFile, ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal("open log file", "err", err)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "lockin-term"})
		if level, err := cfg.Level(); err == nil {
			logger.SetLevel(level)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal("create screen", "err", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal("init screen", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := term.NewApp(screen, term.Options{Config: cfg, Logger: logger})
	err = app.Run(ctx)
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("terminal host stopped", "err", err)
		os.Exit(1)
	}
}
