package main

import (
	"flag"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"lockin/config"
	"lockin/game"
	"lockin/goal"
)

func main() {
	name := flag.String("name", "", "your name, shows a committed goal instead of quotes")
	mission := flag.String("mission", "", "what you are locking in on")
	timeframe := flag.String("timeframe", "", "how long you give yourself")
	deadline := flag.String("deadline", "", "target date as "+goal.DateLayout)
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "lockin",
	})

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	if level, err := cfg.Level(); err == nil {
		logger.SetLevel(level)
	}

	g := game.NewGame(cfg, logger)
	defer g.Close()

	if *name != "" || *mission != "" || *timeframe != "" || *deadline != "" {
		gl, err := goal.New(*name, *mission, *timeframe, *deadline, time.Now())
		if err != nil {
			logger.Fatal("invalid goal", "err", err)
		}
		g.SetGoal(gl)
		logger.Info("goal committed", "name", gl.Name, "deadline", gl.FormattedDeadline(), "press", "S to save the card")
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizable(cfg.Window.Resizable)

	if err := ebiten.RunGame(g); err != nil {
		logger.Error("game exited", "err", err)
		os.Exit(1)
	}
}
