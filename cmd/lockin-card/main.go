package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"lockin/goal"
)

func main() {
	name := flag.String("name", "", "your name")
	mission := flag.String("mission", "", "the goal you are locking in on")
	timeframe := flag.String("timeframe", "", "how long you give yourself, e.g. \"90 days\"")
	deadline := flag.String("deadline", "", "target date as "+goal.DateLayout)
	out := flag.String("out", ".", "directory the card PNG is written to")
	site := flag.String("site", "", "link appended to the share text")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "lockin-card"})

	now := time.Now()
	g, err := goal.New(*name, *mission, *timeframe, *deadline, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Usage: lockin-card -name NAME -mission MISSION -timeframe TIMEFRAME -deadline YYYY-MM-DD")
		flag.PrintDefaults()
		logger.Fatal("invalid goal", "err", err)
	}

	path, err := goal.SaveCard(*out, g, now)
	if err != nil {
		logger.Fatal("render card", "err", err)
	}
	logger.Info("card saved", "path", path, "days_left", g.DaysLabel(now))

	fmt.Println(g.ShareText(*site, now))
}
