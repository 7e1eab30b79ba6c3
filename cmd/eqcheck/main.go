package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/seitarof/eqcheck/internal/checker"
	"github.com/seitarof/eqcheck/internal/cli"
	"github.com/seitarof/eqcheck/internal/equality"
	"github.com/seitarof/eqcheck/internal/loader"
	"github.com/seitarof/eqcheck/internal/matcher"
	"github.com/seitarof/eqcheck/internal/report"
)

var version = "dev"

func main() {
	cfg, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	l := loader.New()
	m := matcher.NewTypeMatcher()
	c := checker.New(checker.Options{
		Jobs:        cfg.Jobs,
		Directional: cfg.Directional,
		Cache:       equality.NewCache(),
	})
	rep := report.New(report.NewWriter(os.Stdout))

	runner := cli.NewRunner(l, m, c, rep)
	failing, err := runner.Run(ctx, cfg)
	stop()
	if err != nil {
		log.Fatal(err)
	}
	if failing > 0 {
		os.Exit(1)
	}
}
