package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goscrape/internal/app"
)

func main() {
	// Logging setup. Stdout carries exactly one JSON object per invocation,
	// so every diagnostic line goes to stderr.
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		searchURL   string
		sourcesFile string
		timeout     time.Duration
		verbose     bool
	)
	flag.StringVar(&searchURL, "search.url", os.Getenv("GOSCRAPE_SEARCH_URL"), "Override for the DuckDuckGo HTML results endpoint")
	flag.StringVar(&sourcesFile, "sources.file", os.Getenv("GOSCRAPE_SOURCES"), "YAML file with the default smart-search source configuration")
	flag.DurationVar(&timeout, "timeout", 15*time.Second, "Per-request network timeout")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		SearchBaseURL:  searchURL,
		RequestTimeout: timeout,
		SourcesFile:    sourcesFile,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.Run(ctx, cfg, os.Stdin, os.Stdout, log.Logger); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Best-effort: the host still expects a JSON object on stdout.
		fmt.Fprintf(os.Stdout, "{\"type\":\"error\",\"message\":%q}\n", err.Error())
		os.Exit(1)
	}
}
