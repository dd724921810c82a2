package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/imageredux/imageredux"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "Path to an optional configuration file")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339

	cfg, err := imageredux.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", *configPath).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid log level, defaulting to info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if !cfg.LogJSON {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	log.Info().
		Str("version", version).
		Int("quality", cfg.Quality).
		Int("size_percent", cfg.SizePercent).
		Str("output_folder", cfg.OutputFolder).
		Msg("starting imageredux")

	imageredux.NewGui(cfg).Run()
}
