// Command cubffsoup drives a digital-abiogenesis soup: it owns population
// size, epoch count, mutation rate, and RNG seeding, and reports
// population-level metrics at a configurable interval. It is a thin caller
// of the core packages; none of the simulation's logic lives here.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()

	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("cubffsoup: fatal")
	}
}
