package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/deadcoast/cubffsoup/analytics"
	"github.com/deadcoast/cubffsoup/detector"
	"github.com/deadcoast/cubffsoup/scheduler"
	"github.com/deadcoast/cubffsoup/snapshot"
	"github.com/deadcoast/cubffsoup/soup"
)

func newRunCmd() *cobra.Command {
	cfg := &config{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Advance a soup for a number of epochs, reporting metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.seedSet = cmd.Flags().Changed("seed")
			return runSoup(cfg)
		},
	}
	bindCommonFlags(cmd, cfg)
	return cmd
}

func runSoup(cfg *config) error {
	key, resolvedSeed, err := seedKey(cfg)
	if err != nil {
		return err
	}

	s, err := soup.New(cfg.pop, soup.NewChaChaRNG(key))
	if err != nil {
		return fmt.Errorf("cubffsoup: %w", err)
	}

	log.Info().
		Int("pop", cfg.pop).
		Int("epochs", cfg.epochs).
		Int("step_limit", cfg.stepLimit).
		Float64("mutate", cfg.mutate).
		Int64("seed", resolvedSeed).
		Msg("starting run")

	var aExact, bExact int
	for e := 0; e < cfg.epochs; e++ {
		outcomes, err := s.Epoch(scheduler.RandomDisjointPairs, cfg.stepLimit, cfg.mutate, cfg.logEvents)
		if err != nil {
			return fmt.Errorf("cubffsoup: epoch %d: %w", s.EpochIndex(), err)
		}
		for _, o := range outcomes {
			switch o.Event.Kind {
			case detector.AExact:
				aExact++
			case detector.BExact:
				bExact++
			}
		}

		if cfg.reportEvery > 0 && s.EpochIndex()%cfg.reportEvery == 0 {
			reportMetrics(s, cfg, aExact, bExact)
			aExact, bExact = 0, 0
		}
	}

	if cfg.snapshotOut != "" {
		if err := writeSnapshot(s, cfg, resolvedSeed); err != nil {
			return err
		}
	}
	return nil
}

// snapshotMeta is the driver's own convention for the opaque meta object;
// the core neither requires nor interprets these fields.
type snapshotMeta struct {
	Seed       int64 `json:"seed"`
	EpochIndex int   `json:"epoch_index"`
	Pop        int   `json:"pop"`
}

func writeSnapshot(s *soup.Soup, cfg *config, resolvedSeed int64) error {
	f, err := os.Create(cfg.snapshotOut)
	if err != nil {
		return fmt.Errorf("cubffsoup: snapshot: %w", err)
	}
	defer f.Close()

	meta := snapshotMeta{Seed: resolvedSeed, EpochIndex: s.EpochIndex(), Pop: s.Size()}
	if err := snapshot.Save(f, s.Population(), meta); err != nil {
		return fmt.Errorf("cubffsoup: snapshot: %w", err)
	}
	log.Info().Str("path", cfg.snapshotOut).Msg("wrote snapshot")
	return nil
}

func reportMetrics(s *soup.Soup, cfg *config, aExact, bExact int) {
	pool := s.Population()
	unique, diversity := analytics.Diversity(pool)
	topCount := analytics.TopPrograms(pool, 1)[0].Count
	opcodeTotal := analytics.OpcodeHistogram(pool).RealOpcodeTotal()
	ev := log.Info().
		Int("epoch_index", s.EpochIndex()).
		Float64("entropy_bits", analytics.ShannonEntropyBits(pool)).
		Float64("compress_ratio", analytics.CompressRatio(pool)).
		Int("top_count", topCount).
		Uint64("opcode_total", opcodeTotal).
		Int("unique_programs", unique).
		Float64("diversity", diversity)
	if cfg.logEvents {
		ev = ev.Int("a_exact", aExact).Int("b_exact", bExact)
	}
	ev.Msg("metrics")
}
