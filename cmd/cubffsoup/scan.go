package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/deadcoast/cubffsoup/assay"
	"github.com/deadcoast/cubffsoup/scheduler"
	"github.com/deadcoast/cubffsoup/soup"
)

func newScanCmd() *cobra.Command {
	cfg := &config{}
	var trials int
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run a soup and periodically rank the population by assay success rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.seedSet = cmd.Flags().Changed("seed")
			return scanSoup(cfg, trials)
		},
	}
	bindCommonFlags(cmd, cfg)
	cmd.Flags().IntVar(&trials, "trials", 8, "assay trials per candidate")
	return cmd
}

func scanSoup(cfg *config, trials int) error {
	key, resolvedSeed, err := seedKey(cfg)
	if err != nil {
		return err
	}

	rng := soup.NewChaChaRNG(key)
	s, err := soup.New(cfg.pop, rng)
	if err != nil {
		return fmt.Errorf("cubffsoup: %w", err)
	}

	log.Info().Int("pop", cfg.pop).Int64("seed", resolvedSeed).Msg("starting scan")

	assayRNG := soup.NewSubRNG(key, -1, 0)

	for e := 0; e < cfg.epochs; e++ {
		if _, err := s.Epoch(scheduler.RandomDisjointPairs, cfg.stepLimit, cfg.mutate, cfg.logEvents); err != nil {
			return fmt.Errorf("cubffsoup: epoch %d: %w", s.EpochIndex(), err)
		}

		if cfg.reportEvery > 0 && s.EpochIndex()%cfg.reportEvery == 0 {
			pool := s.Population()
			ranked, err := assay.Sweep(pool, pool, trials, cfg.stepLimit, assayRNG)
			if err != nil {
				return fmt.Errorf("cubffsoup: scan sweep at epoch %d: %w", s.EpochIndex(), err)
			}

			best := ranked[0]
			for _, r := range ranked[1:] {
				if r.Successes > best.Successes {
					best = r
				}
			}
			log.Info().
				Int("epoch_index", s.EpochIndex()).
				Int("best_index", best.Index).
				Int("best_successes", best.Successes).
				Int("trials", best.Trials).
				Msg("scan ranking")
		}
	}
	return nil
}
