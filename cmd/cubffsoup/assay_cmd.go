package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/deadcoast/cubffsoup/assay"
	"github.com/deadcoast/cubffsoup/scheduler"
	"github.com/deadcoast/cubffsoup/soup"
)

func newAssayCmd() *cobra.Command {
	cfg := &config{}
	var trials int
	cmd := &cobra.Command{
		Use:   "assay",
		Short: "Run a soup, then stress-test the final population concurrently and print the ranking",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.seedSet = cmd.Flags().Changed("seed")
			return assaySoup(cfg, trials)
		},
	}
	bindCommonFlags(cmd, cfg)
	cmd.Flags().IntVar(&trials, "trials", 8, "assay trials per candidate")
	return cmd
}

// assaySoup runs the soup to completion, then fans the final population out
// across assay.RunParallel's concurrent candidates, each with its own
// deterministically derived substream so the parallel fan-out never touches
// the soup's own single-RNG-stream reproduction guarantee.
func assaySoup(cfg *config, trials int) error {
	key, resolvedSeed, err := seedKey(cfg)
	if err != nil {
		return err
	}

	s, err := soup.New(cfg.pop, soup.NewChaChaRNG(key))
	if err != nil {
		return fmt.Errorf("cubffsoup: %w", err)
	}

	for e := 0; e < cfg.epochs; e++ {
		if _, err := s.Epoch(scheduler.RandomDisjointPairs, cfg.stepLimit, cfg.mutate, false); err != nil {
			return fmt.Errorf("cubffsoup: epoch %d: %w", s.EpochIndex(), err)
		}
	}

	pool := s.Population()
	newRNG := func(i int) assay.RNG { return soup.NewSubRNG(key, s.EpochIndex(), i) }

	ranked, err := assay.RunParallel(context.Background(), pool, pool, trials, cfg.stepLimit, newRNG)
	if err != nil {
		return fmt.Errorf("cubffsoup: assay: %w", err)
	}

	best := ranked[0]
	for _, r := range ranked[1:] {
		if r.Successes > best.Successes {
			best = r
		}
	}
	log.Info().
		Int64("seed", resolvedSeed).
		Int("epoch_index", s.EpochIndex()).
		Int("best_index", best.Index).
		Int("best_successes", best.Successes).
		Int("trials", best.Trials).
		Msg("assay ranking")
	return nil
}
