package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/spf13/cobra"
)

// config holds the flag values shared by the run, scan and assay subcommands.
type config struct {
	pop         int
	epochs      int
	stepLimit   int
	mutate      float64
	seed        int64
	seedSet     bool
	reportEvery int
	logEvents   bool
	snapshotOut string
}

func bindCommonFlags(cmd *cobra.Command, cfg *config) {
	cmd.Flags().IntVar(&cfg.pop, "pop", 1024, "population size (even, >= 2)")
	cmd.Flags().IntVar(&cfg.epochs, "epochs", 10000, "number of epochs to run")
	cmd.Flags().IntVar(&cfg.stepLimit, "step-limit", 8192, "per-interaction step cap")
	cmd.Flags().Float64Var(&cfg.mutate, "mutate", 0.0, "per-offspring-byte mutation probability")
	cmd.Flags().Int64Var(&cfg.seed, "seed", 0, "RNG seed (absent means system-sourced)")
	cmd.Flags().IntVar(&cfg.reportEvery, "report-every", 100, "epoch interval at which metrics are reported")
	cmd.Flags().BoolVar(&cfg.logEvents, "log-events", false, "record per-pair outcomes and log interval event counts (event counts are logged by run only)")
	cmd.Flags().StringVar(&cfg.snapshotOut, "snapshot-out", "", "path to write a gzip+JSON population snapshot after the final epoch (written by run only)")
}

// seedKey turns the --seed flag (or a system-sourced fallback) into the
// 32-byte key ChaChaRNG requires, via SHA-256 so small integer seeds still
// spread across the full key space.
func seedKey(cfg *config) ([32]byte, int64, error) {
	var raw int64
	if cfg.seedSet {
		raw = cfg.seed
	} else {
		var buf [8]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return [32]byte{}, 0, fmt.Errorf("cubffsoup: sourcing system seed: %w", err)
		}
		raw = int64(binary.LittleEndian.Uint64(buf[:]))
	}
	var in [8]byte
	binary.LittleEndian.PutUint64(in[:], uint64(raw))
	return sha256.Sum256(in[:]), raw, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cubffsoup",
		Short: "Digital-abiogenesis soup driver",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.AddCommand(newRunCmd(), newScanCmd(), newAssayCmd())
	return root
}
