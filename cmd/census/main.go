// Copyright (c) 2026 The tricensus Authors
// SPDX-License-Identifier: MIT

// Command census runs a facet-pairing-and-gluing-permutation census from
// the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/tricensus/census"
	"github.com/tricensus/census/checkpoint"
	"github.com/tricensus/census/progresslog"
)

// sizeResult is the outcome of censusing one simplex count, collected so
// the goroutines running concurrently under run can report in a fixed,
// deterministic order regardless of which finishes first.
type sizeResult struct {
	n     int
	count int
}

type rootFlags struct {
	dim         int
	minN        int
	maxN        int
	orientable  bool
	finiteOnly  bool
	bdryMin     int
	bdryMax     int
	jobs        int
	checkpoint  string
	profilePath string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f rootFlags
	cmd := &cobra.Command{
		Use:   "census",
		Short: "Enumerate triangulations up to isomorphism by facet-pairing and gluing-permutation search",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f)
		},
	}
	cmd.Flags().IntVar(&f.dim, "dim", 3, "simplex dimension (2, 3, or 4)")
	cmd.Flags().IntVar(&f.minN, "min-size", 1, "smallest number of simplices to census")
	cmd.Flags().IntVar(&f.maxN, "max-size", 1, "largest number of simplices to census")
	cmd.Flags().BoolVar(&f.orientable, "orientable", false, "restrict to orientable triangulations")
	cmd.Flags().BoolVar(&f.finiteOnly, "finite", false, "exclude triangulations with ideal vertices (dim >= 3)")
	cmd.Flags().IntVar(&f.bdryMin, "boundary-min", 0, "minimum number of boundary facets")
	cmd.Flags().IntVar(&f.bdryMax, "boundary-max", 0, "maximum number of boundary facets (-1 for unbounded)")
	cmd.Flags().IntVar(&f.jobs, "jobs", 1, "number of simplex-counts to census concurrently")
	cmd.Flags().StringVar(&f.checkpoint, "checkpoint", "", "checkpoint file to write after each simplex-count completes")
	cmd.Flags().StringVar(&f.profilePath, "profile", "", "write a CPU profile to this path")
	return cmd
}

var checkpointMu sync.Mutex

func run(ctx context.Context, f rootFlags) error {
	if f.profilePath != "" {
		file, err := os.Create(f.profilePath)
		if err != nil {
			return fmt.Errorf("census: create profile: %w", err)
		}
		defer file.Close()
		if err := pprof.StartCPUProfile(file); err != nil {
			return fmt.Errorf("census: start profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()

	g, gctx := errgroup.WithContext(ctx)
	if f.jobs > 0 {
		g.SetLimit(f.jobs)
	}

	var mu sync.Mutex
	var results []sizeResult
	for n := f.minN; n <= f.maxN; n++ {
		n := n
		g.Go(func() error {
			count, err := censusOne(gctx, log, f, n)
			if err != nil {
				return err
			}
			mu.Lock()
			results = append(results, sizeResult{n: n, count: count})
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	slices.SortFunc(results, func(a, b sizeResult) int { return a.n - b.n })
	total := 0
	for _, r := range results {
		fmt.Printf("dim=%d n=%d: %d triangulations\n", f.dim, r.n, r.count)
		total += r.count
	}
	fmt.Printf("total: %d triangulations\n", total)
	return nil
}

func censusOne(ctx context.Context, log zerolog.Logger, f rootFlags, n int) (int, error) {
	prog := progresslog.New(ctx, log, fmt.Sprintf("dim%d-n%d", f.dim, n), 200*time.Millisecond)

	opts := census.CensusOptions{
		Dim:               f.dim,
		N:                 n,
		MinBoundaryFacets: f.bdryMin,
		MaxBoundaryFacets: f.bdryMax,
		OrientableOnly:    f.orientable,
		FiniteOnly:        f.finiteOnly,
		Progress:          prog,
	}
	driver := census.NewCensusDriver(opts)

	count := 0
	driver.FormCensus(func(item *census.Item) bool {
		count++
		return true
	})

	if f.checkpoint != "" {
		checkpointMu.Lock()
		defer checkpointMu.Unlock()
		file, err := os.Create(f.checkpoint)
		if err != nil {
			return count, fmt.Errorf("census: checkpoint: %w", err)
		}
		defer file.Close()
		state := checkpoint.State{Dim: f.dim, N: n, NextLabel: int(driver.Accepted())}
		if err := checkpoint.Save(file, state); err != nil {
			return count, fmt.Errorf("census: checkpoint: %w", err)
		}
	}

	return count, nil
}
