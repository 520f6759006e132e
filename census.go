// Copyright (c) 2026 The tricensus Authors
// SPDX-License-Identifier: MIT

package census

import "github.com/bits-and-blooms/bitset"

// Item is one triangulation produced by a census, labelled with its
// position in enumeration order and the two canonical-form objects it was
// built from.
type Item struct {
	Label         int
	Pairing       *FacetPairing
	GluingPerms   *GluingPerms
	Triangulation *Triangulation
	Hints         PruningHint
}

// Sieve is a user-supplied predicate a census applies after the built-in
// filters (orientability, finiteness); an item is kept only if Sieve
// returns true for it. A nil Sieve keeps everything the built-in filters
// pass.
type Sieve func(*Item) bool

// CensusOptions configures a [CensusDriver] run.
type CensusOptions struct {
	Dim int
	N   int

	// MinBoundaryFacets/MaxBoundaryFacets bound the facet pairings
	// considered; see [PairingEnumOptions].
	MinBoundaryFacets int
	MaxBoundaryFacets int

	// OrientableOnly restricts both the gluing-permutation search and the
	// final item set to orientable triangulations.
	OrientableOnly bool

	// FiniteOnly excludes triangulations with ideal vertices (only
	// meaningful for Dim >= 3; ignored otherwise).
	FiniteOnly bool

	// MaxDepth, if positive, turns the run into a partial census: the
	// gluing search for each facet pairing stops after this many facet
	// pairs and every partial assignment reached is reported, instead of
	// searching each pairing to a complete triangulation. The zero value
	// means a full search ([NewCensusDriver] turns it into -1). Intended
	// for splitting a census across multiple resumable jobs (see the
	// checkpoint package).
	MaxDepth int

	Sieve    Sieve
	Progress Progress
}

// CensusDriver runs the full two-stage pipeline -- facet-pairing
// enumeration, then gluing-permutation search -- over every facet pairing
// it finds, assembling and filtering the resulting triangulations.
type CensusDriver struct {
	opts CensusOptions

	// seen tracks, per emitted item label, whether it survived the sieve;
	// exposed via [CensusDriver.Accepted] for a checkpoint writer to
	// persist alongside the label counter.
	seen *bitset.BitSet
}

// NewCensusDriver builds a driver for the given options. Dim and N must be
// set; the other fields default to "no restriction" at their zero values
// except MaxDepth, which defaults to -1 (full search) via this
// constructor rather than Go's own zero value of 0.
func NewCensusDriver(opts CensusOptions) *CensusDriver {
	if opts.MaxDepth == 0 {
		opts.MaxDepth = -1
	}
	return &CensusDriver{opts: opts, seen: bitset.New(0)}
}

// Accepted reports how many items the driver has labelled so far whose
// label bit is set in its internal bitset, i.e. how many survived the
// sieve. Exposed for progress reporting and checkpointing.
func (c *CensusDriver) Accepted() uint {
	return c.seen.Count()
}

// FormCensus runs a full census: every canonical facet pairing compatible
// with c's options, every canonical gluing-permutation assignment for each,
// filtered by orientability/finiteness and then by the configured Sieve.
// cb is invoked once per surviving item in label order; returning false
// stops the census early.
func (c *CensusDriver) FormCensus(cb func(*Item) bool) {
	c.run(cb)
}

// FormPartialCensus is FormCensus restricted to opts.MaxDepth, and runs the
// same pipeline; it differs only in panicking when MaxDepth is negative.
// An assignment cut off at MaxDepth pairs is reported as a partial item
// (Triangulation is nil) that skips the orientability/finiteness/sieve
// filters, since a partial assignment cannot yet be evaluated against
// them; such items are suitable for seeding parallel continuation jobs. A
// facet pairing with fewer than MaxDepth matched pairs is searched to
// completion, and its items are filtered as in FormCensus.
func (c *CensusDriver) FormPartialCensus(cb func(*Item) bool) {
	if c.opts.MaxDepth < 0 {
		panic("census: FormPartialCensus requires a non-negative MaxDepth")
	}
	c.run(cb)
}

func (c *CensusDriver) run(cb func(*Item) bool) {
	progress := orNoProgress(c.opts.Progress)
	label := 0
	stop := false

	pairOpts := PairingEnumOptions{
		MinBoundaryFacets: c.opts.MinBoundaryFacets,
		MaxBoundaryFacets: c.opts.MaxBoundaryFacets,
	}

	EnumeratePairings(c.opts.Dim, c.opts.N, pairOpts, func(p *FacetPairing, autos []Isomorphism) bool {
		if stop || progress.IsCancelled() {
			return false
		}
		progress.SetMessage(p.String())

		searcher := NewGluingPermSearcher(p, autos)
		searcher.OrientableOnly = c.opts.OrientableOnly
		searcher.MaxDepth = c.opts.MaxDepth

		searcher.Search(progress, func(gp *GluingPerms, complete bool) bool {
			item := &Item{Label: label, Pairing: p, GluingPerms: gp.Clone()}

			if complete {
				t := Triangulate(p, gp)
				if c.opts.OrientableOnly && !t.IsOrientable() {
					label++
					return true
				}
				if c.opts.FiniteOnly && t.HasIdealVertices() {
					label++
					return true
				}
				item.Triangulation = t

				if c.opts.Sieve != nil && !c.opts.Sieve(item) {
					label++
					return true
				}
			}

			c.seen.Set(uint(label))
			label++
			if !cb(item) {
				stop = true
				return false
			}
			return true
		})
		return !stop
	})

	progress.SetFinished()
}
