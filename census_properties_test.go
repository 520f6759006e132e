// Copyright (c) 2026 The tricensus Authors
// SPDX-License-Identifier: MIT

package census_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/tricensus/census"
	"github.com/tricensus/census/internal/naivecensus"
)

// smallPairings collects every canonical facet pairing EnumeratePairings
// finds for (dim, n), used as the sample population gopter draws from
// below -- sampling uniformly from arbitrary byte strings would almost
// never land on a structurally valid pairing, so the generators instead
// pick an index into this precomputed, already-valid population.
func smallPairings(dim, n int) []*census.FacetPairing {
	var out []*census.FacetPairing
	census.EnumeratePairings(dim, n, census.PairingEnumOptions{MaxBoundaryFacets: -1}, func(p *census.FacetPairing, _ []census.Isomorphism) bool {
		out = append(out, p.Clone())
		return true
	})
	return out
}

func TestPairingTextRepRoundTrips(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	for _, dn := range []struct{ dim, n int }{{2, 1}, {2, 2}, {2, 3}, {3, 1}, {3, 2}} {
		pairings := smallPairings(dn.dim, dn.n)
		if len(pairings) == 0 {
			continue
		}
		dim, n := dn.dim, dn.n

		properties.Property(
			"ToTextRep/FromTextRep round-trips every canonical pairing",
			prop.ForAll(
				func(i int) bool {
					p := pairings[i%len(pairings)]
					q, err := census.FromTextRep(dim, n, p.ToTextRep())
					if err != nil {
						return false
					}
					return q.Equal(p)
				},
				gen.IntRange(0, len(pairings)*3),
			),
		)
	}

	properties.TestingRun(t)
}

func TestMakeCanonicalFixesAlreadyCanonicalPairings(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	for _, dn := range []struct{ dim, n int }{{2, 1}, {2, 2}, {2, 3}, {3, 2}} {
		pairings := smallPairings(dn.dim, dn.n)
		if len(pairings) == 0 {
			continue
		}
		n := dn.n

		properties.Property(
			"MakeCanonical leaves an already-canonical pairing's text rep unchanged",
			prop.ForAll(
				func(i int) bool {
					p := pairings[i%len(pairings)]
					iso, isolated := p.MakeCanonical()
					q := iso.ApplyPairing(p)
					return q.Equal(p) && isolated >= 0 && isolated <= n
				},
				gen.IntRange(0, len(pairings)*3),
			),
		)
	}

	properties.TestingRun(t)
}

func TestGluingPermsDumpDataRoundTrips(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	pairings := smallPairings(2, 2)
	if len(pairings) == 0 {
		t.Skip("no pairings generated for dim=2 n=2")
	}

	properties.Property(
		"GluingPerms DumpData/ParseGluingPerms round-trips an identity assignment",
		prop.ForAll(
			func(i int) bool {
				p := pairings[i%len(pairings)]
				gp := census.NewGluingPerms(p)
				for s := 0; s < p.N; s++ {
					for f := 0; f <= p.Dim; f++ {
						x := census.FacetSpec{Simplex: int32(s), Facet: int8(f)}
						if p.IsUnmatched(x) {
							continue
						}
						d := p.Dest(x)
						if x.Less(d) {
							gp.SetPerm(s, f, census.IdentityPerm(p.Dim+1))
						}
					}
				}
				back, err := census.ParseGluingPerms(p, gp.DumpData())
				if err != nil {
					return false
				}
				return back.DumpData() == gp.DumpData()
			},
			gen.IntRange(0, len(pairings)*3),
		),
	)

	properties.TestingRun(t)
}

// TestCensusMatchesBruteForceOnTinyInputs cross-checks CensusDriver's
// pruned, canonicity-driven enumeration against naivecensus's unoptimized
// nested-loop-and-pairwise-isomorphism count on inputs small enough for
// the brute-force side to still finish. Both sides count closed
// triangulations only; for these sizes every closed one is connected.
// Closed dimension-2 facet-pairing counts are tabulated in OEIS A005967,
// but those values aren't
// asserted directly here since this search has no way to confirm they
// were transcribed correctly; cross-checking against the unoptimized gold
// model sidesteps that without giving up the regression coverage.
func TestCensusMatchesBruteForceOnTinyInputs(t *testing.T) {
	for _, tc := range []struct {
		dim, n     int
		orientable bool
	}{
		{2, 1, false},
		{2, 2, false},
		{2, 2, true},
	} {
		tc := tc
		t.Run("", func(t *testing.T) {
			want := naivecensus.Count(tc.dim, tc.n, tc.orientable)

			driver := census.NewCensusDriver(census.CensusOptions{
				Dim:            tc.dim,
				N:              tc.n,
				OrientableOnly: tc.orientable,
			})
			got := 0
			driver.FormCensus(func(*census.Item) bool {
				got++
				return true
			})

			if got != want {
				t.Fatalf("dim=%d n=%d orientable=%v: CensusDriver found %d, naivecensus found %d", tc.dim, tc.n, tc.orientable, got, want)
			}
		})
	}
}
