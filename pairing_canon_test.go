// Copyright (c) 2026 The tricensus Authors
// SPDX-License-Identifier: MIT

package census

import "testing"

func TestIsCanonicalSingleSimplexAllBoundary(t *testing.T) {
	p := NewFacetPairing(2, 1) // a single triangle, every facet boundary
	for f := 0; f <= 2; f++ {
		p.Set(FacetSpec{Simplex: 0, Facet: int8(f)}, Boundary(1))
	}

	ok, autos := p.IsCanonical()
	if !ok {
		t.Fatalf("a single all-boundary simplex must be canonical")
	}
	if len(autos) != 6 { // 3! facet relabellings, all automorphisms
		t.Fatalf("want 6 automorphisms of a lone triangle, got %d", len(autos))
	}
}

func TestIsCanonicalTwoSimplicesSelfGlued(t *testing.T) {
	// Two triangles, facet 0 of each glued to the other, every other
	// facet left on the boundary. This is already in canonical form:
	// relabelling the two simplices is the only non-trivial symmetry,
	// and it fixes the pairing.
	p := NewFacetPairing(2, 2)
	p.Set(FacetSpec{Simplex: 0, Facet: 0}, FacetSpec{Simplex: 1, Facet: 0})
	for s := 0; s < 2; s++ {
		for f := 1; f <= 2; f++ {
			p.Set(FacetSpec{Simplex: int32(s), Facet: int8(f)}, Boundary(2))
		}
	}

	ok, autos := p.IsCanonical()
	if !ok {
		t.Fatalf("expected this pairing to already be canonical")
	}
	if len(autos) == 0 {
		t.Fatalf("expected at least the identity automorphism")
	}
	for _, a := range autos {
		q := a.ApplyPairing(p)
		if !q.Equal(p) {
			t.Fatalf("reported automorphism does not fix p: %v -> %v", p, q)
		}
	}
}

func TestMakeCanonicalRelabelsToMinimum(t *testing.T) {
	p := NewFacetPairing(2, 2)
	p.Set(FacetSpec{Simplex: 1, Facet: 0}, FacetSpec{Simplex: 0, Facet: 1})

	iso, isolated := p.MakeCanonical()
	if isolated != 0 {
		t.Fatalf("expected no isolated simplices, got %d", isolated)
	}
	q := iso.ApplyPairing(p)

	ok, _ := q.IsCanonical()
	if !ok {
		t.Fatalf("MakeCanonical's image must itself be canonical: %v", q)
	}
}

func TestMakeCanonicalIsolatedTail(t *testing.T) {
	// Simplex 1 is fully isolated (all facets on the boundary); simplex 0
	// has one self-matched facet pair.
	p := NewFacetPairing(2, 2)
	p.Set(FacetSpec{Simplex: 0, Facet: 0}, FacetSpec{Simplex: 0, Facet: 1})
	p.Set(FacetSpec{Simplex: 0, Facet: 2}, Boundary(2))
	p.Set(FacetSpec{Simplex: 1, Facet: 0}, Boundary(2))
	p.Set(FacetSpec{Simplex: 1, Facet: 1}, Boundary(2))
	p.Set(FacetSpec{Simplex: 1, Facet: 2}, Boundary(2))

	iso, isolated := p.MakeCanonical()
	if isolated != 1 {
		t.Fatalf("expected exactly 1 isolated simplex, got %d", isolated)
	}
	if iso.SimplexImage[1] != 1 {
		t.Fatalf("the isolated simplex should map to the tail index, got %d", iso.SimplexImage[1])
	}
}
