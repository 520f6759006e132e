// Copyright (c) 2026 The tricensus Authors
// SPDX-License-Identifier: MIT

// Package naivecensus is an intentionally unoptimized, pruning-free
// reference census: every way to pair facets, crossed with every way to
// assign a gluing permutation to each pair, then deduplicated by brute-
// force pairwise isomorphism testing. It exists only so tests can cross-
// check the optimized enumerator/searcher/driver pipeline's counts on
// inputs small enough for the combinatorial blowup to still finish (n of
// 1 or 2 for dim 2, at most).
package naivecensus

import "github.com/tricensus/census"

// Count returns the number of pairwise non-isomorphic closed triangulations
// (no boundary facets) of n dimension-dim simplices, optionally restricted
// to orientable ones, found by brute force with no canonicity pruning at
// any stage. Disconnected closed triangulations are not filtered out.
func Count(dim, n int, orientableOnly bool) int {
	var triangulations []*census.Triangulation
	for _, p := range allPairings(dim, n) {
		if !p.IsClosed() {
			continue
		}
		for _, gp := range allGluingPerms(p) {
			t := census.Triangulate(p, gp)
			if orientableOnly && !t.IsOrientable() {
				continue
			}
			triangulations = append(triangulations, t)
		}
	}
	return countDistinct(triangulations)
}

// allPairings returns every way (not just canonical ones) to glue the
// facets of n dimension-dim simplices, including disconnected and
// boundary-only assignments.
func allPairings(dim, n int) []*census.FacetPairing {
	if n <= 0 {
		return nil
	}
	k := dim + 1
	total := n * k
	var out []*census.FacetPairing
	p := census.NewFacetPairing(dim, n)

	var extend func(pos int)
	extend = func(pos int) {
		if pos == total {
			out = append(out, p.Clone())
			return
		}
		s, f := pos/k, pos%k
		x := census.FacetSpec{Simplex: int32(s), Facet: int8(f)}
		if destOf(p, x) != x {
			extend(pos + 1)
			return
		}

		p.Set(x, census.Boundary(n))
		extend(pos + 1)
		p.Unset(x)

		for pos2 := pos + 1; pos2 < total; pos2++ {
			s2, f2 := pos2/k, pos2%k
			y := census.FacetSpec{Simplex: int32(s2), Facet: int8(f2)}
			if destOf(p, y) != y {
				continue
			}
			p.Set(x, y)
			extend(pos + 1)
			p.Unset(x)
		}
	}
	extend(0)
	return out
}

func destOf(p *census.FacetPairing, x census.FacetSpec) census.FacetSpec {
	return p.Dest(x)
}

// allGluingPerms returns every assignment of a permutation to every matched
// facet pair of p, trying all k! choices per pair with no orientability or
// canonicity pruning.
func allGluingPerms(p *census.FacetPairing) []*census.GluingPerms {
	k := p.Dim + 1
	count := factorial(k)

	var pairs []census.FacetSpec
	for s := 0; s < p.N; s++ {
		for f := 0; f <= p.Dim; f++ {
			x := census.FacetSpec{Simplex: int32(s), Facet: int8(f)}
			if p.IsUnmatched(x) {
				continue
			}
			d := p.Dest(x)
			if x.Less(d) {
				pairs = append(pairs, x)
			}
		}
	}

	var out []*census.GluingPerms
	gp := census.NewGluingPerms(p)

	var extend func(i int)
	extend = func(i int) {
		if i == len(pairs) {
			out = append(out, gp.Clone())
			return
		}
		x := pairs[i]
		for idx := 0; idx < count; idx++ {
			gp.SetPerm(int(x.Simplex), int(x.Facet), census.PermFromIndex(k, idx))
			extend(i + 1)
		}
		if len(pairs) > 0 {
			gp.UnsetPerm(int(x.Simplex), int(x.Facet))
		}
	}
	extend(0)
	return out
}

// countDistinct groups triangulations into isomorphism classes by brute
// force (trying every simplex permutation and every per-simplex facet
// permutation) and returns the number of classes found.
func countDistinct(ts []*census.Triangulation) int {
	var reps []*census.Triangulation
	for _, t := range ts {
		isNew := true
		for _, rep := range reps {
			if isomorphic(rep, t) {
				isNew = false
				break
			}
		}
		if isNew {
			reps = append(reps, t)
		}
	}
	return len(reps)
}

// isomorphic reports whether a and b describe the same triangulation up to
// relabelling simplices and, within each, their facets.
func isomorphic(a, b *census.Triangulation) bool {
	if len(a.Simplices) != len(b.Simplices) || a.Dim != b.Dim {
		return false
	}
	pa := census.FromTriangulation(a)
	pb := census.FromTriangulation(b)
	gpa := gluingPermsOf(pa, a)

	n, k := len(a.Simplices), a.Dim+1
	count := factorial(k)

	simplexPerm := make([]int, n)
	used := make([]bool, n)

	facetIdx := make([]int, n)

	var tryFacets func(i int) bool
	tryFacets = func(i int) bool {
		if i == n {
			iso := census.Isomorphism{Dim: a.Dim, N: n, SimplexImage: append([]int(nil), simplexPerm...), FacetPerm: make([]census.Perm, n)}
			for s := 0; s < n; s++ {
				iso.FacetPerm[s] = census.PermFromIndex(k, facetIdx[s])
			}
			imgPairing := iso.ApplyPairing(pa)
			if !imgPairing.Equal(pb) {
				return false
			}
			imgGluing := applyIsoToGluing(iso, gpa, pb)
			return imgGluing.DumpData() == gluingPermsOf(pb, b).DumpData()
		}
		for idx := 0; idx < count; idx++ {
			facetIdx[i] = idx
			if tryFacets(i + 1) {
				return true
			}
		}
		return false
	}

	var trySimplices func(i int) bool
	trySimplices = func(i int) bool {
		if i == n {
			return tryFacets(0)
		}
		for v := 0; v < n; v++ {
			if used[v] {
				continue
			}
			used[v] = true
			simplexPerm[i] = v
			if trySimplices(i + 1) {
				used[v] = false
				return true
			}
			used[v] = false
		}
		return false
	}

	return trySimplices(0)
}

func gluingPermsOf(p *census.FacetPairing, t *census.Triangulation) *census.GluingPerms {
	gp := census.NewGluingPerms(p)
	for s := 0; s < p.N; s++ {
		for f := 0; f <= p.Dim; f++ {
			x := census.FacetSpec{Simplex: int32(s), Facet: int8(f)}
			if p.IsUnmatched(x) {
				continue
			}
			d := p.Dest(x)
			if !x.Less(d) {
				continue
			}
			g := t.Simplices[s].Gluing[f]
			gp.SetPerm(s, f, g.Perm)
		}
	}
	return gp
}

func applyIsoToGluing(iso census.Isomorphism, gp *census.GluingPerms, target *census.FacetPairing) *census.GluingPerms {
	out := census.NewGluingPerms(target)
	p := gp.Pairing
	for s := 0; s < p.N; s++ {
		for f := 0; f <= p.Dim; f++ {
			x := census.FacetSpec{Simplex: int32(s), Facet: int8(f)}
			if p.IsUnmatched(x) {
				continue
			}
			d := p.Dest(x)
			if !x.Less(d) {
				continue
			}
			perm := gp.Perm(s, f)
			ix := iso.Apply(x)
			id := iso.Apply(d)
			newPerm := iso.FacetPerm[d.Simplex].Compose(perm).Compose(iso.FacetPerm[x.Simplex].Inverse())
			if ix.Less(id) {
				out.SetPerm(int(ix.Simplex), int(ix.Facet), newPerm)
			} else {
				out.SetPerm(int(id.Simplex), int(id.Facet), newPerm.Inverse())
			}
		}
	}
	return out
}

func factorial(n int) int {
	r := 1
	for i := 2; i <= n; i++ {
		r *= i
	}
	return r
}
