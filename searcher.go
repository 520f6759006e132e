// Copyright (c) 2026 The tricensus Authors
// SPDX-License-Identifier: MIT

package census

// PruningHint flags extra structural properties of a triangulation
// (non-minimal, non-prime, P2-reducible). [GluingPermSearcher] neither
// computes nor reads them: deciding them in general is a topological
// computation well past gluing-search bookkeeping. The type is carried on
// [Item].Hints for a downstream sieve; the census driver leaves it at
// HintNone.
type PruningHint uint8

const (
	HintNone             PruningHint = 0
	HintNonMinimal       PruningHint = 1 << iota
	HintNonPrime
	HintNonMinimalPrime
	HintP2Reducible
)

// GluingPermSearcher performs the second stage of census enumeration: given
// a canonical [FacetPairing], it searches the permutations that may be
// attached to each matched facet pair, reporting only assignments that are
// themselves canonical (minimal under the pairing's own automorphism
// group). See [GluingPermSearcher.Search].
type GluingPermSearcher struct {
	Pairing *FacetPairing

	// OrientableOnly restricts the search to gluing-permutation assignments
	// admitting a consistent global orientation, pruning as soon as two
	// already-assigned pairs force a contradiction rather than waiting
	// until a complete triangulation can be checked.
	OrientableOnly bool

	// MaxDepth, if >= 0, stops each branch after this many facet pairs have
	// been assigned and reports it as a partial result instead of
	// continuing to a complete one. A negative value (the zero value is
	// -1 via [NewGluingPermSearcher]) means search to completion only.
	MaxDepth int

	pairs []pairSlot
	autos []Isomorphism
}

// pairSlot is one matched facet pair the searcher assigns a permutation to,
// named by its primary-side FacetSpec and its partner.
type pairSlot struct {
	s, f   int
	s2, f2 int
}

// NewGluingPermSearcher builds a searcher over p, which must already be
// canonical (the enumerator only ever produces canonical pairings; see
// [EnumeratePairings]). autos is p's automorphism group as returned
// alongside a true [FacetPairing.IsCanonical] verdict, reused here so the
// permutation-side canonicity test doesn't have to recompute it per
// candidate.
func NewGluingPermSearcher(p *FacetPairing, autos []Isomorphism) *GluingPermSearcher {
	s := &GluingPermSearcher{Pairing: p, MaxDepth: -1, autos: autos}
	for sx := 0; sx < p.N; sx++ {
		for f := 0; f <= p.Dim; f++ {
			x := FacetSpec{Simplex: int32(sx), Facet: int8(f)}
			if p.IsUnmatched(x) {
				continue
			}
			d := p.Dest(x)
			if !x.Less(d) {
				continue
			}
			s.pairs = append(s.pairs, pairSlot{sx, f, int(d.Simplex), int(d.Facet)})
		}
	}
	return s
}

// SearchCallback is invoked for every gluing-permutation assignment the
// search reports: a complete, canonical assignment if complete is true, or
// a partial one cut off at MaxDepth pairs otherwise. Returning false stops
// the search early.
type SearchCallback func(gp *GluingPerms, complete bool) bool

// Search runs the depth-first gluing-permutation search, reporting results
// through cb and polling progress for cancellation between pairs.
//
// Pairs are assigned in the fixed order collected by
// [NewGluingPermSearcher]. For each pair every candidate vertex permutation
// is tried in rank order; a candidate is rejected immediately if
// OrientableOnly is set and it would contradict an orientation already
// forced by an earlier pair (the same flood-fill propagation
// [Triangulation.IsOrientable] performs, but run incrementally alongside
// the search instead of afterward on a finished triangulation). A complete
// assignment is reported only if it passes the permutation-side
// canonicity test: it must not be lexicographically improvable by any
// automorphism of the underlying pairing.
func (s *GluingPermSearcher) Search(progress Progress, cb SearchCallback) {
	progress = orNoProgress(progress)
	k := s.Pairing.Dim + 1
	gp := NewGluingPerms(s.Pairing)
	orientation := make([]int8, s.Pairing.N)
	if s.Pairing.N > 0 {
		orientation[0] = 1
	}
	stop := false

	var recurse func(depth int)
	recurse = func(depth int) {
		if stop || progress.IsCancelled() {
			stop = true
			return
		}
		if s.MaxDepth >= 0 && depth == s.MaxDepth {
			if !cb(gp, false) {
				stop = true
			}
			return
		}
		if depth == len(s.pairs) {
			if s.isCanonical(gp) {
				if !cb(gp, true) {
					stop = true
				}
			}
			return
		}

		pr := s.pairs[depth]
		count := permCount(k)
		for idx := 0; idx < count; idx++ {
			p := PermFromIndex(k, idx)

			var touched []int
			if s.OrientableOnly {
				ok, t := applyOrientation(orientation, pr.s, pr.s2, p.Sign())
				touched = t
				if !ok {
					continue
				}
			}

			gp.SetPerm(pr.s, pr.f, p)
			recurse(depth + 1)
			gp.UnsetPerm(pr.s, pr.f)
			for _, sx := range touched {
				orientation[sx] = 0
			}
			if stop {
				return
			}
		}
	}

	recurse(0)
}

// applyOrientation checks and, if consistent, records the orientation
// relationship a gluing of sign `sign` between simplex a and simplex b
// forces, returning the simplices it newly set so the caller can roll them
// back on backtrack.
func applyOrientation(orientation []int8, a, b int, sign int) (ok bool, touched []int) {
	want := -orientation[a]
	if sign > 0 {
		want = orientation[a]
	}
	switch {
	case orientation[a] == 0 && orientation[b] == 0:
		orientation[a] = 1
		want = -1
		if sign > 0 {
			want = 1
		}
		orientation[b] = want
		return true, []int{a, b}
	case orientation[a] == 0:
		orientation[a] = -orientation[b]
		if sign > 0 {
			orientation[a] = orientation[b]
		}
		return true, []int{a}
	case orientation[b] == 0:
		orientation[b] = want
		return true, []int{b}
	default:
		return orientation[b] == want, nil
	}
}

func permCount(k int) int {
	c := 1
	for i := 2; i <= k; i++ {
		c *= i
	}
	return c
}

// isCanonical reports whether gp is lexicographically minimal among its
// orbit under the pairing's automorphism group, i.e. no automorphism maps
// it to a strictly smaller permutation-index sequence.
func (s *GluingPermSearcher) isCanonical(gp *GluingPerms) bool {
	for _, iso := range s.autos {
		img := applyIsoToGluingPerms(iso, gp)
		if comparePermIndex(img, gp) < 0 {
			return false
		}
	}
	return true
}

// comparePermIndex compares two GluingPerms over the same pairing slot by
// slot, -1 standing in for "unset/derived" and sorting before any real
// index.
func comparePermIndex(a, b *GluingPerms) int {
	for i := range a.permIndex {
		if a.permIndex[i] != b.permIndex[i] {
			if a.permIndex[i] < b.permIndex[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// applyIsoToGluingPerms conjugates gp through an automorphism iso of gp's
// underlying pairing, producing the gluing-permutation assignment that
// represents the same physical gluing after relabelling simplices and
// facets by iso.
func applyIsoToGluingPerms(iso Isomorphism, gp *GluingPerms) *GluingPerms {
	out := NewGluingPerms(gp.Pairing)
	p := gp.Pairing
	for s := 0; s < p.N; s++ {
		for f := 0; f <= p.Dim; f++ {
			x := FacetSpec{Simplex: int32(s), Facet: int8(f)}
			if p.IsUnmatched(x) || !gp.isPrimary(s, f) {
				continue
			}
			d := p.Dest(x)
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
