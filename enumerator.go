// Copyright (c) 2026 The tricensus Authors
// SPDX-License-Identifier: MIT

package census

import "iter"

// PairingEnumOptions bounds which facet pairings [EnumeratePairings] visits.
type PairingEnumOptions struct {
	// MinBoundaryFacets and MaxBoundaryFacets bound how many facets may be
	// left unmatched. Set both to 0 to enumerate only closed complexes; set
	// MaxBoundaryFacets to -1 for no upper bound.
	MinBoundaryFacets int
	MaxBoundaryFacets int
}

// allowsBoundary reports whether any facet may be left unmatched under opts.
func (o PairingEnumOptions) allowsBoundary() bool {
	return o.MaxBoundaryFacets != 0
}

// feasible reports whether, with usedBoundary facets already committed and
// remaining facet-decisions left, the boundary-count target can still be
// met. remaining must be even once the still-required boundary facets are
// set aside, since every non-boundary decision consumes two facets at once.
func (o PairingEnumOptions) feasible(usedBoundary, remaining int) bool {
	maxNeeded := o.MinBoundaryFacets - usedBoundary
	if maxNeeded < 0 {
		maxNeeded = 0
	}
	if maxNeeded > remaining {
		return false
	}
	upper := remaining
	if o.MaxBoundaryFacets >= 0 {
		upper = o.MaxBoundaryFacets - usedBoundary
		if upper < 0 {
			return false
		}
		if upper > remaining {
			upper = remaining
		}
	}
	if upper < maxNeeded {
		return false
	}
	// Some boundary count in [maxNeeded, upper] leaves an even number of
	// facets for pairing off; since consecutive integers alternate parity,
	// such a count exists unless the whole range is a single odd-parity
	// point that doesn't work out.
	for b := maxNeeded; b <= upper; b++ {
		if (remaining-b)%2 == 0 {
			return true
		}
	}
	return false
}

// PairingCallback is invoked once for every canonical facet pairing found,
// together with its full automorphism group. Returning false stops the
// enumeration early.
type PairingCallback func(p *FacetPairing, autos []Isomorphism) bool

// EnumeratePairings performs a depth-first search over every way to glue
// the facets of n dimension-dim simplices together, visiting exactly the
// canonical representative of each isomorphism class of connected facet
// pairings compatible with opts.
//
// Facets are decided in ascending FacetSpec order. At each position the
// search either already knows the answer (filled in symmetrically by an
// earlier decision) or tries every structurally valid partner: any
// not-yet-used facet at or after the current position, plus the boundary
// sentinel if permitted. A partner in a simplex beyond the highest one
// opened so far is only allowed through that simplex's own facet 0 --
// simplices must be entered in order, which prunes almost all of the
// relabellings a later canonicity check would otherwise have to discard.
// Remaining impossibility (parity against the requested boundary-facet
// count) is checked before recursing so dead subtrees are never explored.
// A completed assignment is checked for connectedness and, finally,
// canonicity before being reported.
func EnumeratePairings(dim, n int, opts PairingEnumOptions, cb PairingCallback) {
	if n <= 0 {
		return
	}
	k := dim + 1
	total := n * k
	if !opts.feasible(0, total) {
		return
	}

	p := NewFacetPairing(dim, n)
	maxOpened := 1 // simplex 0 is always available
	stop := false

	var extend func(pos, usedBoundary int)
	extend = func(pos, usedBoundary int) {
		if stop {
			return
		}
		if pos == total {
			if !connected(p) {
				return
			}
			ok, autos := p.IsCanonical()
			if !ok {
				return
			}
			if !cb(p, autos) {
				stop = true
			}
			return
		}

		s, f := pos/k, pos%k
		x := FacetSpec{Simplex: int32(s), Facet: int8(f)}
		if !p.isSelf(p.Dest(x)) {
			extend(pos+1, usedBoundary)
			return
		}

		// Count the facets from pos onward that are still undecided; facets
		// already paired from their partner's side are not decisions.
		remaining := 0
		for q := pos; q < total; q++ {
			if p.isSelf(FacetSpec{Simplex: int32(q / k), Facet: int8(q % k)}) {
				remaining++
			}
		}

		if opts.allowsBoundary() && opts.feasible(usedBoundary+1, remaining-1) {
			p.Set(x, Boundary(n))
			extend(pos+1, usedBoundary+1)
			p.Unset(x)
			if stop {
				return
			}
		}

		for s2 := s; s2 < n; s2++ {
			if s2 > maxOpened {
				break
			}
			fStart := 0
			if s2 == s {
				fStart = f + 1
			}
			for f2 := fStart; f2 < k; f2++ {
				y := FacetSpec{Simplex: int32(s2), Facet: int8(f2)}
				if !p.isSelf(p.Dest(y)) {
					continue
				}
				if s2 == maxOpened && f2 != 0 {
					// a simplex not yet referenced may only be entered
					// through its facet 0
					continue
				}
				if !opts.feasible(usedBoundary, remaining-2) {
					continue
				}

				opened := s2 == maxOpened
				p.Set(x, y)
				if opened {
					maxOpened++
				}
				extend(pos+1, usedBoundary)
				p.Unset(x)
				if opened {
					maxOpened--
				}
				if stop {
					return
				}
			}
		}
	}

	extend(0, 0)
}

// connected reports whether every simplex of p is reachable from simplex 0
// by following matched facets.
func connected(p *FacetPairing) bool {
	if p.N == 0 {
		return true
	}
	seen := make([]bool, p.N)
	seen[0] = true
	stack := []int{0}
	count := 1
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for f := 0; f <= p.Dim; f++ {
			x := FacetSpec{Simplex: int32(s), Facet: int8(f)}
			d := p.Dest(x)
			if IsBoundary(d, p.N) {
				continue
			}
			if !seen[d.Simplex] {
				seen[d.Simplex] = true
				count++
				stack = append(stack, int(d.Simplex))
			}
		}
	}
	return count == p.N
}

// Pairings adapts [EnumeratePairings] to a range-over-func iterator, the
// idiom this codebase uses in place of callback-style traversal wherever a
// range clause reads more naturally than a standalone callback.
func Pairings(dim, n int, opts PairingEnumOptions) iter.Seq2[*FacetPairing, []Isomorphism] {
	return func(yield func(*FacetPairing, []Isomorphism) bool) {
		EnumeratePairings(dim, n, opts, func(p *FacetPairing, autos []Isomorphism) bool {
			return yield(p, autos)
		})
	}
}
