// Copyright (c) 2026 The tricensus Authors
// SPDX-License-Identifier: MIT

package census

import "fmt"

// FacetPairing records, for every facet of every simplex in an n-simplex,
// dimension-d complex, which facet it is glued to -- or that it is an
// unglued boundary facet. It is the first of the two canonical-form objects
// the census pipeline enumerates (see [EnumeratePairings]).
//
// The zero value is not usable; construct with [NewFacetPairing].
type FacetPairing struct {
	Dim int
	N   int

	// partner[simplex*(Dim+1)+facet] is that facet's destination: another
	// facet, Boundary(N), or the facet itself while still unassigned
	// (the "self" marker used only during enumeration).
	partner []FacetSpec
}

// NewFacetPairing allocates a FacetPairing for n simplices of dimension dim,
// with every facet initially mapped to itself -- the "not yet assigned"
// marker used by [EnumeratePairings].
func NewFacetPairing(dim, n int) *FacetPairing {
	p := &FacetPairing{
		Dim:     dim,
		N:       n,
		partner: make([]FacetSpec, n*(dim+1)),
	}
	for s := 0; s < n; s++ {
		for f := 0; f <= dim; f++ {
			p.partner[s*(dim+1)+f] = FacetSpec{Simplex: int32(s), Facet: int8(f)}
		}
	}
	return p
}

// NumFacets returns n*(dim+1), the total number of facet slots.
func (p *FacetPairing) NumFacets() int { return p.N * (p.Dim + 1) }

func (p *FacetPairing) slot(x FacetSpec) int {
	return int(x.Simplex)*(p.Dim+1) + int(x.Facet)
}

// Dest returns the partner of facet x. If x is unassigned (still mapped to
// itself) Dest returns x unchanged.
func (p *FacetPairing) Dest(x FacetSpec) FacetSpec {
	return p.partner[p.slot(x)]
}

// DestAt is a convenience wrapper for Dest(FacetSpec{simplex, facet}).
func (p *FacetPairing) DestAt(simplex, facet int) FacetSpec {
	return p.Dest(FacetSpec{Simplex: int32(simplex), Facet: int8(facet)})
}

// isSelf reports whether x is still unassigned, i.e. partner[x] == x.
func (p *FacetPairing) isSelf(x FacetSpec) bool {
	d := p.partner[p.slot(x)]
	return d == x
}

// Set glues x to dest symmetrically: partner[x] = dest, and if dest is not
// the boundary sentinel, partner[dest] = x as well. Panics if x already has
// a different partner, guarding against accidental double assignment during
// search.
func (p *FacetPairing) Set(x, dest FacetSpec) {
	if old := p.partner[p.slot(x)]; old != x && old != dest {
		panic("census: FacetPairing.Set: facet already has a different partner")
	}
	p.partner[p.slot(x)] = dest
	if !IsBoundary(dest, p.N) {
		p.partner[p.slot(dest)] = x
	}
}

// Unset reverts x (and its partner, if any) back to the "self" marker.
func (p *FacetPairing) Unset(x FacetSpec) {
	old := p.Dest(x)
	p.partner[p.slot(x)] = x
	if !IsBoundary(old, p.N) && old != x {
		p.partner[p.slot(old)] = old
	}
}

// IsUnmatched reports whether x is glued to the boundary sentinel.
func (p *FacetPairing) IsUnmatched(x FacetSpec) bool {
	return IsBoundary(p.Dest(x), p.N)
}

// IsClosed reports whether every facet is matched, i.e. there are no
// boundary facets at all.
func (p *FacetPairing) IsClosed() bool {
	for s := 0; s < p.N; s++ {
		for f := 0; f <= p.Dim; f++ {
			if p.IsUnmatched(FacetSpec{Simplex: int32(s), Facet: int8(f)}) {
				return false
			}
		}
	}
	return true
}

// CountBoundaryFacets returns the number of unmatched facets.
func (p *FacetPairing) CountBoundaryFacets() int {
	n := 0
	for s := 0; s < p.N; s++ {
		for f := 0; f <= p.Dim; f++ {
			if p.IsUnmatched(FacetSpec{Simplex: int32(s), Facet: int8(f)}) {
				n++
			}
		}
	}
	return n
}

// FromTriangulation builds the facet pairing underlying a triangulation,
// mapping facets with no neighbour to Boundary(N).
func FromTriangulation(t *Triangulation) *FacetPairing {
	p := NewFacetPairing(t.Dim, len(t.Simplices))
	for s, simp := range t.Simplices {
		for f := 0; f <= t.Dim; f++ {
			x := FacetSpec{Simplex: int32(s), Facet: int8(f)}
			g := simp.Gluing[f]
			if g == nil {
				p.Set(x, Boundary(p.N))
				continue
			}
			if p.isSelf(p.Dest(x)) {
				p.Set(x, FacetSpec{Simplex: int32(g.Simplex), Facet: int8(g.Facet)})
			}
		}
	}
	return p
}

// Clone returns a deep copy of p.
func (p *FacetPairing) Clone() *FacetPairing {
	c := &FacetPairing{Dim: p.Dim, N: p.N, partner: make([]FacetSpec, len(p.partner))}
	copy(c.partner, p.partner)
	return c
}

// Equal reports whether p and q describe the same pairing on the same
// number of simplices and dimension.
func (p *FacetPairing) Equal(q *FacetPairing) bool {
	if p.Dim != q.Dim || p.N != q.N {
		return false
	}
	for i := range p.partner {
		if p.partner[i] != q.partner[i] {
			return false
		}
	}
	return true
}

func (p *FacetPairing) String() string {
	return p.prettyPrint()
}

func (p *FacetPairing) prettyPrint() string {
	s := ""
	for sx := 0; sx < p.N; sx++ {
		if sx > 0 {
			s += " | "
		}
		for f := 0; f <= p.Dim; f++ {
			if f > 0 {
				s += " "
			}
			d := p.DestAt(sx, f)
			if IsBoundary(d, p.N) {
				s += "bdry"
			} else {
				s += fmt.Sprintf("%d:%d", d.Simplex, d.Facet)
			}
		}
	}
	return s
}
