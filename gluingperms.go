// Copyright (c) 2026 The tricensus Authors
// SPDX-License-Identifier: MIT

package census

import (
	"fmt"
	"strconv"
	"strings"
)

// GluingPerms pairs a facet pairing with a vertex permutation for every
// matched facet: the second of the two canonical-form search spaces the
// census pipeline enumerates (see [GluingPermSearcher]). Only one
// permutation is stored per matched pair (the lower-indexed facet's, by
// [FacetSpec] order); the other direction is its inverse, computed lazily.
type GluingPerms struct {
	Pairing *FacetPairing

	// permIndex[simplex*(Dim+1)+facet] is the rank of the chosen
	// permutation (see Perm.Index), or -1 if this facet is either
	// unmatched or is the higher-indexed side of a matched pair (whose
	// permutation is derived, not stored).
	permIndex []int
}

// NewGluingPerms allocates an empty assignment over p, with every facet
// unset.
func NewGluingPerms(p *FacetPairing) *GluingPerms {
	gp := &GluingPerms{Pairing: p, permIndex: make([]int, p.N*(p.Dim+1))}
	for i := range gp.permIndex {
		gp.permIndex[i] = -1
	}
	return gp
}

func (gp *GluingPerms) slot(simplex, facet int) int {
	return simplex*(gp.Pairing.Dim+1) + facet
}

// isPrimary reports whether (simplex, facet) is the side of a matched pair
// that stores the permutation directly, i.e. it is not unmatched and its
// FacetSpec compares less than its partner's. A facet still mapped to
// itself (unassigned) also counts as primary.
func (gp *GluingPerms) isPrimary(simplex, facet int) bool {
	x := FacetSpec{Simplex: int32(simplex), Facet: int8(facet)}
	d := gp.Pairing.Dest(x)
	if gp.Pairing.IsUnmatched(x) {
		return false
	}
	return x.Less(d) || x == d
}

// SetPerm assigns the permutation for the primary side of a matched facet.
// Panics if (simplex, facet) is unmatched or not the primary side.
func (gp *GluingPerms) SetPerm(simplex, facet int, p Perm) {
	if !gp.isPrimary(simplex, facet) {
		panic("census: SetPerm on a non-primary or unmatched facet")
	}
	gp.permIndex[gp.slot(simplex, facet)] = p.Index()
}

// UnsetPerm clears a previously assigned primary-side permutation.
func (gp *GluingPerms) UnsetPerm(simplex, facet int) {
	gp.permIndex[gp.slot(simplex, facet)] = -1
}

// HasPerm reports whether (simplex, facet) (primary or derived) currently
// has an assigned permutation.
func (gp *GluingPerms) HasPerm(simplex, facet int) bool {
	x := FacetSpec{Simplex: int32(simplex), Facet: int8(facet)}
	if gp.Pairing.IsUnmatched(x) {
		return false
	}
	if gp.isPrimary(simplex, facet) {
		return gp.permIndex[gp.slot(simplex, facet)] >= 0
	}
	d := gp.Pairing.Dest(x)
	return gp.permIndex[gp.slot(int(d.Simplex), int(d.Facet))] >= 0
}

// Perm returns the vertex permutation carrying simplex's vertices across
// facet to its partner, deriving the inverse automatically for the
// non-primary side. Panics if unset or unmatched.
func (gp *GluingPerms) Perm(simplex, facet int) Perm {
	k := gp.Pairing.Dim + 1
	if gp.isPrimary(simplex, facet) {
		idx := gp.permIndex[gp.slot(simplex, facet)]
		if idx < 0 {
			panic("census: Perm: facet not yet assigned")
		}
		return PermFromIndex(k, idx)
	}
	x := FacetSpec{Simplex: int32(simplex), Facet: int8(facet)}
	d := gp.Pairing.Dest(x)
	idx := gp.permIndex[gp.slot(int(d.Simplex), int(d.Facet))]
	if idx < 0 {
		panic("census: Perm: facet not yet assigned")
	}
	return PermFromIndex(k, idx).Inverse()
}

// Clone returns a deep copy of gp (sharing the same, immutable Pairing).
func (gp *GluingPerms) Clone() *GluingPerms {
	c := &GluingPerms{Pairing: gp.Pairing, permIndex: make([]int, len(gp.permIndex))}
	copy(c.permIndex, gp.permIndex)
	return c
}

// DumpData serialises the assignment as whitespace-separated permutation
// ranks for every primary facet in FacetSpec order, -1 for unmatched or
// not-yet-assigned facets, tagged with a leading 'g' record-kind byte.
func (gp *GluingPerms) DumpData() string {
	var b strings.Builder
	b.WriteByte('g')
	for s := 0; s < gp.Pairing.N; s++ {
		for f := 0; f <= gp.Pairing.Dim; f++ {
			b.WriteByte(' ')
			if gp.isPrimary(s, f) {
				fmt.Fprintf(&b, "%d", gp.permIndex[gp.slot(s, f)])
			} else {
				b.WriteString("-1")
			}
		}
	}
	return b.String()
}

// ParseGluingPerms reads back the format written by DumpData for the given
// pairing.
func ParseGluingPerms(p *FacetPairing, data string) (*GluingPerms, error) {
	fields := strings.Fields(data)
	if len(fields) == 0 || fields[0] != "g" {
		return nil, fmt.Errorf("census: ParseGluingPerms: missing 'g' tag")
	}
	fields = fields[1:]
	want := p.N * (p.Dim + 1)
	if len(fields) != want {
		return nil, fmt.Errorf("census: ParseGluingPerms: expected %d fields, got %d", want, len(fields))
	}
	gp := NewGluingPerms(p)
	i := 0
	for s := 0; s < p.N; s++ {
		for f := 0; f <= p.Dim; f++ {
			v, err := strconv.Atoi(fields[i])
			if err != nil {
				return nil, fmt.Errorf("census: ParseGluingPerms: field %d: %w", i, err)
			}
			i++
			if v >= 0 {
				gp.permIndex[gp.slot(s, f)] = v
			}
		}
	}
	return gp, nil
}
