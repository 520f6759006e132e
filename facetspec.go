// Copyright (c) 2026 The tricensus Authors
// SPDX-License-Identifier: MIT

package census

import "fmt"

// FacetSpec locates one facet of one simplex: the facet opposite vertex
// Facet of simplex Simplex. It carries a handful of distinguished sentinel
// values (see [BeforeStart], [Boundary], [PastEnd]) so that depth-first
// iteration over all facets of n simplices, boundary included or excluded,
// is a single total order with well-defined endpoints.
type FacetSpec struct {
	Simplex int32
	Facet   int8
}

// Compare returns -1, 0, +1 as a < b, a == b, a > b under the lexicographic
// order on (Simplex, Facet).
func (a FacetSpec) Compare(b FacetSpec) int {
	switch {
	case a.Simplex != b.Simplex:
		if a.Simplex < b.Simplex {
			return -1
		}
		return 1
	case a.Facet != b.Facet:
		if a.Facet < b.Facet {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Less reports whether a sorts before b.
func (a FacetSpec) Less(b FacetSpec) bool { return a.Compare(b) < 0 }

// BeforeStart returns the sentinel that precedes every real facet, used as
// the starting point for forward iteration.
func BeforeStart(d int) FacetSpec {
	return FacetSpec{Simplex: -1, Facet: int8(d)}
}

// Boundary returns the sentinel marking an unmatched facet of an n-simplex
// complex.
func Boundary(n int) FacetSpec {
	return FacetSpec{Simplex: int32(n), Facet: 0}
}

// PastEnd returns the sentinel one step past the last facet reachable by
// iteration: (n, 0) if boundary values are excluded from the walk, or
// (n+1, 0) if they are included (since Boundary(n) itself must be a valid,
// iterable position in that case).
func PastEnd(n int, allowBoundary bool) FacetSpec {
	if allowBoundary {
		return FacetSpec{Simplex: int32(n + 1), Facet: 0}
	}
	return FacetSpec{Simplex: int32(n), Facet: 0}
}

// IsBoundary reports whether x is the Boundary(n) sentinel.
func IsBoundary(x FacetSpec, n int) bool {
	return x.Simplex == int32(n) && x.Facet == 0
}

// Inc returns the next FacetSpec in order after x, for a complex of n
// simplices of dimension d, stepping onto the boundary sentinel when
// allowBoundary and x is the last facet of the last simplex.
func Inc(x FacetSpec, n, d int, allowBoundary bool) FacetSpec {
	if x.Simplex == int32(n) {
		// Currently at Boundary(n); nothing beyond it but PastEnd.
		return PastEnd(n, allowBoundary)
	}
	if int(x.Facet) < d {
		return FacetSpec{Simplex: x.Simplex, Facet: x.Facet + 1}
	}
	if int(x.Simplex) == n-1 {
		if allowBoundary {
			return Boundary(n)
		}
		return PastEnd(n, allowBoundary)
	}
	return FacetSpec{Simplex: x.Simplex + 1, Facet: 0}
}

// Dec returns the FacetSpec immediately before x, the inverse of Inc, for a
// complex of n simplices of dimension d.
func Dec(x FacetSpec, n, d int, allowBoundary bool) FacetSpec {
	if allowBoundary && x == PastEnd(n, true) {
		return Boundary(n)
	}
	if allowBoundary && x == Boundary(n) {
		return FacetSpec{Simplex: int32(n - 1), Facet: int8(d)}
	}
	if x.Facet > 0 {
		return FacetSpec{Simplex: x.Simplex, Facet: x.Facet - 1}
	}
	if x.Simplex == 0 {
		return BeforeStart(d)
	}
	return FacetSpec{Simplex: x.Simplex - 1, Facet: int8(d)}
}

func (a FacetSpec) String() string {
	return fmt.Sprintf("%d:%d", a.Simplex, a.Facet)
}
