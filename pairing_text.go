// Copyright (c) 2026 The tricensus Authors
// SPDX-License-Identifier: MIT

package census

import (
	"fmt"
	"strconv"
	"strings"
)

// ToTextRep renders p as 2*n*(dim+1) whitespace-separated non-negative
// integers: for every facet in FacetSpec order, its destination simplex
// (using n itself to mean "boundary") followed by its destination facet
// (0 for boundary).
func (p *FacetPairing) ToTextRep() string {
	var b strings.Builder
	first := true
	for s := 0; s < p.N; s++ {
		for f := 0; f <= p.Dim; f++ {
			d := p.DestAt(s, f)
			if !first {
				b.WriteByte(' ')
			}
			first = false
			fmt.Fprintf(&b, "%d %d", d.Simplex, d.Facet)
		}
	}
	return b.String()
}

// FromTextRep parses the format produced by [FacetPairing.ToTextRep] for n
// simplices of dimension dim.
func FromTextRep(dim, n int, text string) (*FacetPairing, error) {
	fields := strings.Fields(text)
	want := 2 * n * (dim + 1)
	if len(fields) != want {
		return nil, fmt.Errorf("census: FromTextRep: expected %d integers, got %d", want, len(fields))
	}

	p := NewFacetPairing(dim, n)
	i := 0
	for s := 0; s < n; s++ {
		for f := 0; f <= dim; f++ {
			ds, err := strconv.Atoi(fields[i])
			if err != nil {
				return nil, fmt.Errorf("census: FromTextRep: destination simplex at field %d: %w", i, err)
			}
			i++
			df, err := strconv.Atoi(fields[i])
			if err != nil {
				return nil, fmt.Errorf("census: FromTextRep: destination facet at field %d: %w", i, err)
			}
			i++
			if ds < 0 || ds > n || df < 0 || df > dim {
				return nil, fmt.Errorf("census: FromTextRep: destination (%d,%d) out of range for n=%d dim=%d", ds, df, n, dim)
			}

			x := FacetSpec{Simplex: int32(s), Facet: int8(f)}
			if ds == n {
				if !p.isSelf(p.Dest(x)) {
					return nil, fmt.Errorf("census: FromTextRep: facet %v assigned twice", x)
				}
				p.Set(x, Boundary(n))
				continue
			}
			dest := FacetSpec{Simplex: int32(ds), Facet: int8(df)}
			if !p.isSelf(p.Dest(x)) {
				// Already set from the partner side; verify consistency.
				if p.Dest(x) != dest {
					return nil, fmt.Errorf("census: FromTextRep: inconsistent gluing at facet %v", x)
				}
				continue
			}
			p.Set(x, dest)
		}
	}
	return p, nil
}

// DotHeader is the literal Graphviz preamble every pairing's dot export
// begins with.
const DotHeader = "graph G {\n  node [shape=circle,style=filled,fontsize=10,fontname=\"Helvetica\"];\n  edge [color=black];\n"

// ToDot renders p as a Graphviz graph: one node per simplex, one edge per
// matched facet pair (boundary facets produce no edge).
func (p *FacetPairing) ToDot() string {
	var b strings.Builder
	b.WriteString(DotHeader)
	for s := 0; s < p.N; s++ {
		fmt.Fprintf(&b, "  t%d [label=\"%d\"];\n", s, s)
	}
	for s := 0; s < p.N; s++ {
		for f := 0; f <= p.Dim; f++ {
			x := FacetSpec{Simplex: int32(s), Facet: int8(f)}
			d := p.Dest(x)
			if IsBoundary(d, p.N) {
				continue
			}
			if x.Less(d) {
				fmt.Fprintf(&b, "  t%d -- t%d;\n", s, d.Simplex)
			}
		}
	}
	b.WriteString("}\n")
	return b.String()
}
