// Copyright (c) 2026 The tricensus Authors
// SPDX-License-Identifier: MIT

package census

// Isomorphism is a relabelling of n simplices and, within each, its d+1
// facets: SimplexImage is a permutation of simplex indices, and FacetPerm[i]
// is applied to the facets of simplex i (before relabelling it to
// SimplexImage[i]).
type Isomorphism struct {
	Dim          int
	N            int
	SimplexImage []int
	FacetPerm    []Perm
}

// IdentityIsomorphism returns the isomorphism that fixes every simplex and
// every facet.
func IdentityIsomorphism(dim, n int) Isomorphism {
	iso := Isomorphism{
		Dim:          dim,
		N:            n,
		SimplexImage: make([]int, n),
		FacetPerm:    make([]Perm, n),
	}
	for i := 0; i < n; i++ {
		iso.SimplexImage[i] = i
		iso.FacetPerm[i] = IdentityPerm(dim + 1)
	}
	return iso
}

// Apply maps a FacetSpec through the isomorphism: facet f of simplex i goes
// to facet FacetPerm[i](f) of simplex SimplexImage[i].
func (iso Isomorphism) Apply(x FacetSpec) FacetSpec {
	if int(x.Simplex) >= iso.N {
		// boundary / sentinel values pass through unchanged except for the
		// simplex-count relabelling, which is a no-op since n is preserved.
		return x
	}
	img := iso.SimplexImage[x.Simplex]
	f := iso.FacetPerm[x.Simplex].Image(int(x.Facet))
	return FacetSpec{Simplex: int32(img), Facet: int8(f)}
}

// ApplyPairing returns the facet pairing obtained by conjugating p's
// gluings through iso: iso(p) relates iso(x) to iso(p.Dest(x)) for every x.
func (iso Isomorphism) ApplyPairing(p *FacetPairing) *FacetPairing {
	out := NewFacetPairing(p.Dim, p.N)
	for s := 0; s < p.N; s++ {
		for f := 0; f <= p.Dim; f++ {
			x := FacetSpec{Simplex: int32(s), Facet: int8(f)}
			dest := p.Dest(x)

			ix := iso.Apply(x)
			var idest FacetSpec
			if IsBoundary(dest, p.N) {
				idest = Boundary(p.N)
			} else {
				idest = iso.Apply(dest)
			}
			if out.isSelf(out.Dest(ix)) {
				out.Set(ix, idest)
			}
		}
	}
	return out
}

// Inverse returns the inverse isomorphism.
func (iso Isomorphism) Inverse() Isomorphism {
	inv := Isomorphism{
		Dim:          iso.Dim,
		N:            iso.N,
		SimplexImage: make([]int, iso.N),
		FacetPerm:    make([]Perm, iso.N),
	}
	for i := 0; i < iso.N; i++ {
		img := iso.SimplexImage[i]
		inv.SimplexImage[img] = i
		inv.FacetPerm[img] = iso.FacetPerm[i].Inverse()
	}
	return inv
}

// Compose returns the isomorphism x -> iso(other(x)).
func (iso Isomorphism) Compose(other Isomorphism) Isomorphism {
	out := Isomorphism{
		Dim:          iso.Dim,
		N:            iso.N,
		SimplexImage: make([]int, iso.N),
		FacetPerm:    make([]Perm, iso.N),
	}
	for i := 0; i < iso.N; i++ {
		mid := other.SimplexImage[i]
		out.SimplexImage[i] = iso.SimplexImage[mid]
		out.FacetPerm[i] = iso.FacetPerm[mid].Compose(other.FacetPerm[i])
	}
	return out
}
