// Copyright (c) 2026 The tricensus Authors
// SPDX-License-Identifier: MIT

package census

// isoBuilder holds the partial state of an isomorphism under construction by
// the canonicity search: which domain simplex/facet has been assigned to
// which image simplex/facet so far, plus enough bookkeeping to detect a
// contradiction (a domain simplex or image slot claimed twice) in O(1).
type isoBuilder struct {
	n, k int

	domainImage []int  // domainImage[domainSimplex] -> image simplex, or -1
	imageOwner  []int  // imageOwner[imageSimplex] -> domain simplex, or -1
	localPerm   []int8 // localPerm[domainSimplex*k+domainFacet] -> image-local facet, or -1
	localOwner  []int8 // localOwner[imageSimplex*k+localFacet] -> domain facet (0..d), or -1; indexed together with imageOwner to recover the full domain FacetSpec
	used        []bool // used[domainSimplex*k+domainFacet], domain facet already consumed as a preimage
}

func newIsoBuilder(n, k int) *isoBuilder {
	b := &isoBuilder{
		n: n, k: k,
		domainImage: make([]int, n),
		imageOwner:  make([]int, n),
		localPerm:   make([]int8, n*k),
		localOwner:  make([]int8, n*k),
		used:        make([]bool, n*k),
	}
	for i := range b.domainImage {
		b.domainImage[i] = -1
		b.imageOwner[i] = -1
	}
	for i := range b.localPerm {
		b.localPerm[i] = -1
		b.localOwner[i] = -1
	}
	return b
}

// assignment is one step of the search: domain facet x is tentatively
// mapped to the image slot (imgSimplex, localFacet).
type assignment struct {
	x                    FacetSpec
	imgSimplex, local    int
	forcedSimplex        bool // this step newly assigned domainImage[x.Simplex]
	forcedDomainFacetUse bool
}

// tryAssign attempts to map domain facet x onto image slot
// (imgSimplex, local). It returns ok=false on a structural contradiction
// (simplex or local-slot collision); on success it mutates b and returns a
// record that undoAssign can later use to back the mutation out.
func (b *isoBuilder) tryAssign(x FacetSpec, imgSimplex, local int) (assignment, bool) {
	di, df := int(x.Simplex), int(x.Facet)

	if b.used[di*b.k+df] {
		return assignment{}, false
	}

	a := assignment{x: x, imgSimplex: imgSimplex, local: local}

	if owner := b.domainImage[di]; owner == -1 {
		if b.imageOwner[imgSimplex] != -1 {
			return assignment{}, false
		}
		b.domainImage[di] = imgSimplex
		b.imageOwner[imgSimplex] = di
		a.forcedSimplex = true
	} else if owner != imgSimplex {
		return assignment{}, false
	}

	if b.localOwner[imgSimplex*b.k+local] != -1 {
		return assignment{}, false
	}

	b.localPerm[di*b.k+df] = int8(local)
	b.localOwner[imgSimplex*b.k+local] = int8(df)
	b.used[di*b.k+df] = true
	a.forcedDomainFacetUse = true

	return a, true
}

func (b *isoBuilder) undoAssign(a assignment) {
	di, df := int(a.x.Simplex), int(a.x.Facet)
	if a.forcedDomainFacetUse {
		b.used[di*b.k+df] = false
		b.localOwner[a.imgSimplex*b.k+a.local] = -1
		b.localPerm[di*b.k+df] = -1
	}
	if a.forcedSimplex {
		b.domainImage[di] = -1
		b.imageOwner[a.imgSimplex] = -1
	}
}

// toIsomorphism builds the Isomorphism recorded in b. Every domain facet
// must already have been assigned.
func (b *isoBuilder) toIsomorphism(dim int) Isomorphism {
	iso := Isomorphism{Dim: dim, N: b.n, SimplexImage: make([]int, b.n), FacetPerm: make([]Perm, b.n)}
	for di := 0; di < b.n; di++ {
		iso.SimplexImage[di] = b.domainImage[di]
		var p Perm
		p = IdentityPerm(b.k)
		for df := 0; df < b.k; df++ {
			p = setImage(p, df, int(b.localPerm[di*b.k+df]))
		}
		iso.FacetPerm[di] = p
	}
	return iso
}

// setImage returns a copy of p with p(i) replaced by img.
func setImage(p Perm, i, img int) Perm {
	p.img[i] = int8(img)
	return p
}

// refFunc supplies the reference pairing value to compare the
// in-progress candidate against at a given image slot. ok=false means
// "no constraint yet" (used by MakeCanonical's first, unconstrained pass).
type refFunc func(imgSimplex, local int) (ref FacetSpec, ok bool)

// onCompleteFunc is invoked whenever a candidate isomorphism is fully and
// consistently built. Returning stop=true ends the entire search
// immediately (used by the canonicity test's "not canonical" abort). The
// callback is responsible for any bookkeeping it needs, such as refreshing
// a mutable "best so far" reference (used by MakeCanonical).
type onCompleteFunc func(iso Isomorphism) (stop bool)

// searchIsomorphisms explores every way to build a complete relabelling of
// p's n simplices consistent with ref (or unconstrained, if ref reports
// ok=false), calling onComplete for each one found. It returns true if the
// search was aborted early by onComplete signalling stop.
//
// This is the shared engine behind both [FacetPairing.isCanonicalInternal]
// (ref = p itself, abort on finding a strictly smaller completion) and
// [FacetPairing.MakeCanonical] (ref = best found so far, refined in place).
func searchIsomorphisms(p *FacetPairing, ref refFunc, onComplete onCompleteFunc) (aborted bool) {
	n, k := p.N, p.Dim+1
	total := n * k
	b := newIsoBuilder(n, k)

	var recurse func(pos int) bool // returns true if the whole search should stop
	recurse = func(pos int) bool {
		if pos == total {
			return onComplete(b.toIsomorphism(p.Dim))
		}

		imgSimplex, local := pos/k, pos%k

		// Candidate domain facets for this slot.
		var candidates []FacetSpec
		if di := b.imageOwner[imgSimplex]; di != -1 {
			// The image simplex is already pinned to a domain simplex;
			// only its own unused facets are eligible.
			for df := 0; df < k; df++ {
				if !b.used[di*k+df] {
					candidates = append(candidates, FacetSpec{Simplex: int32(di), Facet: int8(df)})
				}
			}
		} else {
			// Fresh image simplex: try every not-yet-assigned domain
			// simplex's facets, in ascending FacetSpec order.
			for di := 0; di < n; di++ {
				if b.domainImage[di] != -1 {
					continue
				}
				for df := 0; df < k; df++ {
					candidates = append(candidates, FacetSpec{Simplex: int32(di), Facet: int8(df)})
				}
			}
		}

		refVal, hasRef := ref(imgSimplex, local)

		for _, x := range candidates {
			a, ok := b.tryAssign(x, imgSimplex, local)
			if !ok {
				continue
			}

			cmp, consistent := compareAgainstRef(p, b, x, refVal, hasRef)
			if !consistent {
				b.undoAssign(a)
				continue
			}

			if hasRef {
				if cmp < 0 {
					// Found a strictly smaller completion point; still
					// must finish the assignment consistently, but no
					// further comparisons are meaningful -- continue the
					// descent unconstrained until the remainder is filled.
					if recurseUnconstrained(b, p, pos+1, onComplete) {
						b.undoAssign(a)
						return true
					}
					b.undoAssign(a)
					continue
				}
				if cmp > 0 {
					b.undoAssign(a)
					continue
				}
			}

			if recurse(pos + 1) {
				b.undoAssign(a)
				return true
			}
			b.undoAssign(a)
		}

		return false
	}

	return recurse(0)
}

// recurseUnconstrained finishes a candidate that has already been proven
// strictly better than the reference, filling remaining slots with the
// first structurally consistent choice and skipping further comparisons.
func recurseUnconstrained(b *isoBuilder, p *FacetPairing, pos int, onComplete onCompleteFunc) bool {
	n, k := p.N, p.Dim+1
	total := n * k
	if pos == total {
		return onComplete(b.toIsomorphism(p.Dim))
	}

	imgSimplex, local := pos/k, pos%k

	var candidates []FacetSpec
	if di := b.imageOwner[imgSimplex]; di != -1 {
		for df := 0; df < k; df++ {
			if !b.used[di*k+df] {
				candidates = append(candidates, FacetSpec{Simplex: int32(di), Facet: int8(df)})
			}
		}
	} else {
		for di := 0; di < n; di++ {
			if b.domainImage[di] != -1 {
				continue
			}
			for df := 0; df < k; df++ {
				candidates = append(candidates, FacetSpec{Simplex: int32(di), Facet: int8(df)})
			}
		}
	}

	for _, x := range candidates {
		a, ok := b.tryAssign(x, imgSimplex, local)
		if !ok {
			continue
		}
		if recurseUnconstrained(b, p, pos+1, onComplete) {
			b.undoAssign(a)
			return true
		}
		b.undoAssign(a)
	}
	return false
}

// compareAgainstRef computes how the in-progress candidate's value at x's
// image slot compares to refVal (the fixed pairing's value at the same
// slot), forcing x's domain partner's eventual image when that is required
// for consistency. consistent=false means a contradiction was hit (the
// candidate cannot satisfy ref regardless of later choices); the caller
// must then discard this branch without treating it as a definitive
// canonicity verdict.
func compareAgainstRef(p *FacetPairing, b *isoBuilder, x FacetSpec, refVal FacetSpec, hasRef bool) (cmp int, consistent bool) {
	if !hasRef {
		return 0, true
	}

	domDest := p.Dest(x)
	domBoundary := IsBoundary(domDest, p.N)
	refBoundary := IsBoundary(refVal, p.N)

	switch {
	case domBoundary && refBoundary:
		return 0, true
	case domBoundary && !refBoundary:
		// the image of a boundary facet is always itself the boundary
		// sentinel, which this package represents with Simplex==N, the
		// largest possible value -- strictly greater than any real facet.
		return 1, true
	case !domBoundary && refBoundary:
		return -1, true
	}

	// Both matched: force domDest's eventual image to equal refVal, or
	// confirm it already does.
	dj, df2 := int(domDest.Simplex), int(domDest.Facet)

	if owner := b.domainImage[dj]; owner != -1 {
		if owner != int(refVal.Simplex) {
			return 0, false
		}
		if existing := b.localPerm[dj*b.k+df2]; existing != -1 {
			if int(existing) != int(refVal.Facet) {
				return 0, false
			}
			return 0, true
		}
		if b.localOwner[int(refVal.Simplex)*b.k+int(refVal.Facet)] != -1 {
			return 0, false
		}
		// force facetPerm[dj](df2) = refVal.Facet
		b.localPerm[dj*b.k+df2] = int8(refVal.Facet)
		b.localOwner[int(refVal.Simplex)*b.k+int(refVal.Facet)] = int8(df2)
		b.used[dj*b.k+df2] = true
		return 0, true
	}

	if b.imageOwner[refVal.Simplex] != -1 {
		return 0, false
	}
	b.domainImage[dj] = int(refVal.Simplex)
	b.imageOwner[refVal.Simplex] = dj
	b.localPerm[dj*b.k+df2] = int8(refVal.Facet)
	b.localOwner[int(refVal.Simplex)*b.k+int(refVal.Facet)] = int8(df2)
	b.used[dj*b.k+df2] = true
	return 0, true
}

// IsCanonical reports whether p is the lexicographically smallest pairing
// in its isomorphism orbit, and if so also returns its full automorphism
// group (every isomorphism g with g(p) == p, including the identity).
//
// This mirrors the "trying every facet x in lex order" / "auto-fill the
// partner's image" / compare-and-prune construction described for facet
// pairing canonicity: candidate isomorphisms are built one image facet at a
// time in ascending order, comparing the partial image against p itself at
// each step so a strictly smaller completion can abort the whole search
// immediately, and a strictly larger one can be abandoned without
// affecting the verdict.
func (p *FacetPairing) IsCanonical() (bool, []Isomorphism) {
	var autos []Isomorphism
	ref := func(imgSimplex, local int) (FacetSpec, bool) {
		return p.DestAt(imgSimplex, local), true
	}
	aborted := searchIsomorphisms(p, ref, func(iso Isomorphism) bool {
		autos = append(autos, iso)
		return false
	})
	if aborted {
		return false, nil
	}
	return true, autos
}

// activeSimplices partitions p's simplices into those with at least one
// matched facet ("active") and those entirely on the boundary
// ("isolated"). Isolated simplices carry no gluing data at all, so any
// relabelling among themselves yields an identical text representation;
// MakeCanonical places them after every active simplex without having to
// search over their relative order.
func (p *FacetPairing) activeSimplices() (active []int, isolated []int) {
	for s := 0; s < p.N; s++ {
		allBoundary := true
		for f := 0; f <= p.Dim; f++ {
			if !p.IsUnmatched(FacetSpec{Simplex: int32(s), Facet: int8(f)}) {
				allBoundary = false
				break
			}
		}
		if allBoundary {
			isolated = append(isolated, s)
		} else {
			active = append(active, s)
		}
	}
	return active, isolated
}

// restrict returns the sub-pairing on the given simplex subset (which must
// be closed under Dest, i.e. no facet of a subset member may point to a
// simplex outside the subset), renumbered 0..len(subset)-1 in subset order.
func (p *FacetPairing) restrict(subset []int) *FacetPairing {
	index := make(map[int]int, len(subset))
	for i, s := range subset {
		index[s] = i
	}
	out := NewFacetPairing(p.Dim, len(subset))
	for i, s := range subset {
		for f := 0; f <= p.Dim; f++ {
			x := FacetSpec{Simplex: int32(s), Facet: int8(f)}
			ix := FacetSpec{Simplex: int32(i), Facet: int8(f)}
			if out.isSelf(out.Dest(ix)) {
				d := p.Dest(x)
				if IsBoundary(d, p.N) {
					out.Set(ix, Boundary(len(subset)))
				} else {
					out.Set(ix, FacetSpec{Simplex: int32(index[int(d.Simplex)]), Facet: d.Facet})
				}
			}
		}
	}
	return out
}

// MakeCanonical returns the isomorphism carrying p to the lexicographically
// smallest pairing in its orbit, together with the number of simplices at
// the tail of that image which are entirely isolated (all facets on the
// boundary). Isolated simplices are always placed after every active one.
func (p *FacetPairing) MakeCanonical() (Isomorphism, int) {
	active, isolated := p.activeSimplices()
	if len(active) == 0 {
		return IdentityIsomorphism(p.Dim, p.N), len(isolated)
	}

	sub := p.restrict(active)

	// Phase 1: an arbitrary, cheap, fully consistent relabelling of the
	// active sub-pairing, used only to seed the comparison search below.
	seed := firstConsistentIsomorphism(sub)

	// Phase 2: refine seed into the true minimum. A candidate that proves
	// strictly smaller than the current seed updates it in place; thanks
	// to transitivity of "<" this single pass still finds the global
	// minimum even though later comparisons may run against an already
	// -improved seed (a branch pruned against an older, larger reference
	// remains correctly pruned against any smaller one found since).
	best := seed
	bestQ := seed.ApplyPairing(sub)
	ref := func(imgSimplex, local int) (FacetSpec, bool) {
		return bestQ.DestAt(imgSimplex, local), true
	}
	searchIsomorphisms(sub, ref, func(iso Isomorphism) bool {
		q := iso.ApplyPairing(sub)
		if comparePairings(q, bestQ) < 0 {
			best = iso
			bestQ = q
		}
		return false
	})

	// Stitch the active-only isomorphism back together with the isolated
	// simplices, appended identically ordered at the tail.
	full := Isomorphism{
		Dim:          p.Dim,
		N:            p.N,
		SimplexImage: make([]int, p.N),
		FacetPerm:    make([]Perm, p.N),
	}
	for i, s := range active {
		full.SimplexImage[s] = best.SimplexImage[i]
		full.FacetPerm[s] = best.FacetPerm[i]
	}
	for j, s := range isolated {
		full.SimplexImage[s] = len(active) + j
		full.FacetPerm[s] = IdentityPerm(p.Dim + 1)
	}
	return full, len(isolated)
}

// firstConsistentIsomorphism returns the first complete isomorphism found
// by an unconstrained search, used to seed [FacetPairing.MakeCanonical].
func firstConsistentIsomorphism(p *FacetPairing) Isomorphism {
	var result Isomorphism
	noRef := func(int, int) (FacetSpec, bool) { return FacetSpec{}, false }
	searchIsomorphisms(p, noRef, func(iso Isomorphism) bool {
		result = iso
		return true
	})
	return result
}

// comparePairings orders two same-shaped pairings by their flattened
// facet destinations in FacetSpec order, the same order MakeCanonical and
// IsCanonical compare against.
func comparePairings(a, b *FacetPairing) int {
	for s := 0; s < a.N; s++ {
		for f := 0; f <= a.Dim; f++ {
			da, db := a.DestAt(s, f), b.DestAt(s, f)
			if c := da.Compare(db); c != 0 {
				return c
			}
		}
	}
	return 0
}
