// Copyright (c) 2026 The tricensus Authors
// SPDX-License-Identifier: MIT

package census

import (
	"fmt"

	"github.com/tricensus/census/internal/permtables"
)

// maxK is the largest (d+1) the Perm primitive supports. The census driver
// only exposes d in {2,3,4}, i.e. k in {3,4,5}, but the primitive itself
// works for any k <= maxK.
const maxK = permtables.MaxK

// Perm is a permutation of {0,...,k-1}, the vertex-relabelling half of a
// gluing. It is a small value type: compose, inverse, and comparison never
// allocate, sizing its backing array for the worst case ([5]int8) rather
// than growing it dynamically.
type Perm struct {
	k   int
	img permtables.Images
}

// IdentityPerm returns the identity permutation of {0,...,k-1}.
func IdentityPerm(k int) Perm {
	var p Perm
	p.k = k
	for i := 0; i < k; i++ {
		p.img[i] = int8(i)
	}
	return p
}

// PermFromIndex returns the index-th permutation of {0,...,k-1} in
// lexicographic order of its image sequence, where index is in [0, k!).
func PermFromIndex(k, index int) Perm {
	tbl := permtables.For(k)
	var p Perm
	p.k = k
	p.img = tbl.Perm[index]
	return p
}

// PermFromTranspositionPair builds the k=2 permutation taking a -> a2 and
// b -> b2, the subgroup element used to tie two matched facets' vertex
// correspondence together when only a single vertex pair is known.
func PermFromTranspositionPair(a, a2, b, b2 int) Perm {
	var p Perm
	p.k = 2
	if a == 0 {
		p.img[0], p.img[1] = int8(a2), int8(b2)
	} else {
		p.img[0], p.img[1] = int8(b2), int8(a2)
	}
	return p
}

// K returns the size of the set this permutation acts on.
func (p Perm) K() int { return p.k }

// Image returns the image of i under p.
func (p Perm) Image(i int) int { return int(p.img[i]) }

// Compose returns p composed with q, i.e. the permutation x -> p(q(x)).
func (p Perm) Compose(q Perm) Perm {
	if p.k != q.k {
		panic("census: Compose of permutations with different k")
	}
	var r Perm
	r.k = p.k
	for i := 0; i < p.k; i++ {
		r.img[i] = p.img[q.img[i]]
	}
	return r
}

// Inverse returns the inverse permutation.
func (p Perm) Inverse() Perm {
	var r Perm
	r.k = p.k
	for i := 0; i < p.k; i++ {
		r.img[p.img[i]] = int8(i)
	}
	return r
}

// Compare returns -1, 0, or +1 as p is lexicographically less than, equal
// to, or greater than q, comparing image sequences.
func (p Perm) Compare(q Perm) int {
	for i := 0; i < p.k; i++ {
		if p.img[i] != q.img[i] {
			if p.img[i] < q.img[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Equal reports whether p and q are the same permutation.
func (p Perm) Equal(q Perm) bool { return p.Compare(q) == 0 }

// Index returns p's rank among all k! permutations of {0,...,k-1} in
// lexicographic order, the inverse of [PermFromIndex].
func (p Perm) Index() int {
	tbl := permtables.For(p.k)
	// binary search since tbl.Perm is sorted by the same Compare order
	lo, hi := 0, len(tbl.Perm)
	for lo < hi {
		mid := (lo + hi) / 2
		c := compareImages(tbl.Perm[mid][:p.k], p.img[:p.k])
		if c == 0 {
			return mid
		} else if c < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	panic("census: Perm.Index: permutation not found in table")
}

func compareImages(a, b []int8) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Sign returns +1 for an even permutation, -1 for an odd one.
func (p Perm) Sign() int {
	seen := make([]bool, p.k)
	s := 1
	for i := 0; i < p.k; i++ {
		if seen[i] {
			continue
		}
		clen := 0
		for j := i; !seen[j]; j = int(p.img[j]) {
			seen[j] = true
			clen++
		}
		if clen%2 == 0 {
			s = -s
		}
	}
	return s
}

func (p Perm) String() string {
	s := make([]byte, 0, p.k*2)
	for i := 0; i < p.k; i++ {
		if i > 0 {
			s = append(s, ' ')
		}
		s = append(s, []byte(fmt.Sprintf("%d", p.img[i]))...)
	}
	return string(s)
}
