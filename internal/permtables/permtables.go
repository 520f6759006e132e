// Package permtables precomputes, once per dimension, the full list of
// (d+1)! permutations used to label gluings between facets and the
// traversal order [GluingPermSearcher] steps through when assigning a
// gluing permutation.
//
// Tables are small, sized for the worst case and indexed directly rather
// than recomputed, built once behind a sync.Once and immutable thereafter.
package permtables

import "sync"

// MaxK is the largest (d+1) this repository supports: the census driver
// goes up to d = 4, so k <= 5.
const MaxK = 5

// Images is a permutation image list: Images[i] is the image of vertex i.
type Images [MaxK]int8

// Table holds, for one k = d+1, every permutation of {0,...,k-1} in
// lexicographic order of its image sequence, indexed by its rank.
type Table struct {
	K    int
	Perm []Images // len == K!
	// Orientable is the subgroup of even permutations, in the same
	// lexicographic order. The census search does not read it; it steps
	// through every rank of Perm and tracks orientation by Perm.Sign.
	Orientable []Images
}

var (
	once   sync.Once
	tables [MaxK + 1]*Table // indexed by k
)

func factorial(n int) int {
	r := 1
	for i := 2; i <= n; i++ {
		r *= i
	}
	return r
}

// sign returns +1 for an even permutation, -1 for odd.
func sign(img []int8) int {
	seen := make([]bool, len(img))
	s := 1
	for i := range img {
		if seen[i] {
			continue
		}
		clen := 0
		for j := i; !seen[j]; j = int(img[j]) {
			seen[j] = true
			clen++
		}
		if clen%2 == 0 {
			s = -s
		}
	}
	return s
}

func build(k int) *Table {
	n := factorial(k)
	all := make([]Images, 0, n)

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	var permute func(prefix []int8, remaining []int)
	permute = func(prefix []int8, remaining []int) {
		if len(remaining) == 0 {
			var img Images
			copy(img[:], prefix)
			all = append(all, img)
			return
		}
		for i, v := range remaining {
			rest := make([]int, 0, len(remaining)-1)
			rest = append(rest, remaining[:i]...)
			rest = append(rest, remaining[i+1:]...)
			permute(append(append([]int8{}, prefix...), int8(v)), rest)
		}
	}
	permute(nil, idx)

	orientable := make([]Images, 0, n/2+1)
	for _, img := range all {
		if sign(img[:k]) > 0 {
			orientable = append(orientable, img)
		}
	}

	return &Table{K: k, Perm: all, Orientable: orientable}
}

// For returns the immutable permutation table for k = d+1, building the full
// MaxK set of tables on first use.
func For(k int) *Table {
	once.Do(func() {
		for i := 1; i <= MaxK; i++ {
			tables[i] = build(i)
		}
	})
	return tables[k]
}
