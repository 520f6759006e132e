// Copyright (c) 2026 The tricensus Authors
// SPDX-License-Identifier: MIT

package census

// FacetGluing names the facet a gluing leads to: facet Facet of simplex
// Simplex, together with the vertex permutation carrying the current
// simplex's vertices onto that facet's vertices.
type FacetGluing struct {
	Simplex int
	Facet   int
	Perm    Perm
}

// Simplex is one top-dimensional simplex of a triangulation: a gluing (or
// nil, for a boundary facet) for each of its Dim+1 facets.
type Simplex struct {
	Gluing []*FacetGluing
}

// Triangulation is a full gluing of simplices: a [FacetPairing] (which
// facet meets which) together with, for every gluing, the vertex
// permutation identifying the two facets. The census pipeline builds one
// from each facet pairing and [GluingPerms] assignment that
// [GluingPermSearcher] reports (see [Triangulate]).
type Triangulation struct {
	Dim       int
	Simplices []Simplex
}

// NewTriangulation allocates a triangulation of n simplices of the given
// dimension, every facet initially a boundary facet.
func NewTriangulation(dim, n int) *Triangulation {
	t := &Triangulation{Dim: dim, Simplices: make([]Simplex, n)}
	for i := range t.Simplices {
		t.Simplices[i].Gluing = make([]*FacetGluing, dim+1)
	}
	return t
}

// Glue joins facet f of simplex s to facet f2 of simplex s2 via perm,
// and sets the symmetric gluing back from s2 to s using perm's inverse.
func (t *Triangulation) Glue(s, f, s2, f2 int, perm Perm) {
	t.Simplices[s].Gluing[f] = &FacetGluing{Simplex: s2, Facet: f2, Perm: perm}
	t.Simplices[s2].Gluing[f2] = &FacetGluing{Simplex: s, Facet: f, Perm: perm.Inverse()}
}

// Triangulate builds the triangulation described by a facet pairing and a
// compatible gluing-permutation assignment: every matched facet in p
// becomes a gluing carrying the corresponding permutation from gp.
func Triangulate(p *FacetPairing, gp *GluingPerms) *Triangulation {
	t := NewTriangulation(p.Dim, p.N)
	for s := 0; s < p.N; s++ {
		for f := 0; f <= p.Dim; f++ {
			x := FacetSpec{Simplex: int32(s), Facet: int8(f)}
			if p.IsUnmatched(x) {
				continue
			}
			if t.Simplices[s].Gluing[f] != nil {
				continue // already filled in from the symmetric side
			}
			dest := p.Dest(x)
			perm := gp.Perm(s, f)
			t.Glue(s, f, int(dest.Simplex), int(dest.Facet), perm)
		}
	}
	return t
}

// IsClosed reports whether every facet of every simplex is glued to
// another facet, i.e. the triangulation has empty boundary.
func (t *Triangulation) IsClosed() bool {
	for _, s := range t.Simplices {
		for _, g := range s.Gluing {
			if g == nil {
				return false
			}
		}
	}
	return true
}

// vertexStep is one (simplex, local vertex) position visited by the walk
// [Triangulation.EdgesAroundVertex] performs, which in turn underlies the
// ideal-vertex check in [Triangulation.HasIdealVertices].
type vertexStep struct {
	simplex, vertex int
}

// EdgesAroundVertex enumerates every simplex/vertex pair identified with
// (startSimplex, startVertex) by the gluings, together with whether the
// walk closed into a loop (true) or hit the boundary (false).
func (t *Triangulation) EdgesAroundVertex(startSimplex, startVertex int) ([]vertexStep, bool) {
	visited := map[vertexStep]bool{}
	var order []vertexStep
	cur := vertexStep{startSimplex, startVertex}
	for !visited[cur] {
		visited[cur] = true
		order = append(order, cur)

		s := t.Simplices[cur.simplex]
		var next vertexStep
		found := false
		for f := 0; f <= t.Dim; f++ {
			if f == cur.vertex {
				continue // facet opposite this vertex does not touch it
			}
			g := s.Gluing[f]
			if g == nil {
				return order, false
			}
			next = vertexStep{g.Simplex, g.Perm.Image(cur.vertex)}
			found = true
			break
		}
		if !found {
			return order, false
		}
		cur = next
	}
	return order, true
}

// IsOrientable reports whether a consistent global orientation of every
// simplex (an alternating +1/-1 sign) exists such that every gluing
// permutation is orientation-reversing between the two simplices it joins,
// via a flood fill that propagates the sign outward from simplex 0 across
// the dual graph.
func (t *Triangulation) IsOrientable() bool {
	n := len(t.Simplices)
	if n == 0 {
		return true
	}
	orientation := make([]int8, n)
	for i := range orientation {
		orientation[i] = 0
	}
	orientation[0] = 1

	queue := []int{0}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for f := 0; f <= t.Dim; f++ {
			g := t.Simplices[s].Gluing[f]
			if g == nil {
				continue
			}
			want := -orientation[s]
			if g.Perm.Sign() > 0 {
				// An even (orientation-preserving) vertex permutation
				// flips the sign requirement relative to an odd one.
				want = orientation[s]
			}
			if orientation[g.Simplex] == 0 {
				orientation[g.Simplex] = want
				queue = append(queue, g.Simplex)
			} else if orientation[g.Simplex] != want {
				return false
			}
		}
	}
	return true
}

// HasIdealVertices reports whether any vertex link fails to close into a
// single combinatorial sphere boundary -- i.e. the walk computed by
// EdgesAroundVertex visits a vertex more than once without covering every
// incident simplex, which for d in {3,4} signals an ideal (non-manifold or
// higher-genus) vertex. Closed boundary-complex triangulations with every
// vertex link closing after exactly as many steps as there are incident
// simplices are finite and ideal-vertex-free.
func (t *Triangulation) HasIdealVertices() bool {
	if t.Dim < 3 {
		return false
	}
	seen := map[vertexStep]bool{}
	for s := range t.Simplices {
		for v := 0; v <= t.Dim; v++ {
			start := vertexStep{s, v}
			if seen[start] {
				continue
			}
			order, closed := t.EdgesAroundVertex(s, v)
			for _, step := range order {
				seen[step] = true
			}
			if !closed {
				return true
			}
		}
	}
	return false
}
