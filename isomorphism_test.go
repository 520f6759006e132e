// Copyright (c) 2026 The tricensus Authors
// SPDX-License-Identifier: MIT

package census

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func permCmpOpt() cmp.Option {
	return cmp.AllowUnexported(Perm{})
}

func TestIsomorphismInverseRoundTrips(t *testing.T) {
	iso := Isomorphism{
		Dim:          2,
		N:            3,
		SimplexImage: []int{2, 0, 1},
		FacetPerm: []Perm{
			PermFromIndex(3, 1),
			PermFromIndex(3, 4),
			IdentityPerm(3),
		},
	}

	got := iso.Inverse().Inverse()
	if diff := cmp.Diff(iso, got, permCmpOpt()); diff != "" {
		t.Fatalf("Inverse is not its own involution (-want +got):\n%s", diff)
	}
}

func TestIsomorphismComposeWithInverseIsIdentity(t *testing.T) {
	iso := Isomorphism{
		Dim:          2,
		N:            3,
		SimplexImage: []int{1, 2, 0},
		FacetPerm: []Perm{
			PermFromIndex(3, 2),
			PermFromIndex(3, 3),
			PermFromIndex(3, 5),
		},
	}

	got := iso.Compose(iso.Inverse())
	want := IdentityIsomorphism(iso.Dim, iso.N)
	if diff := cmp.Diff(want, got, permCmpOpt()); diff != "" {
		t.Fatalf("Compose(iso, iso.Inverse()) != identity (-want +got):\n%s", diff)
	}
}

func TestApplyPairingRoundTripsThroughInverse(t *testing.T) {
	p := NewFacetPairing(2, 2)
	p.Set(FacetSpec{Simplex: 0, Facet: 0}, FacetSpec{Simplex: 1, Facet: 1})

	iso := Isomorphism{
		Dim:          2,
		N:            2,
		SimplexImage: []int{1, 0},
		FacetPerm:    []Perm{PermFromIndex(3, 0), PermFromIndex(3, 0)},
	}

	q := iso.ApplyPairing(p)
	back := iso.Inverse().ApplyPairing(q)
	if !back.Equal(p) {
		t.Fatalf("ApplyPairing(Inverse, ApplyPairing(iso, p)) != p: got %v, want %v", back, p)
	}
}
