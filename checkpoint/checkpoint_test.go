// Copyright (c) 2026 The tricensus Authors
// SPDX-License-Identifier: MIT

package checkpoint

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrips(t *testing.T) {
	state := State{
		Dim:         3,
		N:           5,
		NextLabel:   17,
		Depth:       4,
		PairingText: "0 1 1 0 2 0 2 1",
		GluingText:  "g 3 -1 -1 -1",
		PermIndices: []uint32{0, 5, 11, 23, 0, 2},
		PermModulus: 24,
		OrientSigns: []uint32{1, 1, 1, 2, 2, 0},
	}

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, state))

	got, err := Load(&buf)
	require.NoError(t, err)

	assert.Equal(t, state.Dim, got.Dim)
	assert.Equal(t, state.N, got.N)
	assert.Equal(t, state.NextLabel, got.NextLabel)
	assert.Equal(t, state.Depth, got.Depth)
	assert.Equal(t, state.PairingText, got.PairingText)
	assert.Equal(t, state.GluingText, got.GluingText)
	assert.Equal(t, state.PermIndices, got.PermIndices)
	assert.Equal(t, state.OrientSigns, got.OrientSigns)
}

func TestLoadRejectsCorruptedChecksum(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, State{Dim: 2, N: 1}))

	corrupted := buf.Bytes()
	corrupted[0] ^= 0xFF

	_, err := Load(bytes.NewReader(corrupted))
	require.Error(t, err)
}

func TestBitsFor(t *testing.T) {
	cases := map[int]uint8{1: 1, 2: 1, 3: 2, 4: 2, 6: 3, 24: 5, 120: 7}
	for modulus, want := range cases {
		assert.Equalf(t, want, bitsFor(modulus), "bitsFor(%d)", modulus)
	}
}
