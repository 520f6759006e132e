// Copyright (c) 2026 The tricensus Authors
// SPDX-License-Identifier: MIT

// Package checkpoint implements a resumable binary snapshot format for an
// in-progress census job: which facet pairing is under search, how far the
// gluing-permutation search has advanced, and enough of its state to pick
// up again without re-deriving it from scratch.
package checkpoint

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/icza/bitio"
	"github.com/ronanh/intcomp"
	"golang.org/x/crypto/blake2b"
)

// State is a resumable snapshot of one in-progress census job.
type State struct {
	Dim, N    int
	NextLabel int
	Depth     int

	// PairingText/GluingText are the current facet pairing and partial
	// gluing-permutation assignment, in the same formats ToTextRep and
	// GluingPerms.DumpData produce.
	PairingText string
	GluingText  string

	// PermIndices are the gluing-permutation ranks assigned so far, one
	// per matched facet pair in the searcher's own pair order, each in
	// [0, PermModulus). Bit-packed to ceil(log2(PermModulus)) bits a
	// value rather than stored as full machine words, since most
	// dimensions need only a handful of bits per gluing.
	PermIndices []uint32
	PermModulus int

	// OrientSigns is the partial per-simplex orientation array (0/1/2
	// standing in for unknown/-1/+1), integer-compressed since it is
	// mostly long runs of the same value.
	OrientSigns []uint32
}

// envelope is the on-disk shape: State with its two large arrays already
// packed down, wrapped for CBOR encoding.
type envelope struct {
	Dim, N       int
	NextLabel    int
	Depth        int
	PairingText  string
	GluingText   string
	PermModulus  int
	PermCount    int
	PackedPerms  []byte
	OrientCount  int
	PackedOrient []uint32
}

// Save writes a CBOR-encoded, blake2b-checksummed envelope of state to w.
// The checksum precedes the body so Load can verify it before attempting
// to decode anything.
func Save(w io.Writer, state State) error {
	packedPerms, err := packPerms(state.PermIndices, state.PermModulus)
	if err != nil {
		return fmt.Errorf("checkpoint: Save: %w", err)
	}
	env := envelope{
		Dim:          state.Dim,
		N:            state.N,
		NextLabel:    state.NextLabel,
		Depth:        state.Depth,
		PairingText:  state.PairingText,
		GluingText:   state.GluingText,
		PermModulus:  state.PermModulus,
		PermCount:    len(state.PermIndices),
		PackedPerms:  packedPerms,
		OrientCount:  len(state.OrientSigns),
		PackedOrient: intcomp.CompressUint32(append([]uint32(nil), state.OrientSigns...), nil),
	}

	body, err := cbor.Marshal(env)
	if err != nil {
		return fmt.Errorf("checkpoint: Save: encode: %w", err)
	}
	sum := blake2b.Sum256(body)
	if _, err := w.Write(sum[:]); err != nil {
		return fmt.Errorf("checkpoint: Save: write checksum: %w", err)
	}
	_, err = w.Write(body)
	return err
}

// Load reads back an envelope written by Save, verifying its checksum
// before decoding.
func Load(r io.Reader) (State, error) {
	var sum [32]byte
	if _, err := io.ReadFull(r, sum[:]); err != nil {
		return State{}, fmt.Errorf("checkpoint: Load: read checksum: %w", err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return State{}, fmt.Errorf("checkpoint: Load: read body: %w", err)
	}
	if got := blake2b.Sum256(body); got != sum {
		return State{}, fmt.Errorf("checkpoint: Load: checksum mismatch, file is corrupt")
	}

	var env envelope
	if err := cbor.Unmarshal(body, &env); err != nil {
		return State{}, fmt.Errorf("checkpoint: Load: decode: %w", err)
	}
	perms, err := unpackPerms(env.PackedPerms, env.PermModulus, env.PermCount)
	if err != nil {
		return State{}, fmt.Errorf("checkpoint: Load: %w", err)
	}
	orient := intcomp.UncompressUint32(env.PackedOrient, make([]uint32, 0, env.OrientCount))

	return State{
		Dim:         env.Dim,
		N:           env.N,
		NextLabel:   env.NextLabel,
		Depth:       env.Depth,
		PairingText: env.PairingText,
		GluingText:  env.GluingText,
		PermIndices: perms,
		PermModulus: env.PermModulus,
		OrientSigns: orient,
	}, nil
}

// bitsFor returns the number of bits needed to represent any value in
// [0, modulus).
func bitsFor(modulus int) uint8 {
	if modulus <= 1 {
		return 1
	}
	n := modulus - 1
	var bits uint8
	for n > 0 {
		bits++
		n >>= 1
	}
	return bits
}

func packPerms(vals []uint32, modulus int) ([]byte, error) {
	if modulus <= 0 {
		modulus = 1
	}
	bits := bitsFor(modulus)
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	for _, v := range vals {
		if err := bw.WriteBits(uint64(v), bits); err != nil {
			return nil, fmt.Errorf("pack gluing-permutation ranks: %w", err)
		}
	}
	if err := bw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func unpackPerms(data []byte, modulus, count int) ([]uint32, error) {
	if count == 0 {
		return nil, nil
	}
	if modulus <= 0 {
		modulus = 1
	}
	bits := bitsFor(modulus)
	br := bitio.NewReader(bytes.NewReader(data))
	out := make([]uint32, count)
	for i := range out {
		v, err := br.ReadBits(bits)
		if err != nil {
			return nil, fmt.Errorf("unpack gluing-permutation ranks: %w", err)
		}
		out[i] = uint32(v)
	}
	return out, nil
}
