package fec

import (
	"fmt"

	"github.com/rmcast/rsfec/gf256"
)

// DecodeInline reconstructs erased source blocks from a group whose n
// blocks live in one slice indexed directly by logical position: source
// blocks at 0..k-1, parity blocks at k..n-1. present[p] reports whether
// the block at position p survived.
//
// Reconstructed bytes are written in place into the source slots marked
// absent; every other buffer is left untouched. All supplied buffers,
// including the absent source slots that receive recovered data, must
// share one length.
func (c *Code) DecodeInline(blocks [][]byte, present []bool) error {
	if len(blocks) != c.n || len(present) != c.n {
		return fmt.Errorf("%w: %d blocks and %d flags, want %d of each",
			ErrLengthMismatch, len(blocks), len(present), c.n)
	}
	return c.decode(func(pos int) []byte { return blocks[pos] }, present)
}

// DecodeAppended is DecodeInline for the split buffer layout: the k
// source blocks and the n-k parity blocks live in two separate regions,
// so logical position p >= k maps to parity[p-k]. present is still
// indexed by logical position 0..n-1.
//
// Given logically identical blocks and presence map, DecodeAppended and
// DecodeInline produce byte-identical recovered output; the appended
// form exists to support zero-copy receive layouts.
func (c *Code) DecodeAppended(source, parity [][]byte, present []bool) error {
	if len(source) != c.k || len(parity) != c.n-c.k || len(present) != c.n {
		return fmt.Errorf("%w: %d source and %d parity blocks with %d flags, want %d, %d, %d",
			ErrLengthMismatch, len(source), len(parity), len(present), c.k, c.n-c.k, c.n)
	}
	return c.decode(func(pos int) []byte {
		if pos < c.k {
			return source[pos]
		}
		return parity[pos-c.k]
	}, present)
}

// decode runs the shared reconstruction algorithm over an accessor that
// maps logical positions onto caller storage.
func (c *Code) decode(block func(pos int) []byte, present []bool) error {
	// Erased source positions, and surviving parity rows to stand in for
	// them, lowest parity indices first.
	var erased, spares []int
	for p := 0; p < c.k; p++ {
		if !present[p] {
			erased = append(erased, p)
		}
	}
	if len(erased) == 0 {
		return nil
	}
	for p := c.k; p < c.n && len(spares) < len(erased); p++ {
		if present[p] {
			spares = append(spares, p)
		}
	}
	if len(spares) < len(erased) {
		return fmt.Errorf("%w: %d erased source blocks, %d surviving parity blocks",
			ErrUnrecoverable, len(erased), countPresent(present[c.k:]))
	}

	// Every block we will read or write must share one length.
	length := len(block(spares[0]))
	for p := 0; p < c.n; p++ {
		if p < c.k && !present[p] {
			if len(block(p)) != length {
				return fmt.Errorf("%w: erased slot %d holds %d bytes, want %d",
					ErrLengthMismatch, p, len(block(p)), length)
			}
			continue
		}
		if present[p] && len(block(p)) != length {
			return fmt.Errorf("%w: block %d has %d bytes, want %d",
				ErrLengthMismatch, p, len(block(p)), length)
		}
	}

	// The decoding matrix keeps the identity row for every surviving
	// source position and substitutes a surviving parity row for each
	// erased one. rows[p] names the generator matrix row, and with it
	// the block, standing at position p.
	rows := make([]int, c.k)
	next := 0
	for p := 0; p < c.k; p++ {
		if present[p] {
			rows[p] = p
		} else {
			rows[p] = spares[next]
			next++
		}
	}

	inv, err := c.inverse(rows)
	if err != nil {
		return err
	}

	// Each erased source block is the matching inverse row multiplied
	// against the vector of surviving blocks, byte position by byte
	// position. Only present positions are read, so writing into the
	// erased slots is safe.
	for _, e := range erased {
		out := block(e)
		for i := range out {
			out[i] = 0
		}
		for i := 0; i < c.k; i++ {
			gf256.MulSlice(out, block(rows[i]), inv[e][i])
		}
	}
	return nil
}

func countPresent(present []bool) int {
	n := 0
	for _, ok := range present {
		if ok {
			n++
		}
	}
	return n
}
