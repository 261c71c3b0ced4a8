// Package fec implements a systematic Reed-Solomon erasure codec over
// GF(2^8), built for reliable multicast transports that recover lost
// packets without retransmission. The transport hands the codec k source
// blocks per group and transmits the returned parity blocks alongside
// them; on the receive side it hands back whichever blocks survived,
// together with a presence map derived from its sequence-gap tracking,
// and the codec reconstructs the missing source blocks in place.
//
// The codec owns no wire format; block boundaries, framing, and loss
// detection belong to the transport.
package fec

import (
	"errors"
	"fmt"
	"sync"

	logging "github.com/ipfs/go-log/v2"

	"github.com/rmcast/rsfec/gf256"
)

var log = logging.Logger("fec")

var (
	// ErrInvalidParameters indicates an unusable (n, k) pair.
	ErrInvalidParameters = errors.New("fec: invalid code parameters")
	// ErrInvalidIndex indicates a parity index outside [k, n-1].
	ErrInvalidIndex = errors.New("fec: parity index out of range")
	// ErrInvalidLength indicates inconsistent block lengths on encode.
	ErrInvalidLength = errors.New("fec: source block lengths differ")
	// ErrLengthMismatch indicates inconsistent block lengths on decode.
	ErrLengthMismatch = errors.New("fec: block length mismatch")
	// ErrUnrecoverable indicates more erased source blocks than surviving
	// parity blocks. This is an expected network condition; the transport
	// falls back to retransmission.
	ErrUnrecoverable = errors.New("fec: too many erased blocks to recover")
	// ErrSingularMatrix indicates a non-invertible decoding matrix. It
	// cannot occur for a validly constructed code and a valid erasure
	// count; treat it as an internal-invariant violation, not a network
	// condition.
	ErrSingularMatrix = errors.New("fec: singular decoding matrix")
)

// MaxShards is the largest supported total block count. GF(2^8) has only
// 255 nonzero elements, which bounds the number of distinct Vandermonde
// evaluation points.
const MaxShards = 255

// maxCachedInverses bounds the per-code decoding matrix cache. One entry
// per distinct erasure pattern; steady packet loss tends to repeat a
// handful of patterns.
const maxCachedInverses = 64

// Code is an immutable descriptor for one RS(n, k) erasure code: n total
// blocks per group, of which k carry source data and n-k carry parity.
//
// A Code is created once per transport session. Encode and the two
// decode entry points are pure functions over it and may be called
// concurrently from multiple goroutines.
type Code struct {
	n, k int

	// gm is the systematic n×k generator matrix: rows 0..k-1 are the
	// identity, rows k..n-1 carry the parity coefficients.
	gm [][]byte

	mu    sync.RWMutex
	cache map[string][][]byte // decoding matrix inverses by erasure pattern
}

// New builds the descriptor for an RS(n, k) code. It returns
// ErrInvalidParameters unless 2 <= k <= n <= MaxShards.
//
// The generator matrix starts as an n×k Vandermonde matrix over distinct
// nonzero evaluation points and is brought to systematic form by
// left-multiplying with the inverse of its own top k×k block, so that
// encoding leaves source blocks unmodified.
func New(n, k int) (*Code, error) {
	if k < 2 || n < k || n > MaxShards {
		return nil, fmt.Errorf("%w: rs(%d, %d)", ErrInvalidParameters, n, k)
	}

	vm := gf256.Vandermonde(n, k)
	top, err := gf256.InvertMatrix(vm[:k])
	if err != nil {
		// The top block of a Vandermonde matrix over distinct points is
		// always invertible.
		return nil, fmt.Errorf("%w: vandermonde top block", ErrSingularMatrix)
	}
	gm := gf256.MatrixMultiply(vm, top)

	log.Debugf("created rs(%d, %d) code", n, k)
	return &Code{
		n:     n,
		k:     k,
		gm:    gm,
		cache: make(map[string][][]byte),
	}, nil
}

// N returns the total number of blocks per group.
func (c *Code) N() int { return c.n }

// K returns the number of source blocks per group.
func (c *Code) K() int { return c.k }

// ParityShards returns the number of parity blocks per group.
func (c *Code) ParityShards() int { return c.n - c.k }

// Encode computes the parity block at the given logical position from
// the k source blocks and writes it into parity. All source blocks and
// the parity buffer must share one length.
//
// One call produces one parity block; callers invoke it for every index
// in [k, n-1] for proactive protection, or for a subset on demand.
func (c *Code) Encode(source [][]byte, parityIndex int, parity []byte) error {
	if parityIndex < c.k || parityIndex >= c.n {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidIndex, parityIndex, c.k, c.n-1)
	}
	if len(source) != c.k {
		return fmt.Errorf("%w: %d source blocks, want %d", ErrInvalidLength, len(source), c.k)
	}
	for j, blk := range source {
		if len(blk) != len(parity) {
			return fmt.Errorf("%w: source block %d has %d bytes, want %d",
				ErrInvalidLength, j, len(blk), len(parity))
		}
	}

	for i := range parity {
		parity[i] = 0
	}
	row := c.gm[parityIndex]
	for j, blk := range source {
		gf256.MulSlice(parity, blk, row[j])
	}
	return nil
}
