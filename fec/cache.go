package fec

import (
	"fmt"

	"github.com/rmcast/rsfec/gf256"
)

// inverse returns the inverse of the decoding matrix assembled from the
// named generator rows, consulting the per-code cache first. Matrix
// inversion is O(k^3) and a multicast session under steady loss keeps
// hitting the same few erasure patterns, so caching the inverse skips
// the dominant cost of repeated decodes. Cached inverses are read-only
// once stored.
func (c *Code) inverse(rows []int) ([][]byte, error) {
	key := make([]byte, len(rows))
	for i, r := range rows {
		key[i] = byte(r)
	}

	c.mu.RLock()
	inv, ok := c.cache[string(key)]
	c.mu.RUnlock()
	if ok {
		return inv, nil
	}

	d := make([][]byte, c.k)
	for p, r := range rows {
		d[p] = c.gm[r]
	}
	inv, err := gf256.InvertMatrix(d)
	if err != nil {
		// Cannot happen for a systematic Vandermonde generator and a
		// valid erasure count; if it does, the code descriptor is
		// corrupt and the session must not trust recovered data.
		log.Errorf("decoding matrix for rows %v is singular", rows)
		return nil, fmt.Errorf("%w: rows %v", ErrSingularMatrix, rows)
	}

	c.mu.Lock()
	if len(c.cache) < maxCachedInverses {
		c.cache[string(key)] = inv
	}
	c.mu.Unlock()
	return inv, nil
}
