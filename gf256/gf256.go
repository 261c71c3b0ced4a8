// Package gf256 implements arithmetic over GF(2^8), the finite field of
// 256 byte-valued elements, together with the matrix operations needed
// for Reed-Solomon erasure decoding.
package gf256

import (
	"errors"
	"sync"
)

// poly is the primitive polynomial x^8 + x^4 + x^3 + x + 1.
const poly = 0x11b

// Generator is a primitive element of the field; its powers enumerate
// all 255 nonzero elements and serve as Vandermonde evaluation points.
const Generator = 0x03

// ErrDivisionByZero is returned when the divisor of Div is zero.
var ErrDivisionByZero = errors.New("gf256: division by zero")

var (
	tablesOnce sync.Once
	logTable   [256]byte
	expTable   [255]byte
)

// initTables walks the powers of Generator to fill the log/antilog
// tables. Runs once; the tables are immutable afterwards and safe for
// unsynchronized concurrent reads.
func initTables() {
	x := 1
	for i := 0; i < 255; i++ {
		expTable[i] = byte(x)
		logTable[x] = byte(i)
		// multiply by Generator: 0x03*x = (x << 1) ^ x
		x ^= x << 1
		if x&0x100 != 0 {
			x ^= poly
		}
	}
}

// Add returns a + b. Addition in a characteristic-2 field is XOR.
func Add(a, b byte) byte {
	return a ^ b
}

// Sub returns a - b, which is identical to Add in GF(2^8).
func Sub(a, b byte) byte {
	return a ^ b
}

// Mul returns a * b.
func Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	tablesOnce.Do(initTables)
	return expTable[(int(logTable[a])+int(logTable[b]))%255]
}

// Div returns a / b, or ErrDivisionByZero when b is zero.
func Div(a, b byte) (byte, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	if a == 0 {
		return 0, nil
	}
	tablesOnce.Do(initTables)
	return expTable[(int(logTable[a])-int(logTable[b])+255)%255], nil
}

// Inv returns the multiplicative inverse of a. It panics when a is zero;
// callers pick nonzero pivots before inverting.
func Inv(a byte) byte {
	if a == 0 {
		panic("gf256: zero element is not invertible")
	}
	tablesOnce.Do(initTables)
	return expTable[(255-int(logTable[a]))%255]
}

// Exp returns Generator^i, with i taken modulo 255.
func Exp(i int) byte {
	tablesOnce.Do(initTables)
	i %= 255
	if i < 0 {
		i += 255
	}
	return expTable[i]
}

// MulSlice multiplies src element-wise by the scalar c and xors the
// products into dst: dst[i] ^= c * src[i]. This is the inner loop of
// both parity generation and erasure reconstruction.
func MulSlice(dst, src []byte, c byte) {
	switch c {
	case 0:
		return
	case 1:
		for i := range src {
			dst[i] ^= src[i]
		}
		return
	}
	tablesOnce.Do(initTables)
	lc := int(logTable[c])
	for i, s := range src {
		if s != 0 {
			dst[i] ^= expTable[(lc+int(logTable[s]))%255]
		}
	}
}
