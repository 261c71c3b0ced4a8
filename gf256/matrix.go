package gf256

import "errors"

// Matrix operations over GF(2^8). Matrices are slices of row slices.

// ErrSingularMatrix is returned by InvertMatrix when a column has no
// nonzero pivot.
var ErrSingularMatrix = errors.New("gf256: matrix is singular")

// Identity returns the n×n identity matrix.
func Identity(n int) [][]byte {
	m := make([][]byte, n)
	for i := range m {
		m[i] = make([]byte, n)
		m[i][i] = 1
	}
	return m
}

// Vandermonde returns a rows×cols matrix whose row i holds the powers
// e^0 .. e^(cols-1) of the evaluation point e = Generator^i. The points
// are distinct and nonzero for rows <= 255, so any cols rows form an
// invertible submatrix.
func Vandermonde(rows, cols int) [][]byte {
	m := make([][]byte, rows)
	for i := range m {
		m[i] = make([]byte, cols)
		e := Exp(i)
		p := byte(1)
		for j := 0; j < cols; j++ {
			m[i][j] = p
			p = Mul(p, e)
		}
	}
	return m
}

// InvertMatrix computes the inverse of the square matrix m by
// Gauss-Jordan elimination with row swaps. The field has no ordering,
// so any nonzero element is an admissible pivot. m is left untouched.
func InvertMatrix(m [][]byte) ([][]byte, error) {
	n := len(m)
	work := make([][]byte, n)
	for i := range m {
		work[i] = append([]byte(nil), m[i]...)
	}
	inv := Identity(n)

	for col := 0; col < n; col++ {
		pivot := -1
		for r := col; r < n; r++ {
			if work[r][col] != 0 {
				pivot = r
				break
			}
		}
		if pivot == -1 {
			return nil, ErrSingularMatrix
		}
		if pivot != col {
			work[col], work[pivot] = work[pivot], work[col]
			inv[col], inv[pivot] = inv[pivot], inv[col]
		}

		// Normalize the pivot row.
		scale := Inv(work[col][col])
		for j := 0; j < n; j++ {
			work[col][j] = Mul(work[col][j], scale)
			inv[col][j] = Mul(inv[col][j], scale)
		}

		// Eliminate the column from every other row.
		for r := 0; r < n; r++ {
			if r == col || work[r][col] == 0 {
				continue
			}
			f := work[r][col]
			MulSlice(work[r], work[col], f)
			MulSlice(inv[r], inv[col], f)
		}
	}
	return inv, nil
}

// MatrixMultiply computes the product A × B. A is m×n and B is n×p.
func MatrixMultiply(a, b [][]byte) [][]byte {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	p := len(b[0])
	c := make([][]byte, len(a))
	for i := range a {
		c[i] = make([]byte, p)
		for k, f := range a[i] {
			MulSlice(c[i], b[k], f)
		}
	}
	return c
}
