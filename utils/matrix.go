package utils

import (
	"gonum.org/v1/gonum/mat"
)

// ********************************** MATRIX MANIPULATION **********************************

// AddBiasRow writes m + bias into dst, adding the 1 x c bias row to every row
// of m. This is the only broadcast supported beyond gonum's scalar operations.
// Panics with mat.ErrShape if bias is not a row vector of m's width or if dst
// does not match m.
func AddBiasRow(dst, m, bias *mat.Dense) {
	r, c := m.Dims()
	br, bc := bias.Dims()
	dr, dc := dst.Dims()
	if br != 1 || bc != c || dr != r || dc != c {
		panic(mat.ErrShape)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			dst.Set(i, j, m.At(i, j)+bias.At(0, j))
		}
	}
}

// ColSums returns the column sums of m as a 1 x c row vector
func ColSums(m *mat.Dense) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(1, c, nil)
	for j := 0; j < c; j++ {
		s := 0.
		for i := 0; i < r; i++ {
			s += m.At(i, j)
		}
		out.Set(0, j, s)
	}
	return out
}

// SelectRows gathers the rows of m listed in idx, in order, into a new matrix
func SelectRows(m *mat.Dense, idx []int) *mat.Dense {
	_, c := m.Dims()
	out := mat.NewDense(len(idx), c, nil)
	for i, row := range idx {
		out.SetRow(i, m.RawRowView(row))
	}
	return out
}

// ArgmaxRow returns the index of the largest value in row i of m
func ArgmaxRow(m *mat.Dense, i int) int {
	_, c := m.Dims()
	best := 0
	for j := 1; j < c; j++ {
		if m.At(i, j) > m.At(i, best) {
			best = j
		}
	}
	return best
}
