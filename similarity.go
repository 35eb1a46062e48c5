package spinhalf

import (
	"github.com/pkg/errors"

	"spinhalf/mat"
)

// SimilarityTransform returns the permutation matrix U such that Uv rearranges
// a tensor product vector v into consecutive total-spin blocks, descending
// from j = n/2 to j = -n/2. Conjugating a magnetization-conserving operator
// by U makes it block diagonal.
func SimilarityTransform(n int) (*mat.COO, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrOutOfBounds, "chain size %d", n)
	}

	dim := 1 << n
	entries := make([]mat.Entry, 0, dim)
	offset := 0
	for ups := n; ups >= 0; ups-- {
		j := float64(ups) - float64(n)/2
		b, err := CompleteBasis(n, j)
		if err != nil {
			return nil, err
		}
		for diag, ord := range b.ToOrd {
			entries = append(entries, mat.Entry{V: 1, Row: diag + offset, Col: ord})
		}
		offset += b.Dim()
	}
	return mat.NewCOO(dim, dim, entries), nil
}

// TransformOperator conjugates a by the permutation matrix u, returning
// u a u^T. u must be a square 0-1 permutation matrix of the same size as a.
func TransformOperator(u, a *mat.COO) (*mat.COO, error) {
	if u.Rows() != u.Cols() || a.Rows() != a.Cols() || u.Rows() != a.Rows() {
		return nil, errors.Wrapf(ErrSizeMismatch, "%dx%d transform on %dx%d operator", u.Rows(), u.Cols(), a.Rows(), a.Cols())
	}
	rowOf, err := permutationRows(u)
	if err != nil {
		return nil, err
	}

	entries := make([]mat.Entry, 0, a.NumNonZero())
	for _, e := range a.Data {
		entries = append(entries, mat.Entry{V: e.V, Row: rowOf[e.Row], Col: rowOf[e.Col]})
	}
	return mat.NewCOO(a.Rows(), a.Cols(), entries), nil
}

// permutationRows returns the row index each column of u is sent to.
func permutationRows(u *mat.COO) ([]int, error) {
	if u.NumNonZero() != u.Rows() {
		return nil, errors.Wrapf(ErrSizeMismatch, "%d nonzeros in a %d permutation", u.NumNonZero(), u.Rows())
	}
	rowOf := make([]int, u.Cols())
	seenCol := make([]bool, u.Cols())
	seenRow := make([]bool, u.Rows())
	for _, e := range u.Data {
		if e.V != 1 || seenCol[e.Col] || seenRow[e.Row] {
			return nil, errors.Wrap(ErrSizeMismatch, "not a permutation matrix")
		}
		seenCol[e.Col], seenRow[e.Row] = true, true
		rowOf[e.Col] = e.Row
	}
	return rowOf, nil
}
