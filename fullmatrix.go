package spinhalf

import (
	"github.com/pkg/errors"

	"spinhalf/mat"
)

// FullMatrix embeds the single-site operator op acting on site k into the
// 2^n dimensional space of an n-site chain. Sites are numbered from 0.
func FullMatrix(op *mat.COO, k, n int) (*mat.COO, error) {
	m := mat.COOZeros(1, 1)
	if err := EmbedInto(m, []*mat.COO{op}, []int{k}, n); err != nil {
		return nil, err
	}
	return m, nil
}

// EmbedInto assembles into m the operator that applies ops[i] on sites[i] and
// the identity on every other site of an n-site chain. m may be any Matrix
// buffer, including a DiskMatrix for chains too large to hold in memory.
func EmbedInto(m mat.Matrix, ops []*mat.COO, sites []int, n int) error {
	if n < 1 {
		return errors.Wrapf(ErrOutOfBounds, "chain size %d", n)
	}
	if len(ops) != len(sites) {
		return errors.Wrapf(ErrSizeMismatch, "%d operators on %d sites", len(ops), len(sites))
	}
	bySite := make(map[int]*mat.COO, len(sites))
	for i, k := range sites {
		if k < 0 || k >= n {
			return errors.Wrapf(ErrOutOfBounds, "site %d in a chain of %d", k, n)
		}
		if _, ok := bySite[k]; ok {
			return errors.Wrapf(ErrOutOfBounds, "site %d repeated", k)
		}
		op := ops[i]
		if op.Rows() != 2 || op.Cols() != 2 {
			return errors.Wrapf(ErrSizeMismatch, "%dx%d operator on site %d", op.Rows(), op.Cols(), k)
		}
		bySite[k] = op
	}

	m.Scalar(1)
	identity := mat.COOIdentity(2)
	for k := 0; k < n; k++ {
		if op, ok := bySite[k]; ok {
			m.Kron(op)
		} else {
			m.Kron(identity)
		}
	}
	return nil
}
