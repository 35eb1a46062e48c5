package spinhalf

import (
	"github.com/pkg/errors"

	"spinhalf/mat"
)

// HeisenbergXXZ builds the periodic XXZ chain Hamiltonian
//
//	H = sum_i SxSx + SySy + delta*SzSz + field * sum_i Sz
//
// on n sites. Each of the n periodic bonds contributes once, so a two-site
// chain counts its single bond twice. A single site has no bonds and only the
// field term.
func HeisenbergXXZ(n int, delta, field float64) (*mat.COO, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrOutOfBounds, "chain size %d", n)
	}

	dim := 1 << n
	h := mat.COOZeros(dim, dim)
	buf := mat.COOZeros(1, 1)

	terms := []struct {
		c  complex64
		op func() *mat.COO
	}{
		{1, SpinX},
		{1, SpinY},
		{complex(float32(delta), 0), SpinZ},
	}
	if n > 1 {
		for i := 0; i < n; i++ {
			for _, t := range terms {
				if err := EmbedInto(buf, []*mat.COO{t.op(), t.op()}, []int{i, (i + 1) % n}, n); err != nil {
					return nil, err
				}
				h.Add(t.c, buf)
			}
		}
	}
	if field != 0 {
		for i := 0; i < n; i++ {
			if err := EmbedInto(buf, []*mat.COO{SpinZ()}, []int{i}, n); err != nil {
				return nil, err
			}
			h.Add(complex(float32(field), 0), buf)
		}
	}
	return h, nil
}
