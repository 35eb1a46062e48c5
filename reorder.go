package spinhalf

import "github.com/pkg/errors"

// ReorderBasis maps a vector psi over the total-spin-j sector of an n-site
// chain, given in sector enumeration order, into a vector over the full
// tensor product space.
func ReorderBasis(n int, j float64, psi []complex64) ([]complex64, error) {
	b, err := CompleteBasis(n, j)
	if err != nil {
		return nil, err
	}
	if len(psi) != b.Dim() {
		return nil, errors.Wrapf(ErrSizeMismatch, "%d amplitudes for a sector of %d", len(psi), b.Dim())
	}

	ord := make([]complex64, 1<<n)
	for i, v := range psi {
		if v == 0 {
			continue
		}
		ord[b.ToOrd[i]] = v
	}
	return ord, nil
}

// ReorderToSector is the inverse of ReorderBasis: it extracts the total-spin-j
// sector amplitudes from a full tensor product vector. A nonzero amplitude
// outside the sector is ErrOutOfBounds.
func ReorderToSector(n int, j float64, ord []complex64) ([]complex64, error) {
	b, err := CompleteBasis(n, j)
	if err != nil {
		return nil, err
	}
	if len(ord) != 1<<n {
		return nil, errors.Wrapf(ErrSizeMismatch, "%d amplitudes for a chain of %d", len(ord), n)
	}

	psi := make([]complex64, b.Dim())
	for d, v := range ord {
		if v == 0 {
			continue
		}
		i := b.ToDiag[d]
		if i < 0 {
			return nil, errors.Wrapf(ErrOutOfBounds, "amplitude at %d outside the spin %v sector", d, j)
		}
		psi[i] = v
	}
	return psi, nil
}
