// Package state builds chain states as rank-n tensors with one physical
// dimension per site, and converts between tensor and flat vector forms.
//
// Flat vectors are arranged with the all spins up state first, matching the
// ordering that SimilarityTransform and ReorderBasis act on.
package state

import (
	"math"
	"math/rand"

	"github.com/fumin/tensor"
	"github.com/pkg/errors"

	"spinhalf"
)

// Product returns the product state with the given spin at each site, 1 for
// up and 0 for down.
func Product(bits []int) (*tensor.Dense, error) {
	if len(bits) == 0 {
		return nil, errors.Wrap(spinhalf.ErrOutOfBounds, "empty chain")
	}
	shape := make([]int, len(bits))
	for i, b := range bits {
		if b != 0 && b != 1 {
			return nil, errors.Wrapf(spinhalf.ErrOutOfBounds, "spin %d at site %d", b, i)
		}
		shape[i] = 2
	}

	t := tensor.Zeros(shape...)
	t.SetAt(bits, 1)
	return t, nil
}

// Neel returns the alternating product state of an n site chain, up spin
// first.
func Neel(n int) (*tensor.Dense, error) {
	if n < 1 {
		return nil, errors.Wrapf(spinhalf.ErrOutOfBounds, "chain size %d", n)
	}
	bits := make([]int, n)
	for i := 0; i < n; i += 2 {
		bits[i] = 1
	}
	return Product(bits)
}

// Vector flattens a rank-n state tensor into a 2^n amplitude vector.
func Vector(t *tensor.Dense) ([]complex64, error) {
	shape := t.Shape()
	for _, d := range shape {
		if d != 2 {
			return nil, errors.Wrapf(spinhalf.ErrSizeMismatch, "physical dimension %d", d)
		}
	}

	dim := 1 << len(shape)
	v := make([]complex64, dim)
	for ijk, a := range t.All() {
		d := 0
		for _, b := range ijk {
			d = d<<1 | b
		}
		v[spinhalf.ReflectIndex(dim, d)] = a
	}
	return v, nil
}

// FromVector is the inverse of Vector.
func FromVector(v []complex64) (*tensor.Dense, error) {
	n := 0
	for 1<<n < len(v) {
		n++
	}
	if n == 0 || 1<<n != len(v) {
		return nil, errors.Wrapf(spinhalf.ErrSizeMismatch, "%d amplitudes", len(v))
	}

	shape := make([]int, n)
	for i := range shape {
		shape[i] = 2
	}
	t := tensor.Zeros(shape...)
	ijk := make([]int, n)
	for i, a := range v {
		if a == 0 {
			continue
		}
		d := spinhalf.ReflectIndex(len(v), i)
		for k := n - 1; k >= 0; k-- {
			ijk[k] = d & 1
			d >>= 1
		}
		t.SetAt(ijk, a)
	}
	return t, nil
}

// RandomSector returns a normalized random state supported on the total
// spin j sector of an n site chain, as a full 2^n amplitude vector.
func RandomSector(n int, j float64) ([]complex64, error) {
	b, err := spinhalf.CompleteBasis(n, j)
	if err != nil {
		return nil, err
	}

	psi := make([]complex64, b.Dim())
	var norm float32
	for i := range psi {
		v := complex(rand.Float32()*2-1, rand.Float32()*2-1)
		psi[i] = v
		norm += real(v)*real(v) + imag(v)*imag(v)
	}
	s := complex(1/float32(math.Sqrt(float64(norm))), 0)
	for i := range psi {
		psi[i] *= s
	}
	return spinhalf.ReorderBasis(n, j, psi)
}
