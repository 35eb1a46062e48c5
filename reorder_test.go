package spinhalf

import (
	"slices"
	"testing"

	"github.com/pkg/errors"

	"spinhalf/mat"
)

// Every basis vector of the spin j sector must carry total Sz eigenvalue j
// under the embedded spin operators.
func TestSectorMagnetization(t *testing.T) {
	t.Parallel()
	const n = 3
	sz := mat.COOZeros(1<<n, 1<<n)
	buf := mat.COOZeros(1, 1)
	for i := 0; i < n; i++ {
		if err := EmbedInto(buf, []*mat.COO{SpinZ()}, []int{i}, n); err != nil {
			t.Fatalf("%+v", err)
		}
		sz.Add(1, buf)
	}

	for ups := 0; ups <= n; ups++ {
		j := float64(ups) - float64(n)/2
		b, err := CompleteBasis(n, j)
		if err != nil {
			t.Fatalf("%+v", err)
		}
		for i := 0; i < b.Dim(); i++ {
			psi := make([]complex64, b.Dim())
			psi[i] = 1
			ord, err := ReorderBasis(n, j, psi)
			if err != nil {
				t.Fatalf("%+v", err)
			}

			w := sz.MulVec(ord)
			for k := range w {
				if w[k] != complex(float32(j), 0)*ord[k] {
					t.Fatalf("state %d of the spin %v sector is not an Sz eigenstate: %v", i, j, w)
				}
			}
		}
	}
}

func TestReorderBasis(t *testing.T) {
	t.Parallel()
	psi := []complex64{3, 5 + 1i, 7}
	ord, err := ReorderBasis(3, 0.5, psi)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	want := []complex64{0, 5 + 1i, 3, 0, 7, 0, 0, 0}
	if !slices.Equal(ord, want) {
		t.Fatalf("%v, expected %v", ord, want)
	}
}

func TestReorderRoundTrip(t *testing.T) {
	t.Parallel()
	psi := []complex64{1, 2, 0, 3 - 1i, 4, 5}
	ord, err := ReorderBasis(4, 0, psi)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	back, err := ReorderToSector(4, 0, ord)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if !slices.Equal(back, psi) {
		t.Fatalf("%v, expected %v", back, psi)
	}
}

// Applying the similarity transform to a reordered sector vector must land the
// amplitudes contiguously in that sector's block.
func TestReorderBasisBlock(t *testing.T) {
	t.Parallel()
	psi := []complex64{3, 5, 7}
	ord, err := ReorderBasis(3, 0.5, psi)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	u, err := SimilarityTransform(3)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	blk := u.MulVec(ord)
	want := []complex64{0, 3, 5, 7, 0, 0, 0, 0}
	if !slices.Equal(blk, want) {
		t.Fatalf("%v, expected %v", blk, want)
	}
}

func TestReorderError(t *testing.T) {
	t.Parallel()
	if _, err := ReorderBasis(3, 0.5, []complex64{1, 2}); !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("%v, expected %v", err, ErrSizeMismatch)
	}
	if _, err := ReorderBasis(3, 1, []complex64{1, 2, 3}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("%v, expected %v", err, ErrOutOfBounds)
	}
	if _, err := ReorderToSector(2, 0, []complex64{1, 2, 3}); !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("%v, expected %v", err, ErrSizeMismatch)
	}

	// Amplitude on the all up state, outside the j=0 sector.
	if _, err := ReorderToSector(2, 0, []complex64{1, 0, 0, 0}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("%v, expected %v", err, ErrOutOfBounds)
	}
}
