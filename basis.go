package spinhalf

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/combin"
)

// Basis is the set of product states of an n-site chain with a fixed total
// magnetization j.
type Basis struct {
	// N is the number of sites.
	N int
	// J is the total spin of the sector.
	J float64
	// States holds the binary representation of every sector state, one row
	// per state, in enumeration order.
	States [][]int
	// ToDiag maps the reflected decimal index dim-d-1 of a sector state to
	// its position in States. Indices outside the sector hold -1.
	ToDiag []int
	// ToOrd maps a position in States back to the reflected decimal index.
	ToOrd []int
}

// Dim is the number of states in the sector.
func (b *Basis) Dim() int { return len(b.States) }

// SectorDim is the number of states of an n-site chain with nup up spins.
func SectorDim(n, nup int) int { return combin.Binomial(n, nup) }

// CompleteBasis enumerates the total-spin-j sector of an n-site chain.
// The sector is nonempty only when j is of the form n/2 - k for an integer
// 0 <= k <= n; anything else is ErrOutOfBounds.
func CompleteBasis(n int, j float64) (*Basis, error) {
	if n < 1 {
		return nil, errors.Wrap(ErrOutOfBounds, "chain size")
	}
	ups := 2*j + float64(n)
	nup := int(math.Round(ups)) / 2
	if math.Abs(ups-math.Round(ups)) > 1e-9 || int(math.Round(ups))%2 != 0 || nup < 0 || nup > n {
		return nil, errors.Wrapf(ErrOutOfBounds, "no spin %v sector in a chain of %d", j, n)
	}

	blksize := combin.Binomial(n, nup)
	dim := 1 << n
	b := &Basis{
		N:      n,
		J:      j,
		States: make([][]int, blksize),
		ToDiag: make([]int, dim),
		ToOrd:  make([]int, blksize),
	}
	for i := range b.ToDiag {
		b.ToDiag[i] = -1
	}

	// Start from the smallest arrangement and advance before recording, so
	// the enumeration wraps around exactly once and the seed state lands at
	// the last position.
	s := make([]int, n)
	for i := n - nup; i < n; i++ {
		s[i] = 1
	}
	for i := 0; i < blksize; i++ {
		wrapped := !NextArrangement(s)
		if wrapped != (i == blksize-1) {
			return nil, errors.Wrapf(ErrOutOfBounds, "sector enumeration wrapped at %d of %d", i, blksize)
		}
		b.States[i] = append([]int(nil), s...)
		d := ReflectIndex(dim, bitIndex(s))
		b.ToDiag[d] = i
		b.ToOrd[i] = d
	}
	return b, nil
}
