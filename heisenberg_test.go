package spinhalf

import (
	"math"
	"testing"

	"github.com/pkg/errors"

	"spinhalf/mat"
)

func TestHeisenbergXXZ(t *testing.T) {
	t.Parallel()
	h, err := HeisenbergXXZ(2, 2, 1)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	// The single bond of a two site ring is counted twice.
	want := mat.M([][]complex64{
		{2, 0, 0, 0},
		{0, -1, 1, 0},
		{0, 1, -1, 0},
		{0, 0, 0, 0},
	})
	if !h.Equal(want) {
		t.Fatalf("%s\nexpected\n%s", h, want)
	}
}

func TestHeisenbergSingleSite(t *testing.T) {
	t.Parallel()
	h, err := HeisenbergXXZ(1, 1, 2)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	want := mat.M([][]complex64{
		{1, 0},
		{0, -1},
	})
	if !h.Equal(want) {
		t.Fatalf("%s\nexpected\n%s", h, want)
	}
}

func TestHeisenbergGroundEnergy(t *testing.T) {
	t.Parallel()
	h, err := HeisenbergXXZ(3, 1, 0)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	vvs := h.Eigen()
	// Three spins on a ring have total spin 1/2 or 3/2, with
	// E = (S(S+1) - 9/4)/2.
	if e := real(vvs[0].Val); math.Abs(e+0.75) > 1e-6 {
		t.Fatalf("%v, expected %v", e, -0.75)
	}
	if e := real(vvs[len(vvs)-1].Val); math.Abs(e-0.75) > 1e-6 {
		t.Fatalf("%v, expected %v", e, 0.75)
	}
}

func TestHeisenbergError(t *testing.T) {
	t.Parallel()
	if _, err := HeisenbergXXZ(0, 1, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("%v, expected %v", err, ErrOutOfBounds)
	}
}
