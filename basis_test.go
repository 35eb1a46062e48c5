package spinhalf

import (
	"fmt"
	"slices"
	"testing"

	"github.com/pkg/errors"
)

func TestNextArrangement(t *testing.T) {
	t.Parallel()
	tests := []struct {
		s    []int
		want []int
		ok   bool
	}{
		{[]int{0, 1}, []int{1, 0}, true},
		{[]int{1, 0}, []int{0, 1}, false},
		{[]int{0, 1, 1}, []int{1, 0, 1}, true},
		{[]int{1, 0, 1}, []int{1, 1, 0}, true},
		{[]int{1, 1, 0}, []int{0, 1, 1}, false},
		{[]int{0}, []int{0}, false},
		{[]int{1}, []int{1}, false},
		{[]int{0, 0}, []int{0, 0}, false},
		{[]int{1, 1}, []int{1, 1}, false},
		{[]int{0, 1, 1, 0}, []int{1, 0, 0, 1}, true},
		{[]int{0, 1, 0, 1}, []int{0, 1, 1, 0}, true},
		{[]int{1, 1, 0, 0}, []int{0, 0, 1, 1}, false},
	}
	for _, test := range tests {
		test := test
		t.Run(fmt.Sprintf("%v", test.s), func(t *testing.T) {
			t.Parallel()
			s := append([]int(nil), test.s...)
			ok := NextArrangement(s)
			if ok != test.ok {
				t.Fatalf("%t, expected %t", ok, test.ok)
			}
			if !slices.Equal(s, test.want) {
				t.Fatalf("%v, expected %v", s, test.want)
			}
		})
	}
}

func TestCompleteBasis(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n      int
		j      float64
		states [][]int
		toOrd  []int
	}{
		{2, 0, [][]int{{1, 0}, {0, 1}}, []int{1, 2}},
		{2, 1, [][]int{{1, 1}}, []int{0}},
		{2, -1, [][]int{{0, 0}}, []int{3}},
		{3, 0.5, [][]int{{1, 0, 1}, {1, 1, 0}, {0, 1, 1}}, []int{2, 1, 4}},
		{3, 1.5, [][]int{{1, 1, 1}}, []int{0}},
		{1, 0.5, [][]int{{1}}, []int{0}},
		{1, -0.5, [][]int{{0}}, []int{1}},
	}
	for _, test := range tests {
		test := test
		t.Run(fmt.Sprintf("%d_%v", test.n, test.j), func(t *testing.T) {
			t.Parallel()
			b, err := CompleteBasis(test.n, test.j)
			if err != nil {
				t.Fatalf("%+v", err)
			}
			if len(b.States) != len(test.states) {
				t.Fatalf("%d states, expected %d", len(b.States), len(test.states))
			}
			for i, s := range b.States {
				if !slices.Equal(s, test.states[i]) {
					t.Fatalf("state %d is %v, expected %v", i, s, test.states[i])
				}
			}
			for i, d := range test.toOrd {
				if b.ToOrd[i] != d {
					t.Fatalf("ToOrd[%d] is %d, expected %d", i, b.ToOrd[i], d)
				}
				if b.ToDiag[d] != i {
					t.Fatalf("ToDiag[%d] is %d, expected %d", d, b.ToDiag[d], i)
				}
			}
		})
	}
}

func TestCompleteBasisSweep(t *testing.T) {
	t.Parallel()
	for n := 1; n <= 6; n++ {
		n := n
		t.Run(fmt.Sprintf("%d", n), func(t *testing.T) {
			t.Parallel()
			total := 0
			seen := make(map[int]bool)
			for ups := 0; ups <= n; ups++ {
				j := float64(ups) - float64(n)/2
				b, err := CompleteBasis(n, j)
				if err != nil {
					t.Fatalf("%+v", err)
				}
				if b.Dim() != SectorDim(n, ups) {
					t.Fatalf("%d states, expected %d", b.Dim(), SectorDim(n, ups))
				}
				total += b.Dim()

				for i, s := range b.States {
					ones := 0
					for _, bit := range s {
						ones += bit
					}
					if ones != ups {
						t.Fatalf("state %v has %d up spins, expected %d", s, ones, ups)
					}

					d := b.ToOrd[i]
					if seen[d] {
						t.Fatalf("index %d appears in two sectors", d)
					}
					seen[d] = true
					if b.ToDiag[d] != i {
						t.Fatalf("ToDiag[%d] is %d, expected %d", d, b.ToDiag[d], i)
					}
					if got := ReflectIndex(1<<n, bitIndex(s)); got != d {
						t.Fatalf("reflected index %d, expected %d", got, d)
					}
				}
			}
			if total != 1<<n {
				t.Fatalf("%d states in all sectors, expected %d", total, 1<<n)
			}
		})
	}
}

func TestCompleteBasisError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n int
		j float64
	}{
		{0, 0},
		{-1, 0.5},
		{2, 0.5},
		{2, 0.3},
		{2, 2},
		{3, -2.5},
	}
	for _, test := range tests {
		test := test
		t.Run(fmt.Sprintf("%d_%v", test.n, test.j), func(t *testing.T) {
			t.Parallel()
			if _, err := CompleteBasis(test.n, test.j); !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("%v, expected %v", err, ErrOutOfBounds)
			}
		})
	}
}
