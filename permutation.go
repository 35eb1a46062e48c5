// Package spinhalf builds fixed-magnetization bases for spin-1/2 chains and
// embeds site-local operators into the full tensor product space.
//
// A chain of n sites has a 2^n dimensional Hilbert space.  Since the total
// magnetization commutes with many chain Hamiltonians, the space splits into
// sectors labeled by total spin j, and this package enumerates each sector,
// embeds operators, and constructs the permutation that block-diagonalizes
// magnetization-conserving operators.
package spinhalf

import "sort"

// NextArrangement advances s to the next arrangement of its ones and zeros in
// ascending lexicographic order, in place.  When s is already the largest
// arrangement it wraps around to the smallest and returns false; otherwise it
// returns true.
func NextArrangement(s []int) bool {
	// The pivot is the rightmost "0 1" pair.
	pivot := -1
	for i := len(s) - 2; i >= 0; i-- {
		if s[i] == 0 && s[i+1] == 1 {
			pivot = i
			break
		}
	}
	if pivot == -1 {
		sort.Ints(s)
		return false
	}

	// Set the pivot and rebuild the suffix as small as possible.
	ones := 0
	for _, b := range s[pivot+1:] {
		ones += b
	}
	s[pivot] = 1
	for i := pivot + 1; i < len(s); i++ {
		if i >= len(s)-(ones-1) {
			s[i] = 1
		} else {
			s[i] = 0
		}
	}
	return true
}

// bitIndex reads s as a big-endian binary number, so the leftmost site is the
// most significant bit.
func bitIndex(s []int) int {
	d := 0
	for _, b := range s {
		d = d<<1 | b
	}
	return d
}

// ReflectIndex maps a decimal index to its mirror dim-d-1 in a space of the
// given dimension.  For a spin chain this is a global spin flip, so it sends
// the sector of total spin j onto the sector of -j.
func ReflectIndex(dim, d int) int {
	return dim - d - 1
}
