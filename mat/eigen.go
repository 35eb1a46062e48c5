package mat

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// ValVec is an eigenvalue with its eigenvector.
type ValVec struct {
	Val complex128
	Vec []complex128
}

// Eigen returns all eigenpairs of m, sorted by ascending real part of the
// eigenvalue. m must be real valued.
func (m *COO) Eigen() []ValVec {
	gnm := mat.NewDense(m.rows, m.cols, nil)
	for i, row := range m.Dense() {
		for j, v := range row {
			if imag(v) != 0 {
				panic("not real")
			}
			gnm.Set(i, j, float64(real(v)))
		}
	}

	var eig mat.Eigen
	ok := eig.Factorize(gnm, mat.EigenRight)
	if !ok {
		panic("eig.Factorize failed")
	}
	vals := eig.Values(nil)
	vecs := mat.NewCDense(m.rows, m.cols, nil)
	eig.VectorsTo(vecs)

	vecsR, _ := vecs.Caps()
	vvs := make([]ValVec, 0, len(vals))
	for i, v := range vals {
		vec := make([]complex128, 0, vecsR)
		for j := 0; j < vecsR; j++ {
			vec = append(vec, vecs.At(j, i))
		}
		vvs = append(vvs, ValVec{Val: v, Vec: vec})
	}
	slices.SortFunc(vvs, func(a, b ValVec) int { return cmp.Compare(real(a.Val), real(b.Val)) })

	return vvs
}
