package spinhalf

import "spinhalf/mat"

// Single-site spin-1/2 operators in the basis (|up>, |down>), half the Pauli
// matrices. The up spin sits at index 0, matching the ordering ReflectIndex
// imposes on the full space.

func SpinX() *mat.COO {
	return halve(mat.M(mat.PauliX))
}

func SpinY() *mat.COO {
	return halve(mat.M(mat.PauliY))
}

func SpinZ() *mat.COO {
	return halve(mat.M(mat.PauliZ))
}

// SpinPlus is the raising operator S+ = Sx + iSy.
func SpinPlus() *mat.COO {
	m := SpinX()
	m.Add(1i, SpinY())
	return m
}

// SpinMinus is the lowering operator S- = Sx - iSy.
func SpinMinus() *mat.COO {
	m := SpinX()
	m.Add(-1i, SpinY())
	return m
}

func halve(m *mat.COO) *mat.COO {
	m.Mul(mat.M([][]complex64{{0.5}}))
	return m
}
