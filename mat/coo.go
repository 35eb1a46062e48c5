// Package mat provides the sparse matrices underlying the spin chain
// computations. The central type is COO, a coordinate-format sparse matrix
// supporting the Kronecker products, permutations, and slicing that the
// basis routines need. DiskMatrix is a sqlite-backed drop-in for chains too
// large to hold in memory.
package mat

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

var (
	PauliX = [][]complex64{
		{0, 1},
		{1, 0},
	}
	PauliY = [][]complex64{
		{0, -1i},
		{1i, 0},
	}
	PauliZ = [][]complex64{
		{1, 0},
		{0, -1},
	}
)

// Matrix is the capability needed from a matrix buffer when assembling
// many-body operators: triplet-style construction, addition, and Kronecker
// products. Both COO and DiskMatrix satisfy it.
type Matrix interface {
	Zeros(int, int)
	Scalar(complex64)
	Rows() int
	Cols() int

	Add(complex64, Matrix)
	Kron(*COO)
	COO() *COO

	WriteCOO(string) error
}

// Entry is a single nonzero element in coordinate format.
type Entry struct {
	V   complex64
	Row int
	Col int
}

// COO is a sparse matrix in coordinate format. Data is kept sorted in
// row-major order by every mutating method.
type COO struct {
	rows int
	cols int
	Data []Entry

	m map[[2]int]complex64
}

// M builds a COO matrix from a dense representation.
func M(dense [][]complex64) *COO {
	m := &COO{rows: len(dense), cols: len(dense[0]), Data: make([]Entry, 0), m: make(map[[2]int]complex64)}
	for i, row := range dense {
		for j, v := range row {
			if v == 0 {
				continue
			}
			m.Data = append(m.Data, Entry{V: v, Row: i, Col: j})
		}
	}
	return m
}

// NewCOO builds a rows x cols matrix from a triplet list.
// Entries need not be sorted; zero values are dropped.
func NewCOO(rows, cols int, entries []Entry) *COO {
	m := &COO{rows: rows, cols: cols, Data: make([]Entry, 0, len(entries)), m: make(map[[2]int]complex64)}
	for _, e := range entries {
		if e.V == 0 {
			continue
		}
		m.Data = append(m.Data, e)
	}
	slices.SortFunc(m.Data, rowMajor)
	return m
}

func COOZeros(rows, cols int) *COO {
	m := M([][]complex64{{0}})
	m.Zeros(rows, cols)
	return m
}

func COOIdentity(rows int) *COO {
	m := M([][]complex64{{0}})
	m.Zeros(rows, rows)
	for i := 0; i < rows; i++ {
		m.Data = append(m.Data, Entry{V: 1, Row: i, Col: i})
	}
	return m
}

func (m *COO) Rows() int { return m.rows }
func (m *COO) Cols() int { return m.cols }

func (m *COO) Zeros(rows, cols int) {
	m.rows, m.cols = rows, cols
	m.Data = m.Data[:0]
}

func (m *COO) Scalar(v complex64) {
	m.rows, m.cols = 1, 1
	m.Data = m.Data[:0]
	m.Data = append(m.Data, Entry{V: v, Row: 0, Col: 0})
}

// NumNonZero returns the number of stored nonzero elements.
func (m *COO) NumNonZero() int { return len(m.Data) }

// At returns the element at row i, column j.
func (m *COO) At(i, j int) complex64 {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("%d %d out of %dx%d", i, j, m.rows, m.cols))
	}
	k, ok := slices.BinarySearchFunc(m.Data, Entry{Row: i, Col: j}, rowMajor)
	if !ok {
		return 0
	}
	return m.Data[k].V
}

func (a *COO) Equal(b *COO) bool {
	if a.rows != b.rows {
		return false
	}
	if a.cols != b.cols {
		return false
	}
	if len(a.Data) != len(b.Data) {
		return false
	}
	for i, av := range a.Data {
		bv := b.Data[i]
		if av != bv {
			return false
		}
	}
	return true
}

// Slice returns the submatrix within the given row and column bounds.
// Negative bounds count from the end, as in numpy.
func (m *COO) Slice(yBoundN, xBoundN [2]int) *COO {
	yBound, xBound := yBoundN, xBoundN
	for i := 0; i < 2; i++ {
		if yBound[i] < 0 {
			yBound[i] += m.rows
		}
		if xBound[i] < 0 {
			xBound[i] += m.cols
		}
	}

	s := &COO{rows: yBound[1] - yBound[0], cols: xBound[1] - xBound[0], Data: make([]Entry, 0), m: make(map[[2]int]complex64)}
	for _, v := range m.Data {
		if v.Row < yBound[0] {
			continue
		}
		if v.Row >= yBound[1] {
			break
		}
		if v.Col < xBound[0] || v.Col >= xBound[1] {
			continue
		}
		s.Data = append(s.Data, Entry{V: v.V, Row: v.Row - yBound[0], Col: v.Col - xBound[0]})
	}
	return s
}

// Add computes a += c*b. b may be a scalar or a column vector, in which case
// it is broadcast.
func (a *COO) Add(c complex64, bMatrix Matrix) {
	b := bMatrix.COO()
	clear(b.m)
	for _, v := range b.Data {
		b.m[[2]int{v.Row, v.Col}] = v.V
	}

	for i, av := range a.Data {
		var byx [2]int
		switch {
		case b.rows == 1 && b.cols == 1:
		case b.rows == a.rows && b.cols == 1:
			byx[0] = av.Row
		case b.rows == a.rows && b.cols == a.cols:
			byx[0], byx[1] = av.Row, av.Col
		default:
			panic(fmt.Sprintf("wrong dimensions"))
		}
		bv := b.m[byx]
		delete(b.m, byx)

		a.Data[i].V = av.V + c*bv
	}

	a.Data = slices.DeleteFunc(a.Data, func(v Entry) bool {
		return v.V == 0
	})
	for yx, bv := range b.m {
		a.Data = append(a.Data, Entry{V: c * bv, Row: yx[0], Col: yx[1]})
	}
	slices.SortFunc(a.Data, rowMajor)
	clear(b.m)
}

// Mul computes the elementwise product a *= b, broadcasting scalars and
// column vectors.
func (a *COO) Mul(b *COO) {
	clear(b.m)
	for _, v := range b.Data {
		b.m[[2]int{v.Row, v.Col}] = v.V
	}

	for i, av := range a.Data {
		var byx [2]int
		switch {
		case b.rows == 1 && b.cols == 1:
		case b.rows == a.rows && b.cols == 1:
			byx[0] = av.Row
		case b.rows == a.rows && b.cols == a.cols:
			byx[0], byx[1] = av.Row, av.Col
		default:
			panic(fmt.Sprintf("wrong dimensions"))
		}
		bv := b.m[byx]

		a.Data[i].V = av.V * bv
	}

	a.Data = slices.DeleteFunc(a.Data, func(v Entry) bool {
		return v.V == 0
	})
	clear(b.m)
}

// Kron computes the Kronecker product a = a ⊗ b in place.
func (a *COO) Kron(b *COO) {
	rows := a.rows * b.rows
	cols := a.cols * b.cols
	a.rows, a.cols = rows, cols

	prevElemNum := len(a.Data)
	for i := prevElemNum - 1; i >= 0; i-- {
		av := a.Data[i]
		a.Data[i].V = 0
		for _, bv := range b.Data {
			ky := av.Row*b.rows + bv.Row
			kx := av.Col*b.cols + bv.Col
			a.Data = append(a.Data, Entry{V: av.V * bv.V, Row: ky, Col: kx})
		}
	}

	a.Data = slices.DeleteFunc(a.Data, func(v Entry) bool {
		return v.V == 0
	})
	slices.SortFunc(a.Data, rowMajor)
}

// Transpose returns a new matrix that is the transpose of m.
func (m *COO) Transpose() *COO {
	t := &COO{rows: m.cols, cols: m.rows, Data: make([]Entry, 0, len(m.Data)), m: make(map[[2]int]complex64)}
	for _, v := range m.Data {
		t.Data = append(t.Data, Entry{V: v.V, Row: v.Col, Col: v.Row})
	}
	slices.SortFunc(t.Data, rowMajor)
	return t
}

// MulVec returns the matrix-vector product m*v.
func (m *COO) MulVec(v []complex64) []complex64 {
	if len(v) != m.cols {
		panic(fmt.Sprintf("wrong dimensions: %d %d", len(v), m.cols))
	}
	w := make([]complex64, m.rows)
	for _, e := range m.Data {
		w[e.Row] += e.V * v[e.Col]
	}
	return w
}

func (m *COO) COO() *COO {
	return m
}

func (m *COO) Dense() [][]complex64 {
	dense := make([][]complex64, m.rows)
	for i := range dense {
		dense[i] = make([]complex64, m.cols)
	}

	for _, v := range m.Data {
		dense[v.Row][v.Col] = v.V
	}

	return dense
}

func (m *COO) String() string {
	clear(m.m)
	for _, v := range m.Data {
		m.m[[2]int{v.Row, v.Col}] = v.V
	}

	lines := []string{}
	for i := 0; i < m.rows; i++ {
		cs := []string{}
		for j := 0; j < m.cols; j++ {
			v := m.m[[2]int{i, j}]
			switch {
			case imag(v) == 0:
				cs = append(cs, format(real(v)))
			case real(v) == 0:
				cs = append(cs, format(imag(v))+"i")
			default:
				cs = append(cs, format(real(v))+"+"+format(imag(v))+"i")
			}
		}
		l := strings.Join(cs, "\t")
		lines = append(lines, l)
	}

	clear(m.m)
	return strings.Join(lines, "\n")
}

func rowMajor(a, b Entry) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	return cmp.Compare(a.Col, b.Col)
}

func format(v float32) string {
	// If v is 0 or -0, return "0" immediately to avoid returning "-0".
	if v == 0 {
		return " 0"
	}

	s := fmt.Sprintf("%v", v)

	// Add a space before non-negative numbers to align with other negative numbers in the same column.
	if v >= 0 {
		s = " " + s
	}

	return s
}
