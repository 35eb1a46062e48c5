package mat

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	FnameShape = "shape.csv"
	FnameCOO   = "coo.csv"
)

// WriteCOO writes the matrix into dir as a shape file and a coordinate list,
// one nonzero per record.
func (m *COO) WriteCOO(dir string) error {
	shapePath := filepath.Join(dir, FnameShape)
	if err := os.WriteFile(shapePath, []byte(fmt.Sprintf("%d,%d", m.rows, m.cols)), 0644); err != nil {
		return errors.Wrap(err, "")
	}

	cooPath := filepath.Join(dir, FnameCOO)
	cooF, err := os.Create(cooPath)
	if err != nil {
		return errors.Wrap(err, "")
	}

	w := csv.NewWriter(cooF)
	for _, v := range m.Data {
		if err1 := w.Write([]string{FormatNumpy(v.V), strconv.Itoa(v.Row), strconv.Itoa(v.Col)}); err1 != nil && err == nil {
			err = errors.Wrap(err1, "")
			break
		}
	}
	w.Flush()
	if err1 := w.Error(); err1 != nil && err == nil {
		err = errors.Wrap(err1, "")
	}

	if err1 := cooF.Close(); err1 != nil && err == nil {
		err = errors.Wrap(err1, "")
	}
	return err
}

// Encode writes the matrix to w as a single CSV stream: a shape record
// followed by one record per nonzero. The result round-trips through
// DecodeCOO bit-identically.
func (m *COO) Encode(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{strconv.Itoa(m.rows), strconv.Itoa(m.cols)}); err != nil {
		return errors.Wrap(err, "")
	}
	for _, v := range m.Data {
		if err := cw.Write([]string{FormatNumpy(v.V), strconv.Itoa(v.Row), strconv.Itoa(v.Col)}); err != nil {
			return errors.Wrap(err, "")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "")
}

// DecodeCOO reads a matrix encoded by Encode.
func DecodeCOO(r io.Reader) (*COO, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rec, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	if len(rec) != 2 {
		return nil, errors.Errorf("%#v", rec)
	}
	rows, err := strconv.Atoi(rec[0])
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", rec))
	}
	cols, err := strconv.Atoi(rec[1])
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", rec))
	}

	m := COOZeros(rows, cols)
	for i := 0; ; i++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("%d", i))
		}
		if len(rec) != 3 {
			return nil, errors.Errorf("%d %#v", i, rec)
		}
		var e Entry
		e.V, err = parseComplex(rec[0])
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("%d %#v", i, rec))
		}
		e.Row, err = strconv.Atoi(rec[1])
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("%d %#v", i, rec))
		}
		e.Col, err = strconv.Atoi(rec[2])
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("%d %#v", i, rec))
		}
		m.Data = append(m.Data, e)
	}
	return m, nil
}

// COOReader streams the coordinate list written by WriteCOO. Empty value and
// row fields repeat the previous record's, which keeps runs of equal values
// compact.
type COOReader struct {
	f *os.File
	r *csv.Reader
	i int

	prev Entry
}

func NewCOOReader(dir string) (*COOReader, error) {
	r := &COOReader{i: -1}

	cooPath := filepath.Join(dir, FnameCOO)
	var err error
	r.f, err = os.Open(cooPath)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}

	r.r = csv.NewReader(r.f)
	return r, nil
}

func (r *COOReader) Close() error {
	return r.f.Close()
}

func (r *COOReader) Read() (Entry, error) {
	r.i++
	record, err := r.r.Read()
	if err == io.EOF {
		return Entry{}, io.EOF
	}
	if err != nil {
		return Entry{}, errors.Wrap(err, fmt.Sprintf("%d", r.i))
	}
	if len(record) != 3 {
		return Entry{}, errors.Errorf("%d %#v", r.i, record)
	}

	var e Entry
	switch {
	case record[0] == "":
		e.V = r.prev.V
	default:
		e.V, err = parseComplex(record[0])
		if err != nil {
			return Entry{}, errors.Wrap(err, fmt.Sprintf("%d %#v", r.i, record))
		}
	}

	switch {
	case record[1] == "":
		e.Row = r.prev.Row
	default:
		e.Row, err = strconv.Atoi(record[1])
		if err != nil {
			return Entry{}, errors.Wrap(err, fmt.Sprintf("%d %#v", r.i, record))
		}
	}

	e.Col, err = strconv.Atoi(record[2])
	if err != nil {
		return Entry{}, errors.Wrap(err, fmt.Sprintf("%d %#v", r.i, record))
	}

	r.prev = e
	return e, nil
}

// ReadCOO reads back a matrix written by WriteCOO.
func ReadCOO(dir string) (*COO, error) {
	m := M([][]complex64{{0}})
	m.Data = m.Data[:0]
	var err error
	m.rows, m.cols, err = readShape(dir)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}

	r, err := NewCOOReader(dir)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	defer r.Close()
	for {
		v, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "")
		}

		m.Data = append(m.Data, v)
	}

	return m, nil
}

func readShape(dir string) (int, int, error) {
	f, err := os.Open(filepath.Join(dir, FnameShape))
	if err != nil {
		return -1, -1, errors.Wrap(err, "")
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return -1, -1, errors.Wrap(err, "")
	}
	if len(records) == 0 {
		return -1, -1, errors.Errorf("empty")
	}
	row := records[0]

	if len(row) != 2 {
		return -1, -1, errors.Errorf("%#v", row)
	}
	i, err := strconv.Atoi(row[0])
	if err != nil {
		return -1, -1, errors.Wrap(err, fmt.Sprintf("%#v", row))
	}
	j, err := strconv.Atoi(row[1])
	if err != nil {
		return -1, -1, errors.Wrap(err, fmt.Sprintf("%#v", row))
	}

	return i, j, nil
}

// FormatNumpy formats v the way numpy prints complex numbers, with "j" as
// the imaginary unit and plain floats for real values.
func FormatNumpy(v complex64) string {
	switch {
	case imag(v) == 0:
		return strconv.FormatFloat(float64(real(v)), 'g', -1, 32)
	default:
		s := fmt.Sprintf("%v", v)
		s = strings.ReplaceAll(s, "i", "j")
		return s
	}
}

func parseComplex(s string) (complex64, error) {
	s = strings.ReplaceAll(s, "j", "i")
	v, err := strconv.ParseComplex(s, 128)
	if err != nil {
		return 0, errors.Wrap(err, "")
	}
	return complex64(v), nil
}
