package linalg

// Dense is a row-major matrix of float64 values, the sole concrete matrix
// representation in kifmm. r is the row count, c the column count, and data
// holds r*c elements in row-major order (flat, to keep the hot translation
// loops cache-friendly and allocation-free beyond the initial slice).
type Dense struct {
	r, c int
	data []float64
}

// NewDense allocates an r×c Dense matrix initialized to zero.
// Complexity: O(r*c) time and space.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewDenseFromRows builds a Dense from row-major nested slices; every row
// must have the same length. Complexity: O(r*c).
func NewDenseFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	r, c := len(rows), len(rows[0])
	m, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}
	for i := 0; i < r; i++ {
		if len(rows[i]) != c {
			return nil, wrapf("NewDenseFromRows", ErrDimensionMismatch)
		}
		copy(m.data[i*c:(i+1)*c], rows[i])
	}
	return m, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1.0
	}
	return m, nil
}

// Rows returns the number of rows. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Raw exposes the flat row-major backing slice for callers (e.g. gonum
// interop) that need direct access. Mutating the returned slice mutates m.
func (m *Dense) Raw() []float64 { return m.data }

func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, ErrIndexOutOfBounds
	}
	return row*m.c + col, nil
}

// At retrieves the element at (row, col). Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	if m == nil {
		return 0, ErrNilMatrix
	}
	idx, err := m.indexOf(row, col)
	if err != nil {
		return 0, wrapf("At", err)
	}
	return m.data[idx], nil
}

// Set assigns v at (row, col). Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	if m == nil {
		return ErrNilMatrix
	}
	idx, err := m.indexOf(row, col)
	if err != nil {
		return wrapf("Set", err)
	}
	m.data[idx] = v
	return nil
}

// Clone returns a deep, independent copy of m. Complexity: O(r*c).
func (m *Dense) Clone() *Dense {
	out := &Dense{r: m.r, c: m.c, data: make([]float64, len(m.data))}
	copy(out.data, m.data)
	return out
}
