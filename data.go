package varimp

// Dataset is the capability interface shared by the two supported data
// containers: named-column tabular (Table) and plain row-indexable (Matrix).
// Implementations are treated as immutable once handed to the engine; subset
// operations return views or copies, never mutate the receiver.
type Dataset interface {
	NumRows() int
	NumVars() int

	// At returns the value at (row, col).
	At(row, col int) float32

	// SubsetColumns returns the same container kind restricted to the given
	// column indices, in the given order.
	SubsetColumns(cols []int) Dataset

	// SubsetRows returns the same container kind restricted to the given row
	// indices, in the given order. Repeated indices are allowed (sampling
	// with replacement).
	SubsetRows(rows []int) Dataset
}

// Table is a named-column tabular container. Columns are stored
// column-major: Cols[k][i] is the value of variable k at row i.
type Table struct {
	Cols  [][]float32
	Names []string
	Index map[string]int
}

// NewTable builds a Table from column names and column-major data.
// Every column must have the same length.
func NewTable(names []string, cols [][]float32) *Table {
	idx := make(map[string]int, len(names))
	for i, n := range names {
		idx[n] = i
	}
	return &Table{Cols: cols, Names: names, Index: idx}
}

func (t *Table) NumRows() int {
	if len(t.Cols) == 0 {
		return 0
	}
	return len(t.Cols[0])
}

func (t *Table) NumVars() int { return len(t.Cols) }

func (t *Table) At(row, col int) float32 { return t.Cols[col][row] }

// SubsetColumns shares the underlying column arrays (no copy).
func (t *Table) SubsetColumns(cols []int) Dataset {
	out := &Table{
		Cols:  make([][]float32, len(cols)),
		Names: make([]string, len(cols)),
		Index: make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		out.Cols[i] = t.Cols[c]
		out.Names[i] = t.Names[c]
		out.Index[t.Names[c]] = i
	}
	return out
}

// SubsetColumnsByName restricts the table to the named columns. Unknown
// names produce an InvalidDataError.
func (t *Table) SubsetColumnsByName(names []string) (*Table, error) {
	cols := make([]int, len(names))
	for i, n := range names {
		c, ok := t.Index[n]
		if !ok {
			return nil, &InvalidDataError{Reason: "unknown column name " + n}
		}
		cols[i] = c
	}
	return t.SubsetColumns(cols).(*Table), nil
}

// SubsetRows gathers the selected rows into fresh column arrays.
func (t *Table) SubsetRows(rows []int) Dataset {
	out := &Table{
		Cols:  make([][]float32, len(t.Cols)),
		Names: t.Names,
		Index: t.Index,
	}
	for k, col := range t.Cols {
		sub := make([]float32, len(rows))
		for i, r := range rows {
			sub[i] = col[r]
		}
		out.Cols[k] = sub
	}
	return out
}

// Matrix is a plain row-indexable container: Rows[i][k] is the value of
// variable k at row i.
type Matrix struct {
	Rows [][]float32
}

// NewMatrix builds a Matrix from row-major data.
func NewMatrix(rows [][]float32) *Matrix { return &Matrix{Rows: rows} }

func (m *Matrix) NumRows() int { return len(m.Rows) }

func (m *Matrix) NumVars() int {
	if len(m.Rows) == 0 {
		return 0
	}
	return len(m.Rows[0])
}

func (m *Matrix) At(row, col int) float32 { return m.Rows[row][col] }

func (m *Matrix) SubsetColumns(cols []int) Dataset {
	out := make([][]float32, len(m.Rows))
	for i, row := range m.Rows {
		sub := make([]float32, len(cols))
		for j, c := range cols {
			sub[j] = row[c]
		}
		out[i] = sub
	}
	return &Matrix{Rows: out}
}

// SubsetRows shares the underlying row slices (no copy).
func (m *Matrix) SubsetRows(rows []int) Dataset {
	out := make([][]float32, len(rows))
	for i, r := range rows {
		out[i] = m.Rows[r]
	}
	return &Matrix{Rows: out}
}

// DataPair bundles inputs and outputs for one data split. Column subsetting
// applies to the inputs only; row subsetting applies to both halves so that
// bootstrap resampling keeps inputs and outputs aligned.
type DataPair struct {
	Inputs  Dataset
	Outputs Dataset
}

func (p DataPair) subsetColumns(cols []int) DataPair {
	return DataPair{Inputs: p.Inputs.SubsetColumns(cols), Outputs: p.Outputs}
}

func (p DataPair) subsetRows(rows []int) DataPair {
	return DataPair{Inputs: p.Inputs.SubsetRows(rows), Outputs: p.Outputs.SubsetRows(rows)}
}
