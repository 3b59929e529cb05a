package common

import (
	"fmt"
	"time"
)

// LazyRows is the unit of vectorized execution: a set of columns with equal
// row counts, each either raw or decoded independently of the others. Rows
// are pushed raw, columns are decoded on demand, and filtering shrinks every
// column in lock-step.
type LazyRows struct {
	columns []*LazyColumn

	// The optional error that occurred while producing this batch. Once set,
	// by convention no more rows are pushed; that convention is the producing
	// operator's to keep, not enforced here.
	err error
}

// NewLazyRows creates a batch of columnCount raw columns, each pre-sized for
// rowsCapacity rows.
func NewLazyRows(columnCount int, rowsCapacity int) *LazyRows {
	columns := make([]*LazyColumn, columnCount)
	for i := range columns {
		columns[i] = NewRawLazyColumn(rowsCapacity)
	}
	return &LazyRows{columns: columns}
}

func (r *LazyRows) ColumnCount() int {
	return len(r.columns)
}

// RowCount is the length of the first column. A batch with no columns cannot
// represent a row count and reports 0.
func (r *LazyRows) RowCount() int {
	if len(r.columns) == 0 {
		return 0
	}
	return r.columns[0].Len()
}

// RowsCapacity is the number of rows the batch can hold without reallocating.
func (r *LazyRows) RowsCapacity() int {
	if len(r.columns) == 0 {
		return 0
	}
	return r.columns[0].Cap()
}

// PushRawRow pushes one raw datum per column. A zero length datum marks the
// value absent for that cell. Panics if the number of datums does not match
// the number of columns or if any column has already been decoded.
func (r *LazyRows) PushRawRow(rawRow [][]byte) {
	if len(rawRow) != len(r.columns) {
		panic(fmt.Sprintf("raw row has %d values, batch has %d columns", len(rawRow), len(r.columns)))
	}
	for colIndex, rawDatum := range rawRow {
		r.columns[colIndex].PushRaw(rawDatum)
	}
}

// EnsureColumnDecoded decodes the column at columnIndex if it is not decoded
// yet and returns the decoded vector. Other columns are untouched.
func (r *LazyRows) EnsureColumnDecoded(columnIndex int, loc *time.Location, colInfo *ColumnInfo) (*Vector, error) {
	col := r.columns[columnIndex]
	if col.Len() != r.RowCount() {
		panic(fmt.Sprintf("column %d has %d rows, batch has %d", columnIndex, col.Len(), r.RowCount()))
	}
	if err := col.Decode(loc, colInfo); err != nil {
		return nil, err
	}
	return col.Decoded(), nil
}

func (r *LazyRows) IsColumnDecoded(columnIndex int) bool {
	return r.columns[columnIndex].IsDecoded()
}

// Column returns the column at columnIndex regardless of its state.
func (r *LazyRows) Column(columnIndex int) *LazyColumn {
	return r.columns[columnIndex]
}

// RetainByIndex keeps only the rows for which pred returns true, applied
// identically to every column. pred is invoked once per row; its decisions
// are recorded in a mask so every column sees the same outcome for a given
// row even if pred is not pure.
func (r *LazyRows) RetainByIndex(pred func(rowIndex int) bool) {
	rowCount := r.RowCount()
	if rowCount == 0 {
		return
	}
	mask := make([]bool, rowCount)
	kept := 0
	for i := 0; i < rowCount; i++ {
		if pred(i) {
			mask[i] = true
			kept++
		}
	}
	for colIndex, col := range r.columns {
		if col.Len() != rowCount {
			panic(fmt.Sprintf("column %d has %d rows, batch has %d", colIndex, col.Len(), rowCount))
		}
		col.RetainByIndex(func(rowIndex int) bool {
			return mask[rowIndex]
		})
		if col.Len() != kept {
			panic(fmt.Sprintf("column %d has %d rows after filtering, expected %d", colIndex, col.Len(), kept))
		}
	}
}

// Truncate shrinks every column to length rows.
func (r *LazyRows) Truncate(length int) {
	for _, col := range r.columns {
		col.Truncate(length)
	}
}

func (r *LazyRows) Clear() {
	r.Truncate(0)
}

// SetError latches a terminal error onto the batch.
func (r *LazyRows) SetError(err error) {
	r.err = err
}

func (r *LazyRows) Err() error {
	return r.err
}

// Clone returns a deep, independent copy of all columns and the error slot.
func (r *LazyRows) Clone() *LazyRows {
	columns := make([]*LazyColumn, len(r.columns))
	for i, col := range r.columns {
		columns[i] = col.Clone()
	}
	return &LazyRows{columns: columns, err: r.err}
}
