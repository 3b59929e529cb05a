package common

import (
	"time"

	"github.com/lithodb/lithodb/errors"
)

// LazyColumn is one column of a batch, holding either the raw encoded cells
// as they arrived from storage or, after Decode has been called, a typed
// Vector. The transition from raw to decoded is one way and total: a column
// is never observable partially decoded.
//
// The accessors are deliberately unforgiving. A correctly written pipeline
// always knows which state it expects, so accessing the wrong state is a bug
// in the caller and panics rather than returning an error.
type LazyColumn struct {
	raw     []Cell
	decoded *Vector
}

// NewRawLazyColumn creates an empty raw column pre-sized for capacity rows.
func NewRawLazyColumn(capacity int) *LazyColumn {
	return &LazyColumn{raw: make([]Cell, 0, capacity)}
}

func (c *LazyColumn) IsRaw() bool {
	return c.decoded == nil
}

func (c *LazyColumn) IsDecoded() bool {
	return c.decoded != nil
}

// Raw returns the raw cells. Panics if the column is already decoded.
func (c *LazyColumn) Raw() []Cell {
	if c.decoded != nil {
		panic("LazyColumn is already decoded")
	}
	return c.raw
}

// Decoded returns the decoded vector. Panics if the column is still raw.
func (c *LazyColumn) Decoded() *Vector {
	if c.decoded == nil {
		panic("LazyColumn is not decoded")
	}
	return c.decoded
}

func (c *LazyColumn) Len() int {
	if c.decoded != nil {
		return c.decoded.Len()
	}
	return len(c.raw)
}

func (c *LazyColumn) Cap() int {
	if c.decoded != nil {
		return c.decoded.Cap()
	}
	return cap(c.raw)
}

func (c *LazyColumn) IsEmpty() bool {
	return c.Len() == 0
}

// PushRaw appends one raw datum. A zero length datum means the value is
// absent for the row. Panics if the column is already decoded.
func (c *LazyColumn) PushRaw(rawDatum []byte) {
	if c.decoded != nil {
		panic("LazyColumn is already decoded")
	}
	c.raw = append(c.raw, NewCell(rawDatum))
}

func (c *LazyColumn) Truncate(length int) {
	if c.decoded != nil {
		c.decoded.Truncate(length)
		return
	}
	if length < len(c.raw) {
		c.raw = c.raw[:length]
	}
}

func (c *LazyColumn) Clear() {
	c.Truncate(0)
}

// RetainByIndex keeps only the rows for which pred returns true, preserving
// relative order. pred is called exactly once per row, in increasing order of
// the row's index before any removal.
func (c *LazyColumn) RetainByIndex(pred func(rowIndex int) bool) {
	if c.decoded != nil {
		c.decoded.RetainByIndex(pred)
		return
	}
	kept := 0
	for i := range c.raw {
		if pred(i) {
			c.raw[kept] = c.raw[i]
			kept++
		}
	}
	c.raw = c.raw[:kept]
}

// Decode decodes the column according to colInfo if it is not already
// decoded. Cells with no value take the column's default value if there is
// one, decode to NULL if the column is nullable, and otherwise fail with a
// NOT NULL violation identifying the column. On any failure the column is
// left raw and unchanged.
func (c *LazyColumn) Decode(loc *time.Location, colInfo *ColumnInfo) error {
	if c.decoded != nil {
		return nil
	}
	evalType, err := colInfo.EvalType()
	if err != nil {
		return errors.WithStack(err)
	}
	vec := NewVector(evalType, c.Cap())
	for i := range c.raw {
		cell := &c.raw[i]
		var rawDatum []byte
		switch {
		case !cell.IsEmpty():
			rawDatum = cell.Bytes()
		case colInfo.DefaultValue != nil:
			rawDatum = colInfo.DefaultValue
		case colInfo.Nullable:
			rawDatum = NullDatum
		default:
			return errors.NewNotNullViolationError(colInfo.ID)
		}
		if err := vec.PushDatum(rawDatum, loc, colInfo); err != nil {
			return errors.WithStack(err)
		}
	}
	c.decoded = vec
	c.raw = nil
	return nil
}

// Clone returns a deep, independent copy. Raw columns are copied cell by
// cell; for inline-sized cells this avoids the per element bookkeeping of a
// generic slice deep copy.
func (c *LazyColumn) Clone() *LazyColumn {
	if c.decoded != nil {
		return &LazyColumn{decoded: c.decoded.Clone()}
	}
	raw := make([]Cell, len(c.raw), cap(c.raw))
	for i := range c.raw {
		raw[i] = c.raw[i].Clone()
	}
	return &LazyColumn{raw: raw}
}
