package common

import (
	"bytes"
)

// CellInlineSize is sized so the common small datums (ints, floats,
// timestamps) fit without a heap allocation: an 8 byte payload plus the one
// byte datum flag.
const CellInlineSize = 9

// Cell holds the not-yet-decoded bytes of one datum for one row/column. A
// zero length cell means the value is absent for that row; whether that
// becomes the column default or NULL is decided at decode time.
//
// Cells are plain values. Copying a Cell whose contents fit inline copies no
// heap memory; larger contents spill to a shared slice, so use Clone when an
// independent copy is required.
type Cell struct {
	length int
	inline [CellInlineSize]byte
	spill  []byte
}

func NewCell(b []byte) Cell {
	var c Cell
	c.length = len(b)
	if c.length <= CellInlineSize {
		copy(c.inline[:], b)
	} else {
		c.spill = CopyByteSlice(b)
	}
	return c
}

func (c *Cell) Bytes() []byte {
	if c.spill != nil {
		return c.spill
	}
	return c.inline[:c.length]
}

func (c *Cell) Len() int {
	return c.length
}

func (c *Cell) IsEmpty() bool {
	return c.length == 0
}

func (c *Cell) Equal(other *Cell) bool {
	return bytes.Equal(c.Bytes(), other.Bytes())
}

// Clone returns an independently owned copy. Inline cells clone without
// allocating.
func (c *Cell) Clone() Cell {
	clone := *c
	if c.spill != nil {
		clone.spill = CopyByteSlice(c.spill)
	}
	return clone
}
