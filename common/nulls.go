package common

import (
	"math"

	"github.com/RoaringBitmap/roaring"
)

// Nulls records which rows of a Vector are NULL. It wraps a roaring bitmap
// keyed by row index.
type Nulls struct {
	bm *roaring.Bitmap
}

func NewNulls() *Nulls {
	return &Nulls{bm: roaring.New()}
}

func (n *Nulls) Set(rowIndex int) {
	n.bm.Add(uint32(rowIndex))
}

func (n *Nulls) NullAt(rowIndex int) bool {
	return n.bm.Contains(uint32(rowIndex))
}

func (n *Nulls) Count() int {
	return int(n.bm.GetCardinality())
}

func (n *Nulls) Any() bool {
	return !n.bm.IsEmpty()
}

// Truncate removes any nulls recorded at row indexes >= length.
func (n *Nulls) Truncate(length int) {
	n.bm.RemoveRange(uint64(length), math.MaxUint64)
}

func (n *Nulls) Clone() *Nulls {
	return &Nulls{bm: n.bm.Clone()}
}
