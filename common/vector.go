package common

import (
	"time"
)

// Vector is a decoded column: one typed value (or NULL) per row, in row
// order. Rows that are NULL still occupy a slot in the typed storage so that
// row indexes line up across vectors.
type Vector struct {
	evalType EvalType
	nulls    *Nulls

	ints       []int64
	floats     []float64
	byteVals   [][]byte
	timestamps []time.Time
}

func NewVector(evalType EvalType, capacity int) *Vector {
	v := &Vector{
		evalType: evalType,
		nulls:    NewNulls(),
	}
	switch evalType {
	case EvalTypeInt:
		v.ints = make([]int64, 0, capacity)
	case EvalTypeFloat:
		v.floats = make([]float64, 0, capacity)
	case EvalTypeBytes:
		v.byteVals = make([][]byte, 0, capacity)
	case EvalTypeTimestamp:
		v.timestamps = make([]time.Time, 0, capacity)
	default:
		panic("unknown eval type")
	}
	return v
}

func (v *Vector) EvalType() EvalType {
	return v.evalType
}

func (v *Vector) Len() int {
	switch v.evalType {
	case EvalTypeInt:
		return len(v.ints)
	case EvalTypeFloat:
		return len(v.floats)
	case EvalTypeBytes:
		return len(v.byteVals)
	default:
		return len(v.timestamps)
	}
}

func (v *Vector) Cap() int {
	switch v.evalType {
	case EvalTypeInt:
		return cap(v.ints)
	case EvalTypeFloat:
		return cap(v.floats)
	case EvalTypeBytes:
		return cap(v.byteVals)
	default:
		return cap(v.timestamps)
	}
}

func (v *Vector) IsEmpty() bool {
	return v.Len() == 0
}

// PushDatum decodes one raw datum and appends the result. This is the only
// way values enter a Vector from the storage format.
func (v *Vector) PushDatum(raw []byte, loc *time.Location, colInfo *ColumnInfo) error {
	return DecodeDatumTo(v, raw, loc, colInfo)
}

func (v *Vector) AppendNull() {
	v.nulls.Set(v.Len())
	switch v.evalType {
	case EvalTypeInt:
		v.ints = append(v.ints, 0)
	case EvalTypeFloat:
		v.floats = append(v.floats, 0)
	case EvalTypeBytes:
		v.byteVals = append(v.byteVals, nil)
	default:
		v.timestamps = append(v.timestamps, time.Time{})
	}
}

func (v *Vector) AppendInt64(val int64) {
	v.ints = append(v.ints, val)
}

func (v *Vector) AppendFloat64(val float64) {
	v.floats = append(v.floats, val)
}

func (v *Vector) AppendBytes(val []byte) {
	v.byteVals = append(v.byteVals, val)
}

func (v *Vector) AppendTimestamp(val time.Time) {
	v.timestamps = append(v.timestamps, val)
}

func (v *Vector) IsNull(rowIndex int) bool {
	return v.nulls.NullAt(rowIndex)
}

func (v *Vector) Int64Value(rowIndex int) int64 {
	return v.ints[rowIndex]
}

func (v *Vector) Float64Value(rowIndex int) float64 {
	return v.floats[rowIndex]
}

func (v *Vector) BytesValue(rowIndex int) []byte {
	return v.byteVals[rowIndex]
}

func (v *Vector) StringValue(rowIndex int) string {
	return string(v.byteVals[rowIndex])
}

func (v *Vector) TimestampValue(rowIndex int) time.Time {
	return v.timestamps[rowIndex]
}

func (v *Vector) Truncate(length int) {
	if length >= v.Len() {
		return
	}
	switch v.evalType {
	case EvalTypeInt:
		v.ints = v.ints[:length]
	case EvalTypeFloat:
		v.floats = v.floats[:length]
	case EvalTypeBytes:
		v.byteVals = v.byteVals[:length]
	default:
		v.timestamps = v.timestamps[:length]
	}
	v.nulls.Truncate(length)
}

func (v *Vector) Clear() {
	v.Truncate(0)
}

// RetainByIndex keeps only the rows for which pred returns true, preserving
// relative order. pred is called exactly once per row, in increasing order of
// the row's index before any removal.
func (v *Vector) RetainByIndex(pred func(rowIndex int) bool) {
	length := v.Len()
	newNulls := NewNulls()
	kept := 0
	for i := 0; i < length; i++ {
		if !pred(i) {
			continue
		}
		switch v.evalType {
		case EvalTypeInt:
			v.ints[kept] = v.ints[i]
		case EvalTypeFloat:
			v.floats[kept] = v.floats[i]
		case EvalTypeBytes:
			v.byteVals[kept] = v.byteVals[i]
		default:
			v.timestamps[kept] = v.timestamps[i]
		}
		if v.nulls.NullAt(i) {
			newNulls.Set(kept)
		}
		kept++
	}
	switch v.evalType {
	case EvalTypeInt:
		v.ints = v.ints[:kept]
	case EvalTypeFloat:
		v.floats = v.floats[:kept]
	case EvalTypeBytes:
		v.byteVals = v.byteVals[:kept]
	default:
		v.timestamps = v.timestamps[:kept]
	}
	v.nulls = newNulls
}

// Clone returns a deep, independent copy.
func (v *Vector) Clone() *Vector {
	clone := &Vector{
		evalType: v.evalType,
		nulls:    v.nulls.Clone(),
	}
	switch v.evalType {
	case EvalTypeInt:
		clone.ints = make([]int64, len(v.ints), cap(v.ints))
		copy(clone.ints, v.ints)
	case EvalTypeFloat:
		clone.floats = make([]float64, len(v.floats), cap(v.floats))
		copy(clone.floats, v.floats)
	case EvalTypeBytes:
		clone.byteVals = make([][]byte, len(v.byteVals), cap(v.byteVals))
		for i, b := range v.byteVals {
			if b != nil {
				clone.byteVals[i] = CopyByteSlice(b)
			}
		}
	default:
		clone.timestamps = make([]time.Time, len(v.timestamps), cap(v.timestamps))
		copy(clone.timestamps, v.timestamps)
	}
	return clone
}
