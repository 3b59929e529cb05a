package common

import (
	"bytes"
	"math"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testIntColumn = &ColumnInfo{ID: 1, Name: "c_int", ColumnType: BigIntColumnType, Nullable: true}
var testFloatColumn = &ColumnInfo{ID: 2, Name: "c_float", ColumnType: DoubleColumnType, Nullable: true}
var testBytesColumn = &ColumnInfo{ID: 3, Name: "c_bytes", ColumnType: VarcharColumnType, Nullable: true}
var testTimestampColumn = &ColumnInfo{ID: 4, Name: "c_ts", ColumnType: TimestampColumnType, Nullable: true}

func TestEncodeDecodeIntDatum(t *testing.T) {
	values := []int64{0, 1, -1, 127, -128, 1 << 20, -(1 << 20), math.MaxInt64, math.MinInt64}
	for _, comparable := range []bool{true, false} {
		vec := NewVector(EvalTypeInt, len(values))
		for _, v := range values {
			raw := EncodeIntDatum(nil, v, comparable)
			require.NoError(t, DecodeDatumTo(vec, raw, time.UTC, testIntColumn))
		}
		for i, v := range values {
			require.False(t, vec.IsNull(i))
			require.Equal(t, v, vec.Int64Value(i))
		}
	}
}

func TestEncodeDecodeUintDatumIntoIntColumn(t *testing.T) {
	values := []uint64{0, 1, 255, 1 << 40}
	for _, comparable := range []bool{true, false} {
		vec := NewVector(EvalTypeInt, len(values))
		for _, v := range values {
			raw := EncodeUintDatum(nil, v, comparable)
			require.NoError(t, DecodeDatumTo(vec, raw, time.UTC, testIntColumn))
		}
		for i, v := range values {
			require.Equal(t, int64(v), vec.Int64Value(i))
		}
	}
}

func TestEncodeDecodeFloatDatum(t *testing.T) {
	values := []float64{0, 1.25, -1.25, math.MaxFloat64, -math.MaxFloat64, math.SmallestNonzeroFloat64}
	vec := NewVector(EvalTypeFloat, len(values))
	for _, v := range values {
		raw := EncodeFloat64Datum(nil, v)
		require.NoError(t, DecodeDatumTo(vec, raw, time.UTC, testFloatColumn))
	}
	for i, v := range values {
		require.Equal(t, v, vec.Float64Value(i))
	}
}

func TestEncodeDecodeBytesDatum(t *testing.T) {
	var values [][]byte
	for _, length := range []int{0, 1, 7, 8, 9, 15, 16, 17, 100} {
		values = append(values, seqBytes(length))
	}
	for _, comparable := range []bool{true, false} {
		vec := NewVector(EvalTypeBytes, len(values))
		for _, v := range values {
			raw := EncodeBytesDatum(nil, v, comparable)
			require.NoError(t, DecodeDatumTo(vec, raw, time.UTC, testBytesColumn))
		}
		for i, v := range values {
			require.Equal(t, v, vec.BytesValue(i))
		}
	}
}

func TestEncodeDecodeStringDatum(t *testing.T) {
	vec := NewVector(EvalTypeBytes, 2)
	require.NoError(t, DecodeDatumTo(vec, EncodeStringDatum(nil, "armadillos", true), time.UTC, testBytesColumn))
	require.NoError(t, DecodeDatumTo(vec, EncodeStringDatum(nil, "aardvarks", false), time.UTC, testBytesColumn))
	require.Equal(t, "armadillos", vec.StringValue(0))
	require.Equal(t, "aardvarks", vec.StringValue(1))
}

func TestEncodeDecodeTimestampDatum(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	ts := time.Date(2021, time.April, 12, 9, 0, 30, 12345, time.UTC)
	for _, comparable := range []bool{true, false} {
		vec := NewVector(EvalTypeTimestamp, 1)
		raw := EncodeTimestampDatum(nil, ts, comparable)
		require.NoError(t, DecodeDatumTo(vec, raw, loc, testTimestampColumn))
		decoded := vec.TimestampValue(0)
		require.True(t, ts.Equal(decoded))
		require.Equal(t, loc, decoded.Location())
	}
}

func TestDecodeNullDatum(t *testing.T) {
	for _, evalType := range []EvalType{EvalTypeInt, EvalTypeFloat, EvalTypeBytes, EvalTypeTimestamp} {
		vec := NewVector(evalType, 1)
		require.NoError(t, DecodeDatumTo(vec, NullDatum, time.UTC, testIntColumn))
		require.Equal(t, 1, vec.Len())
		require.True(t, vec.IsNull(0))
	}
}

func TestDecodeDatumTypeMismatch(t *testing.T) {
	raw := EncodeFloat64Datum(nil, 1.5)
	vec := NewVector(EvalTypeInt, 1)
	err := DecodeDatumTo(vec, raw, time.UTC, testIntColumn)
	require.Error(t, err)
	// A failed decode must not leave a partial value behind.
	require.Equal(t, 0, vec.Len())

	raw = EncodeIntDatum(nil, 100, true)
	vec = NewVector(EvalTypeFloat, 1)
	require.Error(t, DecodeDatumTo(vec, raw, time.UTC, testFloatColumn))
	require.Equal(t, 0, vec.Len())
}

func TestDecodeMalformedDatum(t *testing.T) {
	vec := NewVector(EvalTypeInt, 1)
	require.Error(t, DecodeDatumTo(vec, []byte{}, time.UTC, testIntColumn))
	require.Error(t, DecodeDatumTo(vec, []byte{IntFlag, 1, 2, 3}, time.UTC, testIntColumn))
	require.Error(t, DecodeDatumTo(vec, []byte{0x77}, time.UTC, testIntColumn))

	bvec := NewVector(EvalTypeBytes, 1)
	require.Error(t, DecodeDatumTo(bvec, []byte{BytesFlag, 1, 2, 3}, time.UTC, testBytesColumn))
}

func TestComparableIntEncodingPreservesOrder(t *testing.T) {
	values := []int64{math.MinInt64, -1000, -1, 0, 1, 42, math.MaxInt64}
	var encoded [][]byte
	for _, v := range values {
		encoded = append(encoded, EncodeIntDatum(nil, v, true))
	}
	require.True(t, sort.SliceIsSorted(encoded, func(i, j int) bool {
		return bytes.Compare(encoded[i], encoded[j]) < 0
	}))
}

func TestComparableFloatEncodingPreservesOrder(t *testing.T) {
	values := []float64{math.Inf(-1), -math.MaxFloat64, -1.5, 0, 1.5, math.MaxFloat64, math.Inf(1)}
	var encoded [][]byte
	for _, v := range values {
		encoded = append(encoded, EncodeFloat64Datum(nil, v))
	}
	require.True(t, sort.SliceIsSorted(encoded, func(i, j int) bool {
		return bytes.Compare(encoded[i], encoded[j]) < 0
	}))
}

func TestComparableBytesEncodingPreservesOrder(t *testing.T) {
	values := [][]byte{{}, {0}, {0, 0}, seqBytes(8), seqBytes(9), {1}, {1, 2, 3}, {0xFF}, {0xFF, 0xFF}}
	var encoded [][]byte
	for _, v := range values {
		encoded = append(encoded, EncodeBytesDatum(nil, v, true))
	}
	require.True(t, sort.SliceIsSorted(encoded, func(i, j int) bool {
		return bytes.Compare(encoded[i], encoded[j]) < 0
	}))
}

func TestCutOne(t *testing.T) {
	var buffer []byte
	buffer = EncodeIntDatum(buffer, 12345, false)
	buffer = EncodeNullDatum(buffer)
	buffer = EncodeFloat64Datum(buffer, 2.5)
	buffer = EncodeBytesDatum(buffer, seqBytes(20), true)
	buffer = EncodeStringDatum(buffer, "tail", false)

	var datums [][]byte
	remain := buffer
	for len(remain) > 0 {
		var datum []byte
		var err error
		datum, remain, err = CutOne(remain)
		require.NoError(t, err)
		datums = append(datums, datum)
	}
	require.Equal(t, 5, len(datums))
	require.Equal(t, EncodeIntDatum(nil, 12345, false), datums[0])
	require.Equal(t, NullDatum, datums[1])
	require.Equal(t, EncodeFloat64Datum(nil, 2.5), datums[2])
	require.Equal(t, EncodeBytesDatum(nil, seqBytes(20), true), datums[3])
	require.Equal(t, EncodeStringDatum(nil, "tail", false), datums[4])
}

func TestCutOneMalformed(t *testing.T) {
	_, _, err := CutOne(nil)
	require.Error(t, err)
	_, _, err = CutOne([]byte{FloatFlag, 1, 2})
	require.Error(t, err)
	_, _, err = CutOne([]byte{0x77, 1, 2})
	require.Error(t, err)
}
