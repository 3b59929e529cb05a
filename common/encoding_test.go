package common

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeUint64BE(t *testing.T) {
	for _, v := range []uint64{0, 1, math.MaxUint64, 1 << 33} {
		buffer := AppendUint64ToBufferBE(nil, v)
		require.Equal(t, 8, len(buffer))
		decoded, offset := ReadUint64FromBufferBE(buffer, 0)
		require.Equal(t, v, decoded)
		require.Equal(t, 8, offset)
	}
}

func TestEncodeDecodeUint32BE(t *testing.T) {
	for _, v := range []uint32{0, 1, math.MaxUint32, 1 << 17} {
		buffer := AppendUint32ToBufferBE(nil, v)
		require.Equal(t, 4, len(buffer))
		decoded, offset := ReadUint32FromBufferBE(buffer, 0)
		require.Equal(t, v, decoded)
		require.Equal(t, 4, offset)
	}
}

func TestEncodeDecodeFloat64BE(t *testing.T) {
	for _, v := range []float64{0, -1.5, 1.5, math.MaxFloat64, -math.MaxFloat64} {
		buffer := AppendFloat64ToBufferBE(nil, v)
		decoded, offset := ReadFloat64FromBufferBE(buffer, 0)
		require.Equal(t, v, decoded)
		require.Equal(t, 8, offset)
	}
}

func TestAppendVarintToBuffer(t *testing.T) {
	for _, v := range []int64{0, 1, -1, math.MaxInt64, math.MinInt64} {
		buffer := AppendVarintToBuffer(nil, v)
		decoded, n := binary.Varint(buffer)
		require.Equal(t, v, decoded)
		require.Equal(t, len(buffer), n)
	}
}

func TestAppendUvarintToBuffer(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, math.MaxUint64} {
		buffer := AppendUvarintToBuffer(nil, v)
		decoded, n := binary.Uvarint(buffer)
		require.Equal(t, v, decoded)
		require.Equal(t, len(buffer), n)
	}
}
