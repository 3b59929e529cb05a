package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCopyByteSlice(t *testing.T) {
	b := []byte{1, 2, 3}
	c := CopyByteSlice(b)
	require.Equal(t, b, c)
	b[0] = 99
	require.Equal(t, byte(1), c[0])
}

func TestByteSliceToStringZeroCopy(t *testing.T) {
	require.Equal(t, "quux", ByteSliceToStringZeroCopy([]byte("quux")))
	require.Equal(t, "", ByteSliceToStringZeroCopy(nil))
}

func TestIncrementBytesBigEndian(t *testing.T) {
	require.Equal(t, []byte{0, 0, 0, 1}, IncrementBytesBigEndian([]byte{0, 0, 0, 0}))
	require.Equal(t, []byte{0, 0, 1, 0}, IncrementBytesBigEndian([]byte{0, 0, 0, 255}))
	require.Equal(t, []byte{0, 1, 0, 0}, IncrementBytesBigEndian([]byte{0, 0, 255, 255}))
	require.Equal(t, []byte{255, 255, 255, 255}, IncrementBytesBigEndian([]byte{255, 255, 255, 254}))
}

func TestIncrementBytesBigEndianDoesNotMutateInput(t *testing.T) {
	in := []byte{0, 0, 255}
	out := IncrementBytesBigEndian(in)
	require.Equal(t, []byte{0, 0, 255}, in)
	require.Equal(t, []byte{0, 1, 0}, out)
}

func TestIncrementBytesBigEndianAllBitsSetPanics(t *testing.T) {
	require.Panics(t, func() {
		IncrementBytesBigEndian([]byte{255, 255})
	})
}
