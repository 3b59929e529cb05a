package common

import (
	"encoding/binary"
	"math"
)

var bigEndian = binary.BigEndian

// Keys and comparable datums are encoded big-endian so that the byte-wise
// ordering of the encoding matches the ordering of the values.

func AppendUint64ToBufferBE(buffer []byte, v uint64) []byte {
	return append(buffer, byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32), byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func ReadUint64FromBufferBE(buffer []byte, offset int) (uint64, int) {
	return bigEndian.Uint64(buffer[offset:]), offset + 8
}

func AppendUint32ToBufferBE(buffer []byte, v uint32) []byte {
	return append(buffer, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func ReadUint32FromBufferBE(buffer []byte, offset int) (uint32, int) {
	return bigEndian.Uint32(buffer[offset:]), offset + 4
}

func AppendFloat64ToBufferBE(buffer []byte, value float64) []byte {
	u := math.Float64bits(value)
	return AppendUint64ToBufferBE(buffer, u)
}

func ReadFloat64FromBufferBE(buffer []byte, offset int) (val float64, off int) {
	var u uint64
	u, offset = ReadUint64FromBufferBE(buffer, offset)
	val = math.Float64frombits(u)
	return val, offset
}

// AppendUvarintToBuffer appends v in the standard library varint encoding.
func AppendUvarintToBuffer(buffer []byte, v uint64) []byte {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	return append(buffer, tmp[:n]...)
}

func AppendVarintToBuffer(buffer []byte, v int64) []byte {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutVarint(tmp[:], v)
	return append(buffer, tmp[:n]...)
}
