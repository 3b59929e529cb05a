package common

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/lithodb/lithodb/errors"
)

// A datum is one encoded scalar value: a flag byte followed by a
// flag-specific payload. The comparable encodings (IntFlag, UintFlag,
// FloatFlag, BytesFlag) preserve value order under byte-wise comparison and
// are used inside keys; the compact encodings (VarintFlag, UvarintFlag,
// CompactBytesFlag) are smaller and are used inside row values.
const (
	NilFlag          byte = 0
	BytesFlag        byte = 1
	CompactBytesFlag byte = 2
	IntFlag          byte = 3
	UintFlag         byte = 4
	FloatFlag        byte = 5
	VarintFlag       byte = 8
	UvarintFlag      byte = 9
)

const signMask uint64 = 0x8000000000000000

const (
	bytesGroupSize  = 8
	bytesFullMarker = 0xFF
	bytesPadByte    = 0x00
)

// NullDatum is the encoding of an explicit SQL NULL.
var NullDatum = []byte{NilFlag}

func EncodeNullDatum(buffer []byte) []byte {
	return append(buffer, NilFlag)
}

func EncodeIntDatum(buffer []byte, v int64, comparable bool) []byte {
	if comparable {
		buffer = append(buffer, IntFlag)
		return AppendUint64ToBufferBE(buffer, uint64(v)^signMask)
	}
	buffer = append(buffer, VarintFlag)
	return AppendVarintToBuffer(buffer, v)
}

func EncodeUintDatum(buffer []byte, v uint64, comparable bool) []byte {
	if comparable {
		buffer = append(buffer, UintFlag)
		return AppendUint64ToBufferBE(buffer, v)
	}
	buffer = append(buffer, UvarintFlag)
	return AppendUvarintToBuffer(buffer, v)
}

// EncodeFloat64Datum always uses the comparable encoding; the datum format
// has no compact float form.
func EncodeFloat64Datum(buffer []byte, v float64) []byte {
	buffer = append(buffer, FloatFlag)
	return AppendUint64ToBufferBE(buffer, encodeFloatToCmpUint64(v))
}

func EncodeBytesDatum(buffer []byte, b []byte, comparable bool) []byte {
	if comparable {
		buffer = append(buffer, BytesFlag)
		return appendMemComparableBytes(buffer, b)
	}
	buffer = append(buffer, CompactBytesFlag)
	buffer = AppendVarintToBuffer(buffer, int64(len(b)))
	return append(buffer, b...)
}

func EncodeStringDatum(buffer []byte, s string, comparable bool) []byte {
	return EncodeBytesDatum(buffer, []byte(s), comparable)
}

// EncodeTimestampDatum encodes the instant as unix nanoseconds riding the
// uint flags. The wall-clock interpretation is applied at decode time using
// the session time zone.
func EncodeTimestampDatum(buffer []byte, ts time.Time, comparable bool) []byte {
	return EncodeUintDatum(buffer, uint64(ts.UnixNano()), comparable)
}

// DecodeDatumTo decodes one datum and appends the resulting value (or NULL)
// to vec. The datum must be compatible with the column's evaluation type,
// otherwise a DatumTypeMismatch error is returned and vec is unchanged.
func DecodeDatumTo(vec *Vector, raw []byte, loc *time.Location, colInfo *ColumnInfo) error {
	if len(raw) == 0 {
		return errors.NewInvalidDatumError("zero length datum")
	}
	flag, payload := raw[0], raw[1:]
	if flag == NilFlag {
		vec.AppendNull()
		return nil
	}
	switch vec.EvalType() {
	case EvalTypeInt:
		v, err := decodeIntPayload(flag, payload, colInfo)
		if err != nil {
			return err
		}
		vec.AppendInt64(v)
	case EvalTypeFloat:
		if flag != FloatFlag {
			return errors.NewDatumTypeMismatchError(flag, colInfo.ID)
		}
		if len(payload) < 8 {
			return errors.NewInvalidDatumError("float datum too short")
		}
		u, _ := ReadUint64FromBufferBE(payload, 0)
		vec.AppendFloat64(decodeFloatFromCmpUint64(u))
	case EvalTypeBytes:
		b, err := decodeBytesPayload(flag, payload, colInfo)
		if err != nil {
			return err
		}
		vec.AppendBytes(b)
	case EvalTypeTimestamp:
		u, err := decodeUintPayload(flag, payload, colInfo)
		if err != nil {
			return err
		}
		vec.AppendTimestamp(time.Unix(0, int64(u)).In(loc))
	default:
		return errors.NewUnknownColumnTypeError(int(colInfo.Type))
	}
	return nil
}

// CutOne splits the first datum off b without decoding it, returning the
// datum and the remainder.
func CutOne(b []byte) (datum []byte, remain []byte, err error) {
	l, err := datumLen(b)
	if err != nil {
		return nil, nil, err
	}
	return b[:l], b[l:], nil
}

func datumLen(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, errors.NewInvalidDatumError("zero length datum")
	}
	switch b[0] {
	case NilFlag:
		return 1, nil
	case IntFlag, UintFlag, FloatFlag:
		if len(b) < 9 {
			return 0, errors.NewInvalidDatumError("fixed width datum too short")
		}
		return 9, nil
	case VarintFlag:
		_, n := binary.Varint(b[1:])
		if n <= 0 {
			return 0, errors.NewInvalidDatumError("malformed varint datum")
		}
		return 1 + n, nil
	case UvarintFlag:
		_, n := binary.Uvarint(b[1:])
		if n <= 0 {
			return 0, errors.NewInvalidDatumError("malformed uvarint datum")
		}
		return 1 + n, nil
	case CompactBytesFlag:
		v, n := binary.Varint(b[1:])
		if n <= 0 || v < 0 {
			return 0, errors.NewInvalidDatumError("malformed compact bytes datum")
		}
		l := 1 + n + int(v)
		if len(b) < l {
			return 0, errors.NewInvalidDatumError("compact bytes datum too short")
		}
		return l, nil
	case BytesFlag:
		offset := 1
		for {
			if len(b) < offset+bytesGroupSize+1 {
				return 0, errors.NewInvalidDatumError("memcomparable bytes datum too short")
			}
			marker := b[offset+bytesGroupSize]
			offset += bytesGroupSize + 1
			if marker != bytesFullMarker {
				return offset, nil
			}
		}
	default:
		return 0, errors.NewInvalidDatumError("unknown datum flag")
	}
}

func decodeIntPayload(flag byte, payload []byte, colInfo *ColumnInfo) (int64, error) {
	switch flag {
	case IntFlag:
		if len(payload) < 8 {
			return 0, errors.NewInvalidDatumError("int datum too short")
		}
		u, _ := ReadUint64FromBufferBE(payload, 0)
		return int64(u ^ signMask), nil
	case VarintFlag:
		v, n := binary.Varint(payload)
		if n <= 0 {
			return 0, errors.NewInvalidDatumError("malformed varint datum")
		}
		return v, nil
	case UintFlag, UvarintFlag:
		u, err := decodeUintPayload(flag, payload, colInfo)
		if err != nil {
			return 0, err
		}
		return int64(u), nil
	default:
		return 0, errors.NewDatumTypeMismatchError(flag, colInfo.ID)
	}
}

func decodeUintPayload(flag byte, payload []byte, colInfo *ColumnInfo) (uint64, error) {
	switch flag {
	case UintFlag:
		if len(payload) < 8 {
			return 0, errors.NewInvalidDatumError("uint datum too short")
		}
		u, _ := ReadUint64FromBufferBE(payload, 0)
		return u, nil
	case UvarintFlag:
		u, n := binary.Uvarint(payload)
		if n <= 0 {
			return 0, errors.NewInvalidDatumError("malformed uvarint datum")
		}
		return u, nil
	default:
		return 0, errors.NewDatumTypeMismatchError(flag, colInfo.ID)
	}
}

func decodeBytesPayload(flag byte, payload []byte, colInfo *ColumnInfo) ([]byte, error) {
	switch flag {
	case CompactBytesFlag:
		v, n := binary.Varint(payload)
		if n <= 0 || v < 0 || len(payload) < n+int(v) {
			return nil, errors.NewInvalidDatumError("malformed compact bytes datum")
		}
		return CopyByteSlice(payload[n : n+int(v)]), nil
	case BytesFlag:
		return decodeMemComparableBytes(payload)
	default:
		return nil, errors.NewDatumTypeMismatchError(flag, colInfo.ID)
	}
}

func encodeFloatToCmpUint64(f float64) uint64 {
	u := math.Float64bits(f)
	if u&signMask == 0 {
		return u | signMask
	}
	return ^u
}

func decodeFloatFromCmpUint64(u uint64) float64 {
	if u&signMask != 0 {
		u &^= signMask
	} else {
		u = ^u
	}
	return math.Float64frombits(u)
}

// appendMemComparableBytes encodes b in groups of 8 bytes. Each group is
// padded to 8 bytes and followed by a marker byte recording how many of the
// group's bytes are real data; a full group carries the 0xFF marker and the
// encoding continues with another group.
func appendMemComparableBytes(buffer []byte, b []byte) []byte {
	for {
		remain := len(b)
		if remain >= bytesGroupSize {
			buffer = append(buffer, b[:bytesGroupSize]...)
			b = b[bytesGroupSize:]
			if remain == bytesGroupSize {
				// Terminating empty group so decode knows where to stop.
				buffer = append(buffer, bytesFullMarker)
				for i := 0; i < bytesGroupSize; i++ {
					buffer = append(buffer, bytesPadByte)
				}
				buffer = append(buffer, byte(bytesFullMarker-bytesGroupSize))
				return buffer
			}
			buffer = append(buffer, bytesFullMarker)
			continue
		}
		buffer = append(buffer, b...)
		for i := remain; i < bytesGroupSize; i++ {
			buffer = append(buffer, bytesPadByte)
		}
		buffer = append(buffer, byte(bytesFullMarker-(bytesGroupSize-remain)))
		return buffer
	}
}

func decodeMemComparableBytes(payload []byte) ([]byte, error) {
	var out []byte
	offset := 0
	for {
		if len(payload) < offset+bytesGroupSize+1 {
			return nil, errors.NewInvalidDatumError("memcomparable bytes datum too short")
		}
		group := payload[offset : offset+bytesGroupSize]
		marker := payload[offset+bytesGroupSize]
		offset += bytesGroupSize + 1
		if marker == bytesFullMarker {
			out = append(out, group...)
			continue
		}
		pad := int(bytesFullMarker) - int(marker)
		if pad < 0 || pad > bytesGroupSize {
			return nil, errors.NewInvalidDatumError("malformed memcomparable bytes marker")
		}
		real := bytesGroupSize - pad
		out = append(out, group[:real]...)
		return out, nil
	}
}
