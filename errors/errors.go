package errors

import "fmt"

type ErrorCode int

const (
	InternalError ErrorCode = iota
	InvalidConfiguration
	NotNullViolation
	UnknownColumnType
	InvalidDatum
	DatumTypeMismatch
	ValueOutOfRange
)

func NewInternalError(errRef string) LithoError {
	return NewLithoErrorf(InternalError, "Internal error - reference %s please consult server logs for details", errRef)
}

func NewInvalidConfigurationError(msg string) LithoError {
	return NewLithoErrorf(InvalidConfiguration, "Invalid configuration: %s", msg)
}

// NewNotNullViolationError is returned when decoding a column that has no
// value for a row, no default value and is not nullable.
func NewNotNullViolationError(columnID int64) LithoError {
	return NewLithoErrorf(NotNullViolation, "Column (id = %d) is NOT NULL, but no value is given", columnID)
}

func NewUnknownColumnTypeError(columnType int) LithoError {
	return NewLithoErrorf(UnknownColumnType, "Unknown column type %d", columnType)
}

func NewInvalidDatumError(msg string) LithoError {
	return NewLithoErrorf(InvalidDatum, "Invalid encoded datum: %s", msg)
}

func NewDatumTypeMismatchError(flag byte, columnID int64) LithoError {
	return NewLithoErrorf(DatumTypeMismatch, "Datum flag %d cannot be decoded into column (id = %d)", flag, columnID)
}

func NewValueOutOfRangeError(msg string) LithoError {
	return NewLithoErrorf(ValueOutOfRange, "Value out of range. %s", msg)
}

func NewLithoErrorf(errorCode ErrorCode, msgFormat string, args ...interface{}) LithoError {
	msg := fmt.Sprintf(fmt.Sprintf("LDB%04d - %s", errorCode, msgFormat), args...)
	return LithoError{Code: errorCode, Msg: msg}
}

func NewLithoError(errorCode ErrorCode, msg string) LithoError {
	return LithoError{Code: errorCode, Msg: msg}
}

// LithoError is any kind of error that is exposed to callers via external
// interfaces like the CLI
type LithoError struct {
	Code ErrorCode
	Msg  string
}

func (u LithoError) Error() string {
	return u.Msg
}
