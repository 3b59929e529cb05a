package common

import (
	"fmt"
	"time"

	"github.com/lithodb/lithodb/errors"
)

type Type int

const (
	TypeUnknown Type = iota
	TypeTinyInt
	TypeInt
	TypeBigInt
	TypeDouble
	TypeVarchar
	TypeTimestamp
)

// EvalType is the representation a column decodes into. Several column types
// share an evaluation type, e.g. all the int widths decode into int64.
type EvalType int

const (
	EvalTypeInt EvalType = iota
	EvalTypeFloat
	EvalTypeBytes
	EvalTypeTimestamp
)

var (
	TinyIntColumnType   = ColumnType{Type: TypeTinyInt}
	IntColumnType       = ColumnType{Type: TypeInt}
	BigIntColumnType    = ColumnType{Type: TypeBigInt}
	DoubleColumnType    = ColumnType{Type: TypeDouble}
	VarcharColumnType   = ColumnType{Type: TypeVarchar}
	TimestampColumnType = ColumnType{Type: TypeTimestamp}
	UnknownColumnType   = ColumnType{Type: TypeUnknown}

	// ColumnTypesByType allows lookup of ColumnType by Type.
	ColumnTypesByType = map[Type]ColumnType{
		TypeTinyInt:   TinyIntColumnType,
		TypeInt:       IntColumnType,
		TypeBigInt:    BigIntColumnType,
		TypeDouble:    DoubleColumnType,
		TypeVarchar:   VarcharColumnType,
		TypeTimestamp: TimestampColumnType,
	}
)

type ColumnType struct {
	Type Type
}

// EvalType returns the evaluation type a column of this type decodes into.
func (ct ColumnType) EvalType() (EvalType, error) {
	switch ct.Type {
	case TypeTinyInt, TypeInt, TypeBigInt:
		return EvalTypeInt, nil
	case TypeDouble:
		return EvalTypeFloat, nil
	case TypeVarchar:
		return EvalTypeBytes, nil
	case TypeTimestamp:
		return EvalTypeTimestamp, nil
	default:
		return 0, errors.NewUnknownColumnTypeError(int(ct.Type))
	}
}

// ColumnInfo is the per column schema metadata consumed when decoding raw
// datums. DefaultValue, if non nil, is an encoded datum that is substituted
// for rows where the column has no value. ID is only used to identify the
// column in error messages.
type ColumnInfo struct {
	ID   int64
	Name string
	ColumnType
	Nullable     bool
	DefaultValue []byte
}

// InferColumnType from Go type.
func InferColumnType(value interface{}) ColumnType {
	switch value.(type) {
	case string:
		return VarcharColumnType
	case int, int64:
		return BigIntColumnType
	case int16, int32:
		return IntColumnType
	case int8:
		return TinyIntColumnType
	case float64:
		return DoubleColumnType
	case time.Time:
		return TimestampColumnType
	default:
		panic(fmt.Sprintf("can't infer column of type %T", value))
	}
}

type TableInfo struct {
	ID             uint64
	SchemaName     string
	Name           string
	PrimaryKeyCols []int
	Columns        []*ColumnInfo
}

func (i *TableInfo) String() string {
	return fmt.Sprintf("table[name=%s.%s,id=%d]", i.SchemaName, i.Name, i.ID)
}

func (i *TableInfo) ColumnCount() int {
	return len(i.Columns)
}
