package ndarray

import (
	"fmt"
	"strconv"
	"strings"
)

// TypeCode identifies the element encoding of an Array.
type TypeCode uint8

const (
	TypeInvalid TypeCode = iota
	TypeBool
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint64
	TypeFloat16
	TypeFloat32
	TypeFloat64
	TypeComplex64
	TypeComplex128
	TypeStr
	TypeBytes
	TypeVoid
	TypeObject
	TypeDatetime64
	TypeTimedelta64
)

// DType describes the element type of an Array: an encoding code plus the
// element width in bytes. Width is fixed per array; Str, Bytes and Void
// carry a caller-chosen width, Object has width zero (elements live in a
// reference slice, not in the byte buffer).
type DType struct {
	Code TypeCode
	Size int
}

var (
	Bool        = DType{TypeBool, 1}
	Int8        = DType{TypeInt8, 1}
	Int16       = DType{TypeInt16, 2}
	Int32       = DType{TypeInt32, 4}
	Int64       = DType{TypeInt64, 8}
	Uint8       = DType{TypeUint8, 1}
	Uint16      = DType{TypeUint16, 2}
	Uint32      = DType{TypeUint32, 4}
	Uint64      = DType{TypeUint64, 8}
	Float32     = DType{TypeFloat32, 4}
	Float64     = DType{TypeFloat64, 8}
	Complex64   = DType{TypeComplex64, 8}
	Complex128  = DType{TypeComplex128, 16}
	Object      = DType{TypeObject, 0}
	Datetime64  = DType{TypeDatetime64, 8}
	Timedelta64 = DType{TypeTimedelta64, 8}

	// Float16 is storage-only: elements can be held and copied as raw
	// IEEE-754 binary16 bits but there is no typed accessor for them.
	Float16 = DType{TypeFloat16, 2}
)

// Str returns the dtype of fixed-width Unicode string elements occupying
// width bytes each (UTF-8, NUL padded).
func Str(width int) DType { return DType{TypeStr, width} }

// Bytes returns the dtype of fixed-width, NUL-terminated byte-string
// elements occupying width bytes each.
func Bytes(width int) DType { return DType{TypeBytes, width} }

// Void returns the dtype of opaque fixed-width byte records of the given
// width.
func Void(width int) DType { return DType{TypeVoid, width} }

func (dt DType) valid() bool {
	switch dt.Code {
	case TypeStr, TypeBytes, TypeVoid:
		return dt.Size > 0
	case TypeObject:
		return dt.Size == 0
	case TypeBool, TypeInt8, TypeUint8:
		return dt.Size == 1
	case TypeInt16, TypeUint16, TypeFloat16:
		return dt.Size == 2
	case TypeInt32, TypeUint32, TypeFloat32:
		return dt.Size == 4
	case TypeInt64, TypeUint64, TypeFloat64, TypeComplex64,
		TypeDatetime64, TypeTimedelta64:
		return dt.Size == 8
	case TypeComplex128:
		return dt.Size == 16
	}
	return false
}

var codeNames = map[TypeCode]string{
	TypeBool:        "bool",
	TypeInt8:        "int8",
	TypeInt16:       "int16",
	TypeInt32:       "int32",
	TypeInt64:       "int64",
	TypeUint8:       "uint8",
	TypeUint16:      "uint16",
	TypeUint32:      "uint32",
	TypeUint64:      "uint64",
	TypeFloat16:     "float16",
	TypeFloat32:     "float32",
	TypeFloat64:     "float64",
	TypeComplex64:   "complex64",
	TypeComplex128:  "complex128",
	TypeObject:      "object",
	TypeDatetime64:  "datetime64",
	TypeTimedelta64: "timedelta64",
}

// String renders the dtype in a form ParseDType accepts, e.g. "int64",
// "str16", "bytes8", "void32".
func (dt DType) String() string {
	switch dt.Code {
	case TypeStr:
		return "str" + strconv.Itoa(dt.Size)
	case TypeBytes:
		return "bytes" + strconv.Itoa(dt.Size)
	case TypeVoid:
		return "void" + strconv.Itoa(dt.Size)
	}
	if name, ok := codeNames[dt.Code]; ok {
		return name
	}
	return fmt.Sprintf("invalid(%d)", dt.Code)
}

// ParseDType is the inverse of DType.String.
func ParseDType(s string) (DType, error) {
	for code, name := range codeNames {
		if s == name {
			return DType{code, fixedWidth(code)}, nil
		}
	}
	for prefix, code := range map[string]TypeCode{
		"str": TypeStr, "bytes": TypeBytes, "void": TypeVoid,
	} {
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			width, err := strconv.Atoi(rest)
			if err == nil && width > 0 {
				return DType{code, width}, nil
			}
		}
	}
	return DType{}, fmt.Errorf("ndarray: cannot parse dtype %q", s)
}

func fixedWidth(code TypeCode) int {
	switch code {
	case TypeBool, TypeInt8, TypeUint8:
		return 1
	case TypeInt16, TypeUint16, TypeFloat16:
		return 2
	case TypeInt32, TypeUint32, TypeFloat32:
		return 4
	case TypeInt64, TypeUint64, TypeFloat64, TypeComplex64,
		TypeDatetime64, TypeTimedelta64:
		return 8
	case TypeComplex128:
		return 16
	}
	return 0
}
