package ndarray

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/rickb777/period"
)

const datetimeLayout = "2006-01-02T15:04:05.999999999Z"

// String renders the array in a dense multi-line layout: one bracket pair
// per dimension, elements separated by single spaces, subarrays of an
// N-dimensional array separated by N-1 newlines. The rendering is a pure
// function of dtype, shape and contents.
func (a *Array) String() string {
	return layout(a.shape, a.formatElems(), 0)
}

// Literal is the single-line, whitespace-collapsed form of String.
func (a *Array) Literal() string {
	return strings.Join(strings.Fields(a.String()), " ")
}

func layout(shape []int, elems []string, depth int) string {
	if len(shape) == 0 {
		return elems[0]
	}
	if len(shape) == 1 {
		return "[" + strings.Join(elems, " ") + "]"
	}
	n := shape[0]
	if n == 0 {
		return "[]"
	}
	stride := len(elems) / n
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = layout(shape[1:], elems[i*stride:(i+1)*stride], depth+1)
	}
	sep := strings.Repeat("\n", len(shape)-1) + strings.Repeat(" ", depth+1)
	return "[" + strings.Join(parts, sep) + "]"
}

func (a *Array) formatElems() []string {
	n := a.Size()
	out := make([]string, max(n, 1))
	if n == 0 {
		return out
	}
	for i := 0; i < n; i++ {
		out[i] = a.formatElem(i)
	}
	return out
}

func (a *Array) formatElem(i int) string {
	switch a.dtype.Code {
	case TypeBool:
		return strconv.FormatBool(getScalar[bool](a, i))
	case TypeInt8:
		return strconv.FormatInt(int64(getScalar[int8](a, i)), 10)
	case TypeInt16:
		return strconv.FormatInt(int64(getScalar[int16](a, i)), 10)
	case TypeInt32:
		return strconv.FormatInt(int64(getScalar[int32](a, i)), 10)
	case TypeInt64:
		return strconv.FormatInt(getScalar[int64](a, i), 10)
	case TypeUint8:
		return strconv.FormatUint(uint64(getScalar[uint8](a, i)), 10)
	case TypeUint16:
		return strconv.FormatUint(uint64(getScalar[uint16](a, i)), 10)
	case TypeUint32:
		return strconv.FormatUint(uint64(getScalar[uint32](a, i)), 10)
	case TypeUint64:
		return strconv.FormatUint(getScalar[uint64](a, i), 10)
	case TypeFloat32:
		return strconv.FormatFloat(float64(getScalar[float32](a, i)), 'g', -1, 32)
	case TypeFloat64:
		return strconv.FormatFloat(getScalar[float64](a, i), 'g', -1, 64)
	case TypeComplex64:
		return strconv.FormatComplex(complex128(getScalar[complex64](a, i)), 'g', -1, 64)
	case TypeComplex128:
		return strconv.FormatComplex(getScalar[complex128](a, i), 'g', -1, 128)
	case TypeStr:
		return strconv.Quote(a.StringFlatAt(i))
	case TypeBytes:
		return strconv.Quote(string(a.BytesFlatAt(i)))
	case TypeFloat16, TypeVoid:
		return "0x" + hex.EncodeToString(a.cell(i))
	case TypeObject:
		return ObjectKey(a.objs[i])
	case TypeDatetime64:
		return a.TimeFlatAt(i).Format(datetimeLayout)
	case TypeTimedelta64:
		p := period.NewOf(a.DurationFlatAt(i))
		return p.String()
	}
	return "?"
}
