package hwrap

import "github.com/gonic-fp/hwrap_go/ndarray"

// A variantSpec is a constructor capability: a display label plus the kind
// (and optionally the exact element encoding) the constructor accepts.
// Variants share every behavior with the generic wrapper; only the label
// and the construction gate differ.
type variantSpec struct {
	label string
	kind  Kind
	code  ndarray.TypeCode
}

var genericVariant = variantSpec{label: "HWrap"}

// NewNumber wraps arrays of any integer, floating or complex element
// type.
func NewNumber(src *ndarray.Array) (*HWrap, error) {
	return newHWrap(src, variantSpec{label: "HWrapNumber", kind: KindNumber})
}

// NewText wraps arrays of fixed-width Unicode string elements.
func NewText(src *ndarray.Array) (*HWrap, error) {
	return newHWrap(src, variantSpec{label: "HWrapText", kind: KindText})
}

// NewByteString wraps arrays of fixed-width NUL-terminated byte
// sequences.
func NewByteString(src *ndarray.Array) (*HWrap, error) {
	return newHWrap(src, variantSpec{label: "HWrapByteString", kind: KindBytes})
}

// NewRaw wraps arrays of opaque fixed-width byte records.
func NewRaw(src *ndarray.Array) (*HWrap, error) {
	return newHWrap(src, variantSpec{label: "HWrapRaw", kind: KindRaw})
}

// NewObject wraps arrays of references to externally managed values.
// Equality and hashing of the elements follow the referenced values' own
// String/Equal contract (see ndarray.ObjectKey and ndarray.Equaler); the
// referenced values themselves are not copied.
func NewObject(src *ndarray.Array) (*HWrap, error) {
	return newHWrap(src, variantSpec{label: "HWrapObject", kind: KindObject})
}

// NewDatetime wraps arrays of absolute time points.
func NewDatetime(src *ndarray.Array) (*HWrap, error) {
	return newHWrap(src, variantSpec{label: "HWrapDatetime", kind: KindDatetime})
}

// NewTimedelta wraps arrays of time durations.
func NewTimedelta(src *ndarray.Array) (*HWrap, error) {
	return newHWrap(src, variantSpec{label: "HWrapTimedelta", kind: KindTimedelta})
}

// NewBool wraps arrays of boolean elements.
func NewBool(src *ndarray.Array) (*HWrap, error) {
	return newHWrap(src, variantSpec{label: "HWrapBool", kind: KindBool})
}

// NewInt64 wraps int64 arrays only; other numeric precisions are
// rejected with KindMismatchError.
func NewInt64(src *ndarray.Array) (*HWrap, error) {
	return newHWrap(src, variantSpec{label: "HWrapInt64", kind: KindNumber, code: ndarray.TypeInt64})
}

// NewFloat64 wraps float64 arrays only.
func NewFloat64(src *ndarray.Array) (*HWrap, error) {
	return newHWrap(src, variantSpec{label: "HWrapFloat64", kind: KindNumber, code: ndarray.TypeFloat64})
}

// NewComplex128 wraps complex128 arrays only.
func NewComplex128(src *ndarray.Array) (*HWrap, error) {
	return newHWrap(src, variantSpec{label: "HWrapComplex128", kind: KindNumber, code: ndarray.TypeComplex128})
}
