// Package ndarray provides a small, contiguous, row-major N-dimensional
// array type with a closed set of fixed-width element encodings. It is the
// mutable source material for the hwrap package, which freezes copies of
// these arrays into hashable values.
//
// Mutating accessors panic with ErrFrozen once an array has been frozen;
// that flag is how Go expresses a structurally read-only view here.
package ndarray

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrFrozen is the panic value raised by any mutating accessor invoked on
// a frozen array.
var ErrFrozen = errors.New("ndarray: write to frozen array")

// Scalar enumerates the element types with a direct Go representation.
// Strings, byte strings, raw records, objects and time elements have their
// own constructors and accessors.
type Scalar interface {
	bool | int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		float32 | float64 | complex64 | complex128
}

// Equaler lets object-reference elements define their own equality. When
// an element does not implement it, two elements compare equal iff their
// key strings (ObjectKey) coincide. Implementations must stay consistent
// with the element's String method, which feeds the hash.
type Equaler interface {
	Equal(other any) bool
}

// ObjectKey returns the deterministic key string used to hash and compare
// an object-reference element: its String rendering when it is a
// fmt.Stringer, the fmt "%v" rendering otherwise.
func ObjectKey(v any) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}

func objectEqual(x, y any) bool {
	if e, ok := x.(Equaler); ok {
		return e.Equal(y)
	}
	return ObjectKey(x) == ObjectKey(y)
}

// Array is a dense, row-major N-dimensional array. An empty shape means a
// scalar of size one. Elements live in a little-endian byte buffer, except
// for the object dtype whose elements live in a reference slice.
type Array struct {
	dtype  DType
	shape  []int
	data   []byte
	objs   []any
	frozen bool
}

func sizeOf(shape []int) (int, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return 0, fmt.Errorf("ndarray: negative dimension %d in shape %v", d, shape)
		}
		n *= d
	}
	return n, nil
}

// New allocates a zero-valued array of the given dtype and shape.
func New(dt DType, shape ...int) (*Array, error) {
	if !dt.valid() {
		return nil, fmt.Errorf("ndarray: invalid dtype %v", dt)
	}
	n, err := sizeOf(shape)
	if err != nil {
		return nil, err
	}
	a := &Array{dtype: dt, shape: slices.Clone(shape)}
	if dt.Code == TypeObject {
		a.objs = make([]any, n)
	} else {
		a.data = make([]byte, n*dt.Size)
	}
	return a, nil
}

// Of builds an array from a flat row-major value slice. With no shape the
// array is one-dimensional; otherwise the slice must exactly fill the
// shape.
func Of[T Scalar](vals []T, shape ...int) (*Array, error) {
	if len(shape) == 0 {
		shape = []int{len(vals)}
	}
	a, err := New(dtypeFor[T](), shape...)
	if err != nil {
		return nil, err
	}
	if a.Size() != len(vals) {
		return nil, fmt.Errorf("ndarray: %d elements do not fill shape %v", len(vals), shape)
	}
	for i, v := range vals {
		putScalar(a, i, v)
	}
	return a, nil
}

// FromStrings builds a text array; the element width is the longest value
// in bytes (minimum one).
func FromStrings(vals []string, shape ...int) (*Array, error) {
	width := 1
	for _, s := range vals {
		width = max(width, len(s))
	}
	return fromPadded(Str(width), len(vals), shape, func(a *Array, i int) {
		a.SetStringFlatAt(vals[i], i)
	})
}

// FromByteStrings builds a byte-string array; the element width is the
// longest value (minimum one), shorter values are NUL padded.
func FromByteStrings(vals [][]byte, shape ...int) (*Array, error) {
	width := 1
	for _, b := range vals {
		width = max(width, len(b))
	}
	return fromPadded(Bytes(width), len(vals), shape, func(a *Array, i int) {
		a.SetBytesFlatAt(vals[i], i)
	})
}

// FromRaw builds an array of opaque fixed-width records. All records must
// share one non-zero width.
func FromRaw(records [][]byte, shape ...int) (*Array, error) {
	if len(records) == 0 {
		return nil, errors.New("ndarray: FromRaw needs at least one record")
	}
	width := len(records[0])
	if width == 0 {
		return nil, errors.New("ndarray: zero-width record")
	}
	for i, r := range records {
		if len(r) != width {
			return nil, fmt.Errorf("ndarray: record %d has width %d, want %d", i, len(r), width)
		}
	}
	return fromPadded(Void(width), len(records), shape, func(a *Array, i int) {
		a.SetRawFlatAt(records[i], i)
	})
}

// FromObjects builds an object-reference array. The referenced values are
// not copied, only the references are.
func FromObjects(vals []any, shape ...int) (*Array, error) {
	return fromPadded(Object, len(vals), shape, func(a *Array, i int) {
		a.objs[i] = vals[i]
	})
}

// FromFloat16Bits builds a storage-only binary16 array from raw bit
// patterns.
func FromFloat16Bits(bits []uint16, shape ...int) (*Array, error) {
	return fromPadded(Float16, len(bits), shape, func(a *Array, i int) {
		binary.LittleEndian.PutUint16(a.data[i*2:], bits[i])
	})
}

func fromPadded(dt DType, n int, shape []int, fill func(*Array, int)) (*Array, error) {
	if len(shape) == 0 {
		shape = []int{n}
	}
	a, err := New(dt, shape...)
	if err != nil {
		return nil, err
	}
	if a.Size() != n {
		return nil, fmt.Errorf("ndarray: %d elements do not fill shape %v", n, shape)
	}
	for i := 0; i < n; i++ {
		fill(a, i)
	}
	return a, nil
}

// DType returns the element type descriptor.
func (a *Array) DType() DType { return a.dtype }

// Shape returns a copy of the dimension sizes.
func (a *Array) Shape() []int { return slices.Clone(a.shape) }

// Rank is the number of dimensions.
func (a *Array) Rank() int { return len(a.shape) }

// Size is the element count, the product of the shape. A scalar has size
// one.
func (a *Array) Size() int {
	n, _ := sizeOf(a.shape)
	return n
}

// Bytes exposes the underlying element buffer without copying. It is nil
// for object arrays. Callers must not modify the returned slice; use
// Clone for a writable copy.
func (a *Array) Bytes() []byte { return a.data }

// Objects exposes the reference slice of an object array without copying.
// Nil for every other dtype. Callers must not modify the returned slice.
func (a *Array) Objects() []any { return a.objs }

// Frozen reports whether mutating accessors are disabled.
func (a *Array) Frozen() bool { return a.frozen }

// Freeze permanently disables mutating accessors and returns the array.
func (a *Array) Freeze() *Array {
	a.frozen = true
	return a
}

// Clone returns a writable deep copy of the buffer and shape. Object
// elements are reference-copied; the referenced values are shared.
func (a *Array) Clone() *Array {
	return &Array{
		dtype: a.dtype,
		shape: slices.Clone(a.shape),
		data:  slices.Clone(a.data),
		objs:  slices.Clone(a.objs),
	}
}

// Reshape returns a view-free copy of the array with a new shape of equal
// size.
func (a *Array) Reshape(shape ...int) (*Array, error) {
	n, err := sizeOf(shape)
	if err != nil {
		return nil, err
	}
	if n != a.Size() {
		return nil, fmt.Errorf("ndarray: cannot reshape %v into %v", a.shape, shape)
	}
	c := a.Clone()
	c.shape = slices.Clone(shape)
	return c, nil
}

// Equal reports exact structural equality: same dtype (code and width),
// same shape, byte-identical data. Floats therefore compare bitwise.
// Object elements compare by their own equality (see Equaler).
func (a *Array) Equal(b *Array) bool {
	if b == nil {
		return false
	}
	if a.dtype != b.dtype || !slices.Equal(a.shape, b.shape) {
		return false
	}
	if a.dtype.Code == TypeObject {
		for i := range a.objs {
			if !objectEqual(a.objs[i], b.objs[i]) {
				return false
			}
		}
		return true
	}
	return bytes.Equal(a.data, b.data)
}

func (a *Array) mustWritable() {
	if a.frozen {
		panic(ErrFrozen)
	}
}

func (a *Array) mustCode(codes ...TypeCode) {
	if !slices.Contains(codes, a.dtype.Code) {
		panic(fmt.Sprintf("ndarray: accessor for %v used on %v array", codes, a.dtype))
	}
}

func (a *Array) offset(idx []int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("ndarray: %d indices for rank-%d array", len(idx), len(a.shape)))
	}
	off := 0
	for d, i := range idx {
		if i < 0 || i >= a.shape[d] {
			panic(fmt.Sprintf("ndarray: index %d out of range for dimension %d of size %d", i, d, a.shape[d]))
		}
		off = off*a.shape[d] + i
	}
	return off
}

func dtypeFor[T Scalar]() DType {
	var z T
	switch any(z).(type) {
	case bool:
		return Bool
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	case complex64:
		return Complex64
	case complex128:
		return Complex128
	}
	panic("unreachable")
}

func putScalar[T Scalar](a *Array, i int, v T) {
	b := a.data[i*a.dtype.Size:]
	switch x := any(v).(type) {
	case bool:
		if x {
			b[0] = 1
		} else {
			b[0] = 0
		}
	case int8:
		b[0] = byte(x)
	case uint8:
		b[0] = x
	case int16:
		binary.LittleEndian.PutUint16(b, uint16(x))
	case uint16:
		binary.LittleEndian.PutUint16(b, x)
	case int32:
		binary.LittleEndian.PutUint32(b, uint32(x))
	case uint32:
		binary.LittleEndian.PutUint32(b, x)
	case int64:
		binary.LittleEndian.PutUint64(b, uint64(x))
	case uint64:
		binary.LittleEndian.PutUint64(b, x)
	case float32:
		binary.LittleEndian.PutUint32(b, math.Float32bits(x))
	case float64:
		binary.LittleEndian.PutUint64(b, math.Float64bits(x))
	case complex64:
		binary.LittleEndian.PutUint32(b, math.Float32bits(real(x)))
		binary.LittleEndian.PutUint32(b[4:], math.Float32bits(imag(x)))
	case complex128:
		binary.LittleEndian.PutUint64(b, math.Float64bits(real(x)))
		binary.LittleEndian.PutUint64(b[8:], math.Float64bits(imag(x)))
	}
}

func getScalar[T Scalar](a *Array, i int) T {
	b := a.data[i*a.dtype.Size:]
	var v T
	switch p := any(&v).(type) {
	case *bool:
		*p = b[0] != 0
	case *int8:
		*p = int8(b[0])
	case *uint8:
		*p = b[0]
	case *int16:
		*p = int16(binary.LittleEndian.Uint16(b))
	case *uint16:
		*p = binary.LittleEndian.Uint16(b)
	case *int32:
		*p = int32(binary.LittleEndian.Uint32(b))
	case *uint32:
		*p = binary.LittleEndian.Uint32(b)
	case *int64:
		*p = int64(binary.LittleEndian.Uint64(b))
	case *uint64:
		*p = binary.LittleEndian.Uint64(b)
	case *float32:
		*p = math.Float32frombits(binary.LittleEndian.Uint32(b))
	case *float64:
		*p = math.Float64frombits(binary.LittleEndian.Uint64(b))
	case *complex64:
		*p = complex(
			math.Float32frombits(binary.LittleEndian.Uint32(b)),
			math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		)
	case *complex128:
		*p = complex(
			math.Float64frombits(binary.LittleEndian.Uint64(b)),
			math.Float64frombits(binary.LittleEndian.Uint64(b[8:])),
		)
	}
	return v
}

// FlatAt reads element i of the flattened row-major order.
func FlatAt[T Scalar](a *Array, i int) T {
	a.mustCode(dtypeFor[T]().Code)
	return getScalar[T](a, i)
}

// SetFlat writes element i of the flattened row-major order. Panics with
// ErrFrozen on a frozen array.
func SetFlat[T Scalar](a *Array, v T, i int) {
	a.mustWritable()
	a.mustCode(dtypeFor[T]().Code)
	putScalar(a, i, v)
}

// At reads the element at a full multi-dimensional index.
func At[T Scalar](a *Array, idx ...int) T {
	return FlatAt[T](a, a.offset(idx))
}

// Set writes the element at a full multi-dimensional index. Panics with
// ErrFrozen on a frozen array.
func Set[T Scalar](a *Array, v T, idx ...int) {
	SetFlat(a, v, a.offset(idx))
}

// StringFlatAt reads a text element, with NUL padding stripped.
func (a *Array) StringFlatAt(i int) string {
	a.mustCode(TypeStr)
	return string(bytes.TrimRight(a.cell(i), "\x00"))
}

// SetStringFlatAt writes a text element; the value must fit the element
// width.
func (a *Array) SetStringFlatAt(s string, i int) {
	a.mustWritable()
	a.mustCode(TypeStr)
	a.setCell([]byte(s), i)
}

// BytesFlatAt reads a byte-string element, with the trailing NUL padding
// stripped, as a fresh copy.
func (a *Array) BytesFlatAt(i int) []byte {
	a.mustCode(TypeBytes)
	return bytes.Clone(bytes.TrimRight(a.cell(i), "\x00"))
}

// SetBytesFlatAt writes a byte-string element; the value must fit the
// element width.
func (a *Array) SetBytesFlatAt(b []byte, i int) {
	a.mustWritable()
	a.mustCode(TypeBytes)
	a.setCell(b, i)
}

// RawFlatAt reads a full-width raw record as a fresh copy.
func (a *Array) RawFlatAt(i int) []byte {
	a.mustCode(TypeVoid)
	return bytes.Clone(a.cell(i))
}

// SetRawFlatAt writes a raw record, which must have exactly the element
// width.
func (a *Array) SetRawFlatAt(rec []byte, i int) {
	a.mustWritable()
	a.mustCode(TypeVoid)
	if len(rec) != a.dtype.Size {
		panic(fmt.Sprintf("ndarray: record of width %d for %v array", len(rec), a.dtype))
	}
	a.setCell(rec, i)
}

// ObjectFlatAt reads an object-reference element.
func (a *Array) ObjectFlatAt(i int) any {
	a.mustCode(TypeObject)
	return a.objs[i]
}

// SetObjectFlatAt writes an object-reference element.
func (a *Array) SetObjectFlatAt(v any, i int) {
	a.mustWritable()
	a.mustCode(TypeObject)
	a.objs[i] = v
}

// StringAt is the multi-index form of StringFlatAt.
func (a *Array) StringAt(idx ...int) string { return a.StringFlatAt(a.offset(idx)) }

// BytesAt is the multi-index form of BytesFlatAt.
func (a *Array) BytesAt(idx ...int) []byte { return a.BytesFlatAt(a.offset(idx)) }

// RawAt is the multi-index form of RawFlatAt.
func (a *Array) RawAt(idx ...int) []byte { return a.RawFlatAt(a.offset(idx)) }

// ObjectAt is the multi-index form of ObjectFlatAt.
func (a *Array) ObjectAt(idx ...int) any { return a.ObjectFlatAt(a.offset(idx)) }

func (a *Array) cell(i int) []byte {
	return a.data[i*a.dtype.Size : (i+1)*a.dtype.Size]
}

func (a *Array) setCell(b []byte, i int) {
	if len(b) > a.dtype.Size {
		panic(fmt.Sprintf("ndarray: value of width %d for %v array", len(b), a.dtype))
	}
	cell := a.cell(i)
	copy(cell, b)
	for j := len(b); j < len(cell); j++ {
		cell[j] = 0
	}
}

// Values returns a fresh row-major copy of the elements as a typed slice.
func Values[T Scalar](a *Array) []T {
	a.mustCode(dtypeFor[T]().Code)
	out := make([]T, a.Size())
	for i := range out {
		out[i] = getScalar[T](a, i)
	}
	return out
}
