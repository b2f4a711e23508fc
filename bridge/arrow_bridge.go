// Package bridge converts wrapped arrays to and from Apache Arrow records
// so they can feed Arrow-native computation. Conversion is purely
// in-process; the wrapped value's shape and dtype travel in the schema
// metadata and a round trip preserves equality and hash.
package bridge

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/gonic-fp/hwrap_go/hwrap"
	"github.com/gonic-fp/hwrap_go/ndarray"
)

const (
	metaShape = "hwrap.shape"
	metaDType = "hwrap.dtype"
)

// arrowTypeFor maps a dtype to the Arrow column type carrying it.
// Datetime and timedelta elements travel as their int64 representation;
// the dtype metadata restores them. Complex, object and float16 elements
// have no Arrow encoding here.
func arrowTypeFor(dt ndarray.DType) (arrow.DataType, error) {
	switch dt.Code {
	case ndarray.TypeBool:
		return arrow.FixedWidthTypes.Boolean, nil
	case ndarray.TypeInt8:
		return arrow.PrimitiveTypes.Int8, nil
	case ndarray.TypeInt16:
		return arrow.PrimitiveTypes.Int16, nil
	case ndarray.TypeInt32:
		return arrow.PrimitiveTypes.Int32, nil
	case ndarray.TypeInt64, ndarray.TypeDatetime64, ndarray.TypeTimedelta64:
		return arrow.PrimitiveTypes.Int64, nil
	case ndarray.TypeUint8:
		return arrow.PrimitiveTypes.Uint8, nil
	case ndarray.TypeUint16:
		return arrow.PrimitiveTypes.Uint16, nil
	case ndarray.TypeUint32:
		return arrow.PrimitiveTypes.Uint32, nil
	case ndarray.TypeUint64:
		return arrow.PrimitiveTypes.Uint64, nil
	case ndarray.TypeFloat32:
		return arrow.PrimitiveTypes.Float32, nil
	case ndarray.TypeFloat64:
		return arrow.PrimitiveTypes.Float64, nil
	case ndarray.TypeStr:
		return arrow.BinaryTypes.String, nil
	case ndarray.TypeBytes, ndarray.TypeVoid:
		return arrow.BinaryTypes.Binary, nil
	}
	return nil, fmt.Errorf("bridge: no arrow encoding for dtype %q", dt)
}

// RecordFromWrap flattens a wrapped array into a single-column record in
// row-major order. The column is named "values"; shape and dtype ride in
// the schema metadata.
func RecordFromWrap(h *hwrap.HWrap) (arrow.Record, error) {
	if h == nil {
		return nil, fmt.Errorf("bridge: nil wrapper")
	}
	src := h.Borrow()
	dt := src.DType()
	colType, err := arrowTypeFor(dt)
	if err != nil {
		return nil, err
	}

	shape := src.Shape()
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = strconv.Itoa(d)
	}
	md := arrow.NewMetadata(
		[]string{metaShape, metaDType},
		[]string{strings.Join(dims, ","), dt.String()},
	)
	schema := arrow.NewSchema([]arrow.Field{{Name: "values", Type: colType}}, &md)

	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()

	n := src.Size()
	switch dt.Code {
	case ndarray.TypeBool:
		appendScalars[bool](builder.Field(0).(*array.BooleanBuilder), src, n)
	case ndarray.TypeInt8:
		appendScalars[int8](builder.Field(0).(*array.Int8Builder), src, n)
	case ndarray.TypeInt16:
		appendScalars[int16](builder.Field(0).(*array.Int16Builder), src, n)
	case ndarray.TypeInt32:
		appendScalars[int32](builder.Field(0).(*array.Int32Builder), src, n)
	case ndarray.TypeInt64:
		appendScalars[int64](builder.Field(0).(*array.Int64Builder), src, n)
	case ndarray.TypeUint8:
		appendScalars[uint8](builder.Field(0).(*array.Uint8Builder), src, n)
	case ndarray.TypeUint16:
		appendScalars[uint16](builder.Field(0).(*array.Uint16Builder), src, n)
	case ndarray.TypeUint32:
		appendScalars[uint32](builder.Field(0).(*array.Uint32Builder), src, n)
	case ndarray.TypeUint64:
		appendScalars[uint64](builder.Field(0).(*array.Uint64Builder), src, n)
	case ndarray.TypeFloat32:
		appendScalars[float32](builder.Field(0).(*array.Float32Builder), src, n)
	case ndarray.TypeFloat64:
		appendScalars[float64](builder.Field(0).(*array.Float64Builder), src, n)
	case ndarray.TypeStr:
		fb := builder.Field(0).(*array.StringBuilder)
		for i := 0; i < n; i++ {
			fb.Append(src.StringFlatAt(i))
		}
	case ndarray.TypeBytes:
		fb := builder.Field(0).(*array.BinaryBuilder)
		for i := 0; i < n; i++ {
			fb.Append(src.BytesFlatAt(i))
		}
	case ndarray.TypeVoid:
		fb := builder.Field(0).(*array.BinaryBuilder)
		for i := 0; i < n; i++ {
			fb.Append(src.RawFlatAt(i))
		}
	case ndarray.TypeDatetime64:
		fb := builder.Field(0).(*array.Int64Builder)
		for i := 0; i < n; i++ {
			fb.Append(src.TimeFlatAt(i).UnixNano())
		}
	case ndarray.TypeTimedelta64:
		fb := builder.Field(0).(*array.Int64Builder)
		for i := 0; i < n; i++ {
			fb.Append(int64(src.DurationFlatAt(i)))
		}
	}

	return builder.NewRecord(), nil
}

// WrapFromRecord is the inverse of RecordFromWrap: it rebuilds the array
// from the values column and the schema metadata and wraps a fresh frozen
// copy.
func WrapFromRecord(rec arrow.Record) (*hwrap.HWrap, error) {
	if rec == nil || rec.NumCols() < 1 {
		return nil, fmt.Errorf("bridge: record without a values column")
	}
	md := rec.Schema().Metadata()
	shape, err := shapeFromMetadata(md)
	if err != nil {
		return nil, err
	}
	idx := md.FindKey(metaDType)
	if idx < 0 {
		return nil, fmt.Errorf("bridge: record missing %s metadata", metaDType)
	}
	dt, err := ndarray.ParseDType(md.Values()[idx])
	if err != nil {
		return nil, err
	}

	arr, err := ndarray.New(dt, shape...)
	if err != nil {
		return nil, err
	}
	if int64(arr.Size()) != rec.NumRows() {
		return nil, fmt.Errorf("bridge: %d rows do not fill shape %v", rec.NumRows(), shape)
	}

	col := rec.Column(0)
	switch dt.Code {
	case ndarray.TypeBool:
		err = readScalars[bool](col, arr)
	case ndarray.TypeInt8:
		err = readScalars[int8](col, arr)
	case ndarray.TypeInt16:
		err = readScalars[int16](col, arr)
	case ndarray.TypeInt32:
		err = readScalars[int32](col, arr)
	case ndarray.TypeInt64:
		err = readScalars[int64](col, arr)
	case ndarray.TypeUint8:
		err = readScalars[uint8](col, arr)
	case ndarray.TypeUint16:
		err = readScalars[uint16](col, arr)
	case ndarray.TypeUint32:
		err = readScalars[uint32](col, arr)
	case ndarray.TypeUint64:
		err = readScalars[uint64](col, arr)
	case ndarray.TypeFloat32:
		err = readScalars[float32](col, arr)
	case ndarray.TypeFloat64:
		err = readScalars[float64](col, arr)
	case ndarray.TypeStr:
		sc, ok := col.(*array.String)
		if !ok {
			return nil, fmt.Errorf("bridge: values column is %T, want string", col)
		}
		for i := 0; i < sc.Len(); i++ {
			arr.SetStringFlatAt(sc.Value(i), i)
		}
	case ndarray.TypeBytes:
		bc, ok := col.(*array.Binary)
		if !ok {
			return nil, fmt.Errorf("bridge: values column is %T, want binary", col)
		}
		for i := 0; i < bc.Len(); i++ {
			arr.SetBytesFlatAt(bc.Value(i), i)
		}
	case ndarray.TypeVoid:
		bc, ok := col.(*array.Binary)
		if !ok {
			return nil, fmt.Errorf("bridge: values column is %T, want binary", col)
		}
		for i := 0; i < bc.Len(); i++ {
			arr.SetRawFlatAt(bc.Value(i), i)
		}
	case ndarray.TypeDatetime64:
		ic, ok := col.(*array.Int64)
		if !ok {
			return nil, fmt.Errorf("bridge: values column is %T, want int64", col)
		}
		for i := 0; i < ic.Len(); i++ {
			arr.SetTimeFlatAt(time.Unix(0, ic.Value(i)).UTC(), i)
		}
	case ndarray.TypeTimedelta64:
		ic, ok := col.(*array.Int64)
		if !ok {
			return nil, fmt.Errorf("bridge: values column is %T, want int64", col)
		}
		for i := 0; i < ic.Len(); i++ {
			arr.SetDurationFlatAt(time.Duration(ic.Value(i)), i)
		}
	default:
		return nil, fmt.Errorf("bridge: no arrow encoding for dtype %q", dt)
	}
	if err != nil {
		return nil, err
	}

	return hwrap.New(arr)
}

func shapeFromMetadata(md arrow.Metadata) ([]int, error) {
	idx := md.FindKey(metaShape)
	if idx < 0 {
		return nil, fmt.Errorf("bridge: record missing %s metadata", metaShape)
	}
	raw := md.Values()[idx]
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	shape := make([]int, len(parts))
	for i, p := range parts {
		d, err := strconv.Atoi(p)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("bridge: malformed shape metadata %q", raw)
		}
		shape[i] = d
	}
	return shape, nil
}

type scalarBuilder[T ndarray.Scalar] interface {
	Append(T)
}

func appendScalars[T ndarray.Scalar](b scalarBuilder[T], a *ndarray.Array, n int) {
	for i := 0; i < n; i++ {
		b.Append(ndarray.FlatAt[T](a, i))
	}
}

type scalarColumn[T ndarray.Scalar] interface {
	Len() int
	Value(int) T
}

func readScalars[T ndarray.Scalar](col arrow.Array, arr *ndarray.Array) error {
	tc, ok := col.(scalarColumn[T])
	if !ok {
		return fmt.Errorf("bridge: values column is %T, want %T elements", col, *new(T))
	}
	for i := 0; i < tc.Len(); i++ {
		ndarray.SetFlat(arr, tc.Value(i), i)
	}
	return nil
}
