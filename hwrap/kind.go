package hwrap

import "github.com/gonic-fp/hwrap_go/ndarray"

// Kind is the closed set of element categories a wrapped array can carry.
// It gates equality: arrays of different kinds never compare equal, even
// when their buffers coincide byte for byte.
type Kind uint8

const (
	KindNumber Kind = iota + 1
	KindText
	KindBytes
	KindRaw
	KindObject
	KindDatetime
	KindTimedelta
	KindBool
)

var kindNames = [...]string{
	KindNumber:    "number",
	KindText:      "text",
	KindBytes:     "bytes",
	KindRaw:       "raw",
	KindObject:    "object",
	KindDatetime:  "datetime",
	KindTimedelta: "timedelta",
	KindBool:      "bool",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "invalid"
}

// Classify maps an element-type descriptor to its kind. The categories are
// mutually exclusive; the switch order is the tie-break should that ever
// stop being true. Element types outside the eight categories (such as the
// storage-only float16) yield an UnsupportedKindError.
func Classify(dt ndarray.DType) (Kind, error) {
	switch dt.Code {
	case ndarray.TypeInt8, ndarray.TypeInt16, ndarray.TypeInt32, ndarray.TypeInt64,
		ndarray.TypeUint8, ndarray.TypeUint16, ndarray.TypeUint32, ndarray.TypeUint64,
		ndarray.TypeFloat32, ndarray.TypeFloat64,
		ndarray.TypeComplex64, ndarray.TypeComplex128:
		return KindNumber, nil
	case ndarray.TypeStr:
		return KindText, nil
	case ndarray.TypeBytes:
		return KindBytes, nil
	case ndarray.TypeVoid:
		return KindRaw, nil
	case ndarray.TypeObject:
		return KindObject, nil
	case ndarray.TypeDatetime64:
		return KindDatetime, nil
	case ndarray.TypeTimedelta64:
		return KindTimedelta, nil
	case ndarray.TypeBool:
		return KindBool, nil
	}
	return 0, &UnsupportedKindError{DType: dt}
}
