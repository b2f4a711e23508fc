package hwrap

import (
	"fmt"

	"github.com/gonic-fp/hwrap_go/ndarray"
)

// UnsupportedKindError reports that the source array's element type falls
// outside the eight supported categories. It is only returned at
// construction time; the caller must convert the data to a supported
// element type first.
type UnsupportedKindError struct {
	DType ndarray.DType
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("hwrap: unsupported element type %q", e.DType)
}

// KindMismatchError reports that a kind- or precision-restricted
// constructor was given data of a different kind or precision. Also a
// construction-time-only error.
type KindMismatchError struct {
	Label string
	Want  Kind
	Got   Kind
	// WantDType is set when the constructor restricts the exact element
	// encoding, not just the kind.
	WantDType ndarray.DType
	GotDType  ndarray.DType
}

func (e *KindMismatchError) Error() string {
	if e.WantDType.Code != ndarray.TypeInvalid {
		return fmt.Sprintf("hwrap: %s accepts %q arrays, got %s (%q)",
			e.Label, e.WantDType, e.Got, e.GotDType)
	}
	return fmt.Sprintf("hwrap: %s accepts %s arrays, got %s (%q)",
		e.Label, e.Want, e.Got, e.GotDType)
}
