// Package hwrap makes ndarray values hashable. Just rendering an array
// read-only is not enough for use as a map key or set member: the wrapper
// stores a frozen copy of the array given to the constructor, classifies
// its element kind, and caches a structural digest of the raw bytes, shape
// and kind at construction time. From then on the instance is a pure
// value: safe to share across goroutines, usable as a memo key (see the
// memo package), and never a source of errors.
//
// Borrow deliberately exposes the frozen internal array rather than a
// copy, so read-only fast paths pay no allocation. Use Materialize for a
// writable copy.
package hwrap

import (
	"encoding/binary"
	"errors"
	"io"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/gonic-fp/hwrap_go/ndarray"
)

// HWrap is the frozen array store: an immutable copy of a source array,
// its kind tag, its display label, and the digest cached at construction.
type HWrap struct {
	arr    *ndarray.Array
	kind   Kind
	label  string
	digest uint64
}

// New wraps a copy of src under the generic label. It fails with
// UnsupportedKindError when the element type falls outside the eight
// categories. Kind- and precision-restricted constructors live in
// variants.go.
func New(src *ndarray.Array) (*HWrap, error) {
	return newHWrap(src, genericVariant)
}

func newHWrap(src *ndarray.Array, v variantSpec) (*HWrap, error) {
	if src == nil {
		return nil, errors.New("hwrap: nil source array")
	}
	kind, err := Classify(src.DType())
	if err != nil {
		return nil, err
	}
	if v.kind != 0 && v.kind != kind {
		return nil, &KindMismatchError{
			Label: v.label, Want: v.kind, Got: kind, GotDType: src.DType(),
		}
	}
	if v.code != ndarray.TypeInvalid && v.code != src.DType().Code {
		return nil, &KindMismatchError{
			Label: v.label, Want: v.kind, Got: kind,
			WantDType: ndarray.DType{Code: v.code, Size: src.DType().Size},
			GotDType:  src.DType(),
		}
	}
	h := &HWrap{
		arr:   src.Clone().Freeze(),
		kind:  kind,
		label: v.label,
	}
	h.digest = h.computeDigest()
	return h, nil
}

// Borrow returns the frozen internal array for read-only, allocation-free
// use. The array panics with ndarray.ErrFrozen on any write; callers
// wanting a writable array use Materialize.
func (h *HWrap) Borrow() *ndarray.Array { return h.arr }

// Materialize returns a fresh, independently owned, writable copy of the
// stored data. Mutating it never affects the wrapper.
func (h *HWrap) Materialize() *ndarray.Array { return h.arr.Clone() }

// Hash returns the digest cached at construction.
func (h *HWrap) Hash() uint64 { return h.digest }

// Kind returns the element category tag.
func (h *HWrap) Kind() Kind { return h.kind }

// DType returns the element type of the frozen array.
func (h *HWrap) DType() ndarray.DType { return h.arr.DType() }

// Shape returns a copy of the frozen array's shape.
func (h *HWrap) Shape() []int { return h.arr.Shape() }

// Label returns the variant label used by Describe.
func (h *HWrap) Label() string { return h.label }

// Equal reports value equality: same kind, then exact structural equality
// of the frozen arrays (dtype, shape, byte-identical data; object
// elements by their own equality). The label does not participate, so a
// variant-constructed wrapper equals a generically constructed one over
// the same data. Equal digests are necessary but not sufficient; the full
// comparison always runs.
func (h *HWrap) Equal(other *HWrap) bool {
	if other == nil {
		return false
	}
	if h.kind != other.kind {
		return false
	}
	return h.arr.Equal(other.arr)
}

// String renders the contents as a multi-line block, each line indented
// for embedding in an outer label:
//
//	hwrap<
//	  [[5 -1]
//	   [0 2]]
//	>
func (h *HWrap) String() string {
	body := "  " + strings.ReplaceAll(h.arr.String(), "\n", "\n  ")
	return "hwrap<\n" + body + "\n>"
}

// Describe returns the single-line, constructor-shaped form:
// label, whitespace-collapsed contents, dtype.
func (h *HWrap) Describe() string {
	return h.label + "(ndarray.Of(" + h.arr.Literal() + ", " + h.arr.DType().String() + "))"
}

// MemoKey returns a canonical byte string that is injective over
// (kind, dtype, shape, contents); two wrappers share a MemoKey exactly
// when they are Equal. The memo package uses it to key tables without
// trusting the 64-bit digest alone. For object arrays the key is built
// from the element key strings, so it is injective only up to
// ndarray.ObjectKey.
func (h *HWrap) MemoKey() string {
	var b strings.Builder
	h.writeStructure(&b)
	h.writeRawBytes(&b)
	return b.String()
}

func (h *HWrap) writeStructure(w io.Writer) {
	dt := h.arr.DType()
	w.Write([]byte{byte(h.kind), byte(dt.Code)})
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(dt.Size))
	w.Write(buf[:])
	shape := h.arr.Shape()
	binary.LittleEndian.PutUint64(buf[:], uint64(len(shape)))
	w.Write(buf[:])
	for _, d := range shape {
		binary.LittleEndian.PutUint64(buf[:], uint64(d))
		w.Write(buf[:])
	}
}

func (h *HWrap) writeRawBytes(w io.Writer) {
	if h.kind == KindObject {
		var buf [8]byte
		for _, v := range h.arr.Objects() {
			key := ndarray.ObjectKey(v)
			binary.LittleEndian.PutUint64(buf[:], uint64(len(key)))
			w.Write(buf[:])
			io.WriteString(w, key)
		}
		return
	}
	w.Write(h.arr.Bytes())
}

// computeDigest pairs the hash of the raw element bytes with the hash of
// the structure (shape, kind, dtype), order-sensitively:
// xxhash(rawBytes || xxhash(structure)). O(n), run exactly once.
func (h *HWrap) computeDigest() uint64 {
	structural := xxhash.New()
	h.writeStructure(structural)

	d := xxhash.New()
	h.writeRawBytes(d)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], structural.Sum64())
	d.Write(buf[:])
	return d.Sum64()
}
