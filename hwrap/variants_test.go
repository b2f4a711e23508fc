package hwrap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonic-fp/hwrap_go/hwrap"
	"github.com/gonic-fp/hwrap_go/ndarray"
)

func TestVariant_KindMismatch(t *testing.T) {
	nums, _ := ndarray.Of([]int64{1, 0})

	_, err := hwrap.NewBool(nums)
	var mismatch *hwrap.KindMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "HWrapBool", mismatch.Label)
	assert.Equal(t, hwrap.KindBool, mismatch.Want)
	assert.Equal(t, hwrap.KindNumber, mismatch.Got)
	assert.Equal(t, ndarray.Int64, mismatch.GotDType)
}

func TestVariant_PrecisionMismatch(t *testing.T) {
	i64, _ := ndarray.Of([]int64{1, 0})

	_, err := hwrap.NewFloat64(i64)
	var mismatch *hwrap.KindMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "HWrapFloat64", mismatch.Label)
	assert.Equal(t, ndarray.TypeFloat64, mismatch.WantDType.Code)

	// the precision-matched constructor accepts the same data
	h, err := hwrap.NewInt64(i64)
	require.NoError(t, err)
	assert.Equal(t, "HWrapInt64", h.Label())
}

func TestVariant_AcceptsDeclaredKind(t *testing.T) {
	bools, _ := ndarray.Of([]bool{true, false})
	h, err := hwrap.NewBool(bools)
	require.NoError(t, err)
	assert.Equal(t, hwrap.KindBool, h.Kind())

	text, _ := ndarray.FromStrings([]string{"a", "bc"})
	ht, err := hwrap.NewText(text)
	require.NoError(t, err)
	assert.Equal(t, hwrap.KindText, ht.Kind())

	raw, _ := ndarray.FromRaw([][]byte{{1, 2, 3, 4}})
	hr, err := hwrap.NewRaw(raw)
	require.NoError(t, err)
	assert.Equal(t, hwrap.KindRaw, hr.Kind())

	bs, _ := ndarray.FromByteStrings([][]byte{[]byte("ab")})
	hb, err := hwrap.NewByteString(bs)
	require.NoError(t, err)
	assert.Equal(t, hwrap.KindBytes, hb.Kind())
}

func TestVariant_LabelDoesNotAffectValue(t *testing.T) {
	a, _ := ndarray.Of([]float64{1.5, 2.5})
	b, _ := ndarray.Of([]float64{1.5, 2.5})

	generic, err := hwrap.New(a)
	require.NoError(t, err)
	precise, err := hwrap.NewFloat64(b)
	require.NoError(t, err)

	assert.True(t, generic.Equal(precise))
	assert.Equal(t, generic.Hash(), precise.Hash())
	assert.Equal(t, generic.String(), precise.String())
	assert.NotEqual(t, generic.Describe(), precise.Describe(), "only the label differs")
}

func TestVariant_DescribeCarriesLabel(t *testing.T) {
	bools, _ := ndarray.Of([]bool{true})
	h, _ := hwrap.NewBool(bools)
	assert.Equal(t, "HWrapBool(ndarray.Of([true], bool))", h.Describe())
}

func TestVariant_ConstructionIsAtomic(t *testing.T) {
	// failed construction yields no instance at all
	nums, _ := ndarray.Of([]int32{1})
	h, err := hwrap.NewComplex128(nums)
	assert.Error(t, err)
	assert.Nil(t, h)
}
