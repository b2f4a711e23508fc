package ndarray_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonic-fp/hwrap_go/ndarray"
)

func TestOf_ShapeMismatch(t *testing.T) {
	_, err := ndarray.Of([]int64{1, 2, 3}, 2, 2)
	assert.Error(t, err)
}

func TestOf_DefaultShapeIsOneDimensional(t *testing.T) {
	a, err := ndarray.Of([]int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []int{3}, a.Shape())
	assert.Equal(t, 1, a.Rank())
	assert.Equal(t, 3, a.Size())
}

func TestScalar_EmptyShape(t *testing.T) {
	a, err := ndarray.Of([]float64{3.5})
	require.NoError(t, err)
	s, err := a.Reshape()
	require.NoError(t, err)
	assert.Equal(t, 0, s.Rank())
	assert.Equal(t, 1, s.Size())
	assert.Equal(t, 3.5, ndarray.At[float64](s))
}

func TestAtSet_RowMajor(t *testing.T) {
	a, err := ndarray.Of([]int64{5, -1, 0, 2}, 2, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(5), ndarray.At[int64](a, 0, 0))
	assert.Equal(t, int64(-1), ndarray.At[int64](a, 0, 1))
	assert.Equal(t, int64(0), ndarray.At[int64](a, 1, 0))
	assert.Equal(t, int64(2), ndarray.At[int64](a, 1, 1))

	ndarray.Set(a, int64(7), 1, 0)
	assert.Equal(t, int64(7), ndarray.At[int64](a, 1, 0))
	assert.Equal(t, int64(7), ndarray.FlatAt[int64](a, 2))
	assert.Equal(t, []int64{5, -1, 7, 2}, ndarray.Values[int64](a))
}

func TestAt_OutOfRangePanics(t *testing.T) {
	a, _ := ndarray.Of([]int64{1, 2}, 2)
	assert.Panics(t, func() { ndarray.At[int64](a, 2) })
	assert.Panics(t, func() { ndarray.At[int64](a, 0, 0) })
}

func TestClone_Independence(t *testing.T) {
	a, _ := ndarray.Of([]int64{1, 2, 3, 4}, 2, 2)
	b := a.Clone()
	ndarray.Set(b, int64(99), 0, 0)

	assert.Equal(t, int64(1), ndarray.At[int64](a, 0, 0))
	assert.Equal(t, int64(99), ndarray.At[int64](b, 0, 0))
}

func TestFreeze_WritePanics(t *testing.T) {
	a, _ := ndarray.Of([]bool{true, false})
	a.Freeze()
	assert.True(t, a.Frozen())
	assert.PanicsWithValue(t, ndarray.ErrFrozen, func() {
		ndarray.Set(a, false, 0)
	})
	// reads stay fine
	assert.True(t, ndarray.At[bool](a, 0))
	// a clone of a frozen array is writable again
	assert.False(t, a.Clone().Frozen())
}

func TestEqual_DTypeGates(t *testing.T) {
	i64, _ := ndarray.Of([]int64{1, 0})
	i32, _ := ndarray.Of([]int32{1, 0})
	i8, _ := ndarray.Of([]int8{1, 0})
	b, _ := ndarray.Of([]bool{true, false})

	assert.False(t, i64.Equal(i32), "cross-precision values never compare equal")
	assert.False(t, i8.Equal(b), "bool and int8 share bytes but not dtype")

	other, _ := ndarray.Of([]int64{1, 0})
	assert.True(t, i64.Equal(other))

	flat, _ := ndarray.Of([]int64{1, 0, 0, 1})
	square, _ := flat.Reshape(2, 2)
	assert.False(t, flat.Equal(square), "same bytes, different shape")
}

func TestEqual_FloatsAreBitwise(t *testing.T) {
	nan1, _ := ndarray.Of([]float64{math.NaN()})
	nan2, _ := ndarray.Of([]float64{math.NaN()})
	assert.True(t, nan1.Equal(nan2), "identical NaN patterns are equal")

	pos, _ := ndarray.Of([]float64{0.0})
	neg, _ := ndarray.Of([]float64{math.Copysign(0, -1)})
	assert.False(t, pos.Equal(neg), "+0 and -0 differ structurally")
}

func TestFromStrings(t *testing.T) {
	a, err := ndarray.FromStrings([]string{"alpha", "b", ""}, 3)
	require.NoError(t, err)
	assert.Equal(t, ndarray.Str(5), a.DType())
	assert.Equal(t, "alpha", a.StringAt(0))
	assert.Equal(t, "b", a.StringAt(1))
	assert.Equal(t, "", a.StringAt(2))
}

func TestFromByteStrings_TrimsPadding(t *testing.T) {
	a, err := ndarray.FromByteStrings([][]byte{[]byte("abc"), []byte("z")})
	require.NoError(t, err)
	assert.Equal(t, ndarray.Bytes(3), a.DType())
	assert.Equal(t, []byte("z"), a.BytesAt(1))
}

func TestFromRaw(t *testing.T) {
	u1, u2 := uuid.New(), uuid.New()
	a, err := ndarray.FromRaw([][]byte{u1[:], u2[:]})
	require.NoError(t, err)
	assert.Equal(t, ndarray.Void(16), a.DType())
	assert.Equal(t, u2[:], a.RawAt(1))

	_, err = ndarray.FromRaw([][]byte{{1, 2}, {3}})
	assert.Error(t, err, "ragged records are rejected")
}

func TestFromObjects_ValueEquality(t *testing.T) {
	// independently constructed but value-equal elements
	a, err := ndarray.FromObjects([]any{decimal.MustNew(355, 2), decimal.MustNew(1, 0)})
	require.NoError(t, err)
	b, err := ndarray.FromObjects([]any{decimal.MustNew(355, 2), decimal.MustNew(1, 0)})
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.Equal(t, "3.55", ndarray.ObjectKey(a.ObjectAt(0)))

	c, _ := ndarray.FromObjects([]any{decimal.MustNew(356, 2), decimal.MustNew(1, 0)})
	assert.False(t, a.Equal(c))
}

func TestFromTimes_RoundTrip(t *testing.T) {
	t0 := time.Date(2025, time.March, 14, 9, 26, 53, 0, time.UTC)
	a, err := ndarray.FromTimes([]time.Time{t0, t0.Add(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, ndarray.Datetime64, a.DType())
	assert.True(t, a.TimeAt(1).Equal(t0.Add(time.Hour)))

	span, err := a.TimeSpan()
	require.NoError(t, err)
	assert.True(t, span.Start().Equal(t0))
	assert.True(t, span.End().Equal(t0.Add(time.Hour)))

	ts := a.Times()
	require.Len(t, ts, 2)
	assert.True(t, ts[0].Equal(t0))
	assert.True(t, ts[1].Equal(t0.Add(time.Hour)))
}

func TestFromDurations_RoundTrip(t *testing.T) {
	a, err := ndarray.FromDurations([]time.Duration{time.Second, -time.Minute})
	require.NoError(t, err)
	assert.Equal(t, ndarray.Timedelta64, a.DType())
	assert.Equal(t, -time.Minute, a.DurationAt(1))
	assert.Equal(t, []time.Duration{time.Second, -time.Minute}, a.Durations())
}

func TestFloat16_StorageOnly(t *testing.T) {
	a, err := ndarray.FromFloat16Bits([]uint16{0x3c00, 0x0000}) // 1.0, 0.0
	require.NoError(t, err)
	assert.Equal(t, ndarray.Float16, a.DType())
	assert.Equal(t, 4, len(a.Bytes()))
}

func TestReshape(t *testing.T) {
	a, _ := ndarray.Of([]int64{1, 2, 3, 4, 5, 6})
	m, err := a.Reshape(2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, m.Shape())
	assert.Equal(t, int64(6), ndarray.At[int64](m, 1, 2))

	_, err = a.Reshape(4, 2)
	assert.Error(t, err)
}

func TestParseDType_RoundTrip(t *testing.T) {
	for _, dt := range []ndarray.DType{
		ndarray.Bool, ndarray.Int8, ndarray.Int64, ndarray.Uint32,
		ndarray.Float16, ndarray.Float64, ndarray.Complex128,
		ndarray.Str(16), ndarray.Bytes(8), ndarray.Void(32),
		ndarray.Object, ndarray.Datetime64, ndarray.Timedelta64,
	} {
		parsed, err := ndarray.ParseDType(dt.String())
		require.NoError(t, err, dt.String())
		assert.Equal(t, dt, parsed)
	}

	_, err := ndarray.ParseDType("quaternion")
	assert.Error(t, err)
}
