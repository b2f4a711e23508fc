package ndarray_test

import (
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonic-fp/hwrap_go/ndarray"
)

func TestString_Matrix(t *testing.T) {
	a, err := ndarray.Of([]int64{5, -1, 0, 2}, 2, 2)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "matrix", []byte(a.String()))

	// stable across repeated calls on equal instances
	b, _ := ndarray.Of([]int64{5, -1, 0, 2}, 2, 2)
	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, a.String(), a.String())
}

func TestString_Cube(t *testing.T) {
	a, err := ndarray.Of([]int64{1, 2, 3, 4, 5, 6, 7, 8}, 2, 2, 2)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "cube", []byte(a.String()))
}

func TestLiteral_CollapsesWhitespace(t *testing.T) {
	a, _ := ndarray.Of([]int64{5, -1, 0, 2}, 2, 2)
	assert.Equal(t, "[[5 -1] [0 2]]", a.Literal())

	v, _ := ndarray.Of([]int64{7})
	assert.Equal(t, "[7]", v.Literal())
}

func TestString_ScalarAndEmpty(t *testing.T) {
	s, _ := ndarray.Of([]int64{42})
	scalar, err := s.Reshape()
	require.NoError(t, err)
	assert.Equal(t, "42", scalar.String())

	empty, _ := ndarray.Of([]int64{})
	assert.Equal(t, "[]", empty.String())
}

func TestString_ElementFormats(t *testing.T) {
	b, _ := ndarray.Of([]bool{true, false})
	assert.Equal(t, "[true false]", b.String())

	f, _ := ndarray.Of([]float64{1.5, -0.25})
	assert.Equal(t, "[1.5 -0.25]", f.String())

	c, _ := ndarray.Of([]complex128{1 + 2i})
	assert.Equal(t, "[(1+2i)]", c.String())

	s, _ := ndarray.FromStrings([]string{"hi", "yo"})
	assert.Equal(t, `["hi" "yo"]`, s.String())

	ts, _ := ndarray.FromTimes([]time.Time{
		time.Date(2025, time.March, 14, 9, 26, 53, 0, time.UTC),
	})
	assert.Equal(t, "[2025-03-14T09:26:53Z]", ts.String())

	ds, _ := ndarray.FromDurations([]time.Duration{90 * time.Second})
	assert.Equal(t, "[PT1M30S]", ds.String())

	raw, _ := ndarray.FromRaw([][]byte{{0xde, 0xad}})
	assert.Equal(t, "[0xdead]", raw.String())
}
