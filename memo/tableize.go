// Package memo provides bounded memoization for pure functions, keyed by
// hashable values. It exists for exactly the reason hwrap does: once an
// array is frozen and hashable it can serve as a memo key, so a pure
// function over wrapped arrays becomes a lazy table.
//
// Keys are resolved in order: a Keyer (such as *hwrap.HWrap) contributes
// its canonical MemoKey, a fmt.Stringer contributes its String rendering,
// and anything else must be comparable and is used as-is.
//
// Do not tableize impure functions; the table assumes referential
// transparency.
package memo

import (
	"fmt"
)

type ComparableOrStringer any
type ComparableOrString any

// Keyer yields a stable key that is injective over the value's identity
// as an argument. *hwrap.HWrap implements it.
type Keyer interface {
	MemoKey() string
}

func tableKey(i ComparableOrStringer) ComparableOrString {
	if keyer, ok := i.(Keyer); ok {
		return keyer.MemoKey()
	}
	if stringer, ok := i.(fmt.Stringer); ok {
		return stringer.String()
	}
	return i
}

func TableizeI1O1[I1 ComparableOrStringer, O1 any](
	pureFn func(I1) O1,
	maxTableSize uint32,
	opts ...TrieOption,
) func(I1) O1 {
	tableized := tableize(
		func(args ...ComparableOrStringer) O1 {
			return pureFn(args[0].(I1))
		},
		maxTableSize,
		opts...,
	)
	return func(i1 I1) O1 {
		return tableized(i1)
	}
}

func TableizeI2O1[I1, I2 ComparableOrStringer, O1 any](
	pureFn func(I1, I2) O1,
	maxTableSize uint32,
	opts ...TrieOption,
) func(I1, I2) O1 {
	tableized := tableize(
		func(args ...ComparableOrStringer) O1 {
			return pureFn(args[0].(I1), args[1].(I2))
		},
		maxTableSize,
		opts...,
	)
	return func(i1 I1, i2 I2) O1 {
		return tableized(i1, i2)
	}
}

func TableizeI3O1[I1, I2, I3 ComparableOrStringer, O1 any](
	pureFn func(I1, I2, I3) O1,
	maxTableSize uint32,
	opts ...TrieOption,
) func(I1, I2, I3) O1 {
	tableized := tableize(
		func(args ...ComparableOrStringer) O1 {
			return pureFn(args[0].(I1), args[1].(I2), args[2].(I3))
		},
		maxTableSize,
		opts...,
	)
	return func(i1 I1, i2 I2, i3 I3) O1 {
		return tableized(i1, i2, i3)
	}
}

func TableizeI4O1[I1, I2, I3, I4 ComparableOrStringer, O1 any](
	pureFn func(I1, I2, I3, I4) O1,
	maxTableSize uint32,
	opts ...TrieOption,
) func(I1, I2, I3, I4) O1 {
	tableized := tableize(
		func(args ...ComparableOrStringer) O1 {
			return pureFn(args[0].(I1), args[1].(I2), args[2].(I3), args[3].(I4))
		},
		maxTableSize,
		opts...,
	)
	return func(i1 I1, i2 I2, i3 I3, i4 I4) O1 {
		return tableized(i1, i2, i3, i4)
	}
}

func tableize[O any](
	pureFn func(...ComparableOrStringer) O,
	maxTableSize uint32,
	opts ...TrieOption,
) func(...ComparableOrStringer) O {
	memo := NewTrie[O](maxTableSize, opts...)
	return func(args ...ComparableOrStringer) O {
		keys := make([]ComparableOrString, len(args))
		for i, arg := range args {
			keys[i] = tableKey(arg)
		}
		v, ok := memo.Load(keys)
		if !ok {
			v = pureFn(args...)
			memo.Store(keys, v)
		}
		return v
	}
}
