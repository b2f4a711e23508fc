package memo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gonic-fp/hwrap_go/memo"
)

func TestTrie_BasicUsage(t *testing.T) {
	trie := memo.NewTrie[string](1)

	// store a value
	trie.Store([]memo.ComparableOrString{"a", "b", "c"}, "final")

	// load it back
	val, ok := trie.Load([]memo.ComparableOrString{"a", "b", "c"})
	assert.True(t, ok)
	assert.Equal(t, "final", val)

	// wrong key path
	_, ok = trie.Load([]memo.ComparableOrString{"a", "b", "x"})
	assert.False(t, ok)

	// overwrite existing
	trie.Store([]memo.ComparableOrString{"a", "b", "c"}, "updated")
	val, ok = trie.Load([]memo.ComparableOrString{"a", "b", "c"})
	assert.True(t, ok)
	assert.Equal(t, "updated", val)
}

func TestTrie_EmptyKeysPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic on empty keys, but didn't panic")
		}
	}()
	trie := memo.NewTrie[int](2)
	trie.Load([]memo.ComparableOrString{})
}

func TestTrie_ZeroMaxSizePanics(t *testing.T) {
	assert.Panics(t, func() { memo.NewTrie[int](0) })
}

func TestTrie_RotationIsLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	trie := memo.NewTrie[int](2, memo.WithLogger(zap.New(core)))

	trie.Store([]memo.ComparableOrString{"a"}, 1)
	trie.Store([]memo.ComparableOrString{"b"}, 2)
	// table is full; the next store rotates generations first
	trie.Store([]memo.ComparableOrString{"c"}, 3)

	entries := logs.FilterMessage("memo table rotated").All()
	assert.Len(t, entries, 1)

	// entries from the previous generation survive one rotation
	v, ok := trie.Load([]memo.ComparableOrString{"a"})
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	v, ok = trie.Load([]memo.ComparableOrString{"c"})
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}
