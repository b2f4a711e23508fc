package memo

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Trie is a bounded memo table over multi-part keys. It keeps two
// sync.Map generations and rotates to the standby generation when the
// configured size is reached, so the table never grows without bound and
// recently used entries survive one rotation.
type Trie[O any] struct {
	memos   [2]*sync.Map
	headIdx uint32
	size    atomic.Uint32
	maxSize uint32
	logger  *zap.Logger
}

type trieConfig struct {
	logger *zap.Logger
}

// TrieOption configures a Trie at construction.
type TrieOption func(*trieConfig)

// WithLogger attaches a zap logger; the trie reports generation rotation
// at debug level. The default is a no-op logger.
func WithLogger(logger *zap.Logger) TrieOption {
	return func(cfg *trieConfig) {
		cfg.logger = logger
	}
}

func NewTrie[O any](maxSize uint32, opts ...TrieOption) Trie[O] {
	if maxSize == 0 {
		panic("maxSize should be greater than 0")
	}
	cfg := trieConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return Trie[O]{
		memos:   [2]*sync.Map{{}, {}},
		maxSize: maxSize,
		logger:  cfg.logger,
	}
}

func (t *Trie[O]) Load(keys []ComparableOrString) (O, bool) {
	headIdx := t.headIdx
	targetMap := t.memos[headIdx]
	m, k := t.traverse(targetMap, keys)
	v, ok := m.Load(k)
	if !ok {
		targetMap = t.memos[1-headIdx]
		m, k := t.traverse(targetMap, keys)
		v, ok = m.Load(k)
		if !ok {
			var zero O
			return zero, false
		}
	}
	return v.(O), true
}

func (t *Trie[O]) traverse(targetMap *sync.Map, keys []ComparableOrString) (*sync.Map, any) {
	length := len(keys)
	if length == 0 {
		panic("traverse: empty keys")
	}

	for _, k := range keys[:length-1] {
		v, ok := targetMap.Load(k)
		if !ok {
			newMap := &sync.Map{}
			targetMap.Store(k, newMap)
			v = newMap
		}
		targetMap = v.(*sync.Map)
	}
	return targetMap, keys[length-1]
}

func (t *Trie[O]) Store(keys []ComparableOrString, value O) {
	if swapped := t.size.CompareAndSwap(t.maxSize, 0); swapped {
		t.headIdx = 1 - t.headIdx
		t.memos[t.headIdx] = &sync.Map{}
		t.logger.Debug("memo table rotated",
			zap.Uint32("max_size", t.maxSize),
			zap.Uint32("head", t.headIdx),
		)
	}
	targetMap := t.memos[t.headIdx]
	m, k := t.traverse(targetMap, keys)
	m.Store(k, value)
	t.size.Add(1)
}
