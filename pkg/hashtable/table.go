package hashtable

import (
	"errors"
	"fmt"
	"iter"
)

const (
	// hashMultiplier is the base of the polynomial rolling hash.
	hashMultiplier = 37
	// growthFactor is how much the capacity is multiplied by on rehash.
	growthFactor = 2
	// DefaultMaxCapacity bounds how far a table may grow unless overridden with WithMaxCapacity.
	DefaultMaxCapacity = 1 << 30
)

var (
	// ErrInvalidCapacity is returned by New when the initial capacity is not positive.
	ErrInvalidCapacity = errors.New("hashtable: capacity must be positive")
	// ErrCapacityExhausted means a probe visited every slot without finding the key or
	// an empty slot. Growth keeps the load below one half, so this indicates a broken
	// table rather than a usage error.
	ErrCapacityExhausted = errors.New("hashtable: probe exhausted table capacity")
	// ErrCapacityOverflow is returned when the table would have to grow past its maximum
	// capacity. The table is left exactly as it was before the failing call.
	ErrCapacityOverflow = errors.New("hashtable: capacity limit reached")
)

type slot[V any] struct {
	key   string
	value V
	used  bool
}

// Table is an open-addressing hash table keyed by strings. Lookups of absent keys
// yield the default value supplied at construction.
type Table[V any] struct {
	slots       []slot[V]
	size        int
	defaultVal  V
	maxCapacity int
	rehashes    int
}

type options struct {
	maxCapacity int
}

// Option configures a Table.
type Option func(*options)

// WithMaxCapacity caps the capacity the table may grow to.
// Default: DefaultMaxCapacity
func WithMaxCapacity(n int) Option {
	return func(o *options) {
		o.maxCapacity = n
	}
}

// New creates a table with the given number of slots. Every lookup of a key that
// was never updated returns defaultValue.
func New[V any](capacity int, defaultValue V, opts ...Option) (*Table[V], error) {
	o := options{maxCapacity: DefaultMaxCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	if capacity > o.maxCapacity {
		return nil, fmt.Errorf("%w: initial capacity %d exceeds limit %d", ErrCapacityOverflow, capacity, o.maxCapacity)
	}
	return &Table[V]{
		slots:       make([]slot[V], capacity),
		defaultVal:  defaultValue,
		maxCapacity: o.maxCapacity,
	}, nil
}

// Lookup returns the value stored for key, or the table's default value if the
// key has never been inserted.
func (t *Table[V]) Lookup(key string) V {
	idx, found, err := probe(t.slots, key)
	if err != nil || !found {
		return t.defaultVal
	}
	return t.slots[idx].value
}

// Update sets the value for key, inserting the key if it is not present. An insert
// that brings the load factor to one half or more grows the table before Update
// returns. If growth is impossible the key is not inserted and ErrCapacityOverflow
// is returned.
func (t *Table[V]) Update(key string, value V) error {
	idx, found, err := probe(t.slots, key)
	if err != nil {
		return fmt.Errorf("update %q: %w", key, err)
	}
	if found {
		t.slots[idx].value = value
		return nil
	}

	// Check growth up front so a failed insert leaves nothing behind.
	target := len(t.slots)
	for tooFull(t.size+1, target) {
		if target > t.maxCapacity/growthFactor {
			return fmt.Errorf("update %q: %w: need more than %d slots", key, ErrCapacityOverflow, t.maxCapacity)
		}
		target *= growthFactor
	}

	t.slots[idx] = slot[V]{key: key, value: value, used: true}
	t.size++

	for tooFull(t.size, len(t.slots)) {
		if err = t.rehash(); err != nil {
			return fmt.Errorf("update %q: %w", key, err)
		}
	}
	return nil
}

// Len returns the number of keys stored in the table.
func (t *Table[V]) Len() int { return t.size }

// Cap returns the current number of slots.
func (t *Table[V]) Cap() int { return len(t.slots) }

// Default returns the value yielded for absent keys.
func (t *Table[V]) Default() V { return t.defaultVal }

// Rehashes returns how many times the table has grown.
func (t *Table[V]) Rehashes() int { return t.rehashes }

// All iterates over the stored entries in slot order.
func (t *Table[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, s := range t.slots {
			if !s.used {
				continue
			}
			if !yield(s.key, s.value) {
				return
			}
		}
	}
}

// rehash doubles the capacity and reinserts every entry under the new capacity.
// The new slot array is fully built before it replaces the old one.
func (t *Table[V]) rehash() error {
	oldCap := len(t.slots)
	if oldCap > t.maxCapacity/growthFactor {
		return fmt.Errorf("%w: cannot grow past %d slots", ErrCapacityOverflow, oldCap)
	}
	next := make([]slot[V], oldCap*growthFactor)
	for _, s := range t.slots {
		if !s.used {
			continue
		}
		idx, found, err := probe(next, s.key)
		if err != nil {
			return err
		}
		if found {
			return fmt.Errorf("duplicate key %q during rehash: %w", s.key, ErrCapacityExhausted)
		}
		next[idx] = s
	}
	t.slots = next
	t.rehashes++
	return nil
}

// probe walks the slots linearly from the key's hash. It returns the index of the
// slot holding key (found is true) or of the first empty slot (found is false).
func probe[V any](slots []slot[V], key string) (int, bool, error) {
	capacity := len(slots)
	start := hash(key, capacity)
	for i := 0; i < capacity; i++ {
		idx := (start + i) % capacity
		s := &slots[idx]
		if !s.used {
			return idx, false, nil
		}
		if s.key == key {
			return idx, true, nil
		}
	}
	return 0, false, ErrCapacityExhausted
}

// hash is a polynomial rolling hash over the key's code points, reduced modulo capacity
// at every step.
func hash(key string, capacity int) int {
	h := 0
	for _, c := range key {
		h = (h*hashMultiplier + int(c)) % capacity
	}
	return h
}

func tooFull(size, capacity int) bool {
	return 2*size >= capacity
}
