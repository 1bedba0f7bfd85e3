package markov

import (
	"fmt"
	"io"

	"github.com/CTAG07/speakerid/pkg/hashtable"
)

// NewFromReader reads all of r into memory and trains a model on it.
func NewFromReader(order int, r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read training text: %w", err)
	}
	return New(order, string(data))
}

// train fills both count tables from the training text. It runs exactly once,
// from New, so counts are never accumulated twice.
func (m *Model) train() error {
	for i := range m.text {
		context, extended := grams(m.text, i, m.order)
		if err := increment(m.contextCounts, context); err != nil {
			return fmt.Errorf("failed to count context %q: %w", context, err)
		}
		if err := increment(m.extendedCounts, extended); err != nil {
			return fmt.Errorf("failed to count gram %q: %w", extended, err)
		}
	}
	return nil
}

func increment(t *hashtable.Table[int], key string) error {
	return t.Update(key, t.Lookup(key)+1)
}
