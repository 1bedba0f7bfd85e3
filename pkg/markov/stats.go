package markov

// ModelStats holds aggregated statistics for a trained model.
type ModelStats struct {
	Order            int // The context length of the model
	AlphabetSize     int // The number of distinct characters in the training text
	TextLength       int // The number of characters trained on, and so the number of transitions
	DistinctContexts int // The number of unique k-grams
	DistinctGrams    int // The number of unique (k+1)-grams
	ContextCapacity  int // The slot count of the k-gram table
	GramCapacity     int // The slot count of the (k+1)-gram table
}

// Stats returns a snapshot of the model's size.
func (m *Model) Stats() ModelStats {
	return ModelStats{
		Order:            m.order,
		AlphabetSize:     m.alphabetSize,
		TextLength:       len(m.text),
		DistinctContexts: m.contextCounts.Len(),
		DistinctGrams:    m.extendedCounts.Len(),
		ContextCapacity:  m.contextCounts.Cap(),
		GramCapacity:     m.extendedCounts.Cap(),
	}
}
