package markov

import (
	"log/slog"
	"math"
)

// LogProbability returns the natural-log probability of query under the model,
// summed over every character of query and not normalized by its length.
//
// Contexts are taken from query itself, wrapping around its start, rather than
// from the tail of the training text.
func (m *Model) LogProbability(query string) float64 {
	text := []rune(query)
	var sum float64
	for i := range text {
		sum += m.logProb(grams(text, i, m.order))
	}

	m.logger.Debug("Scored query",
		slog.Int("order", m.order),
		slog.Int("query_length", len(text)),
		slog.Float64("log_probability", sum),
	)
	return sum
}

// logProb is the additively smoothed log probability of the last character of
// extended following context. It is always <= 0 because extended can never be
// seen more often than its own prefix.
func (m *Model) logProb(context, extended string) float64 {
	contextCount := m.contextCounts.Lookup(context)
	extendedCount := m.extendedCounts.Lookup(extended)
	return math.Log(float64(extendedCount+1) / float64(contextCount+m.alphabetSize))
}
