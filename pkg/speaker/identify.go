package speaker

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/CTAG07/speakerid/pkg/markov"
)

const (
	// LabelA names the first speaker.
	LabelA = "A"
	// LabelB names the second speaker.
	LabelB = "B"
)

// ErrEmptyQuery is returned when the text to identify is empty, since scores are
// normalized by its length.
var ErrEmptyQuery = errors.New("speaker: query text is empty")

// Result holds the normalized scores of both speakers and the more likely one.
type Result struct {
	ScoreA float64 `json:"score_a"`
	ScoreB float64 `json:"score_b"`
	Label  string  `json:"label"`
}

// Option configures an Identifier.
type Option func(*Identifier)

// WithLogger sets the logger used for identification summaries.
func WithLogger(logger *slog.Logger) Option {
	return func(id *Identifier) {
		if logger != nil {
			id.logger = logger
		}
	}
}

// Identifier trains a fresh pair of models for every call to Identify. It holds
// no model state between calls.
type Identifier struct {
	logger *slog.Logger
}

// NewIdentifier creates an Identifier. Without WithLogger all logs are discarded.
func NewIdentifier(opts ...Option) *Identifier {
	id := &Identifier{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(id)
	}
	return id
}

// Identify is shorthand for NewIdentifier().Identify.
func Identify(corpusA, corpusB, query string, order int) (Result, error) {
	return NewIdentifier().Identify(corpusA, corpusB, query, order)
}

// Identify trains an order-k model on each corpus, scores query under both and
// divides each score by the length of query in characters. Label is LabelA when
// ScoreA >= ScoreB, so ties go to the first speaker.
func (id *Identifier) Identify(corpusA, corpusB, query string, order int) (Result, error) {
	n := utf8.RuneCountInString(query)
	if n == 0 {
		return Result{}, ErrEmptyQuery
	}
	start := time.Now()

	modelA, err := markov.New(order, corpusA)
	if err != nil {
		return Result{}, fmt.Errorf("failed to train speaker %s: %w", LabelA, err)
	}
	modelB, err := markov.New(order, corpusB)
	if err != nil {
		return Result{}, fmt.Errorf("failed to train speaker %s: %w", LabelB, err)
	}
	modelA.SetLogger(id.logger.With(slog.String("speaker", LabelA)))
	modelB.SetLogger(id.logger.With(slog.String("speaker", LabelB)))

	res := Result{
		ScoreA: modelA.LogProbability(query) / float64(n),
		ScoreB: modelB.LogProbability(query) / float64(n),
	}
	if res.ScoreA >= res.ScoreB {
		res.Label = LabelA
	} else {
		res.Label = LabelB
	}

	statsA, statsB := modelA.Stats(), modelB.Stats()
	id.logger.Info("Identification completed",
		slog.Int("order", order),
		slog.Int("query_length", n),
		slog.Int("alphabet_a", statsA.AlphabetSize),
		slog.Int("alphabet_b", statsB.AlphabetSize),
		slog.Int("contexts_a", statsA.DistinctContexts),
		slog.Int("contexts_b", statsB.DistinctContexts),
		slog.Float64("score_a", res.ScoreA),
		slog.Float64("score_b", res.ScoreB),
		slog.String("label", res.Label),
		slog.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}
