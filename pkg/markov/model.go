package markov

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/CTAG07/speakerid/pkg/hashtable"
)

// initialTableCells is the starting capacity of both count tables.
const initialTableCells = 57

var (
	// ErrInvalidOrder is returned when a model is built with a negative order.
	ErrInvalidOrder = errors.New("markov: order must be non-negative")
	// ErrEmptyTrainingText is returned when a model is built from an empty string.
	// An empty alphabet would leave the smoothing denominator at zero.
	ErrEmptyTrainingText = errors.New("markov: training text is empty")
)

// Model is a k-order character Markov model trained on a single text.
// A Model is read-only once New returns.
type Model struct {
	order        int
	text         []rune
	alphabetSize int

	// contextCounts holds counts of every circular k-gram of the training text,
	// extendedCounts the counts of every circular (k+1)-gram.
	contextCounts  *hashtable.Table[int]
	extendedCounts *hashtable.Table[int]

	logger *slog.Logger
}

// New trains a model of the given order on text. The count tables are built
// once, here; scoring never modifies them.
//
// Every text position contributes a context of order characters and a gram of
// order+1, so building the model takes memory proportional to order times the
// text length. Callers taking order from untrusted input must bound it.
func New(order int, text string) (*Model, error) {
	if order < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOrder, order)
	}
	if text == "" {
		return nil, ErrEmptyTrainingText
	}

	m := &Model{
		order:  order,
		text:   []rune(text),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	m.alphabetSize = alphabetSize(m.text)

	var err error
	if m.contextCounts, err = hashtable.New(initialTableCells, 0); err != nil {
		return nil, err
	}
	if m.extendedCounts, err = hashtable.New(initialTableCells, 0); err != nil {
		return nil, err
	}
	if err = m.train(); err != nil {
		return nil, err
	}
	return m, nil
}

// Order returns the number of preceding characters used as context.
func (m *Model) Order() int { return m.order }

// AlphabetSize returns the number of distinct characters in the training text.
func (m *Model) AlphabetSize() int { return m.alphabetSize }

// Text returns the training text.
func (m *Model) Text() string { return string(m.text) }

// SetLogger sets the logger for the Model. By default, all logs are discarded.
func (m *Model) SetLogger(logger *slog.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

func alphabetSize(text []rune) int {
	seen := make(map[rune]struct{})
	for _, c := range text {
		seen[c] = struct{}{}
	}
	return len(seen)
}
