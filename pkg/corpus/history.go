package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// DefaultHistoryLimit is used by History when limit is not positive.
const DefaultHistoryLimit = 50

// Identification is one recorded comparison of a query against two speakers.
type Identification struct {
	Id          int       `json:"id"`
	SpeakerA    string    `json:"speaker_a"`
	SpeakerB    string    `json:"speaker_b"`
	Order       int       `json:"order"`
	QueryLength int       `json:"query_length"`
	ScoreA      float64   `json:"score_a"`
	ScoreB      float64   `json:"score_b"`
	Label       string    `json:"label"`
	CreatedAt   time.Time `json:"created_at"`
}

// RecordIdentification appends an entry to the history and returns it with its
// id and timestamp filled in.
func (s *Store) RecordIdentification(ctx context.Context, ident Identification) (Identification, error) {
	ident.CreatedAt = time.Now()
	err := s.stmtInsertHistory.QueryRowContext(ctx,
		ident.SpeakerA, ident.SpeakerB, ident.Order, ident.QueryLength,
		ident.ScoreA, ident.ScoreB, ident.Label, ident.CreatedAt.UnixNano(),
	).Scan(&ident.Id)
	if err != nil {
		return Identification{}, fmt.Errorf("could not record identification: %w", err)
	}

	s.logger.DebugContext(ctx, "Identification recorded",
		slog.Int("identification_id", ident.Id),
		slog.String("speaker_a", ident.SpeakerA),
		slog.String("speaker_b", ident.SpeakerB),
		slog.String("label", ident.Label),
	)
	return ident, nil
}

// History returns up to limit of the most recent identifications, newest first.
func (s *Store) History(ctx context.Context, limit int) ([]Identification, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	rows, err := s.stmtHistory.QueryContext(ctx, limit)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	history := make([]Identification, 0)
	for rows.Next() {
		var ident Identification
		var created int64
		if err = rows.Scan(&ident.Id, &ident.SpeakerA, &ident.SpeakerB, &ident.Order, &ident.QueryLength,
			&ident.ScoreA, &ident.ScoreB, &ident.Label, &created); err != nil {
			return nil, err
		}
		ident.CreatedAt = time.Unix(0, created)
		history = append(history, ident)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}
