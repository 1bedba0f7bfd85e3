package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"
)

// Speaker is a named training corpus.
type Speaker struct {
	Id        int
	Name      string
	Text      string
	CreatedAt time.Time
}

// SpeakerInfo describes a stored speaker without its text.
type SpeakerInfo struct {
	Id        int       `json:"id"`
	Name      string    `json:"name"`
	Length    int       `json:"length"` // The text length in characters
	CreatedAt time.Time `json:"created_at"`
}

// PutSpeaker stores text under name, replacing any text already stored for it.
// It returns the speaker's id.
func (s *Store) PutSpeaker(ctx context.Context, name, text string) (int, error) {
	if name == "" {
		return 0, ErrEmptyName
	}
	if text == "" {
		return 0, ErrEmptyText
	}
	var id int
	err := s.stmtPutSpeaker.QueryRowContext(ctx, name, text, time.Now().UnixNano()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("could not store speaker '%s': %w", name, err)
	}

	s.logger.InfoContext(ctx, "Speaker stored",
		slog.String("speaker_name", name),
		slog.Int("speaker_id", id),
		slog.Int("text_length", utf8.RuneCountInString(text)),
	)
	return id, nil
}

// GetSpeaker retrieves a speaker, including its text, by name.
func (s *Store) GetSpeaker(ctx context.Context, name string) (Speaker, error) {
	sp := Speaker{Name: name}
	var created int64
	err := s.stmtGetSpeaker.QueryRowContext(ctx, name).Scan(&sp.Id, &sp.Text, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Speaker{}, fmt.Errorf("%w: '%s'", ErrSpeakerNotFound, name)
		}
		return Speaker{}, fmt.Errorf("could not get speaker '%s': %w", name, err)
	}
	sp.CreatedAt = time.Unix(0, created)
	return sp, nil
}

// ListSpeakers returns every stored speaker ordered by name.
func (s *Store) ListSpeakers(ctx context.Context) ([]SpeakerInfo, error) {
	rows, err := s.stmtListSpeakers.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	speakers := make([]SpeakerInfo, 0)
	for rows.Next() {
		var info SpeakerInfo
		var created int64
		if err = rows.Scan(&info.Id, &info.Name, &info.Length, &created); err != nil {
			return nil, err
		}
		info.CreatedAt = time.Unix(0, created)
		speakers = append(speakers, info)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return speakers, nil
}

// RemoveSpeaker deletes a speaker and every history entry that names it. The
// operation is performed within a transaction.
func (s *Store) RemoveSpeaker(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	res, err := tx.ExecContext(ctx, "DELETE FROM speakers WHERE speaker_name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to remove speaker '%s': %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: '%s'", ErrSpeakerNotFound, name)
	}

	res, err = tx.ExecContext(ctx, "DELETE FROM identifications WHERE speaker_a = ? OR speaker_b = ?", name, name)
	if err != nil {
		return fmt.Errorf("failed to remove history for speaker '%s': %w", name, err)
	}
	historyRemoved, _ := res.RowsAffected()

	s.logger.InfoContext(ctx, "Speaker removed successfully",
		slog.String("speaker_name", name),
		slog.Int64("history_removed", historyRemoved),
	)

	return tx.Commit()
}
