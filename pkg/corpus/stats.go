package corpus

import (
	"context"
	"database/sql"
)

// Stats holds aggregated statistics for the whole store.
type Stats struct {
	Speakers        int            `json:"speakers"`        // The number of stored speakers
	Identifications int            `json:"identifications"` // The number of recorded identifications
	Wins            map[string]int `json:"wins"`            // A mapping of result labels to how often they won
}

// GetStats returns a snapshot of statistics for the store.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{Wins: make(map[string]int)}

	if err := s.stmtCountSpeakers.QueryRowContext(ctx).Scan(&stats.Speakers); err != nil {
		return nil, err
	}

	rows, err := s.stmtCountHistoryByLabel.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	for rows.Next() {
		var label string
		var count int
		if err = rows.Scan(&label, &count); err != nil {
			return nil, err
		}
		stats.Wins[label] = count
		stats.Identifications += count
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}
