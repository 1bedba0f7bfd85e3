//go:build !cgo_sqlite

package corpus

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// Open opens a SQLite database using the pure-Go driver.
func Open(dataSource string) (*sql.DB, error) {
	return sql.Open("sqlite", dataSource)
}
