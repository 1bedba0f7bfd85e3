//go:build cgo_sqlite

package corpus

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens a SQLite database using the cgo driver.
func Open(dataSource string) (*sql.DB, error) {
	return sql.Open("sqlite3", dataSource)
}
