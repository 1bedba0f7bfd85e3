/*
Package corpus stores named speaker corpora and a history of identifications
in a SQLite database.

Only the training texts are persisted. Markov models are rebuilt from the
stored text every time they are needed.

	db, err := corpus.Open("./data/speakerid.db?_journal_mode=WAL")
	if err != nil {
		return err
	}
	if err = corpus.SetupSchema(db); err != nil {
		return err
	}
	store, err := corpus.NewStore(db)
	if err != nil {
		return err
	}
	defer store.Close()

The pure-Go modernc.org/sqlite driver is used by default. Building with the
cgo_sqlite tag switches to github.com/mattn/go-sqlite3.
*/
package corpus
