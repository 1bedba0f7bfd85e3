package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/CTAG07/speakerid/pkg/corpus"
)

// openDB opens the configured database, creating the data directory and
// schema as needed.
func openDB(cfg *ServerConfig) (*sql.DB, error) {
	if cfg.DataDir != "" {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
	}

	db, err := corpus.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err = corpus.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to setup corpus schema: %w", err)
	}
	if err = setupAuthSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to setup auth schema: %w", err)
	}
	return db, nil
}

// openStore opens the database and prepares a store on it. The caller closes
// both the store and the database.
func openStore(cfg *ServerConfig) (*sql.DB, *corpus.Store, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	store, err := corpus.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to prepare corpus store: %w", err)
	}
	return db, store, nil
}

// withStore loads the config, opens the store with the configured logger and
// runs fn against it.
func withStore(fn func(s *corpus.Store) error) error {
	cm, err := NewConfigManager(globalOptions.ConfigPath)
	if err != nil {
		return err
	}
	cfg := cm.Get()

	db, store, err := openStore(cfg.Server)
	if err != nil {
		return err
	}
	defer func() {
		store.Close()
		_ = db.Close()
	}()
	store.SetLogger(newLogger(cfg.Server.LogLevel))

	return fn(store)
}
