package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/CTAG07/speakerid/pkg/corpus"
	"github.com/CTAG07/speakerid/pkg/speaker"
)

// Server wires the store and the identifier into the API handlers.
type Server struct {
	cm          *ConfigManager
	db          *sql.DB
	store       *corpus.Store
	logger      *slog.Logger
	identifier  *speaker.Identifier
	speakerAPI  *SpeakerAPI
	identifyAPI *IdentifyAPI
	statsAPI    *StatsAPI
	serverAPI   *ServerAPI
	authAPI     *AuthAPI
	apiMux      *http.ServeMux
}

func NewServer(cm *ConfigManager, logger *slog.Logger, db *sql.DB, actionChan chan string) (*Server, error) {
	store, err := corpus.NewStore(db)
	if err != nil {
		return nil, fmt.Errorf("error creating corpus store: %w", err)
	}
	store.SetLogger(logger)

	identifier := speaker.NewIdentifier(speaker.WithLogger(logger))

	server := &Server{
		cm:          cm,
		db:          db,
		store:       store,
		logger:      logger,
		identifier:  identifier,
		speakerAPI:  NewSpeakerAPI(store, cm, logger),
		identifyAPI: NewIdentifyAPI(store, identifier, cm, logger),
		statsAPI:    NewStatsAPI(store, cm, logger),
		serverAPI:   NewServerAPI(cm, actionChan, logger),
		authAPI:     NewAuthAPI(db, logger),
		apiMux:      http.NewServeMux(),
	}

	apiMux := http.NewServeMux()
	server.speakerAPI.RegisterRoutes(apiMux)
	server.identifyAPI.RegisterRoutes(apiMux)
	server.statsAPI.RegisterRoutes(apiMux)
	server.serverAPI.RegisterRoutes(apiMux)
	server.authAPI.RegisterRoutes(apiMux)

	// Every api route passes through authentication first.
	server.apiMux.Handle("/api/", server.authAPI.Authenticate(apiMux))

	return server, nil
}

// Close releases the store's prepared statements. The database is owned by the caller.
func (s *Server) Close() {
	s.store.Close()
}
