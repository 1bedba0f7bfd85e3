package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var cmdServe = &cobra.Command{
	Use:   "serve",
	Short: "Serve the identification API over HTTP",
	Long: `
The "serve" command starts a JSON HTTP API for managing stored speakers and
identifying texts against them. It runs until interrupted or until shut down
through the API.
`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	cmdRoot.AddCommand(cmdServe)
}

func runServe() error {
	actionChan := make(chan string, 1)

	go func() {
		osSignalChan := make(chan os.Signal, 1)
		signal.Notify(osSignalChan, syscall.SIGINT, syscall.SIGTERM)
		<-osSignalChan
		actionChan <- actionShutdown
	}()

	for {
		action, err := serveCycle(actionChan)
		if err != nil {
			return err
		}
		if action != actionRestart {
			return nil
		}
	}
}

// serveCycle hosts the API server and returns whenever it is shut down or restarted.
func serveCycle(actionChan chan string) (string, error) {
	cm, err := NewConfigManager(globalOptions.ConfigPath)
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := cm.Get()

	logger := newLogger(cfg.Server.LogLevel)
	logger.Info("Starting server cycle...")

	db, err := openDB(cfg.Server)
	if err != nil {
		return "", err
	}

	server, err := NewServer(cm, logger, db, actionChan)
	if err != nil {
		_ = db.Close()
		return "", fmt.Errorf("failed to create server object: %w", err)
	}

	apiHttpServer := &http.Server{
		Addr:              cfg.Server.ApiAddr,
		Handler:           server.apiMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting api server", "address", apiHttpServer.Addr)
		if err := apiHttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Api server failed", "error", err)
			actionChan <- actionShutdown
		}
	}()

	action := <-actionChan

	logger.Info("Stopping server for " + action + "...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = apiHttpServer.Shutdown(ctx); err != nil {
		logger.Error("Api server shutdown failed", "error", err)
	}
	server.Close()

	logger.Info("Closing database connection.")
	if err = db.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
	}

	return action, nil
}
