package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pennywise-app/pennywise/internal/config"
	"github.com/pennywise-app/pennywise/internal/engine"
	"github.com/pennywise-app/pennywise/internal/insights"
	"github.com/pennywise-app/pennywise/internal/llm"
	"github.com/pennywise-app/pennywise/internal/server"
	"github.com/pennywise-app/pennywise/internal/storage"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE:  runServe,
	}

	cmd.Flags().String("addr", "", "listen address (overrides config)")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	client, err := llm.NewOpenAIClient(llm.Config{
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.LLMModel,
		BaseURL: cfg.LLMBaseURL,
		Timeout: cfg.LLMTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create classification client: %w", err)
	}

	logger := slog.Default()

	app := server.New(server.Deps{
		Storage:    store,
		Classifier: engine.NewClassifier(store, client, cfg.LLMTimeout, logger),
		Learner:    engine.NewRuleLearner(store, logger),
		Dashboard:  insights.NewService(store, cfg.MonthlyBaselineCents, logger),
		Logger:     logger,
		JWTSecret:  cfg.JWTSecret,
	})

	// Shut the listener down when the root context is canceled (SIGINT/SIGTERM).
	go func() {
		<-cmd.Context().Done()
		slog.Info("shutting down")
		_ = app.Shutdown()
	}()

	slog.Info("starting server", "addr", cfg.ServerAddr)
	if err := app.Listen(cfg.ServerAddr); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
