package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xxracer/clearcomply2.1/internal/config"
	"github.com/xxracer/clearcomply2.1/internal/directory"
	"github.com/xxracer/clearcomply2.1/internal/doccheck"
	"github.com/xxracer/clearcomply2.1/internal/events"
	"github.com/xxracer/clearcomply2.1/internal/formgen"
	"github.com/xxracer/clearcomply2.1/internal/kv"
	"github.com/xxracer/clearcomply2.1/internal/llm"
	"github.com/xxracer/clearcomply2.1/internal/logger"
	"github.com/xxracer/clearcomply2.1/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the company directory, candidate lifecycle, form generation and document-check endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides configuration)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync() //nolint:errcheck // stderr sync failures are harmless

	store := kv.NewRedis(kv.RedisConfig{
		Address:  cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer store.Close()

	ctx := cmd.Context()
	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("redis unreachable at %s: %w", cfg.Redis.Address, err)
	}

	bus := events.NewBus()
	deps := server.Deps{
		Companies:  directory.NewCompanies(store, bus, log),
		Candidates: directory.NewCandidates(store, bus, log),
		Store:      store,
		Bus:        bus,
		Logger:     log,
	}

	if cfg.LLM.APIKey != "" {
		client, err := newLLMClient(ctx, cfg)
		if err != nil {
			return err
		}
		defer client.Close()
		deps.Generator = formgen.New(client, log)
		deps.Checker = doccheck.New(client, log)
	} else {
		log.Warn("no LLM API key configured, generation endpoints disabled")
	}

	return server.New(cfg.Server, deps).Start()
}

func newLLMClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	client, err := llm.NewGemini(ctx, llm.Config{
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	}, cfg.LLM.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}
