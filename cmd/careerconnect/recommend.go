package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/careerconnect/internal/config"
	"github.com/jonathan/careerconnect/internal/db"
	"github.com/jonathan/careerconnect/internal/embedding"
	"github.com/jonathan/careerconnect/internal/fetch"
	"github.com/jonathan/careerconnect/internal/harvest"
	"github.com/jonathan/careerconnect/internal/llm"
	"github.com/jonathan/careerconnect/internal/logger"
	"github.com/jonathan/careerconnect/internal/matching"
	"github.com/jonathan/careerconnect/internal/observability"
	"github.com/jonathan/careerconnect/internal/pool"
	"github.com/jonathan/careerconnect/internal/profile"
	"github.com/jonathan/careerconnect/internal/types"
)

var recommendCommand = &cobra.Command{
	Use:   "recommend",
	Short: "Compute ranked job recommendations for one candidate",
	Long: `Runs the full matching pipeline for a single candidate and prints the
ranked recommendations. Output is JSON by default; --verbose prints the
derived profile and a readable ranking instead.`,
	RunE: recommendCmd,
}

var (
	recommendConfigPath string
	recommendUserID     string
	recommendUseBrowser bool
	recommendVerbose    bool
)

func init() {
	recommendCommand.Flags().StringVar(&recommendConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	recommendCommand.Flags().StringVarP(&recommendUserID, "user", "u", "", "Candidate user ID (UUID)")
	recommendCommand.Flags().BoolVar(&recommendUseBrowser, "use-browser", false, "Use headless browser fallback for JS-rendered job boards (requires Chrome)")
	recommendCommand.Flags().BoolVarP(&recommendVerbose, "verbose", "v", false, "Print the derived profile and a readable ranking")

	_ = recommendCommand.MarkFlagRequired("user")

	rootCmd.AddCommand(recommendCommand)
}

func recommendCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	userID, err := uuid.Parse(recommendUserID)
	if err != nil {
		return fmt.Errorf("invalid user ID %q: %w", recommendUserID, err)
	}

	cfg, err := loadConfig(cmd, recommendConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = recommendUseBrowser
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL or database_url in config)")
	}

	log, err := logger.New(false, recommendVerbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	engine, cleanup, err := buildEngine(ctx, cfg, database, log)
	if err != nil {
		return err
	}
	defer cleanup()

	user, err := database.Candidate(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == types.RoleEmployer {
		return fmt.Errorf("user %s is an employer; recommendations are for job seekers only", userID)
	}

	prof, results, err := engine.RecommendWithProfile(ctx, userID)
	if err != nil {
		return err
	}

	if recommendVerbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintProfile(prof)
		printer.PrintRecommendations(results)
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// buildEngine assembles the matching engine the same way the server
// does. The returned cleanup closes any provider clients.
func buildEngine(ctx context.Context, cfg *config.Config, database *db.DB, log *zap.Logger) (*matching.Engine, func(), error) {
	var closers []func()
	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	var providers []embedding.Provider
	if cfg.GeminiAPIKey != "" {
		gemini, err := embedding.NewGeminiProvider(ctx, cfg.GeminiAPIKey, embedding.DefaultGeminiModel)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to create gemini embedding provider: %w", err)
		}
		providers = append(providers, gemini)
		closers = append(closers, func() { _ = gemini.Close() })
	}
	if cfg.OpenAIAPIKey != "" {
		openai, err := embedding.NewOpenAIProvider(cfg.OpenAIAPIKey, embedding.DefaultOpenAIModel)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to create openai embedding provider: %w", err)
		}
		providers = append(providers, openai)
	}

	var embedder matching.Embedder
	if len(providers) > 0 {
		chain, err := embedding.NewChain(log, providers...)
		if err != nil {
			return nil, cleanup, err
		}
		embedder = embedding.NewCache(chain, embedding.DefaultCacheTTL, embedding.DefaultCacheSize)
	} else {
		log.Warn("no embedding credentials configured, semantic matching disabled")
	}

	var extractor profile.Extractor
	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, llm.DefaultModel)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to create gemini client: %w", err)
		}
		closers = append(closers, func() { _ = client.Close() })

		extractor, err = llm.NewResumeExtractor(client, log)
		if err != nil {
			return nil, cleanup, err
		}
	} else {
		log.Warn("no gemini credentials configured, structured resume extraction disabled")
	}

	linkedInOpts := []harvest.LinkedInOption{}
	if cfg.UseBrowser {
		linkedInOpts = append(linkedInOpts, harvest.WithBrowserFallback())
	}
	harvesters := []harvest.Harvester{harvest.NewLinkedIn(log, linkedInOpts...)}

	aggregator := pool.NewAggregator(database, harvesters, log, pool.WithDefaultLocation(cfg.DefaultLocation))
	builder := profile.NewBuilder(extractor, log)

	opts := &matching.Options{Concurrency: cfg.Concurrency}
	engine := matching.NewEngine(database, aggregator, fetch.NewResumeSource(), builder, embedder, log, opts)
	return engine, cleanup, nil
}
