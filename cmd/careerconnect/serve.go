package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/careerconnect/internal/config"
	"github.com/jonathan/careerconnect/internal/logger"
	"github.com/jonathan/careerconnect/internal/server"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Start the recommendations HTTP API",
	Long: `Starts the HTTP server exposing /api/auth/login, /api/recommendations,
and /health. Configuration is read from a JSON file (--config), with
environment variables filling any values the file leaves unset.`,
	RunE: serveCmd,
}

var (
	serveConfigPath string
	servePort       int
	serveUseBrowser bool
	serveJSONLogs   bool
	serveVerbose    bool
)

func init() {
	serveCommand.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCommand.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (defaults to PORT env var, then 8080)")
	serveCommand.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Use headless browser fallback for JS-rendered job boards (requires Chrome)")
	serveCommand.Flags().BoolVar(&serveJSONLogs, "json-logs", false, "Emit logs as JSON instead of console format")
	serveCommand.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Enable debug-level logging")

	rootCmd.AddCommand(serveCommand)
}

func serveCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(cmd, serveConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = serveUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = serveVerbose
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL or database_url in config)")
	}

	log, err := logger.New(serveJSONLogs, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	srv, err := server.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer srv.Close()

	return srv.Start()
}

// loadConfig reads the JSON config file when one is given, otherwise
// starts from the environment. Environment variables fill any values
// the file left unset.
func loadConfig(_ *cobra.Command, path string) (*config.Config, error) {
	if path == "" {
		return config.FromEnv(), nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnv()
	return cfg, nil
}
