package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"sentilytics/internal/adapter/sentiment"
	"sentilytics/internal/adapter/storage"
	"sentilytics/internal/config"
	"sentilytics/pkg/logger"
	"sentilytics/pkg/retry"
)

// cliClientKey identifies the CLI user in the state file
const cliClientKey = "cli"

var (
	// Global flags
	flagAPIURL    string
	flagOutput    string
	flagStatePath string
	flagVerbose   bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:           "sentictl",
	Short:         "Social media sentiment analytics",
	Long:          "Fetch sentiment data for a keyword or hashtag and summarize it from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return err
		}
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded

		if _, err := parseFormat(flagOutput); err != nil {
			return err
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Sentiment API base URL (default: UPSTREAM_BASE_URL)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "text", "Output format: text, json or yaml")
	rootCmd.PersistentFlags().StringVar(&flagStatePath, "state", "", "State file for the last query and run history (default: STORE_FILE_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log requests and retries to stderr")
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}

func getLogger() logger.Logger {
	if !flagVerbose {
		return logger.Nop()
	}
	return logger.New(logger.Opts{
		Env:    "development",
		Level:  "debug",
		Output: os.Stderr,
	})
}

// getClient creates the sentiment API client from config and flags
func getClient(log logger.Logger) *sentiment.Client {
	baseURL := cfg.Upstream.BaseURL
	if flagAPIURL != "" {
		baseURL = flagAPIURL
	}
	return sentiment.New(baseURL,
		sentiment.WithHTTPClient(&http.Client{Timeout: cfg.Upstream.Timeout}),
		sentiment.WithRetry(retry.Config{
			MaxRetries:      uint64(cfg.Upstream.MaxRetries),
			InitialInterval: cfg.Upstream.RetryInitial,
			MaxInterval:     cfg.Upstream.RetryMax,
			Multiplier:      cfg.Upstream.RetryMultiplier,
		}),
		sentiment.WithLogger(log),
	)
}

// getStore opens the local state file
func getStore() (*storage.FileStore, error) {
	path := cfg.Store.FilePath
	if flagStatePath != "" {
		path = flagStatePath
	}
	return storage.NewFileStore(path)
}

func getPrinter() *Printer {
	format, _ := parseFormat(flagOutput)
	return NewPrinter(os.Stdout, format)
}
