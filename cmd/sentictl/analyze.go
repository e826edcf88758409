package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"sentilytics/internal/domain/analysis"
	"sentilytics/internal/service/listening"
)

var (
	flagPlatform  string
	flagDateRange string
	flagTrend     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [query]",
	Short: "Analyze sentiment for a keyword or hashtag",
	Long: `Fetch posts for the query and print the sentiment breakdown, dominant
platform, top keyword and insight. Without a query the last analyzed query
is reused.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		filter, err := filterFromFlags()
		if err != nil {
			return err
		}

		session, err := newCLISession(ctx, args, filter, nil, nil)
		if err != nil {
			return err
		}
		defer session.Close()
		stopClose := context.AfterFunc(ctx, session.Close)
		defer stopClose()

		view, err := session.Analyze(ctx)
		if err != nil {
			if view.Error != "" {
				return errors.New(view.Error)
			}
			return err
		}

		out := getPrinter()
		if flagTrend {
			return out.PrintTrend(view)
		}
		return out.PrintView(view)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	addFilterFlags(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&flagTrend, "trend", false, "Print the per-day trend instead of the summary")
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagPlatform, "platform", "p", analysis.PlatformAll, "Only include posts from this platform")
	cmd.Flags().StringVarP(&flagDateRange, "range", "r", string(analysis.DateRangeAll), "Time window: 24h, 7d, 30d or all")
}

func filterFromFlags() (analysis.FilterConfig, error) {
	dr, err := analysis.ParseDateRange(flagDateRange)
	if err != nil {
		return analysis.FilterConfig{}, err
	}
	platform := strings.ToLower(strings.TrimSpace(flagPlatform))
	if platform == "" {
		platform = analysis.PlatformAll
	}
	return analysis.FilterConfig{Platform: platform, DateRange: dr}, nil
}

// newCLISession builds a session backed by the local state file. The query
// argument wins over the saved last query.
func newCLISession(ctx context.Context, args []string, filter analysis.FilterConfig, publisher analysis.ViewPublisher, scheduler listening.Scheduler) (*listening.Session, error) {
	log := getLogger()

	store, err := getStore()
	if err != nil {
		return nil, err
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	} else {
		query, err = store.LoadLastQuery(ctx, cliClientKey)
		if err != nil {
			return nil, err
		}
	}

	session := listening.NewSession(uuid.New().String(), cliClientKey, query,
		listening.Dependencies{
			Fetcher:   getClient(log),
			Queries:   store,
			Runs:      store,
			Publisher: publisher,
			Scheduler: scheduler,
			Logger:    log,
		},
		listening.SessionConfig{
			DefaultFilter:   filter,
			RefreshInterval: flagInterval,
			FetchTimeout:    cfg.Upstream.Timeout * 2,
		},
	)
	return session, nil
}
