package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sentilytics/internal/domain/analysis"
	"sentilytics/internal/service/listening"
)

var flagInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [query]",
	Short: "Re-analyze a query on a fixed interval",
	Long: `Analyze the query once, then refresh it every --interval until
interrupted. A refresh is skipped while the previous one is still running.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if flagInterval <= 0 {
			return errors.New("--interval must be positive")
		}

		filter, err := filterFromFlags()
		if err != nil {
			return err
		}

		log := getLogger()
		scheduler, err := listening.NewRefreshScheduler(log)
		if err != nil {
			return err
		}
		defer scheduler.Shutdown()

		out := getPrinter()
		session, err := newCLISession(ctx, args, filter, out, scheduler)
		if err != nil {
			return err
		}
		defer session.Close()
		stopClose := context.AfterFunc(ctx, session.Close)
		defer stopClose()

		if _, err := session.Analyze(ctx); err != nil && !errors.Is(err, analysis.ErrTransport) && !errors.Is(err, analysis.ErrPayload) {
			return err
		}
		if _, err := session.SetAutoRefresh(true); err != nil {
			return err
		}

		<-ctx.Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addFilterFlags(watchCmd)
	watchCmd.Flags().DurationVar(&flagInterval, "interval", 2*time.Minute, "Refresh interval")
}
