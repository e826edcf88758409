package main

import (
	"github.com/spf13/cobra"
)

var flagLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent analysis runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getStore()
		if err != nil {
			return err
		}

		runs, err := store.ListRuns(cmd.Context(), flagLimit)
		if err != nil {
			return err
		}
		return getPrinter().PrintRuns(runs)
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Max runs returned")
}
