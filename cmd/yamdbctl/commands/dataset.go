// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yamdb/internal/dataset"
)

var (
	// Dataset flags
	dataDir string
	confirm bool
)

// loadCSVCmd imports the bundled fixtures
var loadCSVCmd = &cobra.Command{
	Use:   "load-csv",
	Short: "Load the CSV fixtures into the database",
	Long: `Load users, categories, genres, titles, their genres, reviews and
comments from CSV files. Rows that already exist are skipped, so the command
can be rerun safely.

Examples:
  yamdbctl load-csv --dir static/data`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLoadCSV(cmd)
	},
}

// clearDBCmd wipes the content tables
var clearDBCmd = &cobra.Command{
	Use:   "clear-db",
	Short: "Delete every user, title, review and comment",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runClearDB(cmd)
	},
}

func init() {
	rootCmd.AddCommand(loadCSVCmd)
	rootCmd.AddCommand(clearDBCmd)

	loadCSVCmd.Flags().StringVar(&dataDir, "dir", "static/data", "Directory containing the CSV files")
	clearDBCmd.Flags().BoolVar(&confirm, "yes", false, "Confirm deletion of all data")
}

func runLoadCSV(cmd *cobra.Command) error {
	logger := newLogger()

	pool, err := connect(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	results, err := dataset.NewLoader(pool, logger).Load(cmd.Context(), dataDir)
	if err != nil {
		return err
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "MODEL\tREAD\tINSERTED\tTOTAL")
	for _, result := range results {
		if result.Skipped {
			fmt.Fprintf(writer, "%s\t-\t-\tskipped\n", result.Label)
			continue
		}
		fmt.Fprintf(writer, "%s\t%d\t%d\t%d\n", result.Label, result.Read, result.After-result.Before, result.After)
	}
	return writer.Flush()
}

func runClearDB(cmd *cobra.Command) error {
	if !confirm {
		return fmt.Errorf("refusing to delete data without --yes")
	}

	logger := newLogger()

	pool, err := connect(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	results, err := dataset.NewLoader(pool, logger).Clear(cmd.Context())
	if err != nil {
		return err
	}

	printCounts(cmd.OutOrStdout(), results)
	return nil
}

func printCounts(out io.Writer, results []dataset.Result) {
	for _, result := range results {
		fmt.Fprintf(out, "%s: %d -> %d\n", result.Label, result.Before, result.After)
	}
}
