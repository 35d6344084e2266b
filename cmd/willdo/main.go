// Package main provides the CLI entry point for willdo-go.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/willdo-go/internal/config"
	"github.com/ukaji3/willdo-go/internal/launcher"
	"github.com/ukaji3/willdo-go/internal/logger"
	"github.com/ukaji3/willdo-go/pkg/willdo"
	"github.com/ukaji3/willdo-go/pkg/willdo/models"
	"github.com/ukaji3/willdo-go/pkg/willdo/writer"
)

var (
	configPath string
	startDate  string
	endDate    string
	csvDir     string
	noOpen     bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "willdo --from YYYY-MM-DD --to YYYY-MM-DD",
		Short: "Summarize a WILLDO time-tracking workbook",
		Long: `willdo reads the dated sheets of a WILLDO task workbook, totals the minutes
spent per task, daily task and communication partner over a period, and
writes the totals into a copy of the report template.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default: config.yaml next to the executable or in the working directory)")
	rootCmd.Flags().StringVar(&startDate, "from", "", "First day of the period (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&endDate, "to", "", "Last day of the period (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&csvDir, "csv-dir", "", "Also write CSV summaries to this directory")
	rootCmd.Flags().BoolVar(&noOpen, "no-open", false, "Do not open the report after writing it")
	_ = rootCmd.MarkFlagRequired("from")
	_ = rootCmd.MarkFlagRequired("to")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return err
	}

	log, closeLog, err := logger.New(cfg.LoggerConfig(), cmd.ErrOrStderr())
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return err
	}
	defer closeLog()

	opts := cfg.Options()
	if csvDir != "" {
		opts.CSVDir = csvDir
	}

	var open willdo.Launcher = launcher.New()
	if noOpen {
		open = launcher.Nop{}
	}

	res := willdo.NewAnalyzer(opts, open, log).Run(startDate, endDate)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, res.Message)
	if !res.Success {
		return res.Err
	}

	fmt.Fprintf(out, "Period: %s - %s\n", res.Span.StartKey(), res.Span.EndKey())
	for _, tt := range writer.Tabs(res.Report) {
		printTotal(cmd, tt.Tab, tt.Table)
	}
	for _, p := range res.CSVPaths {
		fmt.Fprintf(out, "CSV: %s\n", p)
	}
	return nil
}

func printTotal(cmd *cobra.Command, tab string, table models.Table) {
	total := table.Total()
	fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d rows, %g min (%d h), %d entries\n",
		tab, len(table.Rows), total.TotalMinutes, total.TotalHours, total.Frequency)
}
