package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ormasoftchile/webprobe/pkg/report"
	"github.com/ormasoftchile/webprobe/pkg/tui"
)

// --- history ---

var (
	historyOutput      string
	historyTestID      string
	historyFilter      string
	historyLimit       int
	historyJSON        bool
	historyInteractive bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse persisted test results",
	Long: `List test results recorded in the report directory, newest first.

--filter takes an expression over the record fields test_id, test_name,
status, duration, steps, and tags:

  webprobe history --filter 'status == "failed"'
  webprobe history --filter 'duration > 30 && "smoke" in tags'`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	log := buildLogger()
	defer func() { _ = log.Sync() }()

	gen, err := report.NewGenerator(historyOutput)
	if err != nil {
		return fmt.Errorf("open report directory: %w", err)
	}
	gen.SetLogger(log)

	records, err := gen.History(historyTestID)
	if err != nil {
		return err
	}
	if historyFilter != "" {
		records, err = report.FilterHistory(records, historyFilter)
		if err != nil {
			return fmt.Errorf("apply filter: %w", err)
		}
	}
	if historyLimit > 0 && len(records) > historyLimit {
		records = records[:historyLimit]
	}

	if historyInteractive {
		return tui.BrowseHistory(records)
	}

	if historyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("no execution records found")
		return nil
	}
	for _, r := range records {
		fmt.Println(tui.RenderHistoryLine(r))
	}
	return nil
}

// --- trend ---

var (
	trendOutput string
	trendDays   int
	trendJSON   bool
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show day-over-day execution trend",
	RunE:  runTrend,
}

func runTrend(cmd *cobra.Command, args []string) error {
	log := buildLogger()
	defer func() { _ = log.Sync() }()

	gen, err := report.NewGenerator(trendOutput)
	if err != nil {
		return fmt.Errorf("open report directory: %w", err)
	}
	gen.SetLogger(log)

	tr, err := gen.GenerateTrendReport(trendDays)
	if err != nil {
		return err
	}

	if trendJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tr)
	}

	fmt.Println(tui.RenderTrend(tr))
	return nil
}

func init() {
	historyCmd.Flags().StringVar(&historyOutput, "output", "reports", "Report output directory")
	historyCmd.Flags().StringVar(&historyTestID, "test-id", "", "Only show records for this test id")
	historyCmd.Flags().StringVar(&historyFilter, "filter", "", "Expression filter over record fields")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Max records to show (0 = all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
	historyCmd.Flags().BoolVarP(&historyInteractive, "interactive", "i", false, "Browse records in the terminal UI")

	trendCmd.Flags().StringVar(&trendOutput, "output", "reports", "Report output directory")
	trendCmd.Flags().IntVar(&trendDays, "days", 7, "Trend window in days")
	trendCmd.Flags().BoolVar(&trendJSON, "json", false, "Output as JSON")
}
