package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ormasoftchile/webprobe/pkg/executor"
	"github.com/ormasoftchile/webprobe/pkg/report"
	"github.com/ormasoftchile/webprobe/pkg/testcase"
	"github.com/ormasoftchile/webprobe/pkg/tui"
	"github.com/ormasoftchile/webprobe/pkg/watch"
)

var (
	watchOutput   string
	watchAgentCmd string
	watchExisting bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [cases-dir]",
	Short: "Re-run test cases when their YAML files change",
	Long: `Watch a directory of test case files and execute each case whenever
its file is created or modified. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatchCases,
}

func runWatchCases(cmd *cobra.Command, args []string) error {
	log := buildLogger()
	defer func() { _ = log.Sync() }()

	gen, err := report.NewGenerator(watchOutput)
	if err != nil {
		return fmt.Errorf("prepare report directory: %w", err)
	}
	gen.SetLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := func(path string) {
		tc, errs := testcase.ValidateFile(path)
		if len(errs) > 0 {
			fmt.Fprintf(os.Stderr, "  ✗ %s: %d validation error(s), skipping\n", path, len(errs))
			return
		}

		var agent executor.Agent
		if watchAgentCmd != "" {
			agent = &commandAgent{command: watchAgentCmd}
		} else {
			agent = &executor.MockAgent{Case: tc}
		}

		e := executor.New(agent, gen, executor.WithLogger(log))
		outcome := e.ExecuteTestCase(ctx, tc)
		fmt.Println(tui.RenderRunSummary(outcome))
	}

	if watchExisting {
		if err := watch.ScanExisting(args[0], handler); err != nil {
			return fmt.Errorf("scan existing cases: %w", err)
		}
	}

	w := watch.New(args[0], handler)
	w.SetLogger(log)
	fmt.Printf("watching %s (ctrl+c to stop)\n", args[0])
	return w.Run(ctx)
}

func init() {
	watchCmd.Flags().StringVar(&watchOutput, "output", "reports", "Report output directory")
	watchCmd.Flags().StringVar(&watchAgentCmd, "agent-cmd", "", "External agent command")
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "Also run cases already present at startup")
}
