package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ormasoftchile/webprobe/pkg/executor"
	"github.com/ormasoftchile/webprobe/pkg/report"
	"github.com/ormasoftchile/webprobe/pkg/result"
	"github.com/ormasoftchile/webprobe/pkg/testcase"
	"github.com/ormasoftchile/webprobe/pkg/tui"
)

// Version is set at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	loadDotEnv() // load .env file if present (gitignored)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadDotEnv reads a .env file from the working directory and sets
// any variables that aren't already set in the environment.
// Lines are KEY=VALUE (or KEY="VALUE"). Comments (#) and blanks are skipped.
// The .env file is gitignored so secrets never end up in source control.
func loadDotEnv() {
	f, err := os.Open(".env")
	if err != nil {
		return // no .env file — that's fine
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		val = strings.Trim(val, `"'`)
		if os.Getenv(key) == "" {
			os.Setenv(key, val)
		}
	}
}

var rootCmd = &cobra.Command{
	Use:   "webprobe",
	Short: "Agent-driven frontend test automation",
	Long:  "webprobe — executes YAML test cases through a browser-automation agent, parses the free-text transcript, and produces HTML/JSON/Allure reports.",
}

var verbose bool

// buildLogger returns a development logger when --verbose is set,
// otherwise a no-op logger so normal output stays clean.
func buildLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// --- run ---

var (
	runID       string
	runCasesDir string
	runOutput   string
	runAgentCmd string
	runMCP      string
	runFailStep int
	runAllure   bool
)

var runCmd = &cobra.Command{
	Use:   "run [case.yaml]",
	Short: "Execute a single test case",
	Long: `Execute one test case through an automation agent.

The case comes either from a YAML file argument or from the case store
via --id. Without --agent-cmd the built-in mock agent runs the case
offline, which is useful for pipeline dry runs and demos.

An external agent command receives the full execution instruction on
stdin and must print the transcript (including the 测试状态 marker and
the 步骤执行详情 section) to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	log := buildLogger()
	defer func() { _ = log.Sync() }()

	tc, err := resolveCase(args)
	if err != nil {
		return err
	}

	// Validate before executing, same as any pipeline would.
	if errs := testcase.Validate(tc); len(errs) > 0 {
		printValidationErrors(errs)
		return fmt.Errorf("test case validation failed with %d error(s)", len(errs))
	}

	outcome, err := executeCase(tc, log)
	if err != nil {
		return err
	}

	fmt.Println(tui.RenderRunSummary(outcome))

	if outcome.Result.Status == result.StatusFailed {
		// The MCP session and its child process were already closed by
		// executeCase; only the logger needs flushing before exiting.
		_ = log.Sync()
		os.Exit(1)
	}
	return nil
}

// executeCase owns the generator and the optional MCP session for one
// run. The session is closed before returning so callers may os.Exit
// without orphaning the server process.
func executeCase(tc *testcase.TestCase, log *zap.Logger) (*executor.Outcome, error) {
	gen, err := report.NewGenerator(runOutput)
	if err != nil {
		return nil, fmt.Errorf("prepare report directory: %w", err)
	}
	gen.SetLogger(log)

	opts := []executor.Option{executor.WithLogger(log)}

	ctx := context.Background()
	if runMCP != "" {
		session, err := connectMCP(ctx, runMCP)
		if err != nil {
			return nil, err
		}
		defer session.Close()
		opts = append(opts, executor.WithSession(session))
	}

	e := executor.New(buildAgent(tc), gen, opts...)
	outcome := e.ExecuteTestCase(ctx, tc)

	if runAllure {
		if dir, err := gen.GenerateAllureReport([]result.TestResult{outcome.Result}); err != nil {
			log.Warn("allure report failed", zap.Error(err))
		} else {
			outcome.ReportFiles["allure"] = dir
		}
	}
	return outcome, nil
}

// resolveCase loads the test case from the file argument or the store.
func resolveCase(args []string) (*testcase.TestCase, error) {
	if len(args) == 1 {
		return testcase.LoadFile(args[0])
	}
	if runID == "" {
		return nil, fmt.Errorf("provide a case file argument or --id")
	}
	store, err := testcase.NewStore(runCasesDir)
	if err != nil {
		return nil, err
	}
	return store.Load(runID)
}

// buildAgent picks the agent implementation from the flags.
func buildAgent(tc *testcase.TestCase) executor.Agent {
	if runAgentCmd != "" {
		return &commandAgent{command: runAgentCmd}
	}
	return &executor.MockAgent{Case: tc, FailStep: runFailStep}
}

// connectMCP splits the --mcp value into command and args and opens the
// stdio session.
func connectMCP(ctx context.Context, spec string) (*executor.MCPSession, error) {
	parts := strings.Fields(spec)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty --mcp command")
	}
	return executor.ConnectMCP(ctx, parts[0], parts[1:]...)
}

// commandAgent shells out to an external agent process: instruction on
// stdin, transcript on stdout.
type commandAgent struct {
	command string
}

func (a *commandAgent) Name() string { return a.command }

func (a *commandAgent) Execute(ctx context.Context, instruction string) (string, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", a.command)
	cmd.Stdin = strings.NewReader(instruction)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("agent command failed: %s", msg)
	}
	return stdout.String(), nil
}

// --- suite ---

var (
	suiteOutput   string
	suiteAgentCmd string
	suiteMCP      string
	suiteAllure   bool
)

var suiteCmd = &cobra.Command{
	Use:   "suite [cases-dir]",
	Short: "Execute every test case in a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuite,
}

func runSuite(cmd *cobra.Command, args []string) error {
	log := buildLogger()
	defer func() { _ = log.Sync() }()

	store, err := testcase.NewStore(args[0])
	if err != nil {
		return err
	}
	cases, err := store.List()
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		return fmt.Errorf("no test cases found in %s", args[0])
	}

	outcome, err := executeSuiteCases(cases, log)
	if err != nil {
		return err
	}

	fmt.Println(tui.RenderSuiteSummary(outcome.Summary))
	for _, r := range outcome.Results {
		fmt.Println(tui.RenderHistoryLine(r))
	}
	for kind, path := range outcome.ReportFiles {
		fmt.Printf("  %s: %s\n", kind, path)
	}

	if outcome.Summary.Failed > 0 {
		_ = log.Sync()
		os.Exit(1)
	}
	return nil
}

// executeSuiteCases mirrors executeCase for suite runs: the MCP session
// is closed before returning so the exit path cannot orphan it.
func executeSuiteCases(cases []*testcase.TestCase, log *zap.Logger) (*executor.SuiteOutcome, error) {
	gen, err := report.NewGenerator(suiteOutput)
	if err != nil {
		return nil, fmt.Errorf("prepare report directory: %w", err)
	}
	gen.SetLogger(log)

	opts := []executor.Option{executor.WithLogger(log)}
	ctx := context.Background()
	if suiteMCP != "" {
		session, err := connectMCP(ctx, suiteMCP)
		if err != nil {
			return nil, err
		}
		defer session.Close()
		opts = append(opts, executor.WithSession(session))
	}

	var agent executor.Agent
	if suiteAgentCmd != "" {
		agent = &commandAgent{command: suiteAgentCmd}
	} else {
		agent = &suiteMockAgent{}
	}

	e := executor.New(agent, gen, opts...)
	outcome := e.ExecuteSuite(ctx, cases)

	if suiteAllure {
		if dir, err := gen.GenerateAllureReport(outcome.Results); err != nil {
			log.Warn("allure report failed", zap.Error(err))
		} else {
			outcome.ReportFiles["allure"] = dir
		}
	}
	return outcome, nil
}

// suiteMockAgent synthesizes a passing transcript per instruction; the
// per-case mock needs the case, which a suite run doesn't pin down.
type suiteMockAgent struct{}

func (a *suiteMockAgent) Name() string { return "mock" }

func (a *suiteMockAgent) Execute(ctx context.Context, instruction string) (string, error) {
	m := &executor.MockAgent{Case: testcase.New("套件用例", "")}
	return m.Execute(ctx, instruction)
}

// --- new / list ---

var (
	caseDir         string
	newDescription  string
	newTags         []string
	newSteps        []string
	newExpected     []string
	listSearchQuery string
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a test case in the case store",
	Args:  cobra.ExactArgs(1),
	RunE:  runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	tc := testcase.New(args[0], newDescription)
	for _, t := range newTags {
		tc.Tags = append(tc.Tags, t)
	}
	for _, s := range newSteps {
		action, data := s, ""
		if parts := strings.SplitN(s, "=", 2); len(parts) == 2 {
			action, data = parts[0], parts[1]
		}
		tc.Steps = append(tc.Steps, testcase.Step{Action: action, Data: data})
	}
	tc.ExpectedResults = append(tc.ExpectedResults, newExpected...)

	store, err := testcase.NewStore(caseDir)
	if err != nil {
		return err
	}
	if err := store.Save(tc); err != nil {
		return err
	}
	fmt.Printf("✓ created %s (%s)\n", tc.Name, tc.ID)
	return nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List test cases in the case store",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := testcase.NewStore(caseDir)
	if err != nil {
		return err
	}
	var cases []*testcase.TestCase
	if listSearchQuery != "" {
		cases, err = store.Search(listSearchQuery)
	} else {
		cases, err = store.List()
	}
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		fmt.Println("no test cases found")
		return nil
	}
	for _, tc := range cases {
		tags := ""
		if len(tc.Tags) > 0 {
			tags = "  [" + strings.Join(tc.Tags, ", ") + "]"
		}
		fmt.Printf("  %s  %-30s  %d 步骤%s\n", tc.ID, tc.Name, len(tc.Steps), tags)
	}
	return nil
}

// --- validate ---

var validateCmd = &cobra.Command{
	Use:   "validate [case.yaml]",
	Short: "Validate a test case YAML file against the schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	tc, errs := testcase.ValidateFile(args[0])
	if len(errs) > 0 {
		printValidationErrors(errs)
		return fmt.Errorf("validation failed with %d error(s)", len(errs))
	}
	fmt.Printf("✓ %s is valid (%d steps)\n", tc.Name, len(tc.Steps))
	return nil
}

func printValidationErrors(errs []*testcase.ValidationError) {
	fmt.Fprintf(os.Stderr, "Validation failed: %d error(s)\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(os.Stderr, "  %d. [%s] %s\n", i+1, e.Phase, e.Message)
		if e.Path != "" {
			fmt.Fprintf(os.Stderr, "     at: %s\n", e.Path)
		}
	}
}

// --- schema export ---

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Schema operations",
}

var schemaExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the test case JSON Schema to stdout",
	RunE:  runSchemaExport,
}

func runSchemaExport(cmd *cobra.Command, args []string) error {
	data, err := testcase.GenerateJSONSchema()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	var out json.RawMessage = data
	formatted, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Println(string(data))
		return nil
	}
	fmt.Println(string(formatted))
	return nil
}

// --- version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("webprobe %s (build: %s)\n", version, commit)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// run flags
	runCmd.Flags().StringVar(&runID, "id", "", "Test case id to load from the case store")
	runCmd.Flags().StringVar(&runCasesDir, "cases", "testcases", "Case store directory (used with --id)")
	runCmd.Flags().StringVar(&runOutput, "output", "reports", "Report output directory")
	runCmd.Flags().StringVar(&runAgentCmd, "agent-cmd", "", "External agent command (instruction on stdin, transcript on stdout)")
	runCmd.Flags().StringVar(&runMCP, "mcp", "", "MCP server command for tool discovery, e.g. 'npx @playwright/mcp@latest'")
	runCmd.Flags().IntVar(&runFailStep, "fail-step", 0, "Mock agent: 1-based step to fail (0 = all pass)")
	runCmd.Flags().BoolVar(&runAllure, "allure", false, "Also write Allure result files")

	// suite flags
	suiteCmd.Flags().StringVar(&suiteOutput, "output", "reports", "Report output directory")
	suiteCmd.Flags().StringVar(&suiteAgentCmd, "agent-cmd", "", "External agent command")
	suiteCmd.Flags().StringVar(&suiteMCP, "mcp", "", "MCP server command for tool discovery")
	suiteCmd.Flags().BoolVar(&suiteAllure, "allure", false, "Also write Allure result files")

	// new / list flags
	newCmd.Flags().StringVar(&caseDir, "cases", "testcases", "Case store directory")
	newCmd.Flags().StringVar(&newDescription, "description", "", "Test case description")
	newCmd.Flags().StringArrayVar(&newTags, "tag", nil, "Tag to attach, repeatable")
	newCmd.Flags().StringArrayVar(&newSteps, "step", nil, "Step as action=data (data optional), repeatable")
	newCmd.Flags().StringArrayVar(&newExpected, "expect", nil, "Expected result, repeatable")
	listCmd.Flags().StringVar(&caseDir, "cases", "testcases", "Case store directory")
	listCmd.Flags().StringVar(&listSearchQuery, "search", "", "Filter by name substring or tag")

	// schema subcommands
	schemaCmd.AddCommand(schemaExportCmd)

	// root subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(suiteCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}
