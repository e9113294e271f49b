package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/hupe1980/immunomesh/config"
	"github.com/hupe1980/immunomesh/logging"
	"github.com/hupe1980/immunomesh/runner"
	"github.com/hupe1980/immunomesh/store"
)

const version = "0.1.0"

var (
	storeFlag     string
	dbFlag        string
	logLevelFlag  string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "immunomesh",
	Short: "immunomesh - immune signaling simulation",
}

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Execute a scenario file and print the outcome",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenario,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func init() {
	runCmd.Flags().StringVar(&storeFlag, "store", "memory", "Run store backend: memory or sqlite")
	runCmd.Flags().StringVar(&dbFlag, "db", "", "SQLite database path (required for --store sqlite)")
	runCmd.Flags().StringVar(&logLevelFlag, "log-level", "info", "Log level: debug, info, warn or error")
	runCmd.Flags().StringVar(&logFormatFlag, "log-format", "text", "Log format: text or json")
	rootCmd.AddCommand(runCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := config.Load(args[0])
	if err != nil {
		return err
	}

	level, err := logging.ParseLogLevel(logLevelFlag)
	if err != nil {
		return err
	}
	logger := logging.NewSlogLogger(level, logFormatFlag, false)

	st, err := store.NewStore(storeFlag, dbFlag)
	if err != nil {
		return err
	}
	defer func() { _ = store.CloseIfSupported(st) }()

	r := runner.New(func(o *runner.Options) {
		o.Store = st
		o.Logger = logger
	})

	report, err := r.Run(cmd.Context(), scenario)
	if err != nil {
		return fmt.Errorf("run scenario: %w", err)
	}

	printReport(report)
	return nil
}

func printReport(report runner.Report) {
	fmt.Printf("Run:        %s\n", report.RunID)
	fmt.Printf("Scenario:   %s\n", report.Scenario)
	fmt.Printf("Steps:      %d\n", report.Steps)
	fmt.Printf("Activated:  %v\n", report.Activated)
	fmt.Printf("T cells:    %d activated\n", report.ActivatedTCells)

	lineages := make([]string, 0, len(report.Lineages))
	for name := range report.Lineages {
		lineages = append(lineages, name)
	}
	sort.Strings(lineages)
	for _, name := range lineages {
		fmt.Printf("  %s: %d\n", name, report.Lineages[name])
	}

	names := make([]string, 0, len(report.Final.CytokineLevels))
	for name := range report.Final.CytokineLevels {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("Cytokines:")
	for _, name := range names {
		fmt.Printf("  %-10s %.2f\n", name, report.Final.CytokineLevels[name])
	}
}
