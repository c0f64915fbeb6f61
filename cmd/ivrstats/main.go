// Package main provides the CLI entrypoint for ivrstats.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/ivrstats/internal/analysis"
	"github.com/verte-zerg/ivrstats/internal/calllog"
	"github.com/verte-zerg/ivrstats/internal/config"
	"github.com/verte-zerg/ivrstats/internal/model"
	"github.com/verte-zerg/ivrstats/internal/pipeline"
	"github.com/verte-zerg/ivrstats/internal/reportui"
	"github.com/verte-zerg/ivrstats/internal/store"
)

const defaultLogLevel = "info"

var (
	runOutDir     string
	runNoCharts   bool
	runNoWorkbook bool
	runReductions []float64
	runFocus      float64
	runSheet      string
	logLevel      string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ivrstats [path]",
		Short:         "Consent and cost analysis for IVR call logs",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runAnalysisCmd(cmd, args)
		},
	}
	addRunFlags(rootCmd)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newViewCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runOutDir, "out", config.DefaultOutputDir(), "directory for charts and workbook")
	cmd.Flags().BoolVar(&runNoCharts, "no-charts", false, "skip PNG charts")
	cmd.Flags().BoolVar(&runNoWorkbook, "no-workbook", false, "skip the XLSX workbook")
	cmd.Flags().Float64SliceVar(&runReductions, "reductions", analysis.DefaultReductions, "call duration reduction percentages to compare")
	cmd.Flags().Float64Var(&runFocus, "focus", analysis.DefaultFocusReduction, "reduction percentage highlighted in the summary")
	cmd.Flags().StringVar(&runSheet, "sheet", "", "worksheet to read from an XLSX input (default: first sheet)")
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <path>",
		Short: "Run the full analysis over a call log",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalysisCmd,
	}
	addRunFlags(cmd)
	return cmd
}

func runAnalysisCmd(cmd *cobra.Command, args []string) error {
	cfg, logger, err := resolveRunConfig(cmd, args[0])
	if err != nil {
		return err
	}
	if _, err := pipeline.Run(cmd.Context(), cfg, cmd.OutOrStdout(), logger); err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	return nil
}

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <path>",
		Short: "Browse the analysis interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  runViewCmd,
	}
	addRunFlags(cmd)
	return cmd
}

func runViewCmd(cmd *cobra.Command, args []string) error {
	cfg, logger, err := resolveRunConfig(cmd, args[0])
	if err != nil {
		return err
	}
	rep, err := pipeline.Analyze(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	program := tea.NewProgram(reportui.NewModel(rep, filepath.Base(cfg.InputPath)), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run report TUI: %w", err)
	}
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <src> <db>",
		Short: "Copy a CSV or XLSX call log into a SQLite database",
		Args:  cobra.ExactArgs(2),
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&runSheet, "sheet", "", "worksheet to read from an XLSX input (default: first sheet)")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	_, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	src, dbPath := args[0], args[1]
	records, err := calllog.NewLoader(runSheet, logger).Load(cmd.Context(), src)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", src, err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error().Err(cerr).Msg("failed to close db")
		}
	}()
	n, err := st.InsertRecords(cmd.Context(), records)
	if err != nil {
		return fmt.Errorf("failed to import records: %w", err)
	}
	total, err := st.CountRecords(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}
	logger.Info().Int("records", n).Int("total", total).Str("db", dbPath).Msg("imported call log")
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records into %s (%d total)\n", n, dbPath, total); err != nil {
		return err
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// loadSettings reads .env, the config file and IVRSTATS_* overrides, then
// builds the logger.
func loadSettings(cmd *cobra.Command) (config.FileConfig, zerolog.Logger, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return config.FileConfig{}, zerolog.Nop(), err
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}
	config.ApplyEnv(&fileCfg)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	return fileCfg, newLogger(logLevel), nil
}

func resolveRunConfig(cmd *cobra.Command, path string) (model.RunConfig, zerolog.Logger, error) {
	fileCfg, logger, err := loadSettings(cmd)
	if err != nil {
		return model.RunConfig{}, logger, err
	}
	applyStringConfig(cmd, "out", &runOutDir, fileCfg.Output.Dir)
	applyFloatConfig(cmd, "focus", &runFocus, fileCfg.Sweep.Focus)
	if !cmd.Flags().Changed("reductions") && len(fileCfg.Sweep.Reductions) > 0 {
		runReductions = fileCfg.Sweep.Reductions
	}

	charts := !runNoCharts
	workbook := !runNoWorkbook
	if !cmd.Flags().Changed("no-charts") && fileCfg.Output.Charts != nil {
		charts = *fileCfg.Output.Charts
	}
	if !cmd.Flags().Changed("no-workbook") && fileCfg.Output.Workbook != nil {
		workbook = *fileCfg.Output.Workbook
	}

	cost := analysis.DefaultCostParams()
	setFloat(&cost.PlatformFee, fileCfg.Cost.PlatformFee)
	setFloat(&cost.AirtimePerMinute, fileCfg.Cost.AirtimeRate)
	setFloat(&cost.AdminOverheadRate, fileCfg.Cost.AdminOverhead)

	cfg := model.RunConfig{
		InputPath:  path,
		Sheet:      runSheet,
		OutputDir:  runOutDir,
		Cost:       cost,
		Reductions: append([]float64(nil), runReductions...),
		Focus:      runFocus,
		Charts:     charts,
		Workbook:   workbook,
	}
	if err := validateRunConfig(cfg); err != nil {
		return model.RunConfig{}, logger, err
	}
	return cfg, logger, nil
}

func validateRunConfig(cfg model.RunConfig) error {
	if strings.TrimSpace(cfg.InputPath) == "" {
		return fmt.Errorf("input path must not be empty")
	}
	if len(cfg.Reductions) == 0 {
		return fmt.Errorf("--reductions must not be empty")
	}
	for _, r := range cfg.Reductions {
		if err := analysis.ValidateReduction(r); err != nil {
			return fmt.Errorf("--reductions: %w", err)
		}
	}
	if err := analysis.ValidateReduction(cfg.Focus); err != nil {
		return fmt.Errorf("--focus: %w", err)
	}
	if cfg.Cost.PlatformFee < 0 || cfg.Cost.AirtimePerMinute < 0 || cfg.Cost.AdminOverheadRate < 0 {
		return fmt.Errorf("cost settings must be >= 0")
	}
	if (cfg.Charts || cfg.Workbook) && strings.TrimSpace(cfg.OutputDir) == "" {
		return fmt.Errorf("--out must not be empty")
	}
	return nil
}

func newLogger(level string) zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		logger.Warn().Str("level", level).Msg("invalid log level, using info")
		parsed = zerolog.InfoLevel
	}
	return logger.Level(parsed)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func setFloat(target, value *float64) {
	if value != nil {
		*target = *value
	}
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# ivrstats configuration
# Uncomment a value to enable it. CLI flags override config values.
# IVRSTATS_OUTPUT_DIR and IVRSTATS_LOG_LEVEL (also read from ./.env) override this file.

[cost]
# platform-fee = %.0f       # Flat platform fee
# airtime-rate = %.2f        # Cost per airtime minute
# admin-overhead = %.2f      # Multiplicative admin surcharge

[sweep]
# reductions = [0, 10, 20, 30]  # Call duration reductions to compare (0-100)
# focus = %.0f                   # Reduction highlighted in the summary

[output]
# dir = %q         # Directory for charts and workbook
# charts = true          # Write PNG charts
# workbook = true        # Write the XLSX workbook

[log]
# level = %q
`,
		analysis.DefaultCostParams().PlatformFee,
		analysis.DefaultCostParams().AirtimePerMinute,
		analysis.DefaultCostParams().AdminOverheadRate,
		analysis.DefaultFocusReduction,
		config.DefaultOutputDir(),
		defaultLogLevel,
	)
}
