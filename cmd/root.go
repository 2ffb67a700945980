package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/glp360/riskscore/internal/config"
	"github.com/glp360/riskscore/internal/store"
)

var (
	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "riskscore",
	Short: "GLP-1 360 risk score test",
	Long: `riskscore runs the GLP-1 360 risk score questionnaire.

It asks up to fourteen questions, sums the answer points into a category
(BASE, TRANSFORM or EXIT), shows the recommended action plan and forwards
the result to the configured webhook.

Run without arguments to start the interactive questionnaire.`,
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Assigned here rather than in the rootCmd literal to avoid an
	// initialization cycle (buildLogger -> interactive -> rootCmd).
	rootCmd.PersistentPreRunE = persistentPreRunE

	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a question catalog (JSON or YAML); overrides RISKSCORE_CATALOG")
	rootCmd.PersistentFlags().String("events-db", "", "Path to the SQLite delivery log; overrides RISKSCORE_EVENTS_DB")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file (the interactive wizard logs nowhere otherwise)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(deliveriesCmd)
	rootCmd.AddCommand(versionCmd)
}

func persistentPreRunE(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		cfg.CatalogPath = p
	}
	if p, _ := cmd.Flags().GetString("events-db"); p != "" {
		cfg.EventsDB = p
	}

	logger, err = buildLogger(cmd)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// interactive reports whether cmd runs the terminal UI, which owns stdout
// and stderr.
func interactive(cmd *cobra.Command) bool {
	return cmd == rootCmd || cmd == playCmd
}

// buildLogger creates the process logger. The interactive wizard gets a
// no-op logger unless --log-file is set.
func buildLogger(cmd *cobra.Command) (*zap.Logger, error) {
	logFile, _ := cmd.Flags().GetString("log-file")
	if interactive(cmd) && logFile == "" {
		return zap.NewNop(), nil
	}

	zcfg := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	if logFile != "" {
		zcfg.OutputPaths = []string{logFile}
		zcfg.ErrorOutputPaths = []string{logFile}
	}
	return zcfg.Build()
}

// resolveDBPath returns the delivery log path using --events-db or the
// config (highest priority), then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg.EventsDB != "" {
		return cfg.EventsDB, store.EnsureDir(cfg.EventsDB)
	}
	return store.DefaultDBPath()
}
