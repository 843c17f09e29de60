package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mDuo13/txsplain/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configFile string
	debugLog   bool
	noColor    bool

	cfg    *config.Config
	logger = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "txsplain",
	Short: "txsplain - explain XRP Ledger records in plain English",
	Long: `txsplain turns XRP Ledger records into plain-English narratives: what a
transaction did and how it changed the ledger, or the state of an account,
trust line or offer. Accounts are shown by their registered names where the
identity service knows them.`,
	Version:           "0.3.0",
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "enable normally suppressed debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// initConfig reads the config file and environment, then builds the logger.
func initConfig(cmd *cobra.Command, args []string) error {
	if noColor {
		color.NoColor = true
	}

	c, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}
	cfg = c

	l, err := newLogger(cfg.Log, debugLog)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	logger = l
	if path := cfg.GetConfigPath(); path != "" {
		logger.Debug("loaded config", zap.String("path", path))
	}
	return nil
}

// newLogger writes to stderr so narratives on stdout stay clean.
func newLogger(lc config.LogConfig, debug bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if lc.Development || debug {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = level
	if debug {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}
