// pinball is a terminal pinball table with a small 3D physics core.
//
// Usage:
//
//	pinball list              - List available tables
//	pinball play <table>      - Play a table
//	pinball menu              - Pick a table interactively
//	pinball serve             - Start SSH server for remote play
//	pinball scores <table>    - Show recorded runs for a table
//	pinball sim <table>       - Run a table headless and print a trace
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed
//	--db <path>          - Set database path (default: ~/.pinball/scores.db)
//	--log-level <level>  - debug, info, warn, error
//	--log-file <path>    - Write logs to a file while a table is on screen
//
// PINBALL_DB, PINBALL_FPS, PINBALL_LOG_LEVEL and PINBALL_CONFIG provide
// defaults for the matching flags and may be set in a .env file.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pinball/internal/config"
	_ "github.com/vovakirdan/tui-pinball/internal/games/pinball"
	"github.com/vovakirdan/tui-pinball/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

// logger is configured in the root pre-run hook.
var logger = log.New(io.Discard)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pinball",
	Short: "TUI Pinball - a pinball table in your terminal",
	Long: `TUI Pinball renders a tilted 3D pinball table in the terminal.
The ball is driven by a ray-probe collision core: seven probes test the
floor, the walls and both flippers every frame.

Available commands:
  list     - Show all available tables
  play     - Play a specific table directly
  menu     - Interactive table picker
  serve    - Start SSH server for remote play
  scores   - View recorded runs
  sim      - Run a table headless and print a physics trace

Examples:
  pinball list
  pinball play pinball
  pinball play pinball_sandbox --timestep measured
  pinball menu
  pinball serve --ssh :2222
  pinball sim pinball --ticks 600 --left 120-140`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for interactive sessions")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// setup loads .env, lets the environment fill flags the user did not set
// and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("cannot load .env: %w", err)
	}

	flags := cmd.Flags()
	if !flags.Changed("db") {
		flagDBPath = config.EnvString(config.EnvDB, flagDBPath)
	}
	if !flags.Changed("fps") {
		flagFPS = config.EnvInt(config.EnvFPS, flagFPS)
	}
	if !flags.Changed("log-level") {
		flagLogLevel = config.EnvString(config.EnvLogLevel, flagLogLevel)
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "pinball",
	})
	return nil
}

// screenLogger returns the logger to use while the alt screen is active.
// Output goes to --log-file when set and is discarded otherwise.
func screenLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logger.Warn("cannot open log file", "path", flagLogFile, "error", err)
		return log.New(io.Discard), func() {}
	}

	l := logger.WithPrefix("pinball")
	l.SetOutput(f)
	return l, func() { f.Close() }
}

// openStore opens the scores database. Tables still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, runs will not be saved", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
