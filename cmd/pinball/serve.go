package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pinball/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pinball SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a table picker menu.
Runs are stored per-server under the SSH user name, so all users share
the same scoreboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.pinball/host_key

Examples:
  pinball serve                           # Listen on :23234 with auto-generated key
  pinball serve --ssh :2222               # Listen on port 2222
  pinball serve --host-key ./my_host_key  # Use specific host key
  pinball serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom table config YAML")
	serveCmd.Flags().StringVar(&flagTimestep, "timestep", "", "Timestep mode: fixed or measured (default from config)")
	serveCmd.Flags().IntVar(&flagHoldMs, "hold-ms", int(tui.DefaultHold/time.Millisecond), "How long a flipper key press stays held")
}

func runServe(_ *cobra.Command, _ []string) error {
	if err := configureTable(); err != nil {
		return err
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Hold = time.Duration(flagHoldMs) * time.Millisecond
	cfg.Logger = logger.WithPrefix("pinball-ssh")

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("cannot create server: %w", err)
	}

	fmt.Printf("Starting pinball SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
