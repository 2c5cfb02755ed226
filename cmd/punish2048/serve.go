package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/punish2048/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagRate        float64
	flagBurst       int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own game, idle timer and mode menu.
Finished games and the best score are shared by everyone on the server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key in the XDG data directory

Examples:
  punish2048 serve                           # Listen on :23234
  punish2048 serve --ssh :2222               # Listen on port 2222
  punish2048 serve --rate 1 --burst 5        # Admit at most 1 session/s

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	def := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", def.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().Float64Var(&flagRate, "rate", def.SessionRate, "New sessions admitted per second")
	serveCmd.Flags().IntVar(&flagBurst, "burst", def.SessionBurst, "Session admission burst")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	cfg.DBPath = dbPath()
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.SessionRate = flagRate
	cfg.SessionBurst = flagBurst
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Game = appConfig

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.ListenAndServe()
}
