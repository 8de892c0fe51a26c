package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/polarity/internal/platform/tui"
)

var (
	flagHost        string
	flagPort        int
	flagHostKey     string
	flagIdleTimeout int
	flagServeFeed   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Polarity SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the level menu. All players
share one saved profile in the configured database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.polarity/host_key

Examples:
  polarity serve                           # Listen on :23234
  polarity serve --port 2222               # Listen on port 2222
  polarity serve --feed :8080              # Also serve the spectator feed
  polarity serve --postgres postgres://... # Share stats through PostgreSQL

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagHost, "host", "", "Interface to listen on")
	serveCmd.Flags().IntVar(&flagPort, "port", 23234, "SSH port")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeFeed, "feed", "", "Serve a spectator WebSocket feed on this address")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger("polarity-ssh", os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	store, err := openStore(ctx)
	if err != nil {
		logger.Warn("could not open stats database, stats will not be saved", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	deps := tui.Deps{
		Catalog:       cat,
		Store:         store,
		Params:        cfg.Params(),
		StartingCoins: cfg.Stats.StartingCoins,
		TickRate:      cfg.TickRate,
		Logger:        logger,
		Theme:         tui.DefaultTheme(),
	}

	var stopFeed func()
	if flagServeFeed != "" {
		hub, stop := startFeed(ctx, flagServeFeed, logger)
		stopFeed = stop
		deps.Feed = hub
	}

	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = net.JoinHostPort(flagHost, strconv.Itoa(flagPort))
	sshCfg.HostKeyPath = flagHostKey
	sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute

	server, err := tui.NewSSHServer(sshCfg, deps)
	if err != nil {
		if stopFeed != nil {
			stopFeed()
		}
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting Polarity SSH server on %s\n", sshCfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %d\n", flagPort)
	fmt.Println("Press Ctrl+C to stop")

	err = server.ListenAndServe()
	if stopFeed != nil {
		stopFeed()
	}
	return err
}
