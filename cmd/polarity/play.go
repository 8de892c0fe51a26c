package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/polarity/internal/core"
	"github.com/vovakirdan/polarity/internal/platform/feed"
	"github.com/vovakirdan/polarity/internal/platform/tui"
	"github.com/vovakirdan/polarity/internal/progress"
	"github.com/vovakirdan/polarity/internal/storage"
)

var (
	flagFeed       string
	flagMonochrome bool
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play in the terminal",
	Long: `Open the level menu, or jump straight to a level by id.

Controls:
  Arrows/hjkl  - Move the cursor
  Space/Enter  - Place or remove a pole
  Tab/C        - Flip the charge of the next pole
  G            - Launch (or go to the next level after a win)
  P            - Pause / resume
  R            - Back to the design board
  ?            - Hint
  1-6          - Power-ups
  Esc/B        - Level menu
  Q/Ctrl+C     - Quit

Examples:
  polarity play
  polarity play 4
  polarity play --feed :8080`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagFeed, "feed", "", "Serve a spectator WebSocket feed on this address")
	playCmd.Flags().BoolVar(&flagMonochrome, "mono", false, "Use the monochrome theme")
}

func runPlay(cmd *cobra.Command, args []string) error {
	levelID := 0
	if len(args) == 1 {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid level id %q", args[0])
		}
		levelID = id
	}

	// The alt screen owns the terminal; logs go to --log-file or nowhere.
	logger, closeLog, err := newLogger("polarity", io.Discard)
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
		fmt.Fprintf(os.Stderr, "Warning: could not open stats database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	stats, statsErr := loadProfile(ctx, store, cfg.Stats.StartingCoins)
	if statsErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load stats, they will not be saved: %v\n", statsErr)
	}

	deps := &tui.Deps{
		Catalog:       cat,
		Store:         store,
		Params:        cfg.Params(),
		StartingCoins: cfg.Stats.StartingCoins,
		TickRate:      cfg.TickRate,
		Logger:        logger,
		Theme:         tui.DefaultTheme(),
		User:          os.Getenv("USER"),
	}
	if statsErr != nil {
		deps.Profile = storage.NewProfile(nil, stats)
	}
	if flagMonochrome {
		deps.Theme = tui.MonochromeTheme()
	}

	if flagFeed != "" {
		hub, stop := startFeed(ctx, flagFeed, logger)
		defer stop()
		deps.Feed = hub
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rcfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.TickRate,
	}

	return tui.Run(deps, stats, rcfg, levelID)
}

// loadProfile reads the saved profile. Without a store, or when loading
// fails, the player starts fresh.
func loadProfile(ctx context.Context, store storage.StatsStore, startingCoins int) (*progress.Stats, error) {
	if store == nil {
		return progress.New(startingCoins), nil
	}
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	stats, err := storage.LoadOrNew(ctx, store, startingCoins)
	if err != nil {
		return progress.New(startingCoins), err
	}
	return stats, nil
}

// startFeed runs a spectator hub and its HTTP server in the background.
// The returned stop function shuts both down.
func startFeed(ctx context.Context, addr string, logger *log.Logger) (*feed.Hub, func()) {
	hubCtx, cancel := context.WithCancel(ctx)
	hub := feed.NewHub(logger.WithPrefix("feed"))
	go hub.Run(hubCtx)

	srv := feed.NewServer(addr, hub)
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			logger.Error("spectator feed stopped", "error", err)
		}
	}()

	return hub, func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("spectator feed shutdown", "error", err)
		}
		cancel()
		<-hub.Done()
	}
}
