package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/polarity/internal/progress"
	"github.com/vovakirdan/polarity/internal/registry"
	"github.com/vovakirdan/polarity/internal/storage"
)

var flagRecent int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show profile totals and achievements",
	Long: `Display the saved player profile: totals, best time per level,
achievement progress and the most recent wins.

Examples:
  polarity stats
  polarity stats --recent 10`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent wins to show")
}

func runStats(cmd *cobra.Command, _ []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	store, err := openStore(cmd.Context())
	if err != nil {
		return fmt.Errorf("opening stats database: %w", err)
	}
	defer store.Close()

	stats, err := loadProfile(cmd.Context(), store, 0)
	if err != nil {
		return fmt.Errorf("loading stats: %w", err)
	}

	var recent []storage.RunRecord
	if flagRecent > 0 {
		recent, err = store.RecentRuns(cmd.Context(), 0, flagRecent)
		if err != nil {
			return fmt.Errorf("loading recent runs: %w", err)
		}
	}

	printStats(cmd.OutOrStdout(), cat, stats, recent)
	return nil
}

func printStats(w io.Writer, cat *registry.Catalog, s *progress.Stats, recent []storage.RunRecord) {
	fmt.Fprintln(w, "Player Stats")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Levels completed  %d\n", s.LevelsCompleted)
	fmt.Fprintf(w, "  Wins              %d\n", s.Wins)
	fmt.Fprintf(w, "  Total stars       %d\n", s.TotalStars)
	fmt.Fprintf(w, "  Coins             %d\n", s.TotalCoins)
	fmt.Fprintf(w, "  Poles placed      %d\n", s.PolesPlaced)
	fmt.Fprintf(w, "  Hints used        %d\n", s.HintsUsed)
	fmt.Fprintf(w, "  Play time         %.1fs\n", s.TotalPlayTime)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Best times")
	shown := false
	for _, l := range cat.Levels() {
		if secs, ok := s.BestTime(l.ID); ok {
			fmt.Fprintf(w, "  %3d  %-24s  %6.2fs  %d/3\n", l.ID, l.Name, secs, s.BestStars(l.ID))
			shown = true
		}
	}
	if !shown {
		fmt.Fprintln(w, "  No levels completed yet.")
	}
	fmt.Fprintln(w)

	worldSize := 0
	if ws := cat.Worlds(); len(ws) > 0 {
		worldSize = len(cat.WorldLevels(ws[0].ID))
	}
	fmt.Fprintln(w, "Achievements")
	for _, p := range progress.Progress(s, worldSize) {
		mark := " "
		if p.Complete {
			mark = "x"
		}
		fmt.Fprintf(w, "  [%s] %-18s %4d/%-4d  %s\n", mark, p.Name, p.Progress, p.Target, p.Description)
	}

	if len(recent) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Recent wins")
		for _, r := range recent {
			fmt.Fprintf(w, "  %s  level %-3d  %d/3  %6.2fs\n",
				r.CreatedAt.Format("2006-01-02 15:04"), r.LevelID, r.Stars, r.Elapsed)
		}
	}
}
