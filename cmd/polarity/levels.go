package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/polarity/internal/levels"
	"github.com/vovakirdan/polarity/internal/progress"
	"github.com/vovakirdan/polarity/internal/registry"
)

var flagWorld int

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List levels and your best results",
	Long: `Shows every level with its difficulty, pole limit, par time and
your best stars and time.

Examples:
  polarity levels
  polarity levels --world 1`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().IntVar(&flagWorld, "world", 0, "Only list this world")
}

func runLevels(cmd *cobra.Command, _ []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	stats := progress.New(0)
	if store, err := openStore(cmd.Context()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open stats database: %v\n", err)
	} else {
		defer store.Close()
		if stats, err = loadProfile(cmd.Context(), store, 0); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not load stats: %v\n", err)
		}
	}

	return printLevels(cmd.OutOrStdout(), cat, stats, flagWorld)
}

func printLevels(w io.Writer, cat *registry.Catalog, stats *progress.Stats, world int) error {
	shown := 0
	for _, wd := range cat.Worlds() {
		if world != 0 && wd.ID != world {
			continue
		}
		fmt.Fprintf(w, "World %d: %s\n", wd.ID, wd.Name)
		fmt.Fprintf(w, "  %-3s  %-24s  %-7s  %-5s  %-5s  %-5s  %s\n", "ID", "Name", "Diff", "Poles", "Par", "Stars", "Best")
		fmt.Fprintf(w, "  %-3s  %-24s  %-7s  %-5s  %-5s  %-5s  %s\n", "--", "----", "----", "-----", "---", "-----", "----")
		for _, l := range cat.WorldLevels(wd.ID) {
			fmt.Fprintln(w, levelLine(l, stats, cat.Unlocked(l.ID, stats)))
			shown++
		}
		fmt.Fprintln(w)
	}

	if shown == 0 {
		if world != 0 {
			return fmt.Errorf("no levels in world %d", world)
		}
		fmt.Fprintln(w, "No levels available.")
		return nil
	}

	fmt.Fprintln(w, "Run 'polarity play <id>' to play a level.")
	return nil
}

func levelLine(l levels.Level, stats *progress.Stats, unlocked bool) string {
	par := "-"
	if l.ParTime > 0 {
		par = fmt.Sprintf("%.0fs", l.ParTime)
	}
	best := "-"
	if secs, ok := stats.BestTime(l.ID); ok {
		best = fmt.Sprintf("%.2fs", secs)
	}
	n := stats.BestStars(l.ID)
	stars := strings.Repeat("*", n) + strings.Repeat(".", 3-n)
	line := fmt.Sprintf("  %-3d  %-24s  %-7s  %-5d  %-5s  %-5s  %s",
		l.ID, l.Name, l.Difficulty, l.MaxPoles, par, stars, best)
	if !unlocked {
		line += "  (locked)"
	}
	return line
}
