package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/polarity/internal/core"
	"github.com/vovakirdan/polarity/internal/magnet"
)

var (
	flagPoles []string
	flagTicks int
	flagBoost bool
	flagGhost bool
	flagJSON  bool
)

var simCmd = &cobra.Command{
	Use:   "sim <level>",
	Short: "Run a level headless with the given poles",
	Long: `Place poles, launch the run and tick it until it ends or the tick
budget runs out. Prints the outcome, stars, elapsed time and tick count.
Nothing is saved.

Pole format: x,y,charge[,kind]
  charge - + or -
  kind   - standard (default), super, weak, timed

Output is JSON when stdout is not a terminal, or with --json.

Examples:
  polarity sim 1 --pole 8,4,+
  polarity sim 3 --pole 5,2,+ --pole 5,6,- --boost
  polarity sim 7 --pole 9,4,+,super --ghost --ticks 5000`,
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringArrayVar(&flagPoles, "pole", nil, "Pole to place as x,y,charge[,kind] (repeatable)")
	simCmd.Flags().IntVar(&flagTicks, "ticks", 10000, "Maximum ticks to simulate")
	simCmd.Flags().BoolVar(&flagBoost, "boost", false, "Activate magnetic boost before launch")
	simCmd.Flags().BoolVar(&flagGhost, "ghost", false, "Activate ghost mode before launch")
	simCmd.Flags().BoolVar(&flagJSON, "json", false, "Print JSON even on a terminal")
}

// poleSpec is a parsed --pole flag.
type poleSpec struct {
	Cell   core.Point
	Charge magnet.Charge
	Kind   magnet.PoleKind
}

func parsePole(s string) (poleSpec, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 3 || len(parts) > 4 {
		return poleSpec{}, fmt.Errorf("pole %q: expected x,y,charge[,kind]", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return poleSpec{}, fmt.Errorf("pole %q: bad x: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return poleSpec{}, fmt.Errorf("pole %q: bad y: %w", s, err)
	}
	q, err := magnet.ParseCharge(strings.TrimSpace(parts[2]))
	if err != nil {
		return poleSpec{}, fmt.Errorf("pole %q: %w", s, err)
	}
	spec := poleSpec{Cell: core.Pt(x, y), Charge: q}
	if len(parts) == 4 {
		if spec.Kind, err = magnet.ParsePoleKind(strings.TrimSpace(parts[3])); err != nil {
			return poleSpec{}, fmt.Errorf("pole %q: %w", s, err)
		}
	}
	return spec, nil
}

// simReport is the outcome of a headless run.
type simReport struct {
	Level   int               `json:"level"`
	Mode    magnet.Mode       `json:"mode"`
	Loss    magnet.LossReason `json:"loss,omitempty"`
	Stars   int               `json:"stars"`
	Elapsed float64           `json:"elapsed"`
	Ticks   uint64            `json:"ticks"`
	Tally   magnet.Tally      `json:"tally"`
	Final   core.Vec          `json:"final"`
}

func runSim(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid level id %q", args[0])
	}
	if len(flagPoles) == 0 {
		return fmt.Errorf("at least one --pole is required")
	}

	logger, closeLog, err := newLogger("polarity-sim", os.Stderr)
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
	l, err := cat.Level(id)
	if err != nil {
		return err
	}

	specs := make([]poleSpec, 0, len(flagPoles))
	for _, p := range flagPoles {
		spec, err := parsePole(p)
		if err != nil {
			return err
		}
		specs = append(specs, spec)
	}

	var powerUps []magnet.PowerUpKind
	if flagBoost {
		powerUps = append(powerUps, magnet.PowerUpMagneticBoost)
	}
	if flagGhost {
		powerUps = append(powerUps, magnet.PowerUpGhostMode)
	}

	rep, err := simulate(l.Geometry(), cfg.Params(), specs, powerUps, flagTicks)
	if err != nil {
		return err
	}
	logger.Debug("simulation finished", "level", id, "mode", rep.Mode, "ticks", rep.Ticks)

	out := cmd.OutOrStdout()
	if flagJSON || !isTerminal(out) {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	printReport(out, rep)
	return nil
}

// simulate runs one level headless. It never touches the profile.
func simulate(l magnet.Level, params magnet.Params, specs []poleSpec, powerUps []magnet.PowerUpKind, maxTicks int) (simReport, error) {
	run, err := magnet.NewRun(l, params)
	if err != nil {
		return simReport{}, err
	}
	for _, s := range specs {
		if _, ok := run.PlacePoleKind(s.Cell, s.Charge, s.Kind); !ok {
			return simReport{}, fmt.Errorf("cannot place %s pole at (%d,%d)", s.Charge, s.Cell.X, s.Cell.Y)
		}
	}
	for _, k := range powerUps {
		run.ActivatePowerUp(k)
	}
	if !run.Start() {
		return simReport{}, fmt.Errorf("run refused to start")
	}

	mode := run.Simulate(maxTicks)
	st := run.State()
	rep := simReport{
		Level:   l.ID,
		Mode:    mode,
		Loss:    st.Loss,
		Elapsed: st.Elapsed,
		Ticks:   st.Tick,
		Tally:   st.Tally,
		Final:   st.Position,
	}
	if r, ok := run.Result(); ok {
		rep.Stars = r.Stars
	}
	return rep, nil
}

func printReport(w io.Writer, r simReport) {
	outcome := r.Mode.String()
	if r.Mode == magnet.ModeLost {
		outcome += " (" + r.Loss.String() + ")"
	}
	fmt.Fprintf(w, "Level %d: %s\n", r.Level, outcome)
	fmt.Fprintf(w, "  Stars     %d\n", r.Stars)
	fmt.Fprintf(w, "  Elapsed   %.3fs\n", r.Elapsed)
	fmt.Fprintf(w, "  Ticks     %d\n", r.Ticks)
	fmt.Fprintf(w, "  Collected %d stars, %d coins, %d gems, %d keys\n",
		r.Tally.Stars, r.Tally.Coins, r.Tally.Gems, r.Tally.Keys)
	fmt.Fprintf(w, "  Final     (%.2f, %.2f)\n", r.Final.X, r.Final.Y)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
