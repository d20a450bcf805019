package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-work-ledger/internal/ledger"
)

var (
	gapsFill   bool
	gapsDryRun bool
)

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "Report missing days between ledger entries",
	Long: `gaps lists every span of missing days between two ledger dates.
With --fill the missing days are backfilled with placeholder records named
after the holiday or absence on that day, or gaps.default_reason otherwise.
With gaps.policy set to weekends_and_holidays only non-work days and
holidays are backfilled.`,
	Args: cobra.NoArgs,
	RunE: runGaps,
}

func init() {
	gapsCmd.Flags().BoolVar(&gapsFill, "fill", false, "Backfill the gaps and save the ledger")
	gapsCmd.Flags().BoolVar(&gapsDryRun, "dry-run", false, "With --fill, report what would be added without saving")
}

func runGaps(cmd *cobra.Command, args []string) error {
	a := mustOpenApp()
	defer a.Close()

	if !gapsFill {
		gaps, err := a.engine.FindGaps()
		a.check(err)
		printGaps(os.Stdout, gaps, a.opts.DateLayout)
		return nil
	}

	engine, err := a.engineFor(gapsDryRun)
	a.check(err)
	res, err := engine.FillGaps()
	a.check(err)
	printGaps(os.Stdout, res.Gaps, a.opts.DateLayout)
	if len(res.Gaps) > 0 {
		fmt.Printf("Added %d placeholder %s (policy %s).\n",
			res.Added, plural(res.Added, "record", "records"), a.opts.GapPolicy)
	}
	if gapsDryRun {
		fmt.Println("Dry run: ledger not changed.")
	}
	return nil
}

// printGaps lists gaps one per line.
func printGaps(w io.Writer, gaps []ledger.Gap, layout string) {
	if len(gaps) == 0 {
		fmt.Fprintln(w, "No gaps found.")
		return
	}
	total := 0
	for _, g := range gaps {
		n := g.MissingDays()
		total += n
		fmt.Fprintf(w, "%s → %s  %d missing %s\n",
			g.From.Format(layout), g.To.Format(layout), n, plural(n, "day", "days"))
	}
	fmt.Fprintf(w, "%d %s, %d missing %s.\n",
		len(gaps), plural(len(gaps), "gap", "gaps"), total, plural(total, "day", "days"))
}
