package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var squashCmd = &cobra.Command{
	Use:   "squash",
	Short: "Merge all records of the same day into one",
	Long: `squash removes duplicates and merges every day's records into a single
record: earliest start, latest end, summed lunch breaks and work hours.
The ledger is rewritten sorted by date unless --dry-run is given.`,
	Args: cobra.NoArgs,
	RunE: runSquash,
}

var squashDryRun bool

func init() {
	squashCmd.Flags().BoolVar(&squashDryRun, "dry-run", false, "Report the result without saving")
}

func runSquash(cmd *cobra.Command, args []string) error {
	a := mustOpenApp()
	defer a.Close()

	engine, err := a.engineFor(squashDryRun)
	a.check(err)
	res, err := engine.Squash()
	a.check(err)

	fmt.Printf("Squashed %d records into %d", res.Before, res.After)
	if res.Duplicates > 0 {
		fmt.Printf(" (%d %s removed)", res.Duplicates, plural(res.Duplicates, "duplicate", "duplicates"))
	}
	fmt.Println(".")
	if squashDryRun {
		fmt.Println("Dry run: ledger not changed.")
	}
	return nil
}
