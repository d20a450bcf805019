package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dedupCmd = &cobra.Command{
	Use:   "dedup",
	Short: "Remove exact duplicate records from the ledger",
	Args:  cobra.NoArgs,
	RunE:  runDedup,
}

func runDedup(cmd *cobra.Command, args []string) error {
	a := mustOpenApp()
	defer a.Close()

	removed, err := a.engine.RemoveDuplicates()
	a.check(err)

	if removed == 0 {
		fmt.Println("No duplicates found.")
		return nil
	}
	fmt.Printf("Removed %d duplicate %s.\n", removed, plural(removed, "record", "records"))
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
