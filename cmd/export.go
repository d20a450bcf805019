package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-work-ledger/internal/model"
	"github.com/Tiliavir/trivial-work-ledger/internal/storage"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger to stdout or another file format",
	Long: `export writes the ledger rows unchanged in another format. With --out
the format follows the file extension, so the ledger can also be copied
into a SQLite database (.db).`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format for stdout: csv, json, yaml, xml")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Write to this file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	a := mustOpenApp()
	defer a.Close()

	rows, err := a.store.Load()
	a.check(err)

	if exportOut != "" {
		a.check(exportToFile(exportOut, rows))
		fmt.Fprintf(os.Stderr, "Exported %d %s to %s\n", len(rows), plural(len(rows), "record", "records"), exportOut)
		return nil
	}

	data, err := storage.Encode(exportFormat, rows)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

// exportToFile replaces the ledger at path with rows.
func exportToFile(path string, rows []model.Row) error {
	out, err := storage.Open(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return out.Save(rows)
}
