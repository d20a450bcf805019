package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-work-ledger/internal/holiday"
)

var holidaysYear int

var holidaysCmd = &cobra.Command{
	Use:   "holidays",
	Short: "List the public holidays and named days off of a year",
	Args:  cobra.NoArgs,
	RunE:  runHolidays,
}

func init() {
	holidaysCmd.Flags().IntVar(&holidaysYear, "year", 0, "Year to list (default current year)")
}

func runHolidays(cmd *cobra.Command, args []string) error {
	year := holidaysYear
	if year == 0 {
		year = time.Now().Year()
	}

	cfg, err := loadConfig()
	exitOnError(err)
	cal, err := cfg.Calendar()
	exitOnError(err)

	printHolidays(os.Stdout, cal.Region(), year, cal.Holidays(year))
	return nil
}

func printHolidays(w io.Writer, region string, year int, days []holiday.Day) {
	if region == "" {
		region = "no public holidays"
	}
	fmt.Fprintf(w, "Holidays %d (%s)\n", year, region)
	if len(days) == 0 {
		fmt.Fprintln(w, "  none configured, set holidays.country in the config")
		return
	}
	for _, d := range days {
		wd := ""
		if t, err := time.Parse("2006-01-02", d.Date); err == nil {
			wd = t.Format("Mon")
		}
		fmt.Fprintf(w, "  %s %s  %s\n", d.Date, wd, d.Name)
	}
}
