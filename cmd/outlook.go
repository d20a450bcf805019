package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-work-ledger/internal/holiday"
	"github.com/Tiliavir/trivial-work-ledger/internal/msgraph"
	"github.com/Tiliavir/trivial-work-ledger/internal/timecalc"
)

var (
	outlookSyncFrom   string
	outlookSyncTo     string
	outlookSyncDryRun bool
	outlookSyncTZ     string
)

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Outlook calendar integration",
}

var outlookSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import all-day out-of-office events as named days off",
	Long: `sync reads all-day Outlook events shown as "out of office" and stores
one named day per covered date in holidays.absences_file. Gap filling labels
those days with the event subject. Running sync again skips known days and
updates renamed ones.`,
	Args: cobra.NoArgs,
	RunE: runOutlookSync,
}

func init() {
	outlookSyncCmd.Flags().StringVar(&outlookSyncFrom, "from", "", "Start date (YYYY-MM-DD); defaults to today")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTo, "to", "", "End date, inclusive (YYYY-MM-DD); defaults to --from")
	outlookSyncCmd.Flags().BoolVar(&outlookSyncDryRun, "dry-run", false, "Print planned operations without writing")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTZ, "timezone", "", "IANA timezone for event times (default outlook.timezone)")
	outlookCmd.AddCommand(outlookSyncCmd)
}

// syncWindow resolves --from and --to to the half-open day range [from, to).
func syncWindow(now time.Time, fromFlag, toFlag string) (time.Time, time.Time, error) {
	from := timecalc.StartOfDay(now)
	if fromFlag != "" {
		d, err := time.ParseInLocation("2006-01-02", fromFlag, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from value %q: %w", fromFlag, err)
		}
		from = d
	}
	to := from
	if toFlag != "" {
		d, err := time.ParseInLocation("2006-01-02", toFlag, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to value %q: %w", toFlag, err)
		}
		to = d
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to %s is before --from %s", to.Format("2006-01-02"), from.Format("2006-01-02"))
	}
	return from, to.AddDate(0, 0, 1), nil
}

func runOutlookSync(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	exitOnError(err)

	timezone := outlookSyncTZ
	if timezone == "" {
		timezone = cfg.Outlook.Timezone
	}
	now := time.Now()
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone %q: %w", timezone, err)
		}
		now = now.In(loc)
	}

	from, to, err := syncWindow(now, outlookSyncFrom, outlookSyncTo)
	if err != nil {
		return err
	}

	dryTag := ""
	if outlookSyncDryRun {
		dryTag = " [dry-run]"
	}
	fmt.Printf("Syncing Outlook absences (%s → %s)%s...\n",
		from.Format("2006-01-02"), to.AddDate(0, 0, -1).Format("2006-01-02"), dryTag)
	fmt.Println()

	ctx := context.Background()
	client, err := msgraph.Connect(ctx, cfg.Outlook.TenantID, cfg.Outlook.ClientID, os.Stdout)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	events, err := client.GetCalendarView(ctx, from, to, timezone)
	if err != nil {
		return fmt.Errorf("failed to fetch calendar events: %w", err)
	}

	existing, err := holiday.LoadDays(cfg.Holidays.AbsencesFile)
	exitOnError(err)

	opts := msgraph.SyncOptions{
		From:     from,
		To:       to,
		DryRun:   outlookSyncDryRun,
		Timezone: timezone,
	}
	merged, result := msgraph.SyncAbsences(events, existing, opts, os.Stdout)

	if !outlookSyncDryRun && result.Imported+result.Updated > 0 {
		exitOnError(holiday.SaveDays(cfg.Holidays.AbsencesFile, merged))
	}

	fmt.Println()
	fmt.Println("Summary:")
	fmt.Printf("  %d imported\n", result.Imported)
	fmt.Printf("  %d skipped\n", result.Skipped)
	fmt.Printf("  %d updated\n", result.Updated)
	if result.Errors > 0 {
		fmt.Printf("  %d errors\n", result.Errors)
		osExit(2)
	}
	return nil
}
