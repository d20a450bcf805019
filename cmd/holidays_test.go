package cmd

import (
	"strings"
	"testing"

	"github.com/Tiliavir/trivial-work-ledger/internal/holiday"
)

func TestPrintHolidays(t *testing.T) {
	var b strings.Builder
	printHolidays(&b, "DE-BW", 2026, []holiday.Day{
		{Date: "2026-01-01", Name: "Neujahr"},
		{Date: "2026-01-06", Name: "Heilige Drei Könige"},
	})
	want := "Holidays 2026 (DE-BW)\n" +
		"  2026-01-01 Thu  Neujahr\n" +
		"  2026-01-06 Tue  Heilige Drei Könige\n"
	if b.String() != want {
		t.Errorf("printHolidays =\n%s\nwant\n%s", b.String(), want)
	}

	b.Reset()
	printHolidays(&b, "", 2026, nil)
	if !strings.Contains(b.String(), "no public holidays") || !strings.Contains(b.String(), "none configured") {
		t.Errorf("printHolidays(empty) = %q", b.String())
	}
}
