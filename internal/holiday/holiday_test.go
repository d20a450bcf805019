package holiday_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/trivial-work-ledger/internal/holiday"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGermanHolidays(t *testing.T) {
	c, err := holiday.New("de", "")
	require.NoError(t, err)

	name, ok := c.HolidayName(day(2026, 1, 1))
	require.True(t, ok)
	assert.Equal(t, "Neujahrstag", name)

	_, ok = c.HolidayName(day(2026, 1, 2))
	assert.False(t, ok)

	// Epiphany is not a nationwide holiday.
	_, ok = c.HolidayName(day(2026, 1, 6))
	assert.False(t, ok)
}

func TestSubdivision(t *testing.T) {
	c, err := holiday.New("DE", "bw")
	require.NoError(t, err)
	assert.Equal(t, "DE-BW", c.Region())

	name, ok := c.HolidayName(day(2026, 1, 6))
	assert.True(t, ok)
	assert.NotEmpty(t, name)
}

func TestUSHolidays(t *testing.T) {
	c, err := holiday.New("US", "")
	require.NoError(t, err)
	name, ok := c.HolidayName(time.Date(2026, 7, 4, 15, 0, 0, 0, time.Local))
	assert.True(t, ok)
	assert.NotEmpty(t, name)
}

func TestUnknownRegion(t *testing.T) {
	_, err := holiday.New("XX", "")
	assert.ErrorIs(t, err, holiday.ErrUnknownCountry)

	_, err = holiday.New("DE", "ZZ")
	assert.ErrorIs(t, err, holiday.ErrUnknownCountry)
}

func TestNamedDays(t *testing.T) {
	c, err := holiday.New("", "")
	require.NoError(t, err)

	_, ok := c.HolidayName(day(2026, 12, 24))
	assert.False(t, ok)

	require.NoError(t, c.AddDays(
		holiday.Day{Date: "2026-12-24", Name: "Heiligabend"},
		holiday.Day{Date: "2026-08-10", Name: "Summer trip"},
	))
	name, ok := c.HolidayName(day(2026, 12, 24))
	assert.True(t, ok)
	assert.Equal(t, "Heiligabend", name)

	assert.Error(t, c.AddDays(holiday.Day{Date: "24.12.2026", Name: "bad"}))
}

func TestPublicHolidayWinsOverNamedDay(t *testing.T) {
	c, err := holiday.New("DE", "")
	require.NoError(t, err)
	require.NoError(t, c.AddDays(holiday.Day{Date: "2026-01-01", Name: "Out of office"}))

	name, _ := c.HolidayName(day(2026, 1, 1))
	assert.Equal(t, "Neujahrstag", name)
}

func TestHolidaysOfYear(t *testing.T) {
	c, err := holiday.New("DE", "")
	require.NoError(t, err)
	require.NoError(t, c.AddDays(holiday.Day{Date: "2026-08-10", Name: "Summer trip"}, holiday.Day{Date: "2025-08-10", Name: "Last year"}))

	days := c.Holidays(2026)
	require.NotEmpty(t, days)
	assert.Equal(t, holiday.Day{Date: "2026-01-01", Name: "Neujahrstag"}, days[0])
	assert.Contains(t, days, holiday.Day{Date: "2026-08-10", Name: "Summer trip"})
	assert.NotContains(t, days, holiday.Day{Date: "2025-08-10", Name: "Last year"})
	for i := 1; i < len(days); i++ {
		assert.LessOrEqual(t, days[i-1].Date, days[i].Date)
	}
}

func TestLoadSaveDays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absences.yaml")

	days, err := holiday.LoadDays(path)
	require.NoError(t, err)
	assert.Empty(t, days)

	in := []holiday.Day{{Date: "2026-08-11", Name: "B"}, {Date: "2026-08-10", Name: "A"}}
	require.NoError(t, holiday.SaveDays(path, in))

	days, err = holiday.LoadDays(path)
	require.NoError(t, err)
	assert.Equal(t, []holiday.Day{{Date: "2026-08-10", Name: "A"}, {Date: "2026-08-11", Name: "B"}}, days)
}
