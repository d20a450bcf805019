// Package holiday answers whether a date is a public holiday or another
// named non-work day.
package holiday

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/us"
)

// ErrUnknownCountry is returned for a country or subdivision without holiday definitions.
var ErrUnknownCountry = errors.New("unknown holiday country")

// dateFormat is the layout of named days on disk and in configuration.
const dateFormat = "2006-01-02"

// regions maps country and subdivision codes to their public holidays.
// The empty subdivision holds the nationwide list.
var regions = map[string]map[string][]*cal.Holiday{
	"DE": {
		"":   de.Holidays,
		"BE": de.HolidaysBE,
		"BW": de.HolidaysBW,
		"BY": de.HolidaysBY,
		"HH": de.HolidaysHH,
		"NW": de.HolidaysNW,
	},
	"US": {
		"": us.Holidays,
	},
}

// Day is a named non-work day such as a company holiday or an absence.
type Day struct {
	Date string `yaml:"date"`
	Name string `yaml:"name"`
}

// Calendar resolves dates to holiday names for one country and subdivision.
type Calendar struct {
	country     string
	subdivision string
	cal         *cal.Calendar
	named       map[string]string
}

// New returns the calendar of a country (ISO 3166 alpha-2) and optional
// subdivision. An empty country yields a calendar without public holidays.
func New(country, subdivision string) (*Calendar, error) {
	country = strings.ToUpper(strings.TrimSpace(country))
	subdivision = strings.ToUpper(strings.TrimSpace(subdivision))

	c := &Calendar{
		country:     country,
		subdivision: subdivision,
		cal:         &cal.Calendar{},
		named:       map[string]string{},
	}
	if country == "" {
		return c, nil
	}
	subs, ok := regions[country]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, country)
	}
	holidays, ok := subs[subdivision]
	if !ok {
		return nil, fmt.Errorf("%w: subdivision %q of %s", ErrUnknownCountry, subdivision, country)
	}
	c.cal.AddHoliday(holidays...)
	return c, nil
}

// Region returns the country and subdivision codes, e.g. "DE-BW".
func (c *Calendar) Region() string {
	if c.subdivision == "" {
		return c.country
	}
	return c.country + "-" + c.subdivision
}

// AddDays registers named days. A later day with the same date replaces
// the earlier name.
func (c *Calendar) AddDays(days ...Day) error {
	for _, d := range days {
		t, err := time.Parse(dateFormat, strings.TrimSpace(d.Date))
		if err != nil {
			return fmt.Errorf("named day %q: %w", d.Name, err)
		}
		c.named[t.Format(dateFormat)] = d.Name
	}
	return nil
}

// HolidayName returns the name of the holiday on day. Public holidays take
// precedence over named days.
func (c *Calendar) HolidayName(day time.Time) (string, bool) {
	y, m, d := day.Date()
	day = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if actual, observed, h := c.cal.IsHoliday(day); (actual || observed) && h != nil {
		return h.Name, true
	}
	name, ok := c.named[day.Format(dateFormat)]
	return name, ok
}

// Holidays lists the public holidays and named days falling in year.
func (c *Calendar) Holidays(year int) []Day {
	var out []Day
	for _, h := range c.cal.Holidays {
		actual, _ := h.Calc(year)
		if actual.IsZero() {
			continue
		}
		out = append(out, Day{Date: actual.Format(dateFormat), Name: h.Name})
	}
	prefix := fmt.Sprintf("%04d-", year)
	for date, name := range c.named {
		if strings.HasPrefix(date, prefix) {
			out = append(out, Day{Date: date, Name: name})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
