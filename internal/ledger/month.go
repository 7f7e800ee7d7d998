package ledger

import (
	"regexp"
	"strings"
	"time"

	appErrors "github.com/fatali-fataliyev/household_ledger/customErrors"
)

const (
	MonthLayout = "2006-01"
	DateLayout  = "2006-01-02"
)

var monthKeyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

func ValidateMonth(key string) error {
	if !monthKeyPattern.MatchString(key) {
		return appErrors.Invalid("Invalid month '%s', expected YYYY-MM.", key)
	}
	return nil
}

// MonthBounds returns day 1 00:00:00.000 and the last day 23:59:59.999 of
// the month in loc.
func MonthBounds(key string, loc *time.Location) (time.Time, time.Time, error) {
	if err := ValidateMonth(key); err != nil {
		return time.Time{}, time.Time{}, err
	}
	first, err := time.ParseInLocation(MonthLayout, key, loc)
	if err != nil {
		return time.Time{}, time.Time{}, appErrors.Invalid("Invalid month '%s', expected YYYY-MM.", key)
	}
	last := first.AddDate(0, 1, 0).Add(-time.Millisecond)
	return first, last, nil
}

func MonthRange(key string, loc *time.Location) (DateRange, error) {
	start, end, err := MonthBounds(key, loc)
	if err != nil {
		return DateRange{}, err
	}
	return DateRange{Start: &start, End: &end}, nil
}

func MonthKeyOf(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(MonthLayout)
}

// ParseEconomicDate accepts a date-only value, taken as the start of that day
// in loc, or an RFC 3339 instant.
func ParseEconomicDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, appErrors.Invalid("Date is required.")
	}
	if t, err := time.ParseInLocation(DateLayout, value, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.In(loc), nil
	}
	return time.Time{}, appErrors.Invalid("Invalid date '%s', expected YYYY-MM-DD or an RFC 3339 timestamp.", value)
}

// ParseDateRange parses optional range bounds. A date-only end covers the
// whole day.
func ParseDateRange(start, end string, loc *time.Location) (DateRange, error) {
	var r DateRange
	if start != "" {
		t, err := ParseEconomicDate(start, loc)
		if err != nil {
			return DateRange{}, err
		}
		r.Start = &t
	}
	if end != "" {
		t, err := ParseEconomicDate(end, loc)
		if err != nil {
			return DateRange{}, err
		}
		if _, dateOnly := time.ParseInLocation(DateLayout, strings.TrimSpace(end), loc); dateOnly == nil {
			t = t.AddDate(0, 0, 1).Add(-time.Millisecond)
		}
		r.End = &t
	}
	if r.Start != nil && r.End != nil && r.Start.After(*r.End) {
		return DateRange{}, appErrors.Invalid("Start date must not be after end date.")
	}
	return r, nil
}
