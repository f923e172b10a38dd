package services

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrRangeFromDateInvalid = errors.New("invalid from date")
	ErrRangeToDateInvalid   = errors.New("invalid to date")
	ErrRangeInvalid         = errors.New("invalid date range")
	ErrMonthInvalid         = errors.New("invalid month")
)

const MonthLayout = "2006-01"

// ParseDayRange parses optional YYYY-MM-DD bounds; an empty bound stays nil.
func ParseDayRange(rawFrom string, rawTo string) (*time.Time, *time.Time, error) {
	var from *time.Time
	if fromRaw := strings.TrimSpace(rawFrom); fromRaw != "" {
		parsed, err := ParseDay(fromRaw)
		if err != nil {
			return nil, nil, ErrRangeFromDateInvalid
		}
		from = &parsed
	}

	var to *time.Time
	if toRaw := strings.TrimSpace(rawTo); toRaw != "" {
		parsed, err := ParseDay(toRaw)
		if err != nil {
			return nil, nil, ErrRangeToDateInvalid
		}
		to = &parsed
	}

	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, ErrRangeInvalid
	}
	return from, to, nil
}

// ParseMonth parses YYYY-MM into the first day of that month. An empty value
// selects the month containing today.
func ParseMonth(raw string, today time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	parsed, err := time.ParseInLocation(MonthLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, ErrMonthInvalid
	}
	return parsed, nil
}
