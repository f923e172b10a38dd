package services

import (
	"math"
	"strings"
	"time"

	"github.com/terraincognita07/ovucast/internal/models"
)

const DayLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// CalendarDay maps an instant to the calendar day it falls on in location,
// expressed as UTC midnight. All stored and computed dates use this form.
func CalendarDay(value time.Time, location *time.Location) time.Time {
	local := DateAtLocation(value, location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

func DayRange(value time.Time) (time.Time, time.Time) {
	start := dateOnly(value)
	return start, start.AddDate(0, 0, 1)
}

func ParseDay(raw string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, strings.TrimSpace(raw), time.UTC)
}

func FormatDay(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(DayLayout)
}

func ObservationHasData(observation models.Observation) bool {
	switch {
	case observation.IsPeriodDay():
		return true
	case observation.HasTemperature():
		return true
	case observation.Discharge != "" && observation.Discharge != models.DischargeNone:
		return true
	case observation.Symptoms.Any():
		return true
	case observation.ExtendedSymptoms != nil:
		return true
	default:
		return strings.TrimSpace(observation.Notes) != ""
	}
}

func addDays(day time.Time, days int) time.Time {
	return day.AddDate(0, 0, days)
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(dateOnly(to).Sub(dateOnly(from)).Hours() / 24))
}

func betweenInclusive(day, start, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	return !day.Before(start) && !day.After(end)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
