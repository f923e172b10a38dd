package services

import (
	"time"

	"github.com/terraincognita07/ovucast/internal/models"
)

const calendarGridDays = 42

type CalendarDayState struct {
	Date              time.Time
	Day               int
	InMonth           bool
	IsToday           bool
	IsPeriod          bool
	IsPredictedPeriod bool
	IsFertile         bool
	IsOvulation       bool
	HasTemperature    bool
	HasData           bool
	Phase             CyclePhase
}

// BuildCalendarDays lays out a six-week grid starting on the Sunday on or
// before the first day of month.
func BuildCalendarDays(month time.Time, observations []models.Observation, stats StatsResult, settings models.Settings, today time.Time) []CalendarDayState {
	monthStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	gridStart := addDays(monthStart, -int(monthStart.Weekday()))
	today = dateOnly(today)

	byDay := make(map[string]models.Observation, len(observations))
	for _, observation := range observations {
		byDay[FormatDay(dateOnly(observation.Date))] = observation
	}

	periodLength := settings.DefaultPeriodLength
	if periodLength < 1 {
		periodLength = models.DefaultPeriodLength
	}
	predicted := DateWindow{}
	if !stats.NextPeriodDate.IsZero() {
		predicted = DateWindow{
			Start: stats.NextPeriodDate,
			End:   addDays(stats.NextPeriodDate, periodLength-1),
		}
	}

	days := make([]CalendarDayState, 0, calendarGridDays)
	for offset := 0; offset < calendarGridDays; offset++ {
		day := addDays(gridStart, offset)
		observation, recorded := byDay[FormatDay(day)]

		days = append(days, CalendarDayState{
			Date:              day,
			Day:               day.Day(),
			InMonth:           day.Month() == monthStart.Month(),
			IsToday:           day.Equal(today),
			IsPeriod:          recorded && observation.IsPeriodDay(),
			IsPredictedPeriod: predicted.Contains(day),
			IsFertile:         stats.FertileWindow.Contains(day),
			IsOvulation:       !stats.OvulationDate.IsZero() && day.Equal(dateOnly(stats.OvulationDate)),
			HasTemperature:    recorded && observation.HasTemperature(),
			HasData:           recorded && ObservationHasData(observation),
			Phase:             stats.Phases.PhaseOn(day),
		})
	}
	return days
}
