package services

import (
	"testing"
	"time"

	"github.com/terraincognita07/ovucast/internal/models"
)

func TestBuildCalendarDaysGridShape(t *testing.T) {
	// March 2024 starts on a Friday.
	days := BuildCalendarDays(mustParseDay("2024-03-15"), nil, StatsResult{}, models.DefaultSettings(), mustParseDay("2024-03-04"))

	if len(days) != 42 {
		t.Fatalf("expected 42 cells, got %d", len(days))
	}
	if FormatDay(days[0].Date) != "2024-02-25" || days[0].Date.Weekday() != time.Sunday {
		t.Fatalf("expected grid to start on Sunday 2024-02-25, got %s", FormatDay(days[0].Date))
	}
	if days[0].InMonth || !days[5].InMonth {
		t.Fatal("expected in-month flags to follow the requested month")
	}
	if FormatDay(days[41].Date) != "2024-04-06" {
		t.Fatalf("expected grid to end on 2024-04-06, got %s", FormatDay(days[41].Date))
	}
	todayCells := 0
	for _, day := range days {
		if day.IsToday {
			todayCells++
			if FormatDay(day.Date) != "2024-03-04" {
				t.Fatalf("unexpected today cell %s", FormatDay(day.Date))
			}
		}
	}
	if todayCells != 1 {
		t.Fatalf("expected one today cell, got %d", todayCells)
	}
}

func TestBuildCalendarDaysFlagsPredictions(t *testing.T) {
	observations := []models.Observation{
		makeObservation("2024-01-01", models.FlowHeavy),
		makeObservation("2024-01-29", models.FlowLight),
		makeObservation("2024-02-26", models.FlowMedium),
		{Date: mustParseDay("2024-03-05"), Flow: models.FlowNone, Temperature: floatPtr(36.4)},
	}
	settings := defaultTestSettings()
	today := mustParseDay("2024-03-04")
	stats := ComputeStats(observations, settings, today)

	days := BuildCalendarDays(mustParseDay("2024-03-01"), observations, stats, settings, today)
	byDay := make(map[string]CalendarDayState, len(days))
	for _, day := range days {
		byDay[FormatDay(day.Date)] = day
	}

	if !byDay["2024-02-26"].IsPeriod {
		t.Fatal("expected recorded period day to be flagged")
	}
	if !byDay["2024-03-05"].HasTemperature || !byDay["2024-03-05"].HasData {
		t.Fatal("expected temperature day to be flagged")
	}
	for _, key := range []string{"2024-03-25", "2024-03-29"} {
		if !byDay[key].IsPredictedPeriod {
			t.Fatalf("expected %s in predicted period", key)
		}
	}
	if byDay["2024-03-30"].IsPredictedPeriod {
		t.Fatal("expected predicted period to last default period length days")
	}
	if !byDay["2024-03-09"].IsFertile || !byDay["2024-03-13"].IsFertile || byDay["2024-03-14"].IsFertile {
		t.Fatal("unexpected fertile window flags")
	}
	if !byDay["2024-03-11"].IsOvulation {
		t.Fatal("expected ovulation day flag")
	}
	if byDay["2024-03-04"].Phase != PhaseFollicular {
		t.Fatalf("expected follicular phase on 2024-03-04, got %q", byDay["2024-03-04"].Phase)
	}
}
