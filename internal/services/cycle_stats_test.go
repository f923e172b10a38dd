package services

import (
	"math"
	"testing"
	"time"

	"github.com/terraincognita07/ovucast/internal/models"
)

func TestComputeStatsEndToEndWithoutTemperatures(t *testing.T) {
	observations := []models.Observation{
		makeObservation("2024-02-26", models.FlowMedium),
		makeObservation("2024-01-01", models.FlowHeavy),
		makeObservation("2024-01-29", models.FlowLight),
	}

	stats := ComputeStats(observations, defaultTestSettings(), mustParseDay("2024-03-04"))

	if stats.AvgCycleLength != 28 {
		t.Fatalf("expected avg cycle length 28, got %d", stats.AvgCycleLength)
	}
	assertDay(t, "next period", stats.NextPeriodDate, "2024-03-25")
	assertDay(t, "fertile start", stats.FertileWindow.Start, "2024-03-09")
	assertDay(t, "fertile end", stats.FertileWindow.End, "2024-03-13")
	assertDay(t, "ovulation", stats.OvulationDate, "2024-03-11")
	if stats.ThermalData.Detected {
		t.Fatal("expected no thermal shift without temperature data")
	}
	if stats.UsedDefaults {
		t.Fatal("expected empirical cycle length, not defaults")
	}
	if stats.PeriodMarkerCount != 3 {
		t.Fatalf("expected 3 period markers, got %d", stats.PeriodMarkerCount)
	}
	if stats.Phases.Current != PhaseFollicular {
		t.Fatalf("expected follicular phase on 2024-03-04, got %q", stats.Phases.Current)
	}
}

func TestComputeStatsAverageIsRoundedMeanOfGaps(t *testing.T) {
	tests := []struct {
		name     string
		days     []string
		wantAvg  int
		wantNext string
	}{
		{name: "uniform gaps", days: []string{"2025-01-01", "2025-01-29", "2025-02-26"}, wantAvg: 28, wantNext: "2025-03-26"},
		{name: "rounds half up", days: []string{"2025-01-01", "2025-01-29", "2025-02-27"}, wantAvg: 29, wantNext: "2025-03-28"},
		{name: "rounds down", days: []string{"2025-01-01", "2025-01-27", "2025-02-25", "2025-03-21"}, wantAvg: 26, wantNext: "2025-04-16"},
		{name: "no outlier rejection", days: []string{"2025-01-01", "2025-01-29", "2025-04-29"}, wantAvg: 59, wantNext: "2025-06-27"},
		{name: "consecutive bleeding days count as gaps", days: []string{"2025-01-01", "2025-01-02", "2025-01-29"}, wantAvg: 14, wantNext: "2025-02-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			observations := make([]models.Observation, 0, len(tt.days))
			for _, day := range tt.days {
				observations = append(observations, makeObservation(day, models.FlowMedium))
			}

			stats := ComputeStats(observations, defaultTestSettings(), mustParseDay("2025-03-01"))
			if stats.AvgCycleLength != tt.wantAvg {
				t.Fatalf("expected avg %d, got %d", tt.wantAvg, stats.AvgCycleLength)
			}
			assertDay(t, "next period", stats.NextPeriodDate, tt.wantNext)

			last := mustParseDay(tt.days[len(tt.days)-1])
			if !stats.NextPeriodDate.Equal(last.AddDate(0, 0, stats.AvgCycleLength)) {
				t.Fatalf("expected next period = last marker + avg, got %s", FormatDay(stats.NextPeriodDate))
			}
		})
	}
}

func TestComputeStatsIgnoresNonPeriodDaysForCycleLength(t *testing.T) {
	observations := []models.Observation{
		makeObservation("2025-01-01", models.FlowMedium),
		makeObservation("2025-01-10", models.FlowNone),
		makeObservation("2025-01-15", models.FlowNone),
		makeObservation("2025-01-31", models.FlowLight),
	}

	stats := ComputeStats(observations, defaultTestSettings(), mustParseDay("2025-02-01"))
	if stats.AvgCycleLength != 30 {
		t.Fatalf("expected avg 30 from period markers only, got %d", stats.AvgCycleLength)
	}
}

func TestComputeStatsFallbackUsesSettingsDefault(t *testing.T) {
	settings := defaultTestSettings()
	settings.DefaultCycleLength = 31
	today := mustParseDay("2025-05-10")

	t.Run("no markers anchors on today", func(t *testing.T) {
		observations := []models.Observation{makeObservation("2025-05-01", models.FlowNone)}
		stats := ComputeStats(observations, settings, today)

		if stats.AvgCycleLength != 31 {
			t.Fatalf("expected default cycle length 31, got %d", stats.AvgCycleLength)
		}
		assertDay(t, "next period", stats.NextPeriodDate, "2025-06-10")
		assertDay(t, "fertile start", stats.FertileWindow.Start, "2025-05-25")
		assertDay(t, "fertile end", stats.FertileWindow.End, "2025-05-29")
		assertDay(t, "ovulation", stats.OvulationDate, "2025-05-29")
		if !stats.UsedDefaults || stats.ThermalData.Detected {
			t.Fatalf("expected default-based result without detection, got %#v", stats.ThermalData)
		}
	})

	t.Run("single marker anchors on marker", func(t *testing.T) {
		observations := []models.Observation{makeObservation("2025-04-20", models.FlowHeavy)}
		stats := ComputeStats(observations, settings, today)

		if stats.AvgCycleLength != 31 {
			t.Fatalf("expected default cycle length 31, got %d", stats.AvgCycleLength)
		}
		assertDay(t, "next period", stats.NextPeriodDate, "2025-05-21")
		if stats.PeriodMarkerCount != 1 {
			t.Fatalf("expected one marker, got %d", stats.PeriodMarkerCount)
		}
	})

	t.Run("empty history", func(t *testing.T) {
		stats := ComputeStats(nil, settings, today)
		if stats.AvgCycleLength != 31 {
			t.Fatalf("expected default cycle length 31, got %d", stats.AvgCycleLength)
		}
		assertDay(t, "next period", stats.NextPeriodDate, "2025-06-10")
		if stats.Phases.Windows[0].Phase != PhaseMenstrual {
			t.Fatalf("expected phases computed from the estimate, got %#v", stats.Phases)
		}
	})

	t.Run("temperatures ignored in fallback", func(t *testing.T) {
		observations := risingTemperatureObservations("2025-04-01", 12)
		stats := ComputeStats(observations, settings, today)
		if stats.ThermalData.Detected {
			t.Fatal("expected no detection in the fallback path")
		}
	})
}

func TestComputeStatsFertileEndTwelveDaysBeforeNextPeriodWithoutShift(t *testing.T) {
	histories := [][]string{
		{},
		{"2025-02-02"},
		{"2025-01-01", "2025-01-29"},
		{"2025-01-01", "2025-02-03", "2025-03-01"},
	}

	for _, days := range histories {
		observations := make([]models.Observation, 0, len(days))
		for _, day := range days {
			observations = append(observations, makeObservation(day, models.FlowLight))
		}
		stats := ComputeStats(observations, defaultTestSettings(), mustParseDay("2025-03-05"))
		if stats.ThermalData.Detected {
			t.Fatal("expected no thermal shift")
		}
		if got := daysBetween(stats.FertileWindow.End, stats.NextPeriodDate); got != 12 {
			t.Fatalf("expected fertile end 12 days before next period, got %d (history %v)", got, days)
		}
	}
}

func TestComputeStatsUsesDetectedThermalShift(t *testing.T) {
	observations := []models.Observation{
		makeObservation("2025-01-01", models.FlowMedium),
		makeObservation("2025-01-29", models.FlowMedium),
	}
	observations = append(observations, risingTemperatureObservations("2025-02-01", 14)...)

	stats := ComputeStats(observations, defaultTestSettings(), mustParseDay("2025-02-20"))

	if !stats.ThermalData.Detected || stats.ThermalData.Shift == nil {
		t.Fatal("expected thermal shift to be detected")
	}
	shiftDay := stats.ThermalData.Shift.Date
	assertDay(t, "ovulation", stats.OvulationDate, FormatDay(shiftDay))
	assertDay(t, "fertile start", stats.FertileWindow.Start, FormatDay(shiftDay.AddDate(0, 0, -5)))
	assertDay(t, "fertile end", stats.FertileWindow.End, FormatDay(shiftDay.AddDate(0, 0, 1)))
	if len(stats.ThermalData.SmoothedTemperatures) != 14 {
		t.Fatalf("expected full smoothed series of 14 samples, got %d", len(stats.ThermalData.SmoothedTemperatures))
	}
	if stats.ThermalData.Shift.Magnitude < 0.2 {
		t.Fatalf("expected magnitude >= 0.2, got %.4f", stats.ThermalData.Shift.Magnitude)
	}
}

func TestComputeStatsSortsTemperatureSamples(t *testing.T) {
	observations := []models.Observation{
		makeObservation("2025-01-01", models.FlowMedium),
		makeObservation("2025-01-29", models.FlowMedium),
	}
	rising := risingTemperatureObservations("2025-02-01", 12)
	for i := len(rising) - 1; i >= 0; i-- {
		observations = append(observations, rising[i])
	}

	stats := ComputeStats(observations, defaultTestSettings(), mustParseDay("2025-02-20"))
	samples := stats.ThermalData.SmoothedTemperatures
	for i := 1; i < len(samples); i++ {
		if !samples[i-1].Date.Before(samples[i].Date) {
			t.Fatalf("expected ascending samples, got %s before %s", FormatDay(samples[i-1].Date), FormatDay(samples[i].Date))
		}
	}
	if samples[0].IsSmoothed || samples[len(samples)-1].IsSmoothed {
		t.Fatal("expected series endpoints to stay unsmoothed")
	}
}

func TestComputeStatsIsDeterministic(t *testing.T) {
	observations := append([]models.Observation{
		makeObservation("2025-01-01", models.FlowMedium),
		makeObservation("2025-01-30", models.FlowMedium),
	}, risingTemperatureObservations("2025-02-01", 12)...)
	today := mustParseDay("2025-02-20")

	first := ComputeStats(observations, defaultTestSettings(), today)
	second := ComputeStats(observations, defaultTestSettings(), today)

	if first.AvgCycleLength != second.AvgCycleLength ||
		!first.NextPeriodDate.Equal(second.NextPeriodDate) ||
		!first.OvulationDate.Equal(second.OvulationDate) ||
		first.Phases != second.Phases {
		t.Fatal("expected identical results for identical inputs")
	}
	if math.Abs(first.ThermalData.Shift.Magnitude-second.ThermalData.Shift.Magnitude) > 0 {
		t.Fatal("expected identical shift magnitude")
	}
}

func makeObservation(day string, flow string) models.Observation {
	return models.Observation{
		Date:      mustParseDay(day),
		Flow:      flow,
		Discharge: models.DischargeNone,
	}
}

// risingTemperatureObservations produces six low readings followed by a
// sustained rise of 0.4°C.
func risingTemperatureObservations(startDay string, count int) []models.Observation {
	start := mustParseDay(startDay)
	observations := make([]models.Observation, 0, count)
	for i := 0; i < count; i++ {
		temperature := 36.2
		if i >= 6 {
			temperature = 36.6
		}
		observations = append(observations, models.Observation{
			Date:        start.AddDate(0, 0, i),
			Flow:        models.FlowNone,
			Discharge:   models.DischargeNone,
			Temperature: floatPtr(temperature),
		})
	}
	return observations
}

func defaultTestSettings() models.Settings {
	return models.DefaultSettings()
}

func assertDay(t *testing.T, label string, got time.Time, want string) {
	t.Helper()
	if FormatDay(got) != want {
		t.Fatalf("expected %s %s, got %s", label, want, FormatDay(got))
	}
}
