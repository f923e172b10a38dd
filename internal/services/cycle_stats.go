package services

import (
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/terraincognita07/ovucast/internal/models"
)

const (
	lutealPhaseDays      = 14
	fertileStartOffset   = -16
	fertileEndOffset     = -12
	shiftFertileLeadDays = 5
	shiftFertileTailDays = 1
)

type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (window DateWindow) Contains(day time.Time) bool {
	return betweenInclusive(dateOnly(day), window.Start, window.End)
}

type ThermalData struct {
	Detected             bool                `json:"detected"`
	Shift                *ThermalShift       `json:"shift,omitempty"`
	SmoothedTemperatures []TemperatureSample `json:"smoothed_temperatures"`
}

type StatsResult struct {
	AvgCycleLength    int         `json:"avg_cycle_length"`
	NextPeriodDate    time.Time   `json:"next_period_date"`
	FertileWindow     DateWindow  `json:"fertile_window"`
	OvulationDate     time.Time   `json:"ovulation_date"`
	Phases            CyclePhases `json:"phases"`
	ThermalData       ThermalData `json:"thermal_data"`
	PeriodMarkerCount int         `json:"period_marker_count"`
	UsedDefaults      bool        `json:"used_defaults"`
}

// ComputeStats derives the prediction bundle from the full observation
// history. It reads only its arguments: today is injected, nothing is cached,
// and every sparse-data case falls back to the settings defaults instead of
// failing.
func ComputeStats(observations []models.Observation, settings models.Settings, today time.Time) StatsResult {
	today = dateOnly(today)
	markers := periodMarkerDates(observations)

	if len(markers) < 2 {
		return fallbackStats(markers, settings, today)
	}

	avgLength := averageCycleLength(markers)
	nextPeriod := addDays(markers[len(markers)-1], avgLength)

	smoothed := SmoothTemperatures(temperatureSamples(observations))
	shift, detected := DetectThermalShift(smoothed)

	result := StatsResult{
		AvgCycleLength:    avgLength,
		NextPeriodDate:    nextPeriod,
		PeriodMarkerCount: len(markers),
		ThermalData: ThermalData{
			Detected:             detected,
			SmoothedTemperatures: smoothed,
		},
	}

	if detected {
		shiftDay := dateOnly(shift.Date)
		result.OvulationDate = shiftDay
		result.FertileWindow = DateWindow{
			Start: addDays(shiftDay, -shiftFertileLeadDays),
			End:   addDays(shiftDay, shiftFertileTailDays),
		}
		result.ThermalData.Shift = &ThermalShift{Date: shiftDay, Magnitude: shift.Magnitude}
	} else {
		result.OvulationDate = addDays(nextPeriod, -lutealPhaseDays)
		result.FertileWindow = estimatedFertileWindow(nextPeriod)
	}

	result.Phases = SegmentPhases(nextPeriod, avgLength, today)
	return result
}

func fallbackStats(markers []time.Time, settings models.Settings, today time.Time) StatsResult {
	anchor := today
	if len(markers) > 0 {
		anchor = markers[len(markers)-1]
	}

	avgLength := settings.DefaultCycleLength
	nextPeriod := addDays(anchor, avgLength)
	fertile := estimatedFertileWindow(nextPeriod)

	return StatsResult{
		AvgCycleLength:    avgLength,
		NextPeriodDate:    nextPeriod,
		FertileWindow:     fertile,
		OvulationDate:     fertile.End,
		Phases:            SegmentPhases(nextPeriod, avgLength, today),
		ThermalData:       ThermalData{Detected: false, SmoothedTemperatures: []TemperatureSample{}},
		PeriodMarkerCount: len(markers),
		UsedDefaults:      true,
	}
}

func estimatedFertileWindow(nextPeriod time.Time) DateWindow {
	return DateWindow{
		Start: addDays(nextPeriod, fertileStartOffset),
		End:   addDays(nextPeriod, fertileEndOffset),
	}
}

func periodMarkerDates(observations []models.Observation) []time.Time {
	markers := make([]time.Time, 0, len(observations))
	for _, observation := range observations {
		if observation.IsPeriodDay() {
			markers = append(markers, dateOnly(observation.Date))
		}
	}
	sort.Slice(markers, func(i, j int) bool {
		return markers[i].Before(markers[j])
	})
	return markers
}

// averageCycleLength is the rounded plain mean of consecutive marker gaps.
// Period dates are treated as ground truth, so no gap is rejected.
func averageCycleLength(markers []time.Time) int {
	gaps := CycleGaps(markers)
	mean, err := stats.Mean(gaps)
	if err != nil {
		return 0
	}
	return int(math.Round(mean))
}

func CycleGaps(markers []time.Time) stats.Float64Data {
	if len(markers) < 2 {
		return nil
	}
	gaps := make(stats.Float64Data, 0, len(markers)-1)
	for i := 1; i < len(markers); i++ {
		gaps = append(gaps, float64(daysBetween(markers[i-1], markers[i])))
	}
	return gaps
}

func temperatureSamples(observations []models.Observation) []TemperatureSample {
	samples := make([]TemperatureSample, 0, len(observations))
	for _, observation := range observations {
		if !observation.HasTemperature() {
			continue
		}
		samples = append(samples, TemperatureSample{
			Date:        dateOnly(observation.Date),
			Temperature: *observation.Temperature,
			IsPeriodDay: observation.IsPeriodDay(),
			Discharge:   observation.Discharge,
		})
	}
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Date.Before(samples[j].Date)
	})
	return samples
}
