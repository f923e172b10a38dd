package services

import (
	"time"

	"github.com/montanaflynn/stats"
)

const (
	thermalShiftMinSamples = 10
	thermalShiftLookback   = 6
	thermalShiftLookahead  = 3
	thermalShiftThreshold  = 0.2
	// Temperatures carry two decimals; absorb float noise at the threshold.
	thermalShiftTolerance = 1e-9
)

type ThermalShift struct {
	Date      time.Time `json:"date"`
	Magnitude float64   `json:"magnitude"`
}

// DetectThermalShift applies the three-over-six rule to a smoothed,
// chronologically sorted series and reports the earliest sustained rise.
// Series shorter than ten samples never produce a detection.
func DetectThermalShift(samples []TemperatureSample) (ThermalShift, bool) {
	if len(samples) < thermalShiftMinSamples {
		return ThermalShift{}, false
	}

	values := make(stats.Float64Data, len(samples))
	for i, sample := range samples {
		values[i] = sample.Temperature
	}

	for i := thermalShiftLookback; i <= len(values)-thermalShiftLookahead; i++ {
		prev6Avg, err := stats.Mean(values[i-thermalShiftLookback : i])
		if err != nil {
			return ThermalShift{}, false
		}
		next3Avg, err := stats.Mean(values[i : i+thermalShiftLookahead])
		if err != nil {
			return ThermalShift{}, false
		}

		shift := next3Avg - prev6Avg
		if shift >= thermalShiftThreshold-thermalShiftTolerance {
			return ThermalShift{Date: samples[i].Date, Magnitude: shift}, true
		}
	}
	return ThermalShift{}, false
}
