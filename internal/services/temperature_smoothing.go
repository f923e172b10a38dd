package services

import (
	"math"
	"time"
)

const temperatureOutlierDelta = 0.5

type TemperatureSample struct {
	Date        time.Time `json:"date"`
	Temperature float64   `json:"temperature"`
	IsPeriodDay bool      `json:"is_period_day"`
	Discharge   string    `json:"discharge"`
	IsSmoothed  bool      `json:"is_smoothed"`
}

// SmoothTemperatures denoises a chronologically sorted series. The first and
// last samples pass through untouched; every interior sample is either
// replaced by the mean of its neighbours (when it jumps more than 0.5°C away
// from both) or by a 0.2/0.6/0.2 weighted average. Only the input values are
// read, so one pass never feeds its own output back in.
func SmoothTemperatures(samples []TemperatureSample) []TemperatureSample {
	smoothed := make([]TemperatureSample, len(samples))
	copy(smoothed, samples)
	if len(samples) < 3 {
		return smoothed
	}

	for i := 1; i < len(samples)-1; i++ {
		prev := samples[i-1].Temperature
		cur := samples[i].Temperature
		next := samples[i+1].Temperature

		var value float64
		if math.Abs(cur-prev) > temperatureOutlierDelta && math.Abs(cur-next) > temperatureOutlierDelta {
			value = (prev + next) / 2
		} else {
			value = 0.2*prev + 0.6*cur + 0.2*next
		}

		smoothed[i].Temperature = roundHundredths(value)
		smoothed[i].IsSmoothed = true
	}
	return smoothed
}

func roundHundredths(value float64) float64 {
	return math.Round(value*100) / 100
}
