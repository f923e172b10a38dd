package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/ovucast/internal/models"
)

const MaxNotesLength = 2000

var (
	ErrInvalidFlow           = errors.New("invalid flow")
	ErrInvalidDischarge      = errors.New("invalid discharge")
	ErrInvalidMood           = errors.New("invalid mood")
	ErrInvalidEnergyLevel    = errors.New("invalid energy level")
	ErrInvalidLibido         = errors.New("invalid libido")
	ErrTemperatureOutOfRange = errors.New("temperature out of range")
)

type ObservationInput struct {
	Flow             string
	Discharge        string
	Temperature      *float64
	Symptoms         models.SymptomSet
	ExtendedSymptoms *models.PerimenopauseSymptomSet
	Mood             string
	EnergyLevel      string
	Libido           string
	Notes            string
}

// ValidateObservationInput fills omitted enums with their neutral values,
// rejects unknown ones and drops perimenopause symptoms unless the settings
// track them.
func ValidateObservationInput(input ObservationInput, settings models.Settings) (ObservationInput, error) {
	input.Flow = defaultString(input.Flow, models.FlowNone)
	input.Discharge = defaultString(input.Discharge, models.DischargeNone)
	input.Mood = defaultString(input.Mood, models.MoodNeutral)
	input.EnergyLevel = defaultString(input.EnergyLevel, models.LevelMedium)
	input.Libido = defaultString(input.Libido, models.LevelMedium)

	if !IsValidFlow(input.Flow) {
		return input, ErrInvalidFlow
	}
	if !IsValidDischarge(input.Discharge) {
		return input, ErrInvalidDischarge
	}
	if !IsValidMood(input.Mood) {
		return input, ErrInvalidMood
	}
	if !IsValidLevel(input.EnergyLevel) {
		return input, ErrInvalidEnergyLevel
	}
	if !IsValidLevel(input.Libido) {
		return input, ErrInvalidLibido
	}
	if input.Temperature != nil {
		value := *input.Temperature
		if value < models.MinTemperatureCelsius || value > models.MaxTemperatureCelsius {
			return input, ErrTemperatureOutOfRange
		}
		input.Temperature = &value
	}
	if !settings.TracksExtendedSymptoms() {
		input.ExtendedSymptoms = nil
	}
	input.Notes = TrimNotes(input.Notes)
	return input, nil
}

func IsValidFlow(flow string) bool {
	switch flow {
	case models.FlowNone, models.FlowLight, models.FlowMedium, models.FlowHeavy:
		return true
	default:
		return false
	}
}

func IsValidDischarge(discharge string) bool {
	switch discharge {
	case models.DischargeNone, models.DischargeDry, models.DischargeSticky,
		models.DischargeCreamy, models.DischargeEggWhite, models.DischargeWatery:
		return true
	default:
		return false
	}
}

func IsValidMood(mood string) bool {
	switch mood {
	case models.MoodHappy, models.MoodNeutral, models.MoodSad, models.MoodIrritable, models.MoodAnxious:
		return true
	default:
		return false
	}
}

func IsValidLevel(level string) bool {
	switch level {
	case models.LevelLow, models.LevelMedium, models.LevelHigh:
		return true
	default:
		return false
	}
}

func TrimNotes(value string) string {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) <= MaxNotesLength {
		return value
	}
	return string([]rune(value)[:MaxNotesLength])
}

func defaultString(value string, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
