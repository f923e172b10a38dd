package models

import "time"

const (
	FlowNone   = "none"
	FlowLight  = "light"
	FlowMedium = "medium"
	FlowHeavy  = "heavy"
)

const (
	DischargeNone     = "none"
	DischargeDry      = "dry"
	DischargeSticky   = "sticky"
	DischargeCreamy   = "creamy"
	DischargeEggWhite = "eggWhite"
	DischargeWatery   = "watery"
)

const (
	MoodHappy     = "happy"
	MoodNeutral   = "neutral"
	MoodSad       = "sad"
	MoodIrritable = "irritable"
	MoodAnxious   = "anxious"
)

const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

const (
	MinTemperatureCelsius = 35.5
	MaxTemperatureCelsius = 38.5
)

// Observation is one calendar day of tracked data. Date is stored as UTC
// midnight of the calendar day and is unique across the table.
type Observation struct {
	ID               uint                     `gorm:"primaryKey" json:"-"`
	Date             time.Time                `gorm:"type:date;not null;uniqueIndex:uidx_observations_date" json:"date"`
	Flow             string                   `gorm:"not null;default:none" json:"flow"`
	Discharge        string                   `gorm:"not null;default:none" json:"discharge"`
	Temperature      *float64                 `json:"temperature"`
	Symptoms         SymptomSet               `gorm:"serializer:json" json:"symptoms"`
	ExtendedSymptoms *PerimenopauseSymptomSet `gorm:"serializer:json" json:"extended_symptoms,omitempty"`
	Mood             string                   `gorm:"not null;default:neutral" json:"mood"`
	EnergyLevel      string                   `gorm:"not null;default:medium" json:"energy_level"`
	Libido           string                   `gorm:"not null;default:medium" json:"libido"`
	Notes            string                   `json:"notes"`
	CreatedAt        time.Time                `json:"-"`
	UpdatedAt        time.Time                `json:"-"`
}

func (observation Observation) IsPeriodDay() bool {
	return observation.Flow != "" && observation.Flow != FlowNone
}

func (observation Observation) HasTemperature() bool {
	return observation.Temperature != nil
}
