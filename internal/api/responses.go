package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovucast/internal/models"
	"github.com/terraincognita07/ovucast/internal/services"
)

type observationResponse struct {
	Date             string                          `json:"date"`
	Flow             string                          `json:"flow"`
	Discharge        string                          `json:"discharge"`
	Temperature      *float64                        `json:"temperature"`
	Symptoms         models.SymptomSet               `json:"symptoms"`
	ExtendedSymptoms *models.PerimenopauseSymptomSet `json:"extended_symptoms,omitempty"`
	Mood             string                          `json:"mood"`
	EnergyLevel      string                          `json:"energy_level"`
	Libido           string                          `json:"libido"`
	Notes            string                          `json:"notes"`
	HasData          bool                            `json:"has_data"`
}

type dateWindowResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type phaseResponse struct {
	Phase       string `json:"phase"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Mood        string `json:"mood,omitempty"`
	Energy      string `json:"energy,omitempty"`
}

type phaseWindowResponse struct {
	phaseResponse
	Start string `json:"start"`
	End   string `json:"end"`
}

type temperatureSampleResponse struct {
	Date        string  `json:"date"`
	Temperature float64 `json:"temperature"`
	IsPeriodDay bool    `json:"is_period_day"`
	Discharge   string  `json:"discharge"`
	IsSmoothed  bool    `json:"is_smoothed"`
}

type thermalShiftResponse struct {
	Date      string  `json:"date"`
	Magnitude float64 `json:"magnitude"`
}

type thermalDataResponse struct {
	Detected             bool                        `json:"detected"`
	Shift                *thermalShiftResponse       `json:"shift,omitempty"`
	SmoothedTemperatures []temperatureSampleResponse `json:"smoothed_temperatures"`
}

type statsResponse struct {
	Today             string                `json:"today"`
	AvgCycleLength    int                   `json:"avg_cycle_length"`
	NextPeriodDate    string                `json:"next_period_date"`
	FertileWindow     dateWindowResponse    `json:"fertile_window"`
	OvulationDate     string                `json:"ovulation_date"`
	CurrentPhase      phaseResponse         `json:"current_phase"`
	NextPhase         phaseResponse         `json:"next_phase"`
	Phases            []phaseWindowResponse `json:"phases"`
	ThermalData       thermalDataResponse   `json:"thermal_data"`
	PeriodMarkerCount int                   `json:"period_marker_count"`
	UsedDefaults      bool                  `json:"used_defaults"`
}

type calendarDayResponse struct {
	Date              string `json:"date"`
	Day               int    `json:"day"`
	InMonth           bool   `json:"in_month"`
	IsToday           bool   `json:"is_today"`
	IsPeriod          bool   `json:"is_period"`
	IsPredictedPeriod bool   `json:"is_predicted_period"`
	IsFertile         bool   `json:"is_fertile"`
	IsOvulation       bool   `json:"is_ovulation"`
	HasTemperature    bool   `json:"has_temperature"`
	HasData           bool   `json:"has_data"`
	Phase             string `json:"phase"`
}

type calendarResponse struct {
	Month          string                `json:"month"`
	NextPeriodDate string                `json:"next_period_date"`
	Days           []calendarDayResponse `json:"days"`
}

type settingsResponse struct {
	DefaultCycleLength  int     `json:"default_cycle_length"`
	DefaultPeriodLength int     `json:"default_period_length"`
	TrackingTemperature bool    `json:"tracking_temperature"`
	InPerimenopause     bool    `json:"in_perimenopause"`
	InMenopause         bool    `json:"in_menopause"`
	Age                 int     `json:"age"`
	LastBackupAt        *string `json:"last_backup_at"`
}

func observationResponseFrom(observation models.Observation) observationResponse {
	return observationResponse{
		Date:             services.FormatDay(observation.Date),
		Flow:             observation.Flow,
		Discharge:        observation.Discharge,
		Temperature:      observation.Temperature,
		Symptoms:         observation.Symptoms,
		ExtendedSymptoms: observation.ExtendedSymptoms,
		Mood:             observation.Mood,
		EnergyLevel:      observation.EnergyLevel,
		Libido:           observation.Libido,
		Notes:            observation.Notes,
		HasData:          services.ObservationHasData(observation),
	}
}

func (handler *Handler) phaseResponseFor(c *fiber.Ctx, phase services.CyclePhase) phaseResponse {
	key := string(phase)
	if phase == services.PhaseNone {
		key = "none"
	}
	response := phaseResponse{
		Phase: string(phase),
		Label: handler.translate(c, "phase."+key+".label"),
	}
	if mood, ok := services.MoodForPhase(phase); ok {
		response.Description = handler.translate(c, "phase."+key+".description")
		response.Mood = handler.translate(c, "mood."+mood.Mood)
		response.Energy = handler.translate(c, "energy."+mood.Energy)
	}
	return response
}

func (handler *Handler) statsResponseFrom(c *fiber.Ctx, stats services.StatsResult, today time.Time) statsResponse {
	phases := make([]phaseWindowResponse, 0, len(stats.Phases.Windows))
	for _, window := range stats.Phases.Windows {
		phases = append(phases, phaseWindowResponse{
			phaseResponse: handler.phaseResponseFor(c, window.Phase),
			Start:         services.FormatDay(window.Start),
			End:           services.FormatDay(window.End),
		})
	}

	samples := make([]temperatureSampleResponse, 0, len(stats.ThermalData.SmoothedTemperatures))
	for _, sample := range stats.ThermalData.SmoothedTemperatures {
		samples = append(samples, temperatureSampleResponse{
			Date:        services.FormatDay(sample.Date),
			Temperature: sample.Temperature,
			IsPeriodDay: sample.IsPeriodDay,
			Discharge:   sample.Discharge,
			IsSmoothed:  sample.IsSmoothed,
		})
	}
	thermal := thermalDataResponse{
		Detected:             stats.ThermalData.Detected,
		SmoothedTemperatures: samples,
	}
	if shift := stats.ThermalData.Shift; shift != nil {
		thermal.Shift = &thermalShiftResponse{
			Date:      services.FormatDay(shift.Date),
			Magnitude: shift.Magnitude,
		}
	}

	return statsResponse{
		Today:          services.FormatDay(today),
		AvgCycleLength: stats.AvgCycleLength,
		NextPeriodDate: services.FormatDay(stats.NextPeriodDate),
		FertileWindow: dateWindowResponse{
			Start: services.FormatDay(stats.FertileWindow.Start),
			End:   services.FormatDay(stats.FertileWindow.End),
		},
		OvulationDate:     services.FormatDay(stats.OvulationDate),
		CurrentPhase:      handler.phaseResponseFor(c, stats.Phases.Current),
		NextPhase:         handler.phaseResponseFor(c, stats.Phases.Next),
		Phases:            phases,
		ThermalData:       thermal,
		PeriodMarkerCount: stats.PeriodMarkerCount,
		UsedDefaults:      stats.UsedDefaults,
	}
}

func calendarDayResponseFrom(day services.CalendarDayState) calendarDayResponse {
	return calendarDayResponse{
		Date:              services.FormatDay(day.Date),
		Day:               day.Day,
		InMonth:           day.InMonth,
		IsToday:           day.IsToday,
		IsPeriod:          day.IsPeriod,
		IsPredictedPeriod: day.IsPredictedPeriod,
		IsFertile:         day.IsFertile,
		IsOvulation:       day.IsOvulation,
		HasTemperature:    day.HasTemperature,
		HasData:           day.HasData,
		Phase:             string(day.Phase),
	}
}

func settingsResponseFrom(settings models.Settings) settingsResponse {
	response := settingsResponse{
		DefaultCycleLength:  settings.DefaultCycleLength,
		DefaultPeriodLength: settings.DefaultPeriodLength,
		TrackingTemperature: settings.TrackingTemperature,
		InPerimenopause:     settings.InPerimenopause,
		InMenopause:         settings.InMenopause,
		Age:                 settings.Age,
	}
	if settings.LastBackupAt != nil {
		formatted := settings.LastBackupAt.UTC().Format(time.RFC3339)
		response.LastBackupAt = &formatted
	}
	return response
}
