package services

import (
	"time"

	"github.com/terraincognita07/ovucast/internal/models"
)

type StatsObservationReader interface {
	ListAll() ([]models.Observation, error)
}

type StatsSettingsReader interface {
	Load() (models.Settings, error)
}

// StatsService loads history and settings and hands them to the pure
// prediction functions. The calendar day of now in location is "today".
type StatsService struct {
	observations StatsObservationReader
	settings     StatsSettingsReader
}

func NewStatsService(observations StatsObservationReader, settings StatsSettingsReader) *StatsService {
	return &StatsService{
		observations: observations,
		settings:     settings,
	}
}

func (service *StatsService) Compute(now time.Time, location *time.Location) (StatsResult, error) {
	observations, settings, err := service.load()
	if err != nil {
		return StatsResult{}, err
	}
	return ComputeStats(observations, settings, CalendarDay(now, location)), nil
}

func (service *StatsService) Calendar(month time.Time, now time.Time, location *time.Location) ([]CalendarDayState, StatsResult, error) {
	observations, settings, err := service.load()
	if err != nil {
		return nil, StatsResult{}, err
	}
	today := CalendarDay(now, location)
	stats := ComputeStats(observations, settings, today)
	return BuildCalendarDays(month, observations, stats, settings, today), stats, nil
}

func (service *StatsService) SymptomStats() (SymptomStats, error) {
	observations, err := service.observations.ListAll()
	if err != nil {
		return SymptomStats{}, err
	}
	return BuildSymptomStats(observations), nil
}

func (service *StatsService) load() ([]models.Observation, models.Settings, error) {
	observations, err := service.observations.ListAll()
	if err != nil {
		return nil, models.Settings{}, err
	}
	settings, err := service.settings.Load()
	if err != nil {
		return nil, models.Settings{}, err
	}
	return observations, settings, nil
}
