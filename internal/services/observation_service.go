package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/ovucast/internal/models"
)

var (
	ErrObservationLoadFailed   = errors.New("load observation failed")
	ErrObservationSaveFailed   = errors.New("save observation failed")
	ErrObservationDeleteFailed = errors.New("delete observation failed")
	ErrObservationNotFound     = errors.New("observation not found")
	ErrDuplicateObservation    = errors.New("duplicate observation date")
)

type ObservationRepository interface {
	ListAll() ([]models.Observation, error)
	ListRange(fromStart *time.Time, toEnd *time.Time) ([]models.Observation, error)
	FindByDayRange(dayStart time.Time, dayEnd time.Time) (models.Observation, bool, error)
	Create(observation *models.Observation) error
	Save(observation *models.Observation) error
	DeleteByDayRange(dayStart time.Time, dayEnd time.Time) (bool, error)
}

type ObservationService struct {
	observations ObservationRepository
}

func NewObservationService(observations ObservationRepository) *ObservationService {
	return &ObservationService{observations: observations}
}

func (service *ObservationService) ListAll() ([]models.Observation, error) {
	observations, err := service.observations.ListAll()
	if err != nil {
		return nil, ErrObservationLoadFailed
	}
	return observations, nil
}

// List returns observations between from and to inclusive; a nil bound is open.
func (service *ObservationService) List(from *time.Time, to *time.Time) ([]models.Observation, error) {
	var fromStart *time.Time
	var toEnd *time.Time
	if from != nil {
		start, _ := DayRange(*from)
		fromStart = &start
	}
	if to != nil {
		_, end := DayRange(*to)
		toEnd = &end
	}
	observations, err := service.observations.ListRange(fromStart, toEnd)
	if err != nil {
		return nil, ErrObservationLoadFailed
	}
	return observations, nil
}

// Get returns the observation for day, or an empty one with found=false.
func (service *ObservationService) Get(day time.Time) (models.Observation, bool, error) {
	dayStart, dayEnd := DayRange(day)
	observation, found, err := service.observations.FindByDayRange(dayStart, dayEnd)
	if err != nil {
		return models.Observation{}, false, ErrObservationLoadFailed
	}
	if !found {
		return EmptyObservation(dayStart), false, nil
	}
	return observation, true, nil
}

// Upsert validates input against settings and overwrites any observation
// already stored for day.
func (service *ObservationService) Upsert(day time.Time, input ObservationInput, settings models.Settings) (models.Observation, error) {
	normalized, err := ValidateObservationInput(input, settings)
	if err != nil {
		return models.Observation{}, err
	}

	dayStart, dayEnd := DayRange(day)
	observation, found, err := service.observations.FindByDayRange(dayStart, dayEnd)
	if err != nil {
		return models.Observation{}, ErrObservationLoadFailed
	}

	observation.Date = dayStart
	applyObservationInput(&observation, normalized)
	if found {
		if err := service.observations.Save(&observation); err != nil {
			return models.Observation{}, ErrObservationSaveFailed
		}
		return observation, nil
	}

	if err := service.observations.Create(&observation); err != nil {
		return models.Observation{}, ErrObservationSaveFailed
	}
	return observation, nil
}

func (service *ObservationService) Delete(day time.Time) error {
	dayStart, dayEnd := DayRange(day)
	deleted, err := service.observations.DeleteByDayRange(dayStart, dayEnd)
	if err != nil {
		return ErrObservationDeleteFailed
	}
	if !deleted {
		return ErrObservationNotFound
	}
	return nil
}

func EmptyObservation(day time.Time) models.Observation {
	return models.Observation{
		Date:        dateOnly(day),
		Flow:        models.FlowNone,
		Discharge:   models.DischargeNone,
		Mood:        models.MoodNeutral,
		EnergyLevel: models.LevelMedium,
		Libido:      models.LevelMedium,
	}
}

func applyObservationInput(observation *models.Observation, input ObservationInput) {
	observation.Flow = input.Flow
	observation.Discharge = input.Discharge
	observation.Temperature = input.Temperature
	observation.Symptoms = input.Symptoms
	observation.ExtendedSymptoms = input.ExtendedSymptoms
	observation.Mood = input.Mood
	observation.EnergyLevel = input.EnergyLevel
	observation.Libido = input.Libido
	observation.Notes = input.Notes
}
