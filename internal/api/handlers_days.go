package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovucast/internal/models"
	"github.com/terraincognita07/ovucast/internal/services"
)

type observationPayload struct {
	Flow             string                          `json:"flow"`
	Discharge        string                          `json:"discharge"`
	Temperature      *float64                        `json:"temperature"`
	Symptoms         models.SymptomSet               `json:"symptoms"`
	ExtendedSymptoms *models.PerimenopauseSymptomSet `json:"extended_symptoms"`
	Mood             string                          `json:"mood"`
	EnergyLevel      string                          `json:"energy_level"`
	Libido           string                          `json:"libido"`
	Notes            string                          `json:"notes"`
}

func (payload observationPayload) input() services.ObservationInput {
	return services.ObservationInput{
		Flow:             payload.Flow,
		Discharge:        payload.Discharge,
		Temperature:      payload.Temperature,
		Symptoms:         payload.Symptoms,
		ExtendedSymptoms: payload.ExtendedSymptoms,
		Mood:             payload.Mood,
		EnergyLevel:      payload.EnergyLevel,
		Libido:           payload.Libido,
		Notes:            payload.Notes,
	}
}

func (handler *Handler) GetDays(c *fiber.Ctx) error {
	from, to, err := services.ParseDayRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	observations, err := handler.observationService.List(from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch days")
	}

	response := make([]observationResponse, 0, len(observations))
	for _, observation := range observations {
		response = append(response, observationResponseFrom(observation))
	}
	return c.JSON(response)
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	day, err := services.ParseDay(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	observation, _, err := handler.observationService.Get(day)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch day")
	}
	return c.JSON(observationResponseFrom(observation))
}

func (handler *Handler) UpsertDay(c *fiber.Ctx) error {
	day, err := services.ParseDay(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	payload := observationPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	settings, err := handler.settingsService.Load()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load settings")
	}

	observation, err := handler.observationService.Upsert(day, payload.input(), settings)
	if err != nil {
		return respondObservationError(c, err)
	}
	return c.JSON(observationResponseFrom(observation))
}

func (handler *Handler) DeleteDay(c *fiber.Ctx) error {
	day, err := services.ParseDay(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	if err := handler.observationService.Delete(day); err != nil {
		return respondObservationError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func respondObservationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidFlow),
		errors.Is(err, services.ErrInvalidDischarge),
		errors.Is(err, services.ErrInvalidMood),
		errors.Is(err, services.ErrInvalidEnergyLevel),
		errors.Is(err, services.ErrInvalidLibido),
		errors.Is(err, services.ErrTemperatureOutOfRange):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrObservationNotFound):
		return apiError(c, fiber.StatusNotFound, "day not found")
	case errors.Is(err, services.ErrObservationDeleteFailed):
		return apiError(c, fiber.StatusInternalServerError, "failed to delete day")
	default:
		return apiError(c, fiber.StatusInternalServerError, "failed to save day")
	}
}
