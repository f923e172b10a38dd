package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovucast/internal/services"
)

type settingsPayload struct {
	DefaultCycleLength  *int  `json:"default_cycle_length"`
	DefaultPeriodLength *int  `json:"default_period_length"`
	TrackingTemperature *bool `json:"tracking_temperature"`
	InPerimenopause     *bool `json:"in_perimenopause"`
	InMenopause         *bool `json:"in_menopause"`
	Age                 *int  `json:"age"`
}

// apply overlays the fields present in the payload onto input.
func (payload settingsPayload) apply(input services.SettingsInput) services.SettingsInput {
	if payload.DefaultCycleLength != nil {
		input.DefaultCycleLength = *payload.DefaultCycleLength
	}
	if payload.DefaultPeriodLength != nil {
		input.DefaultPeriodLength = *payload.DefaultPeriodLength
	}
	if payload.TrackingTemperature != nil {
		input.TrackingTemperature = *payload.TrackingTemperature
	}
	if payload.InPerimenopause != nil {
		input.InPerimenopause = *payload.InPerimenopause
	}
	if payload.InMenopause != nil {
		input.InMenopause = *payload.InMenopause
	}
	if payload.Age != nil {
		input.Age = *payload.Age
	}
	return input
}

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	settings, err := handler.settingsService.Load()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load settings")
	}
	return c.JSON(settingsResponseFrom(settings))
}

func (handler *Handler) UpdateSettings(c *fiber.Ctx) error {
	payload := settingsPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	current, err := handler.settingsService.Load()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load settings")
	}

	updated, err := handler.settingsService.Update(payload.apply(services.SettingsInputFrom(current)))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSettingsCycleLengthOutOfRange),
			errors.Is(err, services.ErrSettingsPeriodLengthOutOfRange),
			errors.Is(err, services.ErrSettingsAgeOutOfRange):
			return apiError(c, fiber.StatusBadRequest, err.Error())
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to update settings")
		}
	}
	return c.JSON(settingsResponseFrom(updated))
}
