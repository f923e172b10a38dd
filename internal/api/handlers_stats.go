package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovucast/internal/services"
)

func (handler *Handler) GetStats(c *fiber.Ctx) error {
	now := handler.now()
	stats, err := handler.statsService.Compute(now, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to compute stats")
	}
	return c.JSON(handler.statsResponseFrom(c, stats, handler.dayOf(now)))
}

func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	now := handler.now()
	month, err := services.ParseMonth(c.Query("month"), handler.dayOf(now))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	days, stats, err := handler.statsService.Calendar(month, now, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build calendar")
	}

	response := calendarResponse{
		Month:          month.Format(services.MonthLayout),
		NextPeriodDate: services.FormatDay(stats.NextPeriodDate),
		Days:           make([]calendarDayResponse, 0, len(days)),
	}
	for _, day := range days {
		response.Days = append(response.Days, calendarDayResponseFrom(day))
	}
	return c.JSON(response)
}

func (handler *Handler) GetSymptomStats(c *fiber.Ctx) error {
	stats, err := handler.statsService.SymptomStats()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to compute symptom stats")
	}
	return c.JSON(stats)
}
