package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) GetPredictions(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, err := parseDayParam(c.Query("from"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid from date")
	}
	to, err := parseDayParam(c.Query("to"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid to date")
	}

	// An inverted range is not an error: predictions over it are simply
	// empty.
	userID := currentUserID(user)
	periodDays := handler.tracker.PredictedPeriodDays(userID, from, to)
	fertileDays := handler.tracker.FertileWindowDays(userID, from, to)

	response := fiber.Map{
		"period_days":  formatDayParams(periodDays),
		"fertile_days": formatDayParams(fertileDays),
	}
	if ovulationDay, ok := handler.tracker.NextOvulationDay(userID); ok {
		response["ovulation_day"] = formatDayParam(ovulationDay)
	}
	return c.JSON(response)
}

func (handler *Handler) GetAverages(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	averageCycleLength, averagePeriodLength := handler.tracker.Averages(currentUserID(user))
	return c.JSON(fiber.Map{
		"average_cycle_length":  averageCycleLength,
		"average_period_length": averagePeriodLength,
	})
}
