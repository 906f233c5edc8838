package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const dayParamFormat = "2006-01-02"

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func parseDayParam(value string) (time.Time, error) {
	return time.ParseInLocation(dayParamFormat, value, time.UTC)
}

func formatDayParam(value time.Time) string {
	return value.Format(dayParamFormat)
}

func formatDayParams(values []time.Time) []string {
	formatted := make([]string, 0, len(values))
	for _, value := range values {
		formatted = append(formatted, formatDayParam(value))
	}
	return formatted
}
