package api

import (
	"errors"
	"log"

	"github.com/Vasist2305/period-pal-blossom-bloom/internal/models"
	"github.com/Vasist2305/period-pal-blossom-bloom/internal/services"
	"github.com/gofiber/fiber/v2"
)

// dayPatchPayload mirrors services.DayPatch on the wire. Absent JSON fields
// stay nil and leave the recorded value untouched.
type dayPatchPayload struct {
	Menstruation   *bool    `json:"menstruation"`
	Flow           *string  `json:"flow"`
	Mood           *string  `json:"mood"`
	Notes          *string  `json:"notes"`
	AddSymptoms    []string `json:"add_symptoms"`
	RemoveSymptoms []string `json:"remove_symptoms"`
}

func (payload dayPatchPayload) toPatch() services.DayPatch {
	return services.DayPatch{
		Menstruation:   payload.Menstruation,
		Flow:           payload.Flow,
		Mood:           payload.Mood,
		Notes:          payload.Notes,
		AddSymptoms:    payload.AddSymptoms,
		RemoveSymptoms: payload.RemoveSymptoms,
	}
}

func (handler *Handler) GetDays(c *fiber.Ctx) error {
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
	if to.Before(from) {
		return apiError(c, fiber.StatusBadRequest, "invalid range")
	}

	snapshot := handler.tracker.Snapshot(currentUserID(user))
	days := make([]models.CycleDay, 0)
	for _, cycle := range snapshot.Cycles {
		for _, day := range cycle.Days {
			if !day.Date.Before(from) && !day.Date.After(to) {
				days = append(days, day)
			}
		}
	}
	return c.JSON(days)
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	observation, found := handler.tracker.FindDay(currentUserID(user), day)
	if !found {
		observation = models.CycleDay{Date: day}
	}
	return c.JSON(fiber.Map{"day": observation, "recorded": found})
}

func (handler *Handler) PatchDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	payload := dayPatchPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	updated, err := handler.tracker.UpdateCycleDay(currentUserID(user), day, payload.toPatch())
	switch {
	case err == nil:
	case errors.Is(err, services.ErrNoActiveCycle):
		return apiError(c, fiber.StatusUnprocessableEntity, "no active cycle: start a period first")
	case errors.Is(err, services.ErrEmptyDayPatch),
		errors.Is(err, services.ErrInvalidDayFlow),
		errors.Is(err, services.ErrInvalidDayMood):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrSnapshotSaveFailed):
		// In-memory state is authoritative; report the saved day and let the
		// client know durability is lagging.
		log.Printf("api: day save failed for user %d: %v", user.ID, err)
		return c.JSON(fiber.Map{"day": updated, "persisted": false})
	default:
		return apiError(c, fiber.StatusInternalServerError, "failed to update day")
	}

	return c.JSON(fiber.Map{"day": updated, "persisted": true})
}
