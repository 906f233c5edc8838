package api

import (
	"errors"
	"log"

	"github.com/Vasist2305/period-pal-blossom-bloom/internal/services"
	"github.com/gofiber/fiber/v2"
)

type startCyclePayload struct {
	StartDate string `json:"start_date" form:"start_date"`
}

func (handler *Handler) ListCycles(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	snapshot := handler.tracker.Snapshot(currentUserID(user))
	return c.JSON(snapshot.Cycles)
}

func (handler *Handler) StartCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := startCyclePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	startDate, err := parseDayParam(payload.StartDate)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid start date")
	}

	cycle, err := handler.tracker.AddCycle(currentUserID(user), startDate)
	if err != nil {
		if errors.Is(err, services.ErrSnapshotSaveFailed) {
			log.Printf("api: cycle save failed for user %d: %v", user.ID, err)
			return c.Status(fiber.StatusCreated).JSON(fiber.Map{"cycle": cycle, "persisted": false})
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to start cycle")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"cycle": cycle, "persisted": true})
}
