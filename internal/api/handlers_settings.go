package api

import (
	"log"

	"github.com/Vasist2305/period-pal-blossom-bloom/internal/models"
	"github.com/gofiber/fiber/v2"
)

// ClearAllData wipes the user's recorded history, in memory and on disk.
func (handler *Handler) ClearAllData(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.tracker.ResetData(currentUserID(user)); err != nil {
		// Memory is already reset; only the durable erase is outstanding.
		log.Printf("api: durable erase failed for user %d: %v", user.ID, err)
		return c.JSON(fiber.Map{"ok": true, "persisted": false})
	}
	return c.JSON(fiber.Map{"ok": true, "persisted": true})
}

func (handler *Handler) GetSymptomCatalog(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"symptoms": models.DefaultSymptoms(),
		"moods": []string{
			models.MoodHappy,
			models.MoodNeutral,
			models.MoodSad,
			models.MoodSensitive,
			models.MoodIrritated,
		},
		"flows": []string{models.FlowLight, models.FlowMedium, models.FlowHeavy},
	})
}
