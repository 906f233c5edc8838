package api

import (
	"net/mail"
	"strings"

	"github.com/Vasist2305/period-pal-blossom-bloom/internal/models"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type credentialsPayload struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	payload := credentialsPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid email")
	}
	if len(payload.Password) < minPasswordLength {
		return apiError(c, fiber.StatusBadRequest, "password too short")
	}

	exists, err := handler.repositories.Users.ExistsByNormalizedEmail(email)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}
	if exists {
		return apiError(c, fiber.StatusConflict, "email already registered")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}

	user := models.User{Email: email, PasswordHash: string(passwordHash)}
	if err := handler.repositories.Users.Create(&user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}

	if err := handler.issueAuthCookie(c, user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	payload := credentialsPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, found, err := handler.repositories.Users.FindByNormalizedEmail(payload.Email)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "login failed")
	}
	if !found || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)) != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	if err := handler.issueAuthCookie(c, user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "login failed")
	}
	return c.JSON(user)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}
