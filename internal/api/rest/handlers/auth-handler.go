package handlers

import (
	"strings"

	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/dto"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/services"
	"github.com/Thaththathirian/lifeboat-admin-sub000/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	svc services.AuthService
}

func NewAuthHandler(svc services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) SetupRoutes(app *fiber.App) {
	google := app.Group("/google-firebase-auth")
	google.Get("/health", h.Health)
	google.Post("/google_auth", h.GoogleAuth)

	api := app.Group("/api")
	api.Post("/admin/login", h.AdminLogin)
}

func (h *AuthHandler) Health(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "ok",
	})
}

// GoogleAuth exchanges a Firebase bearer token for a session token. The
// response shape is fixed; the dashboard parses it field by field.
func (h *AuthHandler) GoogleAuth(ctx *fiber.Ctx) error {
	authHeader := strings.TrimSpace(ctx.Get("Authorization"))
	if authHeader == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "missing authorization header",
		})
	}

	var requestBody dto.GoogleAuthRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&requestBody); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "invalid request body",
			})
		}
	}

	resp, err := h.svc.GoogleAuth(authHeader, requestBody)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

func (h *AuthHandler) AdminLogin(ctx *fiber.Ctx) error {
	var requestBody dto.AdminLoginRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	token, err := h.svc.AdminLogin(requestBody)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Invalid email or password")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"token": token,
	})
}
