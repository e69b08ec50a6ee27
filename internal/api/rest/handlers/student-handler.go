package handlers

import (
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/api/rest/middleware"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/dto"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/helper"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/services"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/status"
	"github.com/Thaththathirian/lifeboat-admin-sub000/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

const maxUploadBytes = 12 * 1024 * 1024

type StudentHandler struct {
	svc  services.StudentService
	auth helper.Auth
}

func NewStudentHandler(svc services.StudentService, auth helper.Auth) *StudentHandler {
	return &StudentHandler{svc: svc, auth: auth}
}

func (h *StudentHandler) SetupRoutes(app *fiber.App) {
	student := app.Group("/api/student", middleware.AuthMiddleware(h.auth))

	student.Get("/state", h.GetState)
	student.Post("/mobile/confirm", h.ConfirmMobile)

	student.Put("/profile", h.SaveProfile)
	student.Post("/profile/submit", h.SubmitProfile)

	student.Post("/documents/:key", h.UploadDocument)
	student.Post("/documents/submit", h.SubmitDocuments)

	student.Get("/payments", h.Ledger)
}

func (h *StudentHandler) currentUserID(ctx *fiber.Ctx) (uint, error) {
	user, err := h.auth.GetCurrentUser(ctx)
	if err != nil || user.UserID <= 0 {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	return uint(user.UserID), nil
}

// GetState returns the status, its display metadata and the resolved view
// for every page. The dashboard renders entirely from this one call.
func (h *StudentHandler) GetState(ctx *fiber.Ctx) error {
	userID, err := h.currentUserID(ctx)
	if err != nil {
		return err
	}

	state, err := h.svc.GetState(userID)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusNotFound, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, state)
}

func (h *StudentHandler) ConfirmMobile(ctx *fiber.Ctx) error {
	userID, err := h.currentUserID(ctx)
	if err != nil {
		return err
	}

	if err := h.svc.ConfirmMobile(userID); err != nil {
		return utils.ResponseError(ctx, httpStatus(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "mobile confirmed")
}

func (h *StudentHandler) SaveProfile(ctx *fiber.Ctx) error {
	userID, err := h.currentUserID(ctx)
	if err != nil {
		return err
	}

	var requestBody dto.ProfileInput
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if err := h.svc.SaveProfile(userID, requestBody); err != nil {
		return utils.ResponseError(ctx, httpStatus(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "profile saved")
}

func (h *StudentHandler) SubmitProfile(ctx *fiber.Ctx) error {
	userID, err := h.currentUserID(ctx)
	if err != nil {
		return err
	}

	var requestBody dto.ProfileInput
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if err := h.svc.SubmitProfile(userID, requestBody); err != nil {
		return utils.ResponseError(ctx, httpStatus(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "profile submitted")
}

func (h *StudentHandler) UploadDocument(ctx *fiber.Ctx) error {
	userID, err := h.currentUserID(ctx)
	if err != nil {
		return err
	}

	key := status.DocumentKey(ctx.Params("key"))
	if !status.IsDocumentKey(key) {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "unknown document key")
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file is required")
	}
	if fileHeader.Size > maxUploadBytes {
		return utils.ResponseError(ctx, fiber.StatusRequestEntityTooLarge, "file too large")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "could not read file")
	}
	defer f.Close()

	data, err := utils.ReadAllLimit(f, maxUploadBytes)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusRequestEntityTooLarge, err.Error())
	}

	if err := h.svc.UploadDocument(ctx.Context(), userID, key, fileHeader.Filename, data); err != nil {
		return utils.ResponseError(ctx, httpStatus(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "document uploaded")
}

func (h *StudentHandler) SubmitDocuments(ctx *fiber.Ctx) error {
	userID, err := h.currentUserID(ctx)
	if err != nil {
		return err
	}

	var requestBody struct {
		Event string `json:"event"`
	}
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Event == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "event is required")
	}

	if err := h.svc.SubmitDocuments(userID, status.Event(requestBody.Event)); err != nil {
		return utils.ResponseError(ctx, httpStatus(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "documents submitted")
}

func (h *StudentHandler) Ledger(ctx *fiber.Ctx) error {
	userID, err := h.currentUserID(ctx)
	if err != nil {
		return err
	}

	ledger, err := h.svc.Ledger(userID)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, ledger)
}
