package handlers

import (
	"strconv"

	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/api/rest/middleware"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/dto"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/helper"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/services"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/status"
	"github.com/Thaththathirian/lifeboat-admin-sub000/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	svc     services.AdminService
	authSvc services.AuthService
	auth    helper.Auth
}

func NewAdminHandler(svc services.AdminService, authSvc services.AuthService, auth helper.Auth) *AdminHandler {
	return &AdminHandler{svc: svc, authSvc: authSvc, auth: auth}
}

func (h *AdminHandler) SetupRoutes(app *fiber.App) {
	admin := app.Group("/api/admin",
		middleware.AuthMiddleware(h.auth),
		middleware.AdminOnly(h.authSvc),
	)

	admin.Get("/students", h.ListStudents)
	admin.Post("/students/status", h.BulkSetStatus)
	admin.Post("/students/:userID/advance", h.AdvanceStudent)
	admin.Post("/students/:userID/block", h.BlockStudent)
	admin.Post("/students/:userID/unblock", h.UnblockStudent)
	admin.Post("/students/:userID/revert", h.RevertStudent)

	admin.Post("/students/:userID/payments", h.RecordPayment)
	admin.Post("/allotments", h.CreateAllotment)
	admin.Get("/allotments", h.ListAllotments)

	admin.Post("/colleges", h.CreateCollege)
	admin.Get("/colleges", h.ListColleges)
	admin.Post("/donors", h.CreateDonor)
	admin.Get("/donors", h.ListDonors)

	admin.Get("/audit", h.ListAudit)
	admin.Get("/students/:userID/audit", h.ListStudentAudit)
}

func (h *AdminHandler) adminID(ctx *fiber.Ctx) (uint, error) {
	user, err := h.auth.GetCurrentUser(ctx)
	if err != nil || user.UserID <= 0 {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	return uint(user.UserID), nil
}

func paramUserID(ctx *fiber.Ctx) (uint, error) {
	raw := ctx.Params("userID")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}
	return uint(id), nil
}

func pagination(ctx *fiber.Ctx) (limit, offset int) {
	limit = ctx.QueryInt("limit", 50)
	offset = ctx.QueryInt("offset", 0)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (h *AdminHandler) ListStudents(ctx *fiber.Ctx) error {
	limit, offset := pagination(ctx)

	items, err := h.svc.ListStudents(ctx.Query("status"), limit, offset)
	if err != nil {
		return utils.ResponseError(ctx, httpStatus(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, items)
}

// BulkSetStatus applies one target status to many students. Per-student
// failures come back in the response body, not as an HTTP error.
func (h *AdminHandler) BulkSetStatus(ctx *fiber.Ctx) error {
	adminID, err := h.adminID(ctx)
	if err != nil {
		return err
	}

	var requestBody dto.BulkSetStatusRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	result, err := h.svc.BulkSetStatus(adminID, requestBody)
	if err != nil {
		return utils.ResponseError(ctx, httpStatus(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, result)
}

func (h *AdminHandler) AdvanceStudent(ctx *fiber.Ctx) error {
	adminID, err := h.adminID(ctx)
	if err != nil {
		return err
	}
	userID, err := paramUserID(ctx)
	if err != nil {
		return err
	}

	var requestBody dto.AdvanceStudentRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Event == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "event is required")
	}

	if err := h.svc.AdvanceStudent(adminID, userID, status.Event(requestBody.Event)); err != nil {
		return utils.ResponseError(ctx, httpStatus(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "student advanced")
}

func (h *AdminHandler) BlockStudent(ctx *fiber.Ctx) error {
	adminID, err := h.adminID(ctx)
	if err != nil {
		return err
	}
	userID, err := paramUserID(ctx)
	if err != nil {
		return err
	}

	var requestBody dto.BlockStudentRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "reason is required")
	}

	if err := h.svc.BlockStudent(adminID, userID, requestBody.Reason); err != nil {
		return utils.ResponseError(ctx, httpStatus(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "student blocked")
}

func (h *AdminHandler) UnblockStudent(ctx *fiber.Ctx) error {
	adminID, err := h.adminID(ctx)
	if err != nil {
		return err
	}
	userID, err := paramUserID(ctx)
	if err != nil {
		return err
	}

	if err := h.svc.UnblockStudent(adminID, userID); err != nil {
		return utils.ResponseError(ctx, httpStatus(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "student unblocked")
}

func (h *AdminHandler) RevertStudent(ctx *fiber.Ctx) error {
	adminID, err := h.adminID(ctx)
	if err != nil {
		return err
	}
	userID, err := paramUserID(ctx)
	if err != nil {
		return err
	}

	if err := h.svc.RevertStudent(adminID, userID); err != nil {
		return utils.ResponseError(ctx, httpStatus(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "student reverted")
}

func (h *AdminHandler) RecordPayment(ctx *fiber.Ctx) error {
	adminID, err := h.adminID(ctx)
	if err != nil {
		return err
	}
	userID, err := paramUserID(ctx)
	if err != nil {
		return err
	}

	var requestBody dto.RecordPaymentRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	rec, err := h.svc.RecordPayment(adminID, userID, requestBody)
	if err != nil {
		return utils.ResponseError(ctx, httpStatus(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, rec)
}

func (h *AdminHandler) CreateAllotment(ctx *fiber.Ctx) error {
	adminID, err := h.adminID(ctx)
	if err != nil {
		return err
	}

	var requestBody dto.AllotmentRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if err := h.svc.CreateAllotment(adminID, requestBody); err != nil {
		return utils.ResponseError(ctx, httpStatus(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, "allotment created")
}

func (h *AdminHandler) ListAllotments(ctx *fiber.Ctx) error {
	limit, offset := pagination(ctx)

	allots, err := h.svc.ListAllotments(ctx.Query("cycle"), limit, offset)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, allots)
}

func (h *AdminHandler) CreateCollege(ctx *fiber.Ctx) error {
	adminID, err := h.adminID(ctx)
	if err != nil {
		return err
	}

	var requestBody dto.CollegeCreateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if err := h.svc.CreateCollege(adminID, requestBody); err != nil {
		return utils.ResponseError(ctx, httpStatus(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, "college created")
}

func (h *AdminHandler) ListColleges(ctx *fiber.Ctx) error {
	limit, offset := pagination(ctx)

	colleges, err := h.svc.ListColleges(limit, offset)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, colleges)
}

func (h *AdminHandler) CreateDonor(ctx *fiber.Ctx) error {
	adminID, err := h.adminID(ctx)
	if err != nil {
		return err
	}

	var requestBody dto.DonorCreateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if err := h.svc.CreateDonor(adminID, requestBody); err != nil {
		return utils.ResponseError(ctx, httpStatus(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, "donor created")
}

func (h *AdminHandler) ListDonors(ctx *fiber.Ctx) error {
	limit, offset := pagination(ctx)

	donors, err := h.svc.ListDonors(limit, offset)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, donors)
}

func (h *AdminHandler) ListStudentAudit(ctx *fiber.Ctx) error {
	userID, err := paramUserID(ctx)
	if err != nil {
		return err
	}

	entries, err := h.svc.ListStudentAudit(userID)
	if err != nil {
		return utils.ResponseError(ctx, httpStatus(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, entries)
}

func (h *AdminHandler) ListAudit(ctx *fiber.Ctx) error {
	limit, offset := pagination(ctx)

	entries, err := h.svc.ListAudit(limit, offset)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, entries)
}
