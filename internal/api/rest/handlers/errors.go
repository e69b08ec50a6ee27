package handlers

import (
	"errors"

	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/status"
	"github.com/gofiber/fiber/v2"
)

// httpStatus maps engine errors onto HTTP codes so every handler reports
// them the same way.
func httpStatus(err error) int {
	var illegal *status.IllegalTransitionError
	var write *status.PersistenceWriteFailure

	switch {
	case errors.As(err, &illegal),
		errors.Is(err, status.ErrNoPreviousStatus),
		errors.Is(err, status.ErrPreconditionNotMet):
		return fiber.StatusConflict
	case errors.Is(err, status.ErrUnknownStatus):
		return fiber.StatusBadRequest
	case errors.As(err, &write):
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}
