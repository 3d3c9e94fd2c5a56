// FILE: internal/pkg/serverutils/error_handler.go
package serverutils

import (
	"errors"

	"github.com/Aravind210193/E-Shikshan-sub002/internal/entity"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain errors to HTTP responses in one place so
// controllers can just return them.
func ErrorHandlerMiddleware(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	switch {
	case errors.Is(err, entity.ErrUserNotFound),
		errors.Is(err, entity.ErrCourseNotFound),
		errors.Is(err, entity.ErrEnrollmentNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, entity.ErrEnrollmentSuspended),
		errors.Is(err, entity.ErrDuplicateTransactionRef):
		code = fiber.StatusConflict
	case errors.Is(err, entity.ErrPaymentNotPending),
		errors.Is(err, entity.ErrCourseNotPublished),
		errors.Is(err, entity.ErrInvalidTransactionRef):
		code = fiber.StatusUnprocessableEntity
	case errors.Is(err, entity.ErrForbidden):
		code = fiber.StatusForbidden
	}

	return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
}
