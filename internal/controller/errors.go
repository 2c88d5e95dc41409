package controller

import (
	"errors"

	"ebook-studio-be/internal/pkg/serverutils"
	"ebook-studio-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps service sentinels to HTTP codes. Unknown errors are 500.
func statusFor(err error) int {
	var verr *serverutils.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, service.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, serverutils.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrNoActiveSubscription), errors.Is(err, service.ErrBookLimitReached):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrFeatureNotFound),
		errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrBookNotFound),
		errors.Is(err, service.ErrBillNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrDuplicateConfirmation),
		errors.Is(err, service.ErrConfirmationInProgress),
		errors.Is(err, service.ErrIdempotencyKeyReused),
		errors.Is(err, service.ErrDuplicateKey):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func respondError(ctx *fiber.Ctx, err error) error {
	code := statusFor(err)
	message := err.Error()
	if code == fiber.StatusInternalServerError {
		message = "Something went wrong. Please try again."
	}
	return ctx.Status(code).JSON(serverutils.ErrorResponse(code, message))
}
