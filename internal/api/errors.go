package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bankcore/debit-card-service/internal/errs"
)

// errorResponse is the wire shape of every error the API returns.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps the error taxonomy onto HTTP statuses: not-found -> 404,
// business rule -> 400, insufficient funds -> 422, unavailable -> 503,
// validation -> 400, everything else -> 500 with a generic message so
// internals never leak.
func (h *Handler) writeError(c *fiber.Ctx, err error) error {
	kind := errs.KindOf(err)

	status := fiber.StatusInternalServerError
	message := "internal server error"

	switch kind {
	case errs.KindNotFound:
		status = fiber.StatusNotFound
		message = err.Error()
	case errs.KindBusinessRule, errs.KindValidation:
		status = fiber.StatusBadRequest
		message = err.Error()
	case errs.KindInsufficientFunds:
		status = fiber.StatusUnprocessableEntity
		message = err.Error()
	case errs.KindUnavailable:
		status = fiber.StatusServiceUnavailable
		message = "service temporarily unavailable, please try again later"
	}

	if status == fiber.StatusInternalServerError {
		h.logger.Errorf("unexpected error handling %s: %v", c.Path(), err)
	}

	return c.Status(status).JSON(errorResponse{
		Code:    kind.String(),
		Message: message,
	})
}

func writeValidationError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorResponse{
		Code:    errs.KindValidation.String(),
		Message: message,
	})
}
