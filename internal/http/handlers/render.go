package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bakerypos/internal/domain"
)

// ensureSID tags the operator's browser with a session id so audit log
// entries can be tied back to a register session.
func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return sid
}

// fail maps business rejections onto HTTP statuses with a stable error kind;
// anything unexpected becomes a friendly 500 without internals.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	kind := "internal"
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, kind = fiber.StatusBadRequest, "invalid_input"
	case errors.Is(err, domain.ErrEmptyCart):
		status, kind = fiber.StatusBadRequest, "empty_cart"
	case errors.Is(err, domain.ErrOutOfStock):
		status, kind = fiber.StatusConflict, "out_of_stock"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, kind = fiber.StatusConflict, "insufficient_stock"
	case errors.Is(err, domain.ErrNoActiveShift):
		status, kind = fiber.StatusConflict, "no_active_shift"
	case errors.Is(err, domain.ErrShiftAlreadyActive):
		status, kind = fiber.StatusConflict, "shift_already_active"
	case errors.Is(err, sql.ErrNoRows):
		status, kind = fiber.StatusNotFound, "not_found"
	}

	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "Something went wrong. Please try again."
	}
	return c.Status(status).JSON(fiber.Map{"error": kind, "message": msg})
}

func badInput(c *fiber.Ctx, field string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "invalid_input",
		"message": "invalid " + field,
	})
}
