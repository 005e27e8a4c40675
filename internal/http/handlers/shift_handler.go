package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "bakerypos/internal/log"
	"bakerypos/internal/services"
)

type ShiftHandler struct {
	Shifts   *services.ShiftService
	Currency string
}

// Status reports whether the register is open.
func (h *ShiftHandler) Status(c *fiber.Ctx) error {
	active, err := h.Shifts.Active()
	if err != nil {
		return fail(c, err)
	}
	if active == nil {
		return c.JSON(fiber.Map{"active": false})
	}
	return c.JSON(fiber.Map{"active": true, "shift": active})
}

func (h *ShiftHandler) Start(c *fiber.Ctx) error {
	sid := ensureSID(c)

	shift, err := h.Shifts.Start()
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "shift.start", map[string]any{"sid": sid, "shift_id": shift.ID})
	return c.Status(fiber.StatusCreated).JSON(shift)
}

// End closes the active shift. If the cart still has lines, the operator
// must confirm (confirm=1) since those lines are discarded at the boundary.
func (h *ShiftHandler) End(c *fiber.Ctx) error {
	sid := ensureSID(c)

	if c.FormValue("confirm") != "1" {
		pending, err := h.Shifts.HasPendingCart()
		if err != nil {
			return fail(c, err)
		}
		if pending {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":   "confirm_required",
				"message": "There are items in the cart; ending the shift discards them. Repeat with confirm=1.",
			})
		}
	}

	shift, err := h.Shifts.End()
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "shift.end", map[string]any{
		"sid": sid, "shift_id": shift.ID, "total": shift.Total,
	})
	return c.JSON(shift)
}

// Summary returns the current shift's aggregation while open, or the last
// closed shift's once the register is closed.
func (h *ShiftHandler) Summary(c *fiber.Ctx) error {
	active, err := h.Shifts.Active()
	if err != nil {
		return fail(c, err)
	}
	if active != nil {
		sum, err := h.Shifts.CurrentSummary()
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"current": true, "summary": sum})
	}

	sum, err := h.Shifts.LastClosedSummary()
	if err != nil {
		return fail(c, err)
	}
	if sum == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "not_found",
			"message": "No shift has been recorded yet.",
		})
	}
	return c.JSON(fiber.Map{"current": false, "summary": sum})
}

// SummaryText renders the last closed shift as the plain-text share message.
func (h *ShiftHandler) SummaryText(c *fiber.Ctx) error {
	sum, err := h.Shifts.LastClosedSummary()
	if err != nil {
		return fail(c, err)
	}
	if sum == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "not_found",
			"message": "No closed shift to summarize.",
		})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(services.ShiftSummaryText(*sum, h.Currency))
}

func (h *ShiftHandler) History(c *fiber.Ctx) error {
	shifts, err := h.Shifts.History()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(shifts)
}
