package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "bakerypos/internal/log"
	"bakerypos/internal/services"
	"bakerypos/internal/validate"
)

type StockHandler struct {
	Inv *services.InventoryService
}

// Add creates a product, or restocks an existing one on a case-insensitive
// name match. The merge only happens after the operator confirmed it
// (confirm=1); without the flag a match is answered with 409 so the UI can
// ask first.
func (h *StockHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)

	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		applog.Warn(c, "validation.fail", map[string]any{"field": "name"})
		return badInput(c, "name")
	}
	price, ok := validate.Price(c.FormValue("price"))
	if !ok {
		applog.Warn(c, "validation.fail", map[string]any{"field": "price"})
		return badInput(c, "price")
	}
	qty, ok := validate.Qty(c.FormValue("quantity"))
	if !ok {
		applog.Warn(c, "validation.fail", map[string]any{"field": "quantity"})
		return badInput(c, "quantity")
	}

	if c.FormValue("confirm") != "1" {
		existing, err := h.Inv.ByName(name)
		if err != nil {
			return fail(c, err)
		}
		if existing != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":     "confirm_required",
				"message":   "Item already exists. Repeat with confirm=1 to add to its stock.",
				"productId": existing.ID,
			})
		}
	}

	p, restocked, err := h.Inv.AddOrRestock(name, price, qty)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "stock.add", map[string]any{
		"sid": sid, "product_id": p.ID, "restocked": restocked, "quantity": qty,
	})
	status := fiber.StatusCreated
	if restocked {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(fiber.Map{"product": p, "restocked": restocked})
}

// Edit overwrites name, price and quantity; zero quantity is allowed.
func (h *StockHandler) Edit(c *fiber.Ctx) error {
	sid := ensureSID(c)

	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badInput(c, "id")
	}
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return badInput(c, "name")
	}
	price, ok := validate.Price(c.FormValue("price"))
	if !ok {
		return badInput(c, "price")
	}
	qty, ok := validate.QtyZero(c.FormValue("quantity"))
	if !ok {
		return badInput(c, "quantity")
	}

	p, err := h.Inv.Edit(id, name, price, qty)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "stock.edit", map[string]any{"sid": sid, "product_id": p.ID})
	return c.JSON(p)
}

// Delete removes a product permanently; irreversible, so confirm=1 is
// required.
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	sid := ensureSID(c)

	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badInput(c, "id")
	}
	if c.FormValue("confirm") != "1" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "confirm_required",
			"message": "Deleting an item cannot be undone. Repeat with confirm=1.",
		})
	}
	if _, err := h.Inv.Get(id); err != nil {
		return fail(c, err)
	}
	if err := h.Inv.Remove(id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "stock.delete", map[string]any{"sid": sid, "product_id": id})
	return c.JSON(fiber.Map{"deleted": id})
}
