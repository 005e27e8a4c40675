package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "bakerypos/internal/log"
	"bakerypos/internal/services"
	"bakerypos/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cv)
}

// Add stages one unit of the given product.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)

	id, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return badInput(c, "productId")
	}
	if err := h.Cart.AddItem(id); err != nil {
		applog.Warn(c, "cart.add.fail", map[string]any{"sid": sid, "product_id": id, "error": err.Error()})
		return fail(c, err)
	}
	applog.Info(c, "cart.add", map[string]any{"sid": sid, "product_id": id})
	return h.View(c)
}

// ChangeQty adjusts a line by a signed delta; the line disappears at zero.
func (h *CartHandler) ChangeQty(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badInput(c, "id")
	}
	delta, ok := validate.Delta(c.FormValue("delta"))
	if !ok {
		return badInput(c, "delta")
	}
	if err := h.Cart.ChangeQuantity(id, delta); err != nil {
		return fail(c, err)
	}
	return h.View(c)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badInput(c, "id")
	}
	if err := h.Cart.RemoveItem(id); err != nil {
		return fail(c, err)
	}
	return h.View(c)
}
