package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bakerypos/internal/domain"
	"bakerypos/internal/services"
)

type ProductHandler struct {
	Inv *services.InventoryService
}

type productRow struct {
	domain.Product
	LowStock bool `json:"lowStock"`
}

// List returns the catalog with low-stock flags for the POS grid and the
// stock tab.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	prods, err := h.Inv.List()
	if err != nil {
		return fail(c, err)
	}
	out := make([]productRow, 0, len(prods))
	for _, p := range prods {
		out = append(out, productRow{Product: p, LowStock: p.LowStock()})
	}
	return c.JSON(out)
}

// LowStock lists products below the alert threshold.
func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	prods, err := h.Inv.LowStock()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"threshold": domain.LowStockThreshold, "products": prods})
}
