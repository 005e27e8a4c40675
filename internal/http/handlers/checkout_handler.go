package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bakerypos/internal/domain"
	applog "bakerypos/internal/log"
	"bakerypos/internal/repos"
	"bakerypos/internal/services"
	"bakerypos/internal/validate"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
	Sales    *repos.SaleRepo
	Currency string
}

// Place commits the staged cart as a sale and returns the receipt.
func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)

	payment := domain.PaymentMethod(c.FormValue("payment"))
	sale, err := h.Checkout.Checkout(payment)
	if err != nil {
		applog.Warn(c, "checkout.fail", map[string]any{"sid": sid, "error": err.Error()})
		return fail(c, err)
	}
	applog.Audit(c, "checkout.commit", map[string]any{
		"sid": sid, "sale_id": sale.ID, "total": sale.Total, "payment": string(sale.Payment),
	})
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// List returns receipts, optionally filtered to one day (?date=YYYY-MM-DD),
// newest first.
func (h *CheckoutHandler) List(c *fiber.Ctx) error {
	date, ok := validate.Date(c.Query("date"))
	if !ok {
		return badInput(c, "date")
	}
	sales, err := h.Sales.ListByDate(date)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sales)
}

func (h *CheckoutHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badInput(c, "id")
	}
	sale, err := h.Sales.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sale)
}

// Text renders a receipt as plain text for copying or printing.
func (h *CheckoutHandler) Text(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badInput(c, "id")
	}
	sale, err := h.Sales.Get(id)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(services.ReceiptText(sale, h.Currency))
}
