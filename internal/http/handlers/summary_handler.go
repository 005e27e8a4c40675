package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bakerypos/internal/repos"
	"bakerypos/internal/validate"
)

type SummaryHandler struct {
	Sales *repos.SaleRepo
}

// Range aggregates sales over an inclusive date range (?start=&end=,
// YYYY-MM-DD, both optional).
func (h *SummaryHandler) Range(c *fiber.Ctx) error {
	start, ok := validate.Date(c.Query("start"))
	if !ok {
		return badInput(c, "start")
	}
	end, ok := validate.Date(c.Query("end"))
	if !ok {
		return badInput(c, "end")
	}
	sum, err := h.Sales.RangeSummary(start, end)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sum)
}
