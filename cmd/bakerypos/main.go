package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"bakerypos/internal/config"
	"bakerypos/internal/http/handlers"
	applog "bakerypos/internal/log"
	"bakerypos/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "internal",
				"message": "Something went wrong. Please try again.",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg)

	api := app.Group("/api/v1")

	// Catalog & stock management
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/low-stock", deps.ProductHandler.LowStock)
	api.Post("/stock", deps.StockHandler.Add)
	api.Post("/stock/:id", deps.StockHandler.Edit)
	api.Post("/stock/:id/delete", deps.StockHandler.Delete)

	// Cart
	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart", deps.CartHandler.Add)
	api.Post("/cart/:id/quantity", deps.CartHandler.ChangeQty)
	api.Post("/cart/:id/delete", deps.CartHandler.Remove)

	// Checkout & receipts
	api.Post("/checkout", deps.CheckoutHandler.Place)
	api.Get("/receipts", deps.CheckoutHandler.List)
	api.Get("/receipts/:id", deps.CheckoutHandler.Get)
	api.Get("/receipts/:id/text", deps.CheckoutHandler.Text)

	// Shifts
	api.Get("/shifts", deps.ShiftHandler.Status)
	api.Post("/shifts/start", deps.ShiftHandler.Start)
	api.Post("/shifts/end", deps.ShiftHandler.End)
	api.Get("/shifts/summary", deps.ShiftHandler.Summary)
	api.Get("/shifts/summary/text", deps.ShiftHandler.SummaryText)
	api.Get("/shifts/history", deps.ShiftHandler.History)

	// Sales summary over a date range
	api.Get("/summary", deps.SummaryHandler.Range)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
