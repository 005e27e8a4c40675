package handlers

import (
	"github.com/jmoiron/sqlx"

	"bakerypos/internal/config"
	"bakerypos/internal/repos"
	"bakerypos/internal/services"
)

type Deps struct {
	ProductHandler  *ProductHandler
	StockHandler    *StockHandler
	CartHandler     *CartHandler
	CheckoutHandler *CheckoutHandler
	ShiftHandler    *ShiftHandler
	SummaryHandler  *SummaryHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	saleRepo := repos.NewSaleRepo(db)
	shiftRepo := repos.NewShiftRepo(db)

	invSvc := services.NewInventoryService(prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo, shiftRepo)
	shiftSvc := services.NewShiftService(db, shiftRepo, saleRepo, cartRepo)
	checkoutSvc := services.NewCheckoutService(db, cartRepo, prodRepo, saleRepo, shiftRepo)

	return &Deps{
		ProductHandler:  &ProductHandler{Inv: invSvc},
		StockHandler:    &StockHandler{Inv: invSvc},
		CartHandler:     &CartHandler{Cart: cartSvc},
		CheckoutHandler: &CheckoutHandler{Checkout: checkoutSvc, Sales: saleRepo, Currency: cfg.Currency},
		ShiftHandler:    &ShiftHandler{Shifts: shiftSvc, Currency: cfg.Currency},
		SummaryHandler:  &SummaryHandler{Sales: saleRepo},
	}
}
