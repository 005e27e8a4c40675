package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"bakerypos/internal/domain"
	"bakerypos/internal/repos"
)

// CheckoutService turns the staged cart into a committed sale: stock
// decrement, sales log append, shift accumulators and cart reset all happen
// in one sqlite transaction, so a failed checkout changes nothing.
type CheckoutService struct {
	db     *sqlx.DB
	Carts  *repos.CartRepo
	Prods  *repos.ProductRepo
	Sales  *repos.SaleRepo
	Shifts *repos.ShiftRepo
}

func NewCheckoutService(db *sqlx.DB, carts *repos.CartRepo, prods *repos.ProductRepo, sales *repos.SaleRepo, shifts *repos.ShiftRepo) *CheckoutService {
	return &CheckoutService{db: db, Carts: carts, Prods: prods, Sales: sales, Shifts: shifts}
}

func (s *CheckoutService) Checkout(payment domain.PaymentMethod) (domain.Sale, error) {
	if !payment.Valid() {
		return domain.Sale{}, fmt.Errorf("%w: unknown payment method %q", domain.ErrInvalidInput, string(payment))
	}

	active, err := s.Shifts.Active()
	if err != nil {
		return domain.Sale{}, err
	}
	if active == nil {
		return domain.Sale{}, domain.ErrNoActiveShift
	}

	lines, err := s.Carts.Lines()
	if err != nil {
		return domain.Sale{}, err
	}
	if len(lines) == 0 {
		return domain.Sale{}, domain.ErrEmptyCart
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return domain.Sale{}, err
	}
	defer func() { _ = tx.Rollback() }()

	// Re-validate every line against live stock. Staging never reserved
	// anything, so counts can have moved since the line was added.
	for _, line := range lines {
		qty, err := s.Prods.QtyTx(tx, line.ProductID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Sale{}, fmt.Errorf("%w for %s", domain.ErrInsufficientStock, line.Name)
		}
		if err != nil {
			return domain.Sale{}, err
		}
		if line.Quantity > qty {
			return domain.Sale{}, fmt.Errorf("%w for %s (need %d, have %d)",
				domain.ErrInsufficientStock, line.Name, line.Quantity, qty)
		}
	}

	sale := domain.Sale{
		Date:    time.Now().UTC().Format(time.RFC3339),
		Payment: payment,
		ShiftID: active.ID,
	}
	for _, line := range lines {
		sale.Items = append(sale.Items, domain.SaleItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.PriceAtAdd, // add-time snapshot, kept at checkout
			Quantity:  line.Quantity,
		})
		sale.Total += line.PriceAtAdd * float64(line.Quantity)
	}

	for _, line := range lines {
		if err := s.Prods.DecrementTx(tx, line.ProductID, line.Quantity); err != nil {
			return domain.Sale{}, err
		}
	}
	id, err := s.Sales.InsertTx(tx, &sale)
	if err != nil {
		return domain.Sale{}, err
	}
	sale.ID = id
	if err := s.Shifts.RecordSaleTx(tx, active.ID, sale.Total, payment); err != nil {
		return domain.Sale{}, err
	}
	if err := s.Carts.ClearTx(tx); err != nil {
		return domain.Sale{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Sale{}, err
	}
	return sale, nil
}
