package services

import (
	"database/sql"
	"errors"
	"fmt"

	"bakerypos/internal/domain"
	"bakerypos/internal/repos"
)

type CartService struct {
	Carts  *repos.CartRepo
	Prods  *repos.ProductRepo
	Shifts *repos.ShiftRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo, shifts *repos.ShiftRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods, Shifts: shifts}
}

// AddItem stages one unit of the product. Needs an open shift and live stock;
// an existing line grows by 1, capped at the product's current quantity.
func (s *CartService) AddItem(productID int64) error {
	active, err := s.Shifts.Active()
	if err != nil {
		return err
	}
	if active == nil {
		return domain.ErrNoActiveShift
	}

	p, err := s.Prods.Get(productID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: unknown product %d", domain.ErrInvalidInput, productID)
	}
	if err != nil {
		return err
	}
	if p.Quantity <= 0 {
		return fmt.Errorf("%w: %s", domain.ErrOutOfStock, p.Name)
	}

	line, err := s.Carts.Line(productID)
	if errors.Is(err, sql.ErrNoRows) {
		return s.Carts.Insert(p)
	}
	if err != nil {
		return err
	}
	if line.Quantity+1 > p.Quantity {
		return fmt.Errorf("%w for %s", domain.ErrInsufficientStock, p.Name)
	}
	return s.Carts.SetQty(productID, line.Quantity+1)
}

// ChangeQuantity adjusts a line by delta; dropping to zero or below removes
// the line, exceeding live stock rejects the change and leaves it untouched.
func (s *CartService) ChangeQuantity(productID int64, delta int) error {
	line, err := s.Carts.Line(productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	next := line.Quantity + delta
	if next <= 0 {
		return s.Carts.Remove(productID)
	}

	p, err := s.Prods.Get(productID)
	if err != nil {
		return err
	}
	if next > p.Quantity {
		return fmt.Errorf("%w for %s", domain.ErrInsufficientStock, p.Name)
	}
	return s.Carts.SetQty(productID, next)
}

func (s *CartService) RemoveItem(productID int64) error {
	return s.Carts.Remove(productID)
}

func (s *CartService) Clear() error {
	return s.Carts.Clear()
}

type CartView struct {
	Lines            []domain.CartLine `json:"lines"`
	Total            float64           `json:"total"`
	ShiftActive      bool              `json:"shiftActive"`
	CheckoutEligible bool              `json:"checkoutEligible"`
}

// View derives checkout eligibility on demand: non-empty cart plus an open
// shift. Never cached, so it cannot go stale.
func (s *CartService) View() (CartView, error) {
	lines, err := s.Carts.Lines()
	if err != nil {
		return CartView{}, err
	}
	total, err := s.Carts.Total()
	if err != nil {
		return CartView{}, err
	}
	active, err := s.Shifts.Active()
	if err != nil {
		return CartView{}, err
	}
	return CartView{
		Lines:            lines,
		Total:            total,
		ShiftActive:      active != nil,
		CheckoutEligible: len(lines) > 0 && active != nil,
	}, nil
}
