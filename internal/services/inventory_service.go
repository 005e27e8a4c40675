package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bakerypos/internal/domain"
	"bakerypos/internal/repos"
)

type InventoryService struct {
	Prods *repos.ProductRepo
}

func NewInventoryService(prods *repos.ProductRepo) *InventoryService {
	return &InventoryService{Prods: prods}
}

func (s *InventoryService) List() ([]domain.Product, error) {
	return s.Prods.List()
}

func (s *InventoryService) Get(id int64) (domain.Product, error) {
	return s.Prods.Get(id)
}

// ByName looks a product up case-insensitively; nil when absent. The stock
// handler uses it to ask for confirmation before merging a restock.
func (s *InventoryService) ByName(name string) (*domain.Product, error) {
	p, err := s.Prods.ByName(strings.TrimSpace(name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// AddOrRestock merges into an existing product on a case-insensitive name
// match (quantity added, price untouched) or creates a new one. The caller
// is responsible for confirming the merge with the user first. The returned
// bool reports whether an existing product was restocked.
func (s *InventoryService) AddOrRestock(name string, price float64, qty int) (domain.Product, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" || price <= 0 || qty <= 0 {
		return domain.Product{}, false, fmt.Errorf("%w: name required, price and quantity must be positive", domain.ErrInvalidInput)
	}

	existing, err := s.Prods.ByName(name)
	switch {
	case err == nil:
		if err := s.Prods.Restock(existing.ID, qty); err != nil {
			return domain.Product{}, false, err
		}
		p, err := s.Prods.Get(existing.ID)
		return p, true, err
	case errors.Is(err, sql.ErrNoRows):
		id, err := s.Prods.Insert(name, price, qty, "")
		if err != nil {
			return domain.Product{}, false, err
		}
		p, err := s.Prods.Get(id)
		return p, false, err
	default:
		return domain.Product{}, false, err
	}
}

// Edit overwrites name, price and quantity. Zero quantity is allowed here,
// unlike creation.
func (s *InventoryService) Edit(id int64, name string, price float64, qty int) (domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" || price <= 0 || qty < 0 {
		return domain.Product{}, fmt.Errorf("%w: name required, price positive, quantity non-negative", domain.ErrInvalidInput)
	}
	if err := s.Prods.Update(id, name, price, qty); err != nil {
		return domain.Product{}, err
	}
	return s.Prods.Get(id)
}

// Remove deletes the product permanently. Historical sales keep their own
// name/price snapshots, so no integrity check against the sales log.
func (s *InventoryService) Remove(id int64) error {
	return s.Prods.Delete(id)
}

func (s *InventoryService) LowStock() ([]domain.Product, error) {
	return s.Prods.LowStock(domain.LowStockThreshold)
}
