package services_test

import (
	"errors"
	"testing"

	"bakerypos/internal/domain"
	"bakerypos/internal/repos"
	"bakerypos/internal/services"
)

func TestInventoryAddOrRestock(t *testing.T) {
	db := memdb(t)
	inv := services.NewInventoryService(repos.NewProductRepo(db))

	p, restocked, err := inv.AddOrRestock("Bread", 1000, 20)
	if err != nil {
		t.Fatal(err)
	}
	if restocked {
		t.Fatal("new product reported as restocked")
	}
	if p.ID == 0 || p.Name != "Bread" || p.Price != 1000 || p.Quantity != 20 {
		t.Fatalf("bad product: %+v", p)
	}

	// case-insensitive match merges quantity, price stays
	p2, restocked, err := inv.AddOrRestock("bread", 9999, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !restocked {
		t.Fatal("existing product not reported as restocked")
	}
	if p2.ID != p.ID {
		t.Fatalf("restock created a new id: %d vs %d", p2.ID, p.ID)
	}
	if p2.Quantity != 25 {
		t.Fatalf("want quantity 25, got %d", p2.Quantity)
	}
	if p2.Price != 1000 {
		t.Fatalf("restock must not touch price, got %v", p2.Price)
	}
}

func TestInventoryAddOrRestockValidation(t *testing.T) {
	db := memdb(t)
	inv := services.NewInventoryService(repos.NewProductRepo(db))

	cases := []struct {
		name  string
		price float64
		qty   int
	}{
		{"", 1000, 5},
		{"   ", 1000, 5},
		{"Bread", 0, 5},
		{"Bread", -1, 5},
		{"Bread", 1000, 0},
		{"Bread", 1000, -3},
	}
	for _, tc := range cases {
		if _, _, err := inv.AddOrRestock(tc.name, tc.price, tc.qty); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("AddOrRestock(%q,%v,%d): want ErrInvalidInput, got %v", tc.name, tc.price, tc.qty, err)
		}
	}
	prods, err := inv.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(prods) != 0 {
		t.Fatalf("rejected input left %d products behind", len(prods))
	}
}

func TestInventoryEdit(t *testing.T) {
	db := memdb(t)
	inv := services.NewInventoryService(repos.NewProductRepo(db))

	p, _, err := inv.AddOrRestock("Cake", 5000, 5)
	if err != nil {
		t.Fatal(err)
	}

	// edit overwrites everything, zero quantity allowed
	edited, err := inv.Edit(p.ID, "Chocolate Cake", 6000, 0)
	if err != nil {
		t.Fatal(err)
	}
	if edited.Name != "Chocolate Cake" || edited.Price != 6000 || edited.Quantity != 0 {
		t.Fatalf("bad edit result: %+v", edited)
	}

	if _, err := inv.Edit(p.ID, "Cake", 6000, -1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("negative quantity: want ErrInvalidInput, got %v", err)
	}
	if _, err := inv.Edit(p.ID, "Cake", 0, 3); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("zero price: want ErrInvalidInput, got %v", err)
	}
}

func TestInventoryRemoveAndLowStock(t *testing.T) {
	db := memdb(t)
	inv := services.NewInventoryService(repos.NewProductRepo(db))

	bread, _, err := inv.AddOrRestock("Bread", 1000, 20)
	if err != nil {
		t.Fatal(err)
	}
	cake, _, err := inv.AddOrRestock("Cake", 5000, 3)
	if err != nil {
		t.Fatal(err)
	}

	low, err := inv.LowStock()
	if err != nil {
		t.Fatal(err)
	}
	if len(low) != 1 || low[0].ID != cake.ID {
		t.Fatalf("want only cake low on stock, got %+v", low)
	}
	if !cake.LowStock() || bread.LowStock() {
		t.Fatal("LowStock flag disagrees with threshold")
	}

	if err := inv.Remove(bread.ID); err != nil {
		t.Fatal(err)
	}
	prods, err := inv.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(prods) != 1 || prods[0].ID != cake.ID {
		t.Fatalf("delete did not stick: %+v", prods)
	}
}
