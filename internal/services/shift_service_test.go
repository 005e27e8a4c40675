package services_test

import (
	"errors"
	"testing"

	"bakerypos/internal/domain"
)

func TestShiftStartWhileActiveFails(t *testing.T) {
	db := memdb(t)
	f := newFixture(db)

	first, err := f.shifts.Start()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.shifts.Start(); !errors.Is(err, domain.ErrShiftAlreadyActive) {
		t.Fatalf("want ErrShiftAlreadyActive, got %v", err)
	}

	active, err := f.shifts.Active()
	if err != nil {
		t.Fatal(err)
	}
	if active == nil || active.ID != first.ID {
		t.Fatalf("existing shift must survive the failed start, got %+v", active)
	}
}

func TestShiftEndWithoutActiveFails(t *testing.T) {
	db := memdb(t)
	f := newFixture(db)

	if _, err := f.shifts.End(); !errors.Is(err, domain.ErrNoActiveShift) {
		t.Fatalf("want ErrNoActiveShift, got %v", err)
	}
	history, err := f.shifts.History()
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 0 {
		t.Fatalf("failed end must not write history, got %+v", history)
	}
}

func TestShiftEndDiscardsCart(t *testing.T) {
	db := memdb(t)
	f := newFixture(db)

	bread, _, err := f.inv.AddOrRestock("Bread", 1000, 20)
	if err != nil {
		t.Fatal(err)
	}
	started, err := f.shifts.Start()
	if err != nil {
		t.Fatal(err)
	}
	if err := f.cart.AddItem(bread.ID); err != nil {
		t.Fatal(err)
	}

	pending, err := f.shifts.HasPendingCart()
	if err != nil {
		t.Fatal(err)
	}
	if !pending {
		t.Fatal("pending cart not detected")
	}

	closed, err := f.shifts.End()
	if err != nil {
		t.Fatal(err)
	}
	if closed.ID != started.ID || closed.EndTime == nil {
		t.Fatalf("bad closed shift: %+v", closed)
	}

	cv, err := f.cart.View()
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Lines) != 0 {
		t.Fatalf("shift boundary must discard cart lines, got %+v", cv.Lines)
	}

	// stock was never decremented by staging
	p, err := f.inv.Get(bread.ID)
	if err != nil {
		t.Fatal(err)
	}
	if p.Quantity != 20 {
		t.Fatalf("staging must not touch stock, got %d", p.Quantity)
	}
}

func TestShiftLastClosedSummary(t *testing.T) {
	db := memdb(t)
	f := newFixture(db)

	sum, err := f.shifts.LastClosedSummary()
	if err != nil {
		t.Fatal(err)
	}
	if sum != nil {
		t.Fatalf("no history yet, got %+v", sum)
	}

	bread, _, err := f.inv.AddOrRestock("Bread", 1000, 20)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.shifts.Start(); err != nil {
		t.Fatal(err)
	}
	if err := f.cart.AddItem(bread.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.checkout.Checkout(domain.PayCash); err != nil {
		t.Fatal(err)
	}
	closed, err := f.shifts.End()
	if err != nil {
		t.Fatal(err)
	}

	sum, err = f.shifts.LastClosedSummary()
	if err != nil {
		t.Fatal(err)
	}
	if sum == nil || sum.Shift.ID != closed.ID {
		t.Fatalf("bad summary: %+v", sum)
	}
	if sum.Transactions != 1 || sum.Shift.Total != 1000 {
		t.Fatalf("want 1 transaction of 1000, got %+v", sum)
	}
	if len(sum.SaleIDs) != 1 {
		t.Fatalf("summary must reference the shift's sales, got %+v", sum.SaleIDs)
	}
	if len(sum.Items) != 1 || sum.Items[0].Name != "Bread" || sum.Items[0].Quantity != 1 {
		t.Fatalf("bad breakdown: %+v", sum.Items)
	}
}
