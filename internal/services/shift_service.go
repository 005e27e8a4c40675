package services

import (
	"time"

	"github.com/jmoiron/sqlx"

	"bakerypos/internal/domain"
	"bakerypos/internal/repos"
)

type ShiftService struct {
	db     *sqlx.DB
	Shifts *repos.ShiftRepo
	Sales  *repos.SaleRepo
	Carts  *repos.CartRepo
}

func NewShiftService(db *sqlx.DB, shifts *repos.ShiftRepo, sales *repos.SaleRepo, carts *repos.CartRepo) *ShiftService {
	return &ShiftService{db: db, Shifts: shifts, Sales: sales, Carts: carts}
}

func (s *ShiftService) Active() (*domain.Shift, error) {
	return s.Shifts.Active()
}

func (s *ShiftService) Start() (domain.Shift, error) {
	active, err := s.Shifts.Active()
	if err != nil {
		return domain.Shift{}, err
	}
	if active != nil {
		return domain.Shift{}, domain.ErrShiftAlreadyActive
	}
	return s.Shifts.Start(time.Now().UTC().Format(time.RFC3339))
}

// End closes the active shift. Any staged cart lines are discarded in the
// same transaction: a shift boundary forces transaction closure, and the
// caller must have confirmed that with the user already.
func (s *ShiftService) End() (domain.Shift, error) {
	active, err := s.Shifts.Active()
	if err != nil {
		return domain.Shift{}, err
	}
	if active == nil {
		return domain.Shift{}, domain.ErrNoActiveShift
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return domain.Shift{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.Shifts.CloseTx(tx, active.ID, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return domain.Shift{}, err
	}
	if err := s.Carts.ClearTx(tx); err != nil {
		return domain.Shift{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Shift{}, err
	}

	return s.Shifts.Get(active.ID)
}

// HasPendingCart tells the handler whether ending now would discard lines,
// so it can demand explicit confirmation first.
func (s *ShiftService) HasPendingCart() (bool, error) {
	lines, err := s.Carts.Lines()
	if err != nil {
		return false, err
	}
	return len(lines) > 0, nil
}

// CurrentSummary aggregates the open shift by joining its sales log entries.
func (s *ShiftService) CurrentSummary() (domain.ShiftSummary, error) {
	active, err := s.Shifts.Active()
	if err != nil {
		return domain.ShiftSummary{}, err
	}
	if active == nil {
		return domain.ShiftSummary{}, domain.ErrNoActiveShift
	}
	return s.summarize(*active)
}

// LastClosedSummary returns nil when no shift has ever been closed.
func (s *ShiftService) LastClosedSummary() (*domain.ShiftSummary, error) {
	last, err := s.Shifts.LastClosed()
	if err != nil {
		return nil, err
	}
	if last == nil {
		return nil, nil
	}
	sum, err := s.summarize(*last)
	if err != nil {
		return nil, err
	}
	return &sum, nil
}

func (s *ShiftService) History() ([]domain.Shift, error) {
	return s.Shifts.History()
}

func (s *ShiftService) summarize(shift domain.Shift) (domain.ShiftSummary, error) {
	ids, err := s.Sales.SaleIDsByShift(shift.ID)
	if err != nil {
		return domain.ShiftSummary{}, err
	}
	items, err := s.Sales.BreakdownByShift(shift.ID)
	if err != nil {
		return domain.ShiftSummary{}, err
	}
	return domain.ShiftSummary{
		Shift:        shift,
		SaleIDs:      ids,
		Transactions: len(ids),
		Items:        items,
	}, nil
}
