package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"bakerypos/internal/domain"
)

type ShiftRepo struct{ db *sqlx.DB }

func NewShiftRepo(db *sqlx.DB) *ShiftRepo { return &ShiftRepo{db: db} }

const shiftCols = `id, start_time, end_time, cash_total, momo_total, total`

// Active returns the open shift, or nil when the register is closed.
func (r *ShiftRepo) Active() (*domain.Shift, error) {
	var s domain.Shift
	err := r.db.Get(&s, `SELECT `+shiftCols+` FROM shifts WHERE end_time IS NULL`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ShiftRepo) Get(id int64) (domain.Shift, error) {
	var s domain.Shift
	err := r.db.Get(&s, `SELECT `+shiftCols+` FROM shifts WHERE id = ?`, id)
	return s, err
}

// Start opens a new shift with zeroed accumulators. The partial unique index
// on open shifts makes a second concurrent start fail at the store.
func (r *ShiftRepo) Start(startTime string) (domain.Shift, error) {
	res, err := r.db.Exec(`
	  INSERT INTO shifts(start_time, end_time, cash_total, momo_total, total)
	  VALUES(?, NULL, 0, 0, 0)
	`, startTime)
	if err != nil {
		return domain.Shift{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Shift{}, err
	}
	return r.Get(id)
}

// CloseTx stamps end_time, moving the shift from active to history.
func (r *ShiftRepo) CloseTx(tx *sqlx.Tx, id int64, endTime string) error {
	res, err := tx.Exec(`
	  UPDATE shifts SET end_time = ? WHERE id = ? AND end_time IS NULL
	`, endTime, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("shift %d is not active", id)
	}
	return nil
}

// RecordSaleTx bumps the active shift's accumulators for a committed sale.
func (r *ShiftRepo) RecordSaleTx(tx *sqlx.Tx, id int64, total float64, payment domain.PaymentMethod) error {
	col := "cash_total"
	if payment == domain.PayMomo {
		col = "momo_total"
	}
	res, err := tx.Exec(`
	  UPDATE shifts SET total = total + ?, `+col+` = `+col+` + ?
	  WHERE id = ? AND end_time IS NULL
	`, total, total, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("shift %d is not active", id)
	}
	return nil
}

// History lists closed shifts, most recent first.
func (r *ShiftRepo) History() ([]domain.Shift, error) {
	out := []domain.Shift{}
	err := r.db.Select(&out, `
	  SELECT `+shiftCols+` FROM shifts WHERE end_time IS NOT NULL ORDER BY id DESC
	`)
	return out, err
}

// LastClosed returns the most recently ended shift, or nil if none exists.
func (r *ShiftRepo) LastClosed() (*domain.Shift, error) {
	var s domain.Shift
	err := r.db.Get(&s, `
	  SELECT `+shiftCols+` FROM shifts WHERE end_time IS NOT NULL ORDER BY id DESC LIMIT 1
	`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
