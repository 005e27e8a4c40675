package repos

import (
	"github.com/jmoiron/sqlx"

	"bakerypos/internal/domain"
)

type SaleRepo struct{ db *sqlx.DB }

func NewSaleRepo(db *sqlx.DB) *SaleRepo { return &SaleRepo{db: db} }

// InsertTx appends the sale and its line snapshots inside the checkout
// transaction, returning the generated (monotonic) sale id.
func (r *SaleRepo) InsertTx(tx *sqlx.Tx, s *domain.Sale) (int64, error) {
	res, err := tx.Exec(`
	  INSERT INTO sales(created_at, payment, total, shift_id)
	  VALUES(?, ?, ?, ?)
	`, s.Date, string(s.Payment), s.Total, s.ShiftID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for _, it := range s.Items {
		if _, err := tx.Exec(`
		  INSERT INTO sale_items(sale_id, product_id, name, price, qty)
		  VALUES(?, ?, ?, ?, ?)
		`, id, it.ProductID, it.Name, it.Price, it.Quantity); err != nil {
			return 0, err
		}
	}
	return id, nil
}

func (r *SaleRepo) Get(id int64) (domain.Sale, error) {
	var s domain.Sale
	if err := r.db.Get(&s, `
	  SELECT id, created_at, payment, total, shift_id FROM sales WHERE id = ?
	`, id); err != nil {
		return domain.Sale{}, err
	}
	if err := r.attachItems(&s); err != nil {
		return domain.Sale{}, err
	}
	return s, nil
}

// ListByDate returns sales for a YYYY-MM-DD day, newest first; empty date
// means all sales.
func (r *SaleRepo) ListByDate(date string) ([]domain.Sale, error) {
	out := []domain.Sale{}
	q := `SELECT id, created_at, payment, total, shift_id FROM sales`
	args := []any{}
	if date != "" {
		q += ` WHERE substr(created_at, 1, 10) = ?`
		args = append(args, date)
	}
	q += ` ORDER BY id DESC`
	if err := r.db.Select(&out, q, args...); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.attachItems(&out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *SaleRepo) ListByShift(shiftID int64) ([]domain.Sale, error) {
	out := []domain.Sale{}
	if err := r.db.Select(&out, `
	  SELECT id, created_at, payment, total, shift_id
	  FROM sales WHERE shift_id = ? ORDER BY id
	`, shiftID); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.attachItems(&out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// SaleIDsByShift lists the shift's sale references in commit order; the
// count doubles as the shift's transaction tally.
func (r *SaleRepo) SaleIDsByShift(shiftID int64) ([]int64, error) {
	out := []int64{}
	err := r.db.Select(&out, `SELECT id FROM sales WHERE shift_id = ? ORDER BY id`, shiftID)
	return out, err
}

// BreakdownByShift aggregates sold quantity and revenue per item name.
func (r *SaleRepo) BreakdownByShift(shiftID int64) ([]domain.ItemBreakdown, error) {
	out := []domain.ItemBreakdown{}
	err := r.db.Select(&out, `
	  SELECT si.name, SUM(si.qty) AS quantity, MAX(si.price) AS price,
	         SUM(si.qty*si.price) AS total
	  FROM sale_items si JOIN sales s ON s.id = si.sale_id
	  WHERE s.shift_id = ?
	  GROUP BY si.name
	  ORDER BY si.name
	`, shiftID)
	return out, err
}

// RangeSummary aggregates sales over an inclusive YYYY-MM-DD date range;
// empty bounds are open-ended.
func (r *SaleRepo) RangeSummary(startDate, endDate string) (domain.SalesSummary, error) {
	sum := domain.SalesSummary{StartDate: startDate, EndDate: endDate}

	where := `1=1`
	args := []any{}
	if startDate != "" {
		where += ` AND substr(created_at, 1, 10) >= ?`
		args = append(args, startDate)
	}
	if endDate != "" {
		where += ` AND substr(created_at, 1, 10) <= ?`
		args = append(args, endDate)
	}

	var totals struct {
		Transactions int     `db:"transactions"`
		CashTotal    float64 `db:"cash_total"`
		MomoTotal    float64 `db:"momo_total"`
	}
	if err := r.db.Get(&totals, `
	  SELECT COUNT(*) AS transactions,
	         COALESCE(SUM(CASE WHEN payment = 'cash' THEN total END),0) AS cash_total,
	         COALESCE(SUM(CASE WHEN payment = 'momo' THEN total END),0) AS momo_total
	  FROM sales WHERE `+where, args...); err != nil {
		return sum, err
	}
	sum.Transactions = totals.Transactions
	sum.CashTotal = totals.CashTotal
	sum.MomoTotal = totals.MomoTotal
	sum.GrandTotal = totals.CashTotal + totals.MomoTotal

	items := []domain.ItemBreakdown{}
	if err := r.db.Select(&items, `
	  SELECT si.name, SUM(si.qty) AS quantity, MAX(si.price) AS price,
	         SUM(si.qty*si.price) AS total
	  FROM sale_items si JOIN sales s ON s.id = si.sale_id
	  WHERE `+where+`
	  GROUP BY si.name
	  ORDER BY si.name
	`, args...); err != nil {
		return sum, err
	}
	sum.Items = items
	return sum, nil
}

func (r *SaleRepo) attachItems(s *domain.Sale) error {
	items := []domain.SaleItem{}
	if err := r.db.Select(&items, `
	  SELECT product_id, name, price, qty FROM sale_items WHERE sale_id = ? ORDER BY rowid
	`, s.ID); err != nil {
		return err
	}
	s.Items = items
	return nil
}
