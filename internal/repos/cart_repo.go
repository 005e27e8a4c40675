package repos

import (
	"github.com/jmoiron/sqlx"

	"bakerypos/internal/domain"
)

// CartRepo holds the single register's in-progress transaction. Lines are
// keyed by product and ordered by the position they were staged at.
type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

func (r *CartRepo) Lines() ([]domain.CartLine, error) {
	out := []domain.CartLine{}
	err := r.db.Select(&out, `
	  SELECT product_id, name, price_at_add, qty, (qty*price_at_add) AS subtotal
	  FROM cart_items
	  ORDER BY position
	`)
	return out, err
}

// Line returns sql.ErrNoRows when the product is not in the cart.
func (r *CartRepo) Line(productID int64) (domain.CartLine, error) {
	var line domain.CartLine
	err := r.db.Get(&line, `
	  SELECT product_id, name, price_at_add, qty, (qty*price_at_add) AS subtotal
	  FROM cart_items WHERE product_id = ?
	`, productID)
	return line, err
}

// Insert stages a new line with quantity 1, snapshotting the current price.
func (r *CartRepo) Insert(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO cart_items(product_id, name, price_at_add, qty, created_at)
	  VALUES(?, ?, ?, 1, CURRENT_TIMESTAMP)
	`, p.ID, p.Name, p.Price)
	return err
}

func (r *CartRepo) SetQty(productID int64, qty int) error {
	_, err := r.db.Exec(`
	  UPDATE cart_items SET qty = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE product_id = ?
	`, qty, productID)
	return err
}

func (r *CartRepo) Remove(productID int64) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE product_id = ?`, productID)
	return err
}

func (r *CartRepo) Clear() error {
	_, err := r.db.Exec(`DELETE FROM cart_items`)
	return err
}

// ClearTx empties the cart as part of a larger transaction (checkout, shift end).
func (r *CartRepo) ClearTx(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DELETE FROM cart_items`)
	return err
}

func (r *CartRepo) Total() (float64, error) {
	var total float64
	err := r.db.Get(&total, `SELECT COALESCE(SUM(qty*price_at_add),0) FROM cart_items`)
	return total, err
}
