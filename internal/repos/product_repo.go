package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"bakerypos/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, name, price, quantity, image, created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) List() ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY id`)
	return out, err
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

// ByName matches case-insensitively; returns sql.ErrNoRows when absent.
func (r *ProductRepo) ByName(name string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE LOWER(name) = LOWER(?)`, name)
	return p, err
}

func (r *ProductRepo) Insert(name string, price float64, qty int, image string) (int64, error) {
	res, err := r.db.Exec(`
		INSERT INTO products(name, price, quantity, image)
		VALUES(?, ?, ?, ?)
	`, name, price, qty, image)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Restock adds to the existing count; price and name stay as they are.
func (r *ProductRepo) Restock(id int64, by int) error {
	_, err := r.db.Exec(`
		UPDATE products SET quantity = quantity + ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, by, id)
	return err
}

// Update overwrites name, price and quantity unconditionally.
func (r *ProductRepo) Update(id int64, name string, price float64, qty int) error {
	res, err := r.db.Exec(`
		UPDATE products SET name = ?, price = ?, quantity = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, name, price, qty, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("product %d not found", id)
	}
	return nil
}

func (r *ProductRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}

func (r *ProductRepo) LowStock(threshold int) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
		SELECT `+productCols+` FROM products WHERE quantity < ? ORDER BY quantity, name
	`, threshold)
	return out, err
}

// DecrementTx atomically subtracts "by" units inside the checkout transaction.
// The conditional WHERE keeps quantity from ever going below zero.
func (r *ProductRepo) DecrementTx(tx *sqlx.Tx, id int64, by int) error {
	res, err := tx.Exec(`
		UPDATE products
		SET quantity = quantity - ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND quantity >= ?
	`, by, id, by)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("insufficient stock for product %d", id)
	}
	return nil
}

// QtyTx reads the live stock count inside a transaction.
func (r *ProductRepo) QtyTx(tx *sqlx.Tx, id int64) (int, error) {
	var qty int
	err := tx.Get(&qty, `SELECT quantity FROM products WHERE id = ?`, id)
	return qty, err
}
