package repos

import (
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	// The _pragma DSN parameter is applied by the driver on every pooled
	// connection; a plain PRAGMA statement would only reach the connection
	// that happened to execute it.
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	db, err := sqlx.Open("sqlite", dsn+sep+"_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	// Seed sample catalog exactly once (guarded by the meta flag)
	if err := seedSampleData(db); err != nil {
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates all tables and indexes. Exported so tests can build
// an empty in-memory store without going through the sample-data seed.
func EnsureSchema(db *sqlx.DB) error {
	schema := `
-- Catalog with live stock counts
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price > 0),
  quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
  image TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_products_name_nocase ON products(LOWER(name));

-- The single register's in-progress transaction; position keeps the lines
-- in the order they were staged
CREATE TABLE IF NOT EXISTS cart_items(
  position INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id INTEGER NOT NULL UNIQUE REFERENCES products(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  price_at_add NUMERIC NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

-- Work shifts; end_time IS NULL marks the active one
CREATE TABLE IF NOT EXISTS shifts(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  start_time TEXT NOT NULL,
  end_time TEXT,
  cash_total NUMERIC NOT NULL DEFAULT 0,
  momo_total NUMERIC NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL DEFAULT 0
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_shifts_single_active
  ON shifts((end_time IS NULL)) WHERE end_time IS NULL;

-- Append-only sales ledger; items keep name/price snapshots so receipts
-- survive catalog edits (no FK to products on purpose)
CREATE TABLE IF NOT EXISTS sales(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  created_at TEXT NOT NULL,
  payment TEXT NOT NULL CHECK (payment IN ('cash','momo')),
  total NUMERIC NOT NULL,
  shift_id INTEGER NOT NULL REFERENCES shifts(id)
);
CREATE INDEX IF NOT EXISTS idx_sales_shift      ON sales(shift_id);
CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales(created_at);

CREATE TABLE IF NOT EXISTS sale_items(
  sale_id INTEGER NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
  product_id INTEGER NOT NULL,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  PRIMARY KEY (sale_id, product_id)
);

-- One-time flags (sample-data seed guard)
CREATE TABLE IF NOT EXISTS meta(
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	_, err := db.Exec(schema)
	return err
}

// seedSampleData inserts the demo bakery catalog on first start only.
func seedSampleData(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM meta WHERE key = 'seeded'`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting sample bakery catalog")

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`INSERT INTO products(name,price,quantity,image) VALUES
	  ('Bread',    1000, 20, ''),
	  ('Croissant',1500, 15, ''),
	  ('Cake',     5000,  5, ''),
	  ('Donut',     800, 30, ''),
	  ('Cookie',    300, 50, '')`); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('seeded','true')`); err != nil {
		return err
	}

	return tx.Commit()
}
