/*
Package sqlite provides a SQLite-backed dataset source for the reporting
application.

PURPOSE:
  The analytics core is a pure in-memory transformation; loading the
  dataset from somewhere is the surrounding application's job. This
  package is that collaborator: it persists a sales dataset (sellers,
  products, purchase records) and hands it back as an analytics.Dataset.
  In production, the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  sellers:        Seller identities
  products:       Catalog entries with wholesale prices
  purchases:      One row per receipt, attributed to a seller
  purchase_items: Line items, ordered within their receipt

ORDERING:
  Dataset order is significant downstream (stable ranking ties derive from
  input order), so loads preserve insertion order via rowid / position.

NUMERIC STORAGE:
  Money and quantities are stored as decimal text, never as floats.
  Values that fail to parse on the way out load as zero, matching the
  engine's coercion rules.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. SQLite is opened in WAL mode so
  readers don't block each other.

USAGE:
  store, err := sqlite.New("./data/sales.db")  // or ":memory:"
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  err = store.SaveDataset(ctx, dataset)
  dataset, err := store.LoadDataset(ctx)

SEE ALSO:
  - analytics/types.go: The Dataset shape produced here
  - api/handlers.go: Serves reports from this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/sales-analytics/analytics"
)

// Store persists one sales dataset in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sellers (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS products (
		sku TEXT PRIMARY KEY,
		title TEXT,
		category TEXT,
		purchase_price TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS purchases (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seller_id TEXT NOT NULL,
		total_amount TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_purchases_seller
		ON purchases(seller_id);

	CREATE TABLE IF NOT EXISTS purchase_items (
		purchase_id INTEGER NOT NULL REFERENCES purchases(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		sku TEXT NOT NULL,
		quantity TEXT NOT NULL,
		sale_price TEXT NOT NULL,
		discount TEXT NOT NULL,
		PRIMARY KEY (purchase_id, position)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// DATASET OPERATIONS
// =============================================================================

// SaveDataset replaces the stored dataset atomically.
func (s *Store) SaveDataset(ctx context.Context, data analytics.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"purchase_items", "purchases", "products", "sellers"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, seller := range data.Sellers {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO sellers (id, first_name, last_name) VALUES (?, ?, ?)`,
			seller.ID, seller.FirstName, seller.LastName)
		if err != nil {
			return fmt.Errorf("failed to insert seller %s: %w", seller.ID, err)
		}
	}

	for _, product := range data.Products {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO products (sku, title, category, purchase_price) VALUES (?, ?, ?, ?)`,
			product.SKU, product.Title, product.Category, product.PurchasePrice.String())
		if err != nil {
			return fmt.Errorf("failed to insert product %s: %w", product.SKU, err)
		}
	}

	for _, purchase := range data.PurchaseRecords {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO purchases (seller_id, total_amount) VALUES (?, ?)`,
			purchase.SellerID, purchase.TotalAmount.String())
		if err != nil {
			return fmt.Errorf("failed to insert purchase: %w", err)
		}
		purchaseID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read purchase id: %w", err)
		}

		for position, item := range purchase.Items {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO purchase_items (purchase_id, position, sku, quantity, sale_price, discount)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				purchaseID, position, item.SKU,
				item.Quantity.String(), item.SalePrice.String(), item.Discount.String())
			if err != nil {
				return fmt.Errorf("failed to insert purchase item: %w", err)
			}
		}
	}

	return tx.Commit()
}

// LoadDataset reads the stored dataset back in insertion order.
func (s *Store) LoadDataset(ctx context.Context) (*analytics.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data := &analytics.Dataset{
		Sellers:         []analytics.SellerRecord{},
		Products:        []analytics.ProductRecord{},
		PurchaseRecords: []analytics.PurchaseRecord{},
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, first_name, last_name FROM sellers ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to load sellers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var seller analytics.SellerRecord
		if err := rows.Scan(&seller.ID, &seller.FirstName, &seller.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan seller: %w", err)
		}
		data.Sellers = append(data.Sellers, seller)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	prows, err := s.db.QueryContext(ctx,
		`SELECT sku, title, category, purchase_price FROM products ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	defer prows.Close()
	for prows.Next() {
		var product analytics.ProductRecord
		var price string
		if err := prows.Scan(&product.SKU, &product.Title, &product.Category, &price); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		product.PurchasePrice = parseNumber(price)
		data.Products = append(data.Products, product)
	}
	if err := prows.Err(); err != nil {
		return nil, err
	}

	purchases, err := s.loadPurchases(ctx)
	if err != nil {
		return nil, err
	}
	data.PurchaseRecords = purchases

	return data, nil
}

func (s *Store) loadPurchases(ctx context.Context) ([]analytics.PurchaseRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, seller_id, total_amount FROM purchases ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load purchases: %w", err)
	}
	defer rows.Close()

	purchases := []analytics.PurchaseRecord{}
	var ids []int64
	for rows.Next() {
		var id int64
		var purchase analytics.PurchaseRecord
		var amount string
		if err := rows.Scan(&id, &purchase.SellerID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchase.TotalAmount = parseNumber(amount)
		purchase.Items = []analytics.LineItem{}
		purchases = append(purchases, purchase)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	indexByID := make(map[int64]int, len(ids))
	for i, id := range ids {
		indexByID[id] = i
	}

	irows, err := s.db.QueryContext(ctx,
		`SELECT purchase_id, sku, quantity, sale_price, discount
		 FROM purchase_items ORDER BY purchase_id, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load purchase items: %w", err)
	}
	defer irows.Close()
	for irows.Next() {
		var purchaseID int64
		var item analytics.LineItem
		var quantity, salePrice, discount string
		if err := irows.Scan(&purchaseID, &item.SKU, &quantity, &salePrice, &discount); err != nil {
			return nil, fmt.Errorf("failed to scan purchase item: %w", err)
		}
		item.Quantity = parseNumber(quantity)
		item.SalePrice = parseNumber(salePrice)
		item.Discount = parseNumber(discount)
		if i, ok := indexByID[purchaseID]; ok {
			purchases[i].Items = append(purchases[i].Items, item)
		}
	}
	if err := irows.Err(); err != nil {
		return nil, err
	}

	return purchases, nil
}

// Reset clears all stored data.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"purchase_items", "purchases", "products", "sellers"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// DatasetCounts summarizes the stored dataset.
type DatasetCounts struct {
	Sellers   int `json:"sellers"`
	Products  int `json:"products"`
	Purchases int `json:"purchases"`
}

// Counts returns row counts for the stored dataset.
func (s *Store) Counts(ctx context.Context) (DatasetCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var counts DatasetCounts
	queries := []struct {
		table string
		dst   *int
	}{
		{"sellers", &counts.Sellers},
		{"products", &counts.Products},
		{"purchases", &counts.Purchases},
	}
	for _, q := range queries {
		row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+q.table)
		if err := row.Scan(q.dst); err != nil {
			return DatasetCounts{}, fmt.Errorf("failed to count %s: %w", q.table, err)
		}
	}
	return counts, nil
}

// parseNumber converts stored decimal text back to a Number; unparseable
// values load as zero, matching the engine's coercion rules.
func parseNumber(s string) analytics.Number {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return analytics.Number{}
	}
	return analytics.NumberFromDecimal(d)
}
