package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/domain"
)

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

func (r *productRepository) Create(product domain.Product) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, price_minor, qty, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		product.ID, product.Name, product.PriceMinor, product.Qty,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProductAlreadyExists
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

func (r *productRepository) FindByName(name string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var product domain.Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, price_minor, qty, created_at, updated_at
		FROM products
		WHERE name = $1
	`, name).Scan(
		&product.ID, &product.Name, &product.PriceMinor, &product.Qty,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("scan product: %w", err)
	}
	return product, nil
}

func (r *productRepository) List(limit int) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	query := `
		SELECT id, name, price_minor, qty, created_at, updated_at
		FROM products
		ORDER BY created_at DESC, id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// FindAllByID возвращает товары, чьи ID встречаются в items. Количество в items
// при поиске не используется; дубликаты ID сворачиваются.
func (r *productRepository) FindAllByID(items []domain.ProductQuantity) ([]domain.Product, error) {
	if len(items) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	seen := make(map[string]struct{}, len(items))
	placeholders := make([]string, 0, len(items))
	args := make([]any, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item.ProductID]; dup {
			continue
		}
		seen[item.ProductID] = struct{}{}
		args = append(args, item.ProductID)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, name, price_minor, qty, created_at, updated_at
		FROM products
		WHERE id IN (%s)
		ORDER BY created_at DESC, id DESC
	`, strings.Join(placeholders, ",")), args...)
	if err != nil {
		return nil, fmt.Errorf("query products by id: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// UpdateQuantity применяет переданные остатки в одной транзакции
// и возвращает обновлённые товары.
func (r *productRepository) UpdateQuantity(items []domain.ProductQuantity) ([]domain.Product, error) {
	if len(items) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	result := make([]domain.Product, 0, len(items))
	for _, item := range items {
		var product domain.Product
		err = tx.QueryRowContext(ctx, `
			UPDATE products
			SET qty = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING id, name, price_minor, qty, created_at, updated_at
		`, item.ProductID, item.Qty).Scan(
			&product.ID, &product.Name, &product.PriceMinor, &product.Qty,
			&product.CreatedAt, &product.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				err = domain.ErrProductNotFound
				return nil, err
			}
			return nil, fmt.Errorf("update product quantity: %w", err)
		}
		result = append(result, product)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update quantity: %w", err)
	}

	return result, nil
}

func scanProducts(rows *sql.Rows) ([]domain.Product, error) {
	result := make([]domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID, &product.Name, &product.PriceMinor, &product.Qty,
			&product.CreatedAt, &product.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		result = append(result, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return result, nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
