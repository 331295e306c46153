package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mahmoudAmagdy/VendingMachine/internal/machine/domain"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/database"
)

// ProductsRepository is both the stock ledger of the transaction engine
// and the seller-facing catalog.
type ProductsRepository struct {
}

func NewProductsRepository() *ProductsRepository {
	return &ProductsRepository{}
}

func (pr *ProductsRepository) GetProduct(ctx context.Context, querier database.Querier, productID int) (domain.Product, error) {
	selectSQL := `SELECT id, name, available_amount, cost, seller_id FROM products WHERE id = $1`

	return pr.scanProduct(querier.QueryRow(ctx, selectSQL, productID), productID)
}

func (pr *ProductsRepository) LockAndGetProduct(ctx context.Context, querier database.Querier, productID int) (domain.Product, error) {
	lockProductSQL := `SELECT id, name, available_amount, cost, seller_id FROM products WHERE id = $1 FOR UPDATE`

	return pr.scanProduct(querier.QueryRow(ctx, lockProductSQL, productID), productID)
}

func (pr *ProductsRepository) ListProducts(ctx context.Context, querier database.Querier) ([]domain.Product, error) {
	listSQL := `SELECT id, name, available_amount, cost, seller_id FROM products ORDER BY id`

	rows, err := querier.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		err = rows.Scan(&product.ID, &product.Name, &product.AvailableAmount, &product.Cost, &product.SellerID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}

	return products, nil
}

func (pr *ProductsRepository) CreateProduct(ctx context.Context, querier database.Querier, product domain.NewProduct) (domain.Product, error) {
	insertSQL := `INSERT INTO products (name, available_amount, cost, seller_id)
VALUES ($1, $2, $3, $4)
RETURNING id, name, available_amount, cost, seller_id`

	var created domain.Product
	err := querier.QueryRow(ctx, insertSQL, product.Name, product.AvailableAmount, product.Cost, product.SellerID).
		Scan(&created.ID, &created.Name, &created.AvailableAmount, &created.Cost, &created.SellerID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}

	return created, nil
}

func (pr *ProductsRepository) UpdateProduct(ctx context.Context, querier database.Querier, productID int, update domain.ProductUpdate) (domain.Product, error) {
	updateSQL := `UPDATE products
SET name = COALESCE($1, name),
    available_amount = COALESCE($2, available_amount),
    cost = COALESCE($3, cost)
WHERE id = $4
RETURNING id, name, available_amount, cost, seller_id`

	return pr.scanProduct(
		querier.QueryRow(ctx, updateSQL, update.Name, update.AvailableAmount, update.Cost, productID),
		productID,
	)
}

func (pr *ProductsRepository) DeleteProduct(ctx context.Context, executor database.Executor, productID int) error {
	deleteSQL := `DELETE FROM products WHERE id = $1`

	tag, err := executor.Exec(ctx, deleteSQL, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return &domain.ProductNotFoundError{Msg: fmt.Sprintf("product with id %d not found", productID)}
	}

	return nil
}

// DecrementStock subtracts quantity only when enough stock remains; the
// guard in the WHERE clause keeps available_amount from going negative
// even without an explicit row lock.
func (pr *ProductsRepository) DecrementStock(ctx context.Context, querier database.Querier, productID int, quantity int) (int, error) {
	decrementSQL := `UPDATE products
SET available_amount = available_amount - $1
WHERE id = $2 AND available_amount >= $1
RETURNING available_amount`

	var newAmount int
	err := querier.QueryRow(ctx, decrementSQL, quantity, productID).Scan(&newAmount)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, &domain.InsufficientStockError{Msg: fmt.Sprintf("insufficient stock for product %d", productID)}
		}

		return 0, fmt.Errorf("failed to decrement product stock: %w", err)
	}

	return newAmount, nil
}

func (pr *ProductsRepository) scanProduct(row pgx.Row, productID int) (domain.Product, error) {
	var product domain.Product
	err := row.Scan(&product.ID, &product.Name, &product.AvailableAmount, &product.Cost, &product.SellerID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, &domain.ProductNotFoundError{Msg: fmt.Sprintf("product with id %d not found", productID)}
		}

		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}
