package domain

import (
	"context"

	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/database"
)

const (
	MinProductCost     = 5
	MaxProductNameSize = 100
)

type Product struct {
	ID              int    `json:"id"`
	Name            string `json:"productName"`
	AvailableAmount int    `json:"amountAvailable"`
	Cost            int    `json:"cost"`
	SellerID        int    `json:"sellerId"`
}

type NewProduct struct {
	Name            string
	AvailableAmount int
	Cost            int
	SellerID        int
}

// ProductUpdate carries only the fields the seller wants to change.
type ProductUpdate struct {
	Name            *string
	AvailableAmount *int
	Cost            *int
}

// StockLedger is the product-side collaborator of the transaction
// engine: per-row atomic reads and the guarded stock decrement.
type StockLedger interface {
	GetProduct(ctx context.Context, querier database.Querier, productID int) (Product, error)
	LockAndGetProduct(ctx context.Context, querier database.Querier, productID int) (Product, error)
	DecrementStock(ctx context.Context, querier database.Querier, productID int, quantity int) (int, error)
}

// ProductCatalog covers the seller-facing CRUD surface.
type ProductCatalog interface {
	GetProduct(ctx context.Context, querier database.Querier, productID int) (Product, error)
	LockAndGetProduct(ctx context.Context, querier database.Querier, productID int) (Product, error)
	ListProducts(ctx context.Context, querier database.Querier) ([]Product, error)
	CreateProduct(ctx context.Context, querier database.Querier, product NewProduct) (Product, error)
	UpdateProduct(ctx context.Context, querier database.Querier, productID int, update ProductUpdate) (Product, error)
	DeleteProduct(ctx context.Context, executor database.Executor, productID int) error
}
