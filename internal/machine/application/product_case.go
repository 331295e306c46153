package application

import (
	"context"
	"fmt"

	"github.com/mahmoudAmagdy/VendingMachine/internal/machine/domain"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/database"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/logging"
)

type ProductCase struct {
	db        database.QueryExecuter
	txManager database.TxManager
	catalog   domain.ProductCatalog
	logger    logging.Logger
}

func NewProductCase(
	db database.QueryExecuter,
	txManager database.TxManager,
	catalog domain.ProductCatalog,
	logger logging.Logger,
) *ProductCase {
	return &ProductCase{
		db:        db,
		txManager: txManager,
		catalog:   catalog,
		logger:    logger,
	}
}

func (pc *ProductCase) CreateProduct(ctx context.Context, sellerID int, product domain.NewProduct) (domain.Product, error) {
	if err := validateProductFields(product.Name, product.AvailableAmount, product.Cost); err != nil {
		return domain.Product{}, err
	}

	product.SellerID = sellerID

	created, err := pc.catalog.CreateProduct(ctx, pc.db, product)
	if err != nil {
		return domain.Product{}, err
	}

	pc.logger.Info("product created", "productId", created.ID, "sellerId", sellerID)

	return created, nil
}

func (pc *ProductCase) GetProduct(ctx context.Context, productID int) (domain.Product, error) {
	return pc.catalog.GetProduct(ctx, pc.db, productID)
}

func (pc *ProductCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return pc.catalog.ListProducts(ctx, pc.db)
}

// UpdateProduct locks the row first so the ownership check and the
// update cannot race a concurrent purchase of the same product.
func (pc *ProductCase) UpdateProduct(ctx context.Context, sellerID, productID int, update domain.ProductUpdate) (domain.Product, error) {
	if err := validateProductUpdate(update); err != nil {
		return domain.Product{}, err
	}

	var updated domain.Product

	err := pc.txManager.WithinTransaction(ctx, func(ctx context.Context, tx database.QueryExecuter) error {
		current, err := pc.catalog.LockAndGetProduct(ctx, tx, productID)
		if err != nil {
			return err
		}

		if current.SellerID != sellerID {
			return &domain.InvalidOperationError{Msg: "product belongs to another seller"}
		}

		updated, err = pc.catalog.UpdateProduct(ctx, tx, productID, update)
		return err
	})
	if err != nil {
		return domain.Product{}, err
	}

	return updated, nil
}

func (pc *ProductCase) DeleteProduct(ctx context.Context, sellerID, productID int) error {
	return pc.txManager.WithinTransaction(ctx, func(ctx context.Context, tx database.QueryExecuter) error {
		current, err := pc.catalog.LockAndGetProduct(ctx, tx, productID)
		if err != nil {
			return err
		}

		if current.SellerID != sellerID {
			return &domain.InvalidOperationError{Msg: "product belongs to another seller"}
		}

		return pc.catalog.DeleteProduct(ctx, tx, productID)
	})
}

func validateProductFields(name string, availableAmount, cost int) error {
	if name == "" || len(name) > domain.MaxProductNameSize {
		return &domain.InvalidArgumentsError{Msg: fmt.Sprintf("product name must be between 1 and %d characters", domain.MaxProductNameSize)}
	}

	if availableAmount < 0 {
		return &domain.InvalidArgumentsError{Msg: "available amount must be non-negative"}
	}

	return validateProductCost(cost)
}

func validateProductUpdate(update domain.ProductUpdate) error {
	if update.Name != nil && (*update.Name == "" || len(*update.Name) > domain.MaxProductNameSize) {
		return &domain.InvalidArgumentsError{Msg: fmt.Sprintf("product name must be between 1 and %d characters", domain.MaxProductNameSize)}
	}

	if update.AvailableAmount != nil && *update.AvailableAmount < 0 {
		return &domain.InvalidArgumentsError{Msg: "available amount must be non-negative"}
	}

	if update.Cost != nil {
		return validateProductCost(*update.Cost)
	}

	return nil
}

// Costs are kept in whole coin steps so any change amount stays a
// multiple of the smallest denomination.
func validateProductCost(cost int) error {
	if cost < domain.MinProductCost || cost%domain.MinProductCost != 0 {
		return &domain.InvalidArgumentsError{Msg: fmt.Sprintf("cost must be a positive multiple of %d", domain.MinProductCost)}
	}

	return nil
}
