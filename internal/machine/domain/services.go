package domain

import "context"

// The transaction engine surface, split per operation so handlers can
// depend on exactly what they call.

type Depositor interface {
	Deposit(ctx context.Context, buyerID, rawCoinValue int) (DepositReceipt, error)
}

type Purchaser interface {
	Buy(ctx context.Context, buyerID, productID, quantity int) (PurchaseReceipt, error)
}

type Resetter interface {
	Reset(ctx context.Context, buyerID int) (ResetReceipt, error)
}

type Authenticator interface {
	Register(ctx context.Context, username, password, role string) (UserProfile, error)
	Login(ctx context.Context, username, password string) (string, error)
}

type UserInfoProvider interface {
	GetUserInfo(ctx context.Context, userID int) (UserProfile, error)
}

type ProductManager interface {
	CreateProduct(ctx context.Context, sellerID int, product NewProduct) (Product, error)
	GetProduct(ctx context.Context, productID int) (Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	UpdateProduct(ctx context.Context, sellerID, productID int, update ProductUpdate) (Product, error)
	DeleteProduct(ctx context.Context, sellerID, productID int) error
}
