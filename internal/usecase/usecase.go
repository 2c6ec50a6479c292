package usecase

import (
	"context"

	"github.com/DRSN-tech/cart-service/internal/domain"
	"github.com/shopspring/decimal"
)

type CartUC interface {
	AddItem(ctx context.Context, req *AddItemReq) (*LineItemInfo, error)
	ChangeQuantity(ctx context.Context, index int, action Action) error
	RemoveItem(ctx context.Context, index int) error
	Clear(ctx context.Context) error
	Checkout(ctx context.Context) (*CheckoutRes, error)
	Refresh(ctx context.Context) error
	Snapshot() []domain.LineItem
	Subtotal() decimal.Decimal
	TotalQuantity() int
}
