package usecase

import (
	"time"

	"github.com/DRSN-tech/cart-service/internal/domain"
	"github.com/shopspring/decimal"
)

// CART USECASE

// Action — команда над корзиной, приходящая из слоя доставки.
type Action string

const (
	ActionAdd      Action = "add"
	ActionIncrease Action = "increase"
	ActionDecrease Action = "decrease"
	ActionRemove   Action = "remove"
	ActionClear    Action = "clear"
	ActionCheckout Action = "checkout"
)

// AddItemReq — запрос на добавление товара в корзину.
// Price принимает число или строку с валютным форматированием ("$1,299.99").
type AddItemReq struct {
	Title string
	Price any
	Image string
}

// LineItemInfo — DTO позиции корзины для внешнего использования.
type LineItemInfo struct {
	ID       string
	Title    string
	Price    decimal.Decimal
	Image    string
	Quantity int
}

// CheckoutRes — результат успешного оформления заказа.
type CheckoutRes struct {
	TotalAmount decimal.Decimal
	ItemsCount  int
	UserID      string
}

// INFRASTRUCTURE

// CartEvent — событие мутации корзины для зеркалирования во внешнюю шину.
type CartEvent struct {
	Action   Action
	ItemID   string
	Title    string
	Quantity int
	At       time.Time
}

// MAPPERS

func NewAddItemReq(title string, price any, image string) *AddItemReq {
	return &AddItemReq{
		Title: title,
		Price: price,
		Image: image,
	}
}

func NewLineItemInfo(item *domain.LineItem) *LineItemInfo {
	return &LineItemInfo{
		ID:       item.ID,
		Title:    item.Title,
		Price:    item.Price,
		Image:    item.Image,
		Quantity: item.Quantity,
	}
}

func NewCheckoutRes(totalAmount decimal.Decimal, itemsCount int, userID string) *CheckoutRes {
	return &CheckoutRes{
		TotalAmount: totalAmount,
		ItemsCount:  itemsCount,
		UserID:      userID,
	}
}

func NewCartEvent(action Action, itemID string, title string, quantity int) *CartEvent {
	return &CartEvent{
		Action:   action,
		ItemID:   itemID,
		Title:    title,
		Quantity: quantity,
		At:       time.Now().UTC(),
	}
}
