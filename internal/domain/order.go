package domain

import "github.com/shopspring/decimal"

// Order описывает заявку на оформление заказа из текущей корзины.
type Order struct {
	Items       []LineItem
	TotalAmount decimal.Decimal
	UserID      string
}

func NewOrder(items []LineItem, totalAmount decimal.Decimal, userID string) *Order {
	return &Order{
		Items:       items,
		TotalAmount: totalAmount,
		UserID:      userID,
	}
}
