package domain

import "github.com/shopspring/decimal"

// LineItem описывает одну позицию корзины
type LineItem struct {
	ID       string
	Title    string
	Price    decimal.Decimal // Цена фиксируется в момент добавления в корзину
	Image    string
	Quantity int
}

func NewLineItem(title string, price decimal.Decimal, image string) *LineItem {
	return &LineItem{
		ID:       ItemID(title, price),
		Title:    title,
		Price:    price,
		Image:    image,
		Quantity: 1,
	}
}

// ItemID детерминированно выводит идентификатор позиции из названия и цены.
// Позиции с одинаковым названием и одинаковой ценой считаются одним товаром,
// поэтому разные товары с совпадающими названием и ценой сольются в одну позицию.
func ItemID(title string, price decimal.Decimal) string {
	return title + "_" + NormalizePrice(price)
}

// LineTotal возвращает стоимость позиции с учетом количества.
func (i *LineItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
