package http

import (
	"html/template"

	"github.com/DRSN-tech/cart-service/internal/domain"
	"github.com/shopspring/decimal"
)

// CartRowView — строка корзины, подготовленная к отображению.
type CartRowView struct {
	Index     int
	ID        string
	Title     string
	Image     string
	UnitPrice string
	Quantity  int
	LineTotal string
}

// NoticeView — уведомление «добавлено в корзину».
type NoticeView struct {
	Title string
	Image string
}

// CartPageView — модель страницы корзины. Summary и footer скрываются
// при пустой корзине.
type CartPageView struct {
	Items         []CartRowView
	Empty         bool
	Subtotal      string
	TotalQuantity int
	Notice        *NoticeView
	Error         string
}

func buildCartPageView(items []domain.LineItem, subtotal decimal.Decimal, totalQuantity int, notice *NoticeView, errMsg string) *CartPageView {
	rows := make([]CartRowView, 0, len(items))
	for i := range items {
		rows = append(rows, CartRowView{
			Index:     i,
			ID:        items[i].ID,
			Title:     items[i].Title,
			Image:     items[i].Image,
			UnitPrice: "$" + items[i].Price.StringFixed(2),
			Quantity:  items[i].Quantity,
			LineTotal: "$" + items[i].LineTotal().StringFixed(2),
		})
	}

	return &CartPageView{
		Items:         rows,
		Empty:         len(rows) == 0,
		Subtotal:      "$" + subtotal.StringFixed(2),
		TotalQuantity: totalQuantity,
		Notice:        notice,
		Error:         errMsg,
	}
}

var cartPageTemplate = template.Must(template.New("cart").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8">
	<title>Your Cart</title>
</head>
<body>
	<header>
		<a href="/cart" class="cart-counter">Cart{{if gt .TotalQuantity 0}} ({{.TotalQuantity}}){{end}}</a>
	</header>

	{{if .Notice}}
	<div class="cart-notification">
		<img src="{{.Notice.Image}}" alt="{{.Notice.Title}}" class="notification-image">
		<div class="notification-text">
			<p>Added to Cart</p>
			<h4>{{.Notice.Title}}</h4>
		</div>
	</div>
	{{end}}

	{{if .Error}}
	<div class="cart-error">{{.Error}}</div>
	{{end}}

	<main id="cart-root">
		<div id="cart-items">
		{{if .Empty}}
			<div class="empty-cart">Your cart is empty.</div>
		{{else}}
			{{range .Items}}
			<div class="cart-item">
				<div class="cart-item-image">
					<img src="{{.Image}}" alt="{{.Title}}">
				</div>
				<div class="cart-item-details">
					<h3 class="cart-item-title">{{.Title}}</h3>
					<p class="cart-item-price">{{.UnitPrice}}</p>
				</div>
				<div class="quantity-controls">
					<form method="post" action="/cart/commands">
						<input type="hidden" name="action" value="decrease">
						<input type="hidden" name="index" value="{{.Index}}">
						<input type="hidden" name="id" value="{{.ID}}">
						<button class="quantity-btn decrease-btn">-</button>
					</form>
					<span class="item-quantity">{{.Quantity}}</span>
					<form method="post" action="/cart/commands">
						<input type="hidden" name="action" value="increase">
						<input type="hidden" name="index" value="{{.Index}}">
						<input type="hidden" name="id" value="{{.ID}}">
						<button class="quantity-btn increase-btn">+</button>
					</form>
				</div>
				<div class="item-price-total">{{.LineTotal}}</div>
				<form method="post" action="/cart/commands">
					<input type="hidden" name="action" value="remove">
					<input type="hidden" name="index" value="{{.Index}}">
					<input type="hidden" name="id" value="{{.ID}}">
					<button class="remove-item">Remove</button>
				</form>
			</div>
			{{end}}
		{{end}}
		</div>

		{{if not .Empty}}
		<footer id="cart-footer">
			<div id="cart-summary">Subtotal: <strong>{{.Subtotal}}</strong></div>
			<form method="post" action="/cart/commands">
				<input type="hidden" name="action" value="checkout">
				<button class="checkout">Checkout</button>
			</form>
		</footer>
		{{end}}
	</main>
</body>
</html>
`))

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8">
	<title>Order Confirmation</title>
</head>
<body>
	<main>
		<h1>Thank you for your order!</h1>
		<p>Your order has been placed.</p>
		<a href="/cart">Back to cart</a>
	</main>
</body>
</html>
`))
