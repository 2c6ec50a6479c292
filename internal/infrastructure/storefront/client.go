package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/DRSN-tech/cart-service/internal/cfg"
	"github.com/DRSN-tech/cart-service/internal/domain"
	"github.com/DRSN-tech/cart-service/internal/usecase"
	"github.com/DRSN-tech/cart-service/pkg/e"
	"github.com/DRSN-tech/cart-service/pkg/logger"
)

// Client — клиент API витрины. Без состояния: каждый вызов независим,
// без повторов и idempotency-ключей. Решение о том, какие вызовы уходят
// в фон с отбрасыванием результата, принимает usecase.
type Client struct {
	httpClient *http.Client
	cfg        *cfg.StorefrontCfg
	logger     logger.Logger
}

func NewClient(cfg *cfg.StorefrontCfg, logger logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		logger:     logger,
	}
}

// syncItemModel — позиция корзины на проводе. Цена уходит числом JSON.
type syncItemModel struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

type actionModel struct {
	Action string `json:"action"`
}

type orderModel struct {
	Items       []syncItemModel `json:"items"`
	TotalAmount float64         `json:"totalAmount"`
	UserID      string          `json:"userId"`
}

// serverItemModel — позиция в ответе витрины. Цена может прийти числом или
// строкой с форматированием, поэтому разбирается через domain.ParsePrice.
type serverItemModel struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Price    any    `json:"price"`
	Image    string `json:"image"`
	Quantity int    `json:"quantity"`
}

type serverCartModel struct {
	Items []serverItemModel `json:"items"`
}

// SyncAdd зеркалирует добавление товара: POST {base}/cart.
func (c *Client) SyncAdd(ctx context.Context, item *domain.LineItem) error {
	const op = "storefront.Client.SyncAdd"

	body := syncItemModel{
		ProductID: item.ID,
		Title:     item.Title,
		Price:     item.Price.InexactFloat64(),
		Image:     item.Image,
		Quantity:  item.Quantity,
	}

	if err := c.doJSON(ctx, http.MethodPost, c.cfg.BaseURL+"/cart", body, nil); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// SyncAction зеркалирует изменение количества или удаление:
// PATCH {base}/cart/{itemId}.
func (c *Client) SyncAction(ctx context.Context, itemID string, action usecase.Action) error {
	const op = "storefront.Client.SyncAction"

	target := c.cfg.BaseURL + "/cart/" + url.PathEscape(itemID)
	if err := c.doJSON(ctx, http.MethodPatch, target, actionModel{Action: string(action)}, nil); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// PullCart забирает серверную корзину: GET {base}/cart.
// Ответ без поля items означает, что заменять локальную корзину нечем.
func (c *Client) PullCart(ctx context.Context) ([]domain.LineItem, error) {
	const op = "storefront.Client.PullCart"

	var cart serverCartModel
	if err := c.doJSON(ctx, http.MethodGet, c.cfg.BaseURL+"/cart", nil, &cart); err != nil {
		return nil, e.Wrap(op, err)
	}

	if cart.Items == nil {
		return nil, e.Wrap(op, e.ErrNoServerItems)
	}

	items := make([]domain.LineItem, 0, len(cart.Items))
	for _, model := range cart.Items {
		price := domain.ParsePrice(model.Price)

		quantity := model.Quantity
		if quantity < 1 {
			quantity = 1
		}

		id := model.ID
		if id == "" {
			id = domain.ItemID(model.Title, price)
		}

		items = append(items, domain.LineItem{
			ID:       id,
			Title:    model.Title,
			Price:    price,
			Image:    model.Image,
			Quantity: quantity,
		})
	}

	return items, nil
}

// SubmitOrder отправляет заказ: POST {base}/orders. Вызывается синхронно,
// неуспех означает, что корзину трогать нельзя.
func (c *Client) SubmitOrder(ctx context.Context, order *domain.Order) error {
	const op = "storefront.Client.SubmitOrder"

	items := make([]syncItemModel, 0, len(order.Items))
	for i := range order.Items {
		items = append(items, syncItemModel{
			ProductID: order.Items[i].ID,
			Title:     order.Items[i].Title,
			Price:     order.Items[i].Price.InexactFloat64(),
			Image:     order.Items[i].Image,
			Quantity:  order.Items[i].Quantity,
		})
	}

	body := orderModel{
		Items:       items,
		TotalAmount: order.TotalAmount.InexactFloat64(),
		UserID:      order.UserID,
	}

	if err := c.doJSON(ctx, http.MethodPost, c.cfg.BaseURL+"/orders", body, nil); err != nil {
		return e.Wrap(op, e.Wrap(err.Error(), e.ErrCheckoutFailed))
	}

	return nil
}

// doJSON выполняет один HTTP-вызов с JSON-телом и, при необходимости,
// разбирает JSON-ответ. Любой статус вне 2xx — ошибка.
func (c *Client) doJSON(ctx context.Context, method string, target string, body any, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return e.Wrap(fmt.Sprintf("%s %s: %d", method, target, resp.StatusCode), e.ErrUnexpectedCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return err
		}
	}

	return nil
}
