package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DRSN-tech/cart-service/internal/domain"
	"github.com/DRSN-tech/cart-service/internal/usecase"
	"github.com/DRSN-tech/cart-service/pkg/e"
	"github.com/shopspring/decimal"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

// Stub CartUC
type stubCartUC struct {
	items       []domain.LineItem
	addRes      *usecase.LineItemInfo
	addErr      error
	changeErr   error
	checkoutRes *usecase.CheckoutRes
	checkoutErr error

	gotAdd    *usecase.AddItemReq
	gotIndex  int
	gotAction usecase.Action
	cleared   bool
}

func (s *stubCartUC) AddItem(ctx context.Context, req *usecase.AddItemReq) (*usecase.LineItemInfo, error) {
	s.gotAdd = req
	return s.addRes, s.addErr
}

func (s *stubCartUC) ChangeQuantity(ctx context.Context, index int, action usecase.Action) error {
	s.gotIndex = index
	s.gotAction = action
	return s.changeErr
}

func (s *stubCartUC) RemoveItem(ctx context.Context, index int) error {
	s.gotIndex = index
	s.gotAction = usecase.ActionRemove
	return s.changeErr
}

func (s *stubCartUC) Clear(ctx context.Context) error {
	s.cleared = true
	return s.changeErr
}

func (s *stubCartUC) Checkout(ctx context.Context) (*usecase.CheckoutRes, error) {
	return s.checkoutRes, s.checkoutErr
}

func (s *stubCartUC) Refresh(ctx context.Context) error { return nil }

func (s *stubCartUC) Snapshot() []domain.LineItem { return s.items }

func (s *stubCartUC) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for i := range s.items {
		total = total.Add(s.items[i].LineTotal())
	}
	return total
}

func (s *stubCartUC) TotalQuantity() int {
	total := 0
	for i := range s.items {
		total += s.items[i].Quantity
	}
	return total
}

func newHandler(uc usecase.CartUC) *CartHandler {
	return NewCartHandler(uc, nopLogger{})
}

func TestGetCart(t *testing.T) {
	widget := domain.NewLineItem("Widget", decimal.NewFromFloat(12.5), "/img/w.png")
	widget.Quantity = 2
	uc := &stubCartUC{items: []domain.LineItem{*widget}}

	rec := httptest.NewRecorder()
	newHandler(uc).getCart(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp CartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].ID != "Widget_12.5" {
		t.Errorf("unexpected items: %+v", resp.Items)
	}
	if resp.Subtotal != 25 || resp.TotalQuantity != 2 {
		t.Errorf("subtotal=%v totalQuantity=%d", resp.Subtotal, resp.TotalQuantity)
	}
}

func TestAddItem_Created(t *testing.T) {
	uc := &stubCartUC{
		addRes: &usecase.LineItemInfo{
			ID:       "Widget_12.5",
			Title:    "Widget",
			Price:    decimal.NewFromFloat(12.5),
			Image:    "/img/w.png",
			Quantity: 1,
		},
	}

	body := `{"title":"Widget","price":"$12.50","image":"/img/w.png"}`
	rec := httptest.NewRecorder()
	newHandler(uc).addItem(rec, httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if uc.gotAdd == nil || uc.gotAdd.Title != "Widget" || uc.gotAdd.Price != "$12.50" {
		t.Errorf("request not passed through: %+v", uc.gotAdd)
	}

	var resp LineItemResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.ID != "Widget_12.5" || resp.Price != 12.5 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestAddItem_ValidationError(t *testing.T) {
	uc := &stubCartUC{addErr: e.ErrTitleRequired}

	rec := httptest.NewRecorder()
	body := `{"title":"","price":10,"image":"/img.png"}`
	newHandler(uc).addItem(rec, httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAddItem_MalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(&stubCartUC{}).addItem(rec, httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader("{broken")))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCommand_Increase(t *testing.T) {
	uc := &stubCartUC{}

	body := `{"action":"increase","index":1,"itemId":"Widget_12.5"}`
	rec := httptest.NewRecorder()
	newHandler(uc).command(rec, httptest.NewRequest(http.MethodPost, "/api/v1/cart/commands", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if uc.gotIndex != 1 || uc.gotAction != usecase.ActionIncrease {
		t.Errorf("command not passed through: index=%d action=%s", uc.gotIndex, uc.gotAction)
	}
}

func TestCommand_IndexRequired(t *testing.T) {
	for _, action := range []string{"increase", "decrease", "remove"} {
		t.Run(action, func(t *testing.T) {
			rec := httptest.NewRecorder()
			body := `{"action":"` + action + `"}`
			newHandler(&stubCartUC{}).command(rec, httptest.NewRequest(http.MethodPost, "/api/v1/cart/commands", strings.NewReader(body)))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestCommand_Clear(t *testing.T) {
	uc := &stubCartUC{}

	rec := httptest.NewRecorder()
	newHandler(uc).command(rec, httptest.NewRequest(http.MethodPost, "/api/v1/cart/commands", strings.NewReader(`{"action":"clear"}`)))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !uc.cleared {
		t.Error("clear not called")
	}
}

func TestCommand_CheckoutSuccess(t *testing.T) {
	uc := &stubCartUC{
		checkoutRes: usecase.NewCheckoutRes(decimal.NewFromFloat(29.97), 3, "user-1"),
	}

	rec := httptest.NewRecorder()
	newHandler(uc).command(rec, httptest.NewRequest(http.MethodPost, "/api/v1/cart/commands", strings.NewReader(`{"action":"checkout"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp CheckoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.TotalAmount != 29.97 || resp.ItemsCount != 3 || resp.UserID != "user-1" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestCommand_CheckoutFailure(t *testing.T) {
	uc := &stubCartUC{checkoutErr: e.ErrCheckoutFailed}

	rec := httptest.NewRecorder()
	newHandler(uc).command(rec, httptest.NewRequest(http.MethodPost, "/api/v1/cart/commands", strings.NewReader(`{"action":"checkout"}`)))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestCommand_UnknownAction(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(&stubCartUC{}).command(rec, httptest.NewRequest(http.MethodPost, "/api/v1/cart/commands", strings.NewReader(`{"action":"explode"}`)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Message != e.ErrUnknownAction.Error() {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestCounter(t *testing.T) {
	widget := domain.NewLineItem("Widget", decimal.NewFromInt(10), "/img.png")
	widget.Quantity = 5
	uc := &stubCartUC{items: []domain.LineItem{*widget}}

	rec := httptest.NewRecorder()
	newHandler(uc).counter(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart/counter", nil))

	var resp CounterResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.TotalQuantity != 5 {
		t.Errorf("TotalQuantity = %d, want 5", resp.TotalQuantity)
	}
}
