package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DRSN-tech/cart-service/internal/domain"
	"github.com/DRSN-tech/cart-service/internal/usecase"
	"github.com/DRSN-tech/cart-service/pkg/e"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrTitleRequired):
		return http.StatusBadRequest, e.ErrTitleRequired.Error()
	case errors.Is(err, e.ErrImageRequired):
		return http.StatusBadRequest, e.ErrImageRequired.Error()
	case errors.Is(err, e.ErrPriceMustBePositive):
		return http.StatusBadRequest, e.ErrPriceMustBePositive.Error()
	case errors.Is(err, e.ErrUnknownAction):
		return http.StatusBadRequest, e.ErrUnknownAction.Error()
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrCheckoutFailed):
		return http.StatusBadGateway, e.ErrCheckoutFailed.Error()
	case errors.Is(err, e.ErrUnexpectedCode):
		return http.StatusBadGateway, e.ErrCheckoutFailed.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// LineItemResponse — позиция корзины в JSON-ответе API.
type LineItemResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"lineTotal"`
}

// CartResponse — снапшот корзины с производными суммами.
// Subtotal округлен до 2 знаков только для отображения.
type CartResponse struct {
	Items         []LineItemResponse `json:"items"`
	Subtotal      float64            `json:"subtotal"`
	TotalQuantity int                `json:"totalQuantity"`
}

func toLineItemResponse(item *domain.LineItem) LineItemResponse {
	return LineItemResponse{
		ID:        item.ID,
		Title:     item.Title,
		Price:     item.Price.InexactFloat64(),
		Image:     item.Image,
		Quantity:  item.Quantity,
		LineTotal: item.LineTotal().Round(2).InexactFloat64(),
	}
}

func toCartResponse(items []domain.LineItem, subtotal decimal.Decimal, totalQuantity int) *CartResponse {
	rows := make([]LineItemResponse, 0, len(items))
	for i := range items {
		rows = append(rows, toLineItemResponse(&items[i]))
	}

	return &CartResponse{
		Items:         rows,
		Subtotal:      subtotal.Round(2).InexactFloat64(),
		TotalQuantity: totalQuantity,
	}
}

func toAddedItemResponse(info *usecase.LineItemInfo) LineItemResponse {
	item := domain.LineItem{
		ID:       info.ID,
		Title:    info.Title,
		Price:    info.Price,
		Image:    info.Image,
		Quantity: info.Quantity,
	}
	return toLineItemResponse(&item)
}
