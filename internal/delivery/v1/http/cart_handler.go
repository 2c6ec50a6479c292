package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/cart-service/internal/usecase"
	"github.com/DRSN-tech/cart-service/pkg/e"
	"github.com/DRSN-tech/cart-service/pkg/logger"
)

type CartHandler struct {
	cartUsecase usecase.CartUC
	logger      logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase, logger: logger}
}

// AddItemRequest — тело запроса на добавление товара.
// Price принимает число или строку с валютным форматированием.
type AddItemRequest struct {
	Title string `json:"title"`
	Price any    `json:"price"`
	Image string `json:"image"`
}

// CommandRequest — команда над корзиной.
// Index обязателен для increase/decrease/remove, ItemID дублирует
// идентификатор позиции для зеркалирования на витрину.
type CommandRequest struct {
	Action string `json:"action"`
	Index  *int   `json:"index"`
	ItemID string `json:"itemId"`
}

// CheckoutResponse — результат успешного оформления заказа.
type CheckoutResponse struct {
	TotalAmount float64 `json:"totalAmount"`
	ItemsCount  int     `json:"itemsCount"`
	UserID      string  `json:"userId"`
}

// CounterResponse — значение для бейджа-счетчика корзины.
type CounterResponse struct {
	TotalQuantity int `json:"totalQuantity"`
}

// getCart
//
//	@Summary		Снапшот корзины
//	@Description	Возвращает позиции корзины с промежуточным итогом и количеством
//	@Tags			cart
//	@Produce		json
//	@Success		200	{object}	CartResponse
//	@Router			/cart [get]
func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	resp := toCartResponse(h.cartUsecase.Snapshot(), h.cartUsecase.Subtotal(), h.cartUsecase.TotalQuantity())
	WriteSuccess(w, http.StatusOK, resp)
}

// addItem
//
//	@Summary		Добавление товара в корзину
//	@Description	Добавляет товар или увеличивает количество существующей позиции
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		AddItemRequest	true	"Товар"
//	@Success		201		{object}	LineItemResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/cart/items [post]
func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	info, err := h.cartUsecase.AddItem(r.Context(), usecase.NewAddItemReq(req.Title, req.Price, req.Image))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toAddedItemResponse(info))
}

// command
//
//	@Summary		Команда над корзиной
//	@Description	Выполняет increase/decrease/remove/clear/checkout
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			command	body		CommandRequest	true	"Команда"
//	@Success		200		{object}	CartResponse
//	@Failure		400		{object}	ErrorResponse	"Неизвестная команда"
//	@Failure		502		{object}	ErrorResponse	"Витрина отклонила заказ"
//	@Router			/cart/commands [post]
func (h *CartHandler) command(w http.ResponseWriter, r *http.Request) {
	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	switch usecase.Action(req.Action) {
	case usecase.ActionIncrease, usecase.ActionDecrease:
		if req.Index == nil {
			WriteError(w, e.ErrStatusBadRequest)
			return
		}
		if err := h.cartUsecase.ChangeQuantity(r.Context(), *req.Index, usecase.Action(req.Action)); err != nil {
			h.logger.Warnf("%s", err.Error())
			WriteError(w, err)
			return
		}
	case usecase.ActionRemove:
		if req.Index == nil {
			WriteError(w, e.ErrStatusBadRequest)
			return
		}
		if err := h.cartUsecase.RemoveItem(r.Context(), *req.Index); err != nil {
			h.logger.Warnf("%s", err.Error())
			WriteError(w, err)
			return
		}
	case usecase.ActionClear:
		if err := h.cartUsecase.Clear(r.Context()); err != nil {
			h.logger.Warnf("%s", err.Error())
			WriteError(w, err)
			return
		}
	case usecase.ActionCheckout:
		res, err := h.cartUsecase.Checkout(r.Context())
		if err != nil {
			h.logger.Warnf("%s", err.Error())
			WriteError(w, err)
			return
		}
		WriteSuccess(w, http.StatusOK, CheckoutResponse{
			TotalAmount: res.TotalAmount.Round(2).InexactFloat64(),
			ItemsCount:  res.ItemsCount,
			UserID:      res.UserID,
		})
		return
	default:
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrUnknownAction.Error(), req.Action)
		WriteError(w, e.ErrUnknownAction)
		return
	}

	resp := toCartResponse(h.cartUsecase.Snapshot(), h.cartUsecase.Subtotal(), h.cartUsecase.TotalQuantity())
	WriteSuccess(w, http.StatusOK, resp)
}

// counter
//
//	@Summary		Счетчик корзины
//	@Description	Суммарное количество всех позиций для бейджа
//	@Tags			cart
//	@Produce		json
//	@Success		200	{object}	CounterResponse
//	@Router			/cart/counter [get]
func (h *CartHandler) counter(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, CounterResponse{TotalQuantity: h.cartUsecase.TotalQuantity()})
}
