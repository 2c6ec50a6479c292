package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/DRSN-tech/cart-service/internal/usecase"
	"github.com/DRSN-tech/cart-service/pkg/logger"
)

const (
	noticeCookie = "cart_notice"
	errorCookie  = "cart_error"

	// Столько живет уведомление «добавлено в корзину»
	noticeTTL = 4 * time.Second
)

// PageHandler отдает серверно отрендеренную страницу корзины и переводит
// действия форм в команды над корзиной.
type PageHandler struct {
	cartUsecase    usecase.CartUC
	logger         logger.Logger
	refreshTimeout time.Duration
}

func NewPageHandler(cartUsecase usecase.CartUC, logger logger.Logger, refreshTimeout time.Duration) *PageHandler {
	return &PageHandler{
		cartUsecase:    cartUsecase,
		logger:         logger,
		refreshTimeout: refreshTimeout,
	}
}

// cartPage рендерит корзину из локального состояния и запускает фоновый
// pull с витрины: страница всегда показывается сразу, серверная версия
// корзины появится при следующем открытии.
func (h *PageHandler) cartPage(w http.ResponseWriter, r *http.Request) {
	notice := h.readNotice(w, r)
	errMsg := h.readError(w, r)

	view := buildCartPageView(
		h.cartUsecase.Snapshot(),
		h.cartUsecase.Subtotal(),
		h.cartUsecase.TotalQuantity(),
		notice,
		errMsg,
	)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := cartPageTemplate.Execute(w, view); err != nil {
		h.logger.Warnf("failed to render cart page: %v", err)
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), h.refreshTimeout)
		defer cancel()

		if err := h.cartUsecase.Refresh(bgCtx); err != nil {
			h.logger.Warnf("background cart pull failed: %v", err)
		}
	}()
}

func (h *PageHandler) orderConfirmation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := confirmationTemplate.Execute(w, nil); err != nil {
		h.logger.Warnf("failed to render confirmation page: %v", err)
	}
}

// addItem обрабатывает форму добавления товара со страницы каталога.
func (h *PageHandler) addItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithError(w, r, "bad form data")
		return
	}

	req := usecase.NewAddItemReq(r.FormValue("title"), r.FormValue("price"), r.FormValue("image"))
	info, err := h.cartUsecase.AddItem(r.Context(), req)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		_, msg := ToHTTPResponse(err)
		h.redirectWithError(w, r, msg)
		return
	}

	h.setNotice(w, &NoticeView{Title: info.Title, Image: info.Image})
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// command выполняет команду формы со страницы корзины.
func (h *PageHandler) command(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithError(w, r, "bad form data")
		return
	}

	action := usecase.Action(r.FormValue("action"))
	switch action {
	case usecase.ActionIncrease, usecase.ActionDecrease, usecase.ActionRemove:
		index, err := strconv.Atoi(r.FormValue("index"))
		if err != nil {
			// Нечисловой индекс игнорируется, как и клик мимо кнопки
			http.Redirect(w, r, "/cart", http.StatusSeeOther)
			return
		}

		if action == usecase.ActionRemove {
			err = h.cartUsecase.RemoveItem(r.Context(), index)
		} else {
			err = h.cartUsecase.ChangeQuantity(r.Context(), index, action)
		}
		if err != nil {
			h.logger.Warnf("%s", err.Error())
			_, msg := ToHTTPResponse(err)
			h.redirectWithError(w, r, msg)
			return
		}

	case usecase.ActionClear:
		if err := h.cartUsecase.Clear(r.Context()); err != nil {
			h.logger.Warnf("%s", err.Error())
			_, msg := ToHTTPResponse(err)
			h.redirectWithError(w, r, msg)
			return
		}

	case usecase.ActionCheckout:
		if _, err := h.cartUsecase.Checkout(r.Context()); err != nil {
			h.logger.Warnf("%s", err.Error())
			// Корзина сохранена для повторной попытки
			h.redirectWithError(w, r, "Checkout failed. Please try again.")
			return
		}
		http.Redirect(w, r, "/order-confirmation", http.StatusSeeOther)
		return

	default:
		h.redirectWithError(w, r, "unknown cart action")
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *PageHandler) setNotice(w http.ResponseWriter, notice *NoticeView) {
	data, err := json.Marshal(notice)
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     noticeCookie,
		Value:    base64.URLEncoding.EncodeToString(data),
		Path:     "/cart",
		MaxAge:   int(noticeTTL.Seconds()),
		HttpOnly: true,
	})
}

// readNotice читает и гасит уведомление, чтобы оно показалось один раз.
func (h *PageHandler) readNotice(w http.ResponseWriter, r *http.Request) *NoticeView {
	cookie, err := r.Cookie(noticeCookie)
	if err != nil {
		return nil
	}

	expireCookie(w, noticeCookie)

	data, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var notice NoticeView
	if err := json.Unmarshal(data, &notice); err != nil {
		return nil
	}
	if notice.Title == "" || notice.Image == "" {
		return nil
	}

	return &notice
}

func (h *PageHandler) redirectWithError(w http.ResponseWriter, r *http.Request, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     errorCookie,
		Value:    base64.URLEncoding.EncodeToString([]byte(msg)),
		Path:     "/cart",
		MaxAge:   int(noticeTTL.Seconds()),
		HttpOnly: true,
	})
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *PageHandler) readError(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(errorCookie)
	if err != nil {
		return ""
	}

	expireCookie(w, errorCookie)

	data, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}

	return string(data)
}

func expireCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/cart",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
