package usecase

import (
	"context"

	"github.com/DRSN-tech/cart-service/internal/domain"
)

// StorefrontInfra — клиент API витрины, зеркалирующий мутации корзины.
// Кроме PullCart и SubmitOrder все вызовы выполняются в фоне по принципу
// «выстрелил и забыл»: ошибка логируется и отбрасывается.
type StorefrontInfra interface {
	SyncAdd(ctx context.Context, item *domain.LineItem) error
	SyncAction(ctx context.Context, itemID string, action Action) error
	PullCart(ctx context.Context) ([]domain.LineItem, error)
	SubmitOrder(ctx context.Context, order *domain.Order) error
}

// EventProducer публикует события мутаций корзины во внешнюю шину.
type EventProducer interface {
	WriteEvent(ctx context.Context, event *CartEvent) error
}
