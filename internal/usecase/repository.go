package usecase

import (
	"context"

	"github.com/DRSN-tech/cart-service/internal/domain"
)

// SnapshotRepository хранит корзину целиком под одним ключом.
// Каждая мутация перезаписывает снапшот полностью; отсутствие сохраненных
// данных трактуется как пустая корзина, а не как ошибка.
type SnapshotRepository interface {
	Load(ctx context.Context) ([]domain.LineItem, error)
	Save(ctx context.Context, items []domain.LineItem) error
}
