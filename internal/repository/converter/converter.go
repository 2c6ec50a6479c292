package converter

import (
	"github.com/DRSN-tech/cart-service/internal/domain"
	"github.com/DRSN-tech/cart-service/pkg/e"
	"github.com/shopspring/decimal"
)

// ToModels переводит доменные позиции в сериализуемую форму снапшота.
func ToModels(items []domain.LineItem) []LineItemModel {
	models := make([]LineItemModel, 0, len(items))
	for i := range items {
		models = append(models, LineItemModel{
			ID:       items[i].ID,
			Title:    items[i].Title,
			Price:    items[i].Price.String(),
			Image:    items[i].Image,
			Quantity: items[i].Quantity,
		})
	}

	return models
}

// ToEntities восстанавливает доменные позиции из снапшота.
// Нечитаемая цена означает поврежденный снапшот.
func ToEntities(models []LineItemModel) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(models))
	for i := range models {
		price, err := decimal.NewFromString(models[i].Price)
		if err != nil {
			return nil, e.Wrap(models[i].ID, e.ErrSnapshotCorrupted)
		}

		items = append(items, domain.LineItem{
			ID:       models[i].ID,
			Title:    models[i].Title,
			Price:    price,
			Image:    models[i].Image,
			Quantity: models[i].Quantity,
		})
	}

	return items, nil
}
