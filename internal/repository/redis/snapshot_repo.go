package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/DRSN-tech/cart-service/internal/cfg"
	"github.com/DRSN-tech/cart-service/internal/domain"
	"github.com/DRSN-tech/cart-service/internal/repository/converter"
	"github.com/DRSN-tech/cart-service/pkg/clients"
	"github.com/DRSN-tech/cart-service/pkg/e"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// SnapshotRepo хранит снапшот корзины под одним Redis-ключом без TTL:
// снапшот долговечен, а не кэш.
type SnapshotRepo struct {
	client *clients.RedisClient
	cfg    *cfg.StorageCfg
}

func NewSnapshotRepo(client *clients.RedisClient, cfg *cfg.StorageCfg) *SnapshotRepo {
	return &SnapshotRepo{
		client: client,
		cfg:    cfg,
	}
}

// Load читает снапшот. Отсутствующий ключ — пустая корзина, не ошибка.
func (s *SnapshotRepo) Load(ctx context.Context) ([]domain.LineItem, error) {
	data, err := s.client.Client.Get(ctx, s.cfg.Key).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var models []converter.LineItemModel
	if err := json.Unmarshal(data, &models); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrSnapshotCorrupted)
	}

	return converter.ToEntities(models)
}

// Save перезаписывает снапшот целиком.
func (s *SnapshotRepo) Save(ctx context.Context, items []domain.LineItem) error {
	data, err := json.Marshal(converter.ToModels(items))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := s.client.Client.Set(ctx, s.cfg.Key, data, 0).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
