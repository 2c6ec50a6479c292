package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/DRSN-tech/cart-service/internal/domain"
	"github.com/DRSN-tech/cart-service/internal/repository/converter"
	"github.com/DRSN-tech/cart-service/pkg/e"
	"github.com/jimlawless/whereami"
	_ "modernc.org/sqlite"
)

// SnapshotRepo хранит снапшот корзины одной строкой key/value в локальной
// SQLite-базе.
type SnapshotRepo struct {
	db  *sql.DB
	key string
}

func NewSnapshotRepo(ctx context.Context, path string, key string) (*SnapshotRepo, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS cart_snapshots (
			key        TEXT PRIMARY KEY,
			payload    BLOB NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &SnapshotRepo{db: db, key: key}, nil
}

// Load читает снапшот. Отсутствующая строка — пустая корзина, не ошибка.
func (s *SnapshotRepo) Load(ctx context.Context) ([]domain.LineItem, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM cart_snapshots WHERE key = ?`, s.key,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var models []converter.LineItemModel
	if err := json.Unmarshal(payload, &models); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrSnapshotCorrupted)
	}

	return converter.ToEntities(models)
}

// Save перезаписывает снапшот целиком через upsert по ключу.
func (s *SnapshotRepo) Save(ctx context.Context, items []domain.LineItem) error {
	payload, err := json.Marshal(converter.ToModels(items))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO cart_snapshots (key, payload)
		VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET
			payload = excluded.payload,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now')
	`
	if _, err := s.db.ExecContext(ctx, query, s.key, payload); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (s *SnapshotRepo) Close() error {
	return s.db.Close()
}
