package file

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/DRSN-tech/cart-service/internal/domain"
	"github.com/DRSN-tech/cart-service/internal/repository/converter"
	"github.com/DRSN-tech/cart-service/pkg/e"
	"github.com/jimlawless/whereami"
)

// SnapshotRepo хранит снапшот корзины в одном JSON-файле — прямой аналог
// единственного ключа localStorage.
type SnapshotRepo struct {
	path string
}

func NewSnapshotRepo(path string) *SnapshotRepo {
	return &SnapshotRepo{path: path}
}

// Load читает снапшот. Отсутствующий файл — пустая корзина, не ошибка.
func (s *SnapshotRepo) Load(_ context.Context) ([]domain.LineItem, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
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

// Save перезаписывает снапшот целиком: запись во временный файл и атомарный
// rename, чтобы оборванная запись не повредила предыдущую версию.
func (s *SnapshotRepo) Save(_ context.Context, items []domain.LineItem) error {
	data, err := json.Marshal(converter.ToModels(items))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	tmp, err := os.CreateTemp(dir, "cart-*.json")
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
