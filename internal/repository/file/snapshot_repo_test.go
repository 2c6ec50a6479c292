package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DRSN-tech/cart-service/internal/domain"
	"github.com/DRSN-tech/cart-service/pkg/e"
	"github.com/shopspring/decimal"
)

func TestSnapshotRepo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	repo := NewSnapshotRepo(path)

	widget := domain.NewLineItem("Widget", decimal.NewFromFloat(12.5), "/img/w.png")
	widget.Quantity = 3
	items := []domain.LineItem{
		*widget,
		*domain.NewLineItem("Gadget", decimal.NewFromFloat(9.99), "/img/g.png"),
	}

	if err := repo.Save(context.Background(), items); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].ID != "Widget_12.5" || got[0].Quantity != 3 {
		t.Errorf("unexpected first item: %+v", got[0])
	}
	if !got[1].Price.Equal(decimal.NewFromFloat(9.99)) {
		t.Errorf("price not preserved: %s", got[1].Price)
	}
}

func TestSnapshotRepo_MissingFileIsEmptyCart(t *testing.T) {
	repo := NewSnapshotRepo(filepath.Join(t.TempDir(), "missing.json"))

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if got != nil {
		t.Errorf("expected nil items, got %+v", got)
	}
}

func TestSnapshotRepo_CorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	repo := NewSnapshotRepo(path)
	if _, err := repo.Load(context.Background()); !errors.Is(err, e.ErrSnapshotCorrupted) {
		t.Errorf("expected ErrSnapshotCorrupted, got %v", err)
	}
}

func TestSnapshotRepo_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "cart.json")
	repo := NewSnapshotRepo(path)

	if err := repo.Save(context.Background(), nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("snapshot file not created: %v", err)
	}
}

func TestSnapshotRepo_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	repo := NewSnapshotRepo(path)

	items := []domain.LineItem{*domain.NewLineItem("Widget", decimal.NewFromInt(10), "/img.png")}
	if err := repo.Save(context.Background(), items); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := repo.Save(context.Background(), nil); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty snapshot, got %+v", got)
	}
}
