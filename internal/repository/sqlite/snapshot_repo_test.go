package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/DRSN-tech/cart-service/internal/domain"
	"github.com/shopspring/decimal"
)

func newTestRepo(t *testing.T) *SnapshotRepo {
	t.Helper()

	repo, err := NewSnapshotRepo(context.Background(), filepath.Join(t.TempDir(), "cart.db"), "cart")
	if err != nil {
		t.Fatalf("failed to open sqlite repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	return repo
}

func TestSnapshotRepo_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	widget := domain.NewLineItem("Widget", decimal.NewFromFloat(12.5), "/img/w.png")
	widget.Quantity = 2
	items := []domain.LineItem{*widget}

	if err := repo.Save(context.Background(), items); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "Widget_12.5" || got[0].Quantity != 2 {
		t.Errorf("unexpected items: %+v", got)
	}
}

func TestSnapshotRepo_EmptyDatabase(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("expected no error for missing row, got %v", err)
	}
	if got != nil {
		t.Errorf("expected nil items, got %+v", got)
	}
}

func TestSnapshotRepo_UpsertOverwrites(t *testing.T) {
	repo := newTestRepo(t)

	first := []domain.LineItem{*domain.NewLineItem("Widget", decimal.NewFromInt(10), "/img.png")}
	if err := repo.Save(context.Background(), first); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	second := []domain.LineItem{
		*domain.NewLineItem("Gadget", decimal.NewFromInt(5), "/img/g.png"),
		*domain.NewLineItem("Widget", decimal.NewFromInt(10), "/img.png"),
	}
	if err := repo.Save(context.Background(), second); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != 2 || got[0].Title != "Gadget" {
		t.Errorf("snapshot not overwritten: %+v", got)
	}
}
