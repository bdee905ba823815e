package usecase

import (
	"errors"
	"math"
	"testing"

	"github.com/feirapp/backend/internal/domain"
	"github.com/feirapp/backend/internal/infrastructure/catalog"
)

const floatTolerance = 1e-9

func floatPtr(v float64) *float64 { return &v }

func newCostingStore(products ...domain.Product) *catalog.Store {
	store := catalog.NewStore()
	store.Replace(products)
	return store
}

func TestAppendItem(t *testing.T) {
	svc := NewCostingService(newCostingStore())

	items := svc.AppendItem()
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].Name != "" || items[0].Grams != nil {
		t.Errorf("appended item = %+v, want blank name and unset grams", items[0])
	}

	items = svc.AppendItem()
	if len(items) != 2 {
		t.Errorf("len(items) after second append = %d, want 2", len(items))
	}
}

func TestUpdateItem(t *testing.T) {
	svc := NewCostingService(newCostingStore())
	svc.AppendItem()
	svc.AppendItem()

	t.Run("updates name in place", func(t *testing.T) {
		if err := svc.UpdateName(0, "Arroz"); err != nil {
			t.Fatalf("UpdateName() error = %v", err)
		}
		items := svc.Items()
		if items[0].Name != "Arroz" {
			t.Errorf("items[0].Name = %q, want %q", items[0].Name, "Arroz")
		}
		if items[1].Name != "" {
			t.Errorf("items[1].Name = %q, must be untouched", items[1].Name)
		}
	})

	t.Run("updates grams in place", func(t *testing.T) {
		if err := svc.UpdateGrams(1, floatPtr(500)); err != nil {
			t.Fatalf("UpdateGrams() error = %v", err)
		}
		items := svc.Items()
		if items[1].Grams == nil || *items[1].Grams != 500 {
			t.Errorf("items[1].Grams = %v, want 500", items[1].Grams)
		}
		if items[0].Grams != nil {
			t.Errorf("items[0].Grams = %v, must stay unset", items[0].Grams)
		}
	})

	t.Run("nil grams returns item to unset state", func(t *testing.T) {
		if err := svc.UpdateGrams(1, nil); err != nil {
			t.Fatalf("UpdateGrams() error = %v", err)
		}
		if svc.Items()[1].Grams != nil {
			t.Error("grams must be unset after nil update")
		}
	})

	t.Run("out of range fails fast", func(t *testing.T) {
		if err := svc.UpdateName(2, "x"); !errors.Is(err, domain.ErrLineIndexOutOfRange) {
			t.Errorf("UpdateName(2) error = %v, want ErrLineIndexOutOfRange", err)
		}
		if err := svc.UpdateGrams(-1, floatPtr(1)); !errors.Is(err, domain.ErrLineIndexOutOfRange) {
			t.Errorf("UpdateGrams(-1) error = %v, want ErrLineIndexOutOfRange", err)
		}
	})
}

func TestRemoveItem(t *testing.T) {
	svc := NewCostingService(newCostingStore())
	svc.AppendItem()
	svc.AppendItem()
	svc.AppendItem()
	_ = svc.UpdateName(0, "Arroz")
	_ = svc.UpdateName(1, "Massa")
	_ = svc.UpdateName(2, "Leite")
	_ = svc.UpdateGrams(2, floatPtr(250))

	if err := svc.RemoveItem(1); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}

	items := svc.Items()
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	// Survivors keep their field values and shift down by one position.
	if items[0].Name != "Arroz" {
		t.Errorf("items[0].Name = %q, want %q", items[0].Name, "Arroz")
	}
	if items[1].Name != "Leite" || items[1].Grams == nil || *items[1].Grams != 250 {
		t.Errorf("items[1] = %+v, want Leite with 250g", items[1])
	}

	t.Run("out of range fails fast", func(t *testing.T) {
		if err := svc.RemoveItem(2); !errors.Is(err, domain.ErrLineIndexOutOfRange) {
			t.Errorf("RemoveItem(2) error = %v, want ErrLineIndexOutOfRange", err)
		}
		if err := svc.RemoveItem(-1); !errors.Is(err, domain.ErrLineIndexOutOfRange) {
			t.Errorf("RemoveItem(-1) error = %v, want ErrLineIndexOutOfRange", err)
		}
	})
}

func TestUnitPrice(t *testing.T) {
	store := newCostingStore(
		domain.Product{Name: "Arroz", Price: 1.20, Market: "A"},
		domain.Product{Name: "Arroz", Price: 0.99, Market: "B"},
	)
	svc := NewCostingService(store)

	t.Run("delegates cheapest-match lookup", func(t *testing.T) {
		product, ok := svc.UnitPrice(domain.LineItem{Name: "arroz"})
		if !ok {
			t.Fatal("expected a match")
		}
		if product.Price != 0.99 || product.Market != "B" {
			t.Errorf("product = %+v, want the 0.99 entry", product)
		}
	})

	t.Run("unmatched ingredient misses", func(t *testing.T) {
		if _, ok := svc.UnitPrice(domain.LineItem{Name: "Feijão"}); ok {
			t.Error("expected no match")
		}
	})
}

func TestLineCost(t *testing.T) {
	store := newCostingStore(domain.Product{Name: "Arroz", Price: 2.00})
	svc := NewCostingService(store)

	t.Run("converts grams to the price basis", func(t *testing.T) {
		cost, ok := svc.LineCost(domain.LineItem{Name: "Arroz", Grams: floatPtr(500)})
		if !ok {
			t.Fatal("expected a computable cost")
		}
		if math.Abs(cost-1.00) > floatTolerance {
			t.Errorf("cost = %v, want 1.00", cost)
		}
	})

	t.Run("unset grams is not computable", func(t *testing.T) {
		if _, ok := svc.LineCost(domain.LineItem{Name: "Arroz"}); ok {
			t.Error("unset quantity must not be computable")
		}
	})

	t.Run("unmatched ingredient is not computable", func(t *testing.T) {
		if _, ok := svc.LineCost(domain.LineItem{Name: "Feijão", Grams: floatPtr(500)}); ok {
			t.Error("unmatched ingredient must not be computable")
		}
	})
}

func TestTotals(t *testing.T) {
	store := newCostingStore(
		domain.Product{Name: "Arroz", Price: 2.00},
		domain.Product{Name: "Leite", Price: 0.95},
	)
	svc := NewCostingService(store)

	svc.AppendItem()
	_ = svc.UpdateName(0, "Arroz")
	_ = svc.UpdateGrams(0, floatPtr(500))

	t.Run("single item scenario", func(t *testing.T) {
		if got := svc.RawTotal(); math.Abs(got-1.00) > floatTolerance {
			t.Errorf("RawTotal() = %v, want 1.00", got)
		}
		if got := svc.WasteAdjustedTotal(); math.Abs(got-1.20) > floatTolerance {
			t.Errorf("WasteAdjustedTotal() = %v, want 1.20", got)
		}
		if got := svc.SuggestedPrice(); math.Abs(got-3.60) > floatTolerance {
			t.Errorf("SuggestedPrice() = %v, want 3.60", got)
		}
	})

	t.Run("non-computable lines contribute zero without aborting", func(t *testing.T) {
		svc.AppendItem() // blank line: no name, no grams
		svc.AppendItem()
		_ = svc.UpdateName(2, "Feijão") // never in the catalog
		_ = svc.UpdateGrams(2, floatPtr(1000))

		if got := svc.RawTotal(); math.Abs(got-1.00) > floatTolerance {
			t.Errorf("RawTotal() = %v, want 1.00", got)
		}
	})

	t.Run("totals hold the fixed factors", func(t *testing.T) {
		svc.AppendItem()
		_ = svc.UpdateName(3, "Leite")
		_ = svc.UpdateGrams(3, floatPtr(330))

		raw := svc.RawTotal()
		if got := svc.WasteAdjustedTotal(); math.Abs(got-raw*1.2) > floatTolerance {
			t.Errorf("WasteAdjustedTotal() = %v, want raw*1.2 = %v", got, raw*1.2)
		}
		if got := svc.SuggestedPrice(); math.Abs(got-raw*1.2*3) > floatTolerance {
			t.Errorf("SuggestedPrice() = %v, want raw*1.2*3 = %v", got, raw*1.2*3)
		}
	})

	t.Run("empty list totals are zero", func(t *testing.T) {
		empty := NewCostingService(store)
		if got := empty.RawTotal(); got != 0 {
			t.Errorf("RawTotal() = %v, want 0", got)
		}
		if got := empty.SuggestedPrice(); got != 0 {
			t.Errorf("SuggestedPrice() = %v, want 0", got)
		}
	})
}

func TestCostingDegradesOnEmptyCatalog(t *testing.T) {
	svc := NewCostingService(catalog.NewStore())
	svc.AppendItem()
	_ = svc.UpdateName(0, "Arroz")
	_ = svc.UpdateGrams(0, floatPtr(500))

	if _, ok := svc.UnitPrice(svc.Items()[0]); ok {
		t.Error("empty catalog must miss, not fail")
	}
	if got := svc.RawTotal(); got != 0 {
		t.Errorf("RawTotal() = %v, want 0 while the feed is unavailable", got)
	}
}
