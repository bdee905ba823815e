package usecase

import (
	"fmt"
	"sync"

	"github.com/feirapp/backend/internal/domain"
)

// Cost model constants. Catalog prices are currency per kilogram (or per
// litre) and quantities are grams (or millilitres), so dividing by 1000
// converts a quantity to the price's unit basis.
const (
	gramsPerPriceUnit = 1000.0
	wasteFactor       = 1.2 // 20% preparation-waste buffer
	markupMultiplier  = 3.0 // resale markup over the waste-adjusted cost
)

// CostingService maintains the ordered recipe line-item list and prices it
// against the catalog. Line items are immutable values: every mutation
// replaces the slice instead of assigning through to a shared row, so
// readers never observe a half-edited item.
type CostingService struct {
	catalog domain.CatalogRepository

	mutex sync.Mutex
	items []domain.LineItem
}

// NewCostingService creates a costing service with an empty line-item list.
func NewCostingService(catalog domain.CatalogRepository) *CostingService {
	return &CostingService{catalog: catalog}
}

// Items returns a copy of the current line items in order.
func (s *CostingService) Items() []domain.LineItem {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.snapshot()
}

// snapshot copies the item slice; callers must hold the mutex.
func (s *CostingService) snapshot() []domain.LineItem {
	copied := make([]domain.LineItem, len(s.items))
	copy(copied, s.items)
	return copied
}

// AppendItem adds a blank line item (empty name, unset quantity) to the end
// of the list and returns the new list.
func (s *CostingService) AppendItem() []domain.LineItem {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	next := make([]domain.LineItem, 0, len(s.items)+1)
	next = append(next, s.items...)
	next = append(next, domain.LineItem{})
	s.items = next
	return s.snapshot()
}

// RemoveItem deletes the line item at index; later items shift down one
// position. An invalid index is a caller bug, not a user state, and fails
// fast with domain.ErrLineIndexOutOfRange.
func (s *CostingService) RemoveItem(index int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("%w: %d", domain.ErrLineIndexOutOfRange, index)
	}

	next := make([]domain.LineItem, 0, len(s.items)-1)
	next = append(next, s.items[:index]...)
	next = append(next, s.items[index+1:]...)
	s.items = next
	return nil
}

// UpdateName replaces the ingredient name of the item at index.
func (s *CostingService) UpdateName(index int, name string) error {
	return s.update(index, func(item domain.LineItem) domain.LineItem {
		item.Name = name
		return item
	})
}

// UpdateGrams replaces the quantity of the item at index. A nil quantity
// returns the item to the "not yet computable" state.
func (s *CostingService) UpdateGrams(index int, grams *float64) error {
	return s.update(index, func(item domain.LineItem) domain.LineItem {
		item.Grams = grams
		return item
	})
}

func (s *CostingService) update(index int, apply func(domain.LineItem) domain.LineItem) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("%w: %d", domain.ErrLineIndexOutOfRange, index)
	}

	next := s.snapshot()
	next[index] = apply(next[index])
	s.items = next
	return nil
}

// UnitPrice returns the cheapest catalog entry whose name matches the
// item's ingredient name, delegating the tie-break to the catalog.
func (s *CostingService) UnitPrice(item domain.LineItem) (domain.Product, bool) {
	return s.catalog.CheapestMatch(item.Name)
}

// LineCost prices one line item. ok is false when the ingredient has no
// catalog match or the quantity is unset; that is a "not yet computable"
// state, not an error, and contributes nothing to the totals.
func (s *CostingService) LineCost(item domain.LineItem) (float64, bool) {
	product, ok := s.UnitPrice(item)
	if !ok || item.Grams == nil {
		return 0, false
	}
	return (*item.Grams / gramsPerPriceUnit) * product.Price, true
}

// RawTotal sums every computable line cost at full float precision.
// Rounding happens only at the presentation boundary.
func (s *CostingService) RawTotal() float64 {
	total := 0.0
	for _, item := range s.Items() {
		if cost, ok := s.LineCost(item); ok {
			total += cost
		}
	}
	return total
}

// WasteAdjustedTotal applies the fixed preparation-waste buffer to the raw total.
func (s *CostingService) WasteAdjustedTotal() float64 {
	return s.RawTotal() * wasteFactor
}

// SuggestedPrice is the target resale price: the waste-adjusted total with
// the fixed markup applied.
func (s *CostingService) SuggestedPrice() float64 {
	return s.WasteAdjustedTotal() * markupMultiplier
}
