package domain

// UnknownMarket is the sentinel market label used when a feed row omits the
// market column.
const UnknownMarket = "unknown"

// Product represents a single product-offer row from the price feed.
// Names are not unique: the same product typically appears once per market.
type Product struct {
	Name    string  `json:"name"`
	Price   float64 `json:"price"`   // currency per kilogram (or per litre); never negative
	Measure string  `json:"measure"` // free-text unit/size descriptor, may be empty
	Market  string  `json:"market"`  // vendor label, UnknownMarket when absent
}

// LineItem represents one ingredient row of the recipe costing list.
// Grams is nil while the user has not entered a usable quantity; that is a
// valid "not yet computable" state, not an error.
type LineItem struct {
	Name  string   `json:"name"`
	Grams *float64 `json:"grams"`
}
