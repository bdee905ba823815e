package feed

import (
	"math"
	"strconv"
	"strings"

	"github.com/feirapp/backend/internal/domain"
)

// Column positions in the published price sheet. Columns 3 and 4 are
// reserved by the feed schema and ignored here.
const (
	colName    = 0
	colPrice   = 1
	colMeasure = 2
	colMarket  = 5
)

// ParseRecords maps raw CSV records to products. The mapping is total: it
// never fails and never drops a row. Malformed prices degrade to 0 and
// missing text fields take their documented defaults, so the output always
// has exactly one product per input record.
func ParseRecords(records [][]string) []domain.Product {
	products := make([]domain.Product, 0, len(records))
	for _, record := range records {
		products = append(products, parseRecord(record))
	}
	return products
}

func parseRecord(record []string) domain.Product {
	market := textColumn(record, colMarket)
	if market == "" {
		market = domain.UnknownMarket
	}

	return domain.Product{
		Name:    textColumn(record, colName),
		Price:   priceColumn(record, colPrice),
		Measure: textColumn(record, colMeasure),
		Market:  market,
	}
}

// textColumn returns the trimmed field at idx, or "" when the record is too
// short to have one.
func textColumn(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// priceColumn coerces the field at idx to a non-negative price. Anything
// that does not parse as a finite non-negative number degrades to 0.
func priceColumn(record []string, idx int) float64 {
	price, err := strconv.ParseFloat(textColumn(record, idx), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0
	}
	return price
}
