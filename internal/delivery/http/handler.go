package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/feirapp/backend/internal/domain"
	"github.com/feirapp/backend/internal/usecase"
)

// placeholder renders "not yet computable" values (unmatched ingredient,
// unset quantity) on the costing surface.
const placeholder = "-"

// CatalogReloader re-fetches the feed and replaces the catalog wholesale.
type CatalogReloader interface {
	Reload(ctx context.Context) (int, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	search  *usecase.SearchService
	costing *usecase.CostingService
	catalog domain.CatalogRepository
	loader  CatalogReloader
}

// NewHandler creates a new HTTP handler
func NewHandler(search *usecase.SearchService, costing *usecase.CostingService, catalog domain.CatalogRepository, loader CatalogReloader) *Handler {
	return &Handler{
		search:  search,
		costing: costing,
		catalog: catalog,
		loader:  loader,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "feira-backend",
		"version": "1.0.0",
	})
}

// SearchProducts handles ranked product search. An empty or whitespace-only
// query is the "no search performed" state and returns zero results.
func (h *Handler) SearchProducts(c *gin.Context) {
	query := c.Query("q")

	results := h.search.Search(c.Request.Context(), query)
	if results == nil {
		results = []domain.Product{}
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   strings.TrimSpace(query),
		"count":   len(results),
		"results": results,
	})
}

// CatalogStatus reports catalog size and freshness. A failed or pending feed
// load shows up here as size 0 / ready false, never as an error.
func (h *Handler) CatalogStatus(c *gin.Context) {
	loadedAt := h.catalog.LoadedAt()

	status := gin.H{
		"size":  h.catalog.Len(),
		"ready": !loadedAt.IsZero(),
	}
	if !loadedAt.IsZero() {
		status["loadedAt"] = loadedAt.UTC().Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, status)
}

// ReloadCatalog re-fetches the price feed and replaces the catalog wholesale.
func (h *Handler) ReloadCatalog(c *gin.Context) {
	size, err := h.loader.Reload(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "price feed unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"size": size})
}

// AppendLineItem appends a blank line item to the recipe.
func (h *Handler) AppendLineItem(c *gin.Context) {
	items := h.costing.AppendItem()
	c.JSON(http.StatusCreated, gin.H{
		"items": items,
		"count": len(items),
	})
}

// updateLineItemRequest replaces one named field of a line item, mirroring
// the form-driven edits of the calculator UI.
type updateLineItemRequest struct {
	Field string      `json:"field" binding:"required"`
	Value interface{} `json:"value"`
}

// UpdateLineItem replaces the "name" or "grams" field of the line item at
// :index. An out-of-range index is a contract violation and fails fast.
func (h *Handler) UpdateLineItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}

	var req updateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Field {
	case "name":
		name, ok := req.Value.(string)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name value must be a string"})
			return
		}
		err = h.costing.UpdateName(index, name)
	case "grams":
		err = h.costing.UpdateGrams(index, gramsValue(req.Value))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": `field must be "name" or "grams"`})
		return
	}

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": h.costing.Items()})
}

// gramsValue coerces a submitted quantity. Numbers and numeric strings set
// the quantity; anything else is the valid "not yet computable" unset state.
func gramsValue(value interface{}) *float64 {
	switch v := value.(type) {
	case float64:
		return &v
	case string:
		if grams, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return &grams
		}
	}
	return nil
}

// RemoveLineItem deletes the line item at :index; later items shift down.
func (h *Handler) RemoveLineItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}

	if err := h.costing.RemoveItem(index); err != nil {
		if errors.Is(err, domain.ErrLineIndexOutOfRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": h.costing.Items()})
}

// recipeLineResponse is the per-line costing breakdown. Monetary fields are
// strings because rounding to two decimals happens here, at the presentation
// boundary, and never inside the aggregation.
type recipeLineResponse struct {
	Name      string `json:"name"`
	Grams     string `json:"grams"`
	Market    string `json:"market,omitempty"`
	Measure   string `json:"measure,omitempty"`
	UnitPrice string `json:"unitPrice"`
	LineCost  string `json:"lineCost"`
}

// GetRecipe returns the costed line items and the three aggregate totals.
func (h *Handler) GetRecipe(c *gin.Context) {
	items := h.costing.Items()

	lines := make([]recipeLineResponse, 0, len(items))
	for _, item := range items {
		line := recipeLineResponse{
			Name:      item.Name,
			Grams:     placeholder,
			UnitPrice: placeholder,
			LineCost:  placeholder,
		}

		if item.Grams != nil {
			line.Grams = strconv.FormatFloat(*item.Grams, 'f', -1, 64)
		}
		if product, ok := h.costing.UnitPrice(item); ok {
			line.UnitPrice = formatMoney(product.Price)
			line.Market = product.Market
			line.Measure = product.Measure
		}
		if cost, ok := h.costing.LineCost(item); ok {
			line.LineCost = formatMoney(cost)
		}

		lines = append(lines, line)
	}

	c.JSON(http.StatusOK, gin.H{
		"items":              lines,
		"count":              len(lines),
		"rawTotal":           formatMoney(h.costing.RawTotal()),
		"wasteAdjustedTotal": formatMoney(h.costing.WasteAdjustedTotal()),
		"suggestedPrice":     formatMoney(h.costing.SuggestedPrice()),
	})
}

// formatMoney renders a monetary value with exactly two decimals.
func formatMoney(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
