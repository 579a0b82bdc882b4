/*
scenarios.go - Demo dataset loaders for testing and demonstrations

PURPOSE:

	Provides pre-built datasets that populate the store with realistic
	data for testing and demos. Each scenario creates sellers, products,
	and purchase records that exercise specific engine behavior.

AVAILABLE SCENARIOS:

	boutique-quarter: Four sellers, small catalog, one quarter of receipts
	messy-feed:       Unknown sellers/SKUs and missing numeric fields,
	                  demonstrating the engine's tolerance rules

HOW SCENARIOS WORK:
 1. Reset the store (clear all data)
 2. Save the scenario's dataset
 3. Reports can then run against the stored dataset

NOTE:

	Scenarios reset the store. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: RunReport consumes the stored dataset
  - store/sqlite/sqlite.go: Dataset persistence
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/warp/sales-analytics/analytics"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "boutique-quarter",
		Name:        "Boutique Quarter",
		Description: "Four sellers and a small catalog over one quarter of receipts",
	},
	{
		ID:          "messy-feed",
		Name:        "Messy Feed",
		Description: "Unknown sellers, unknown SKUs, and missing numeric fields",
	},
}

// ListScenarios returns the available demo scenarios.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// LoadScenario resets the store and seeds the selected demo dataset.
// POST /api/scenarios/load
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var data analytics.Dataset
	switch req.ScenarioID {
	case "boutique-quarter":
		data = boutiqueQuarterDataset()
	case "messy-feed":
		data = messyFeedDataset()
	default:
		writeError(w, http.StatusNotFound, "Unknown scenario", nil)
		return
	}

	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset store", err)
		return
	}
	if err := h.Store.SaveDataset(r.Context(), data); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to seed scenario", err)
		return
	}

	counts, err := h.Store.Counts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read dataset", err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// =============================================================================
// SCENARIO DATASETS
// =============================================================================

func num(f float64) analytics.Number { return analytics.NumberFromFloat(f) }

func boutiqueQuarterDataset() analytics.Dataset {
	return analytics.Dataset{
		Sellers: []analytics.SellerRecord{
			{ID: "s-01", FirstName: "Ava", LastName: "Moreno"},
			{ID: "s-02", FirstName: "Liam", LastName: "Chen"},
			{ID: "s-03", FirstName: "Noor", LastName: "Haddad"},
			{ID: "s-04", FirstName: "Petra", LastName: "Novak"},
		},
		Products: []analytics.ProductRecord{
			{SKU: "scarf-wool", Title: "Wool Scarf", Category: "accessories", PurchasePrice: num(12)},
			{SKU: "bag-tote", Title: "Canvas Tote", Category: "bags", PurchasePrice: num(8)},
			{SKU: "hat-felt", Title: "Felt Hat", Category: "accessories", PurchasePrice: num(15)},
			{SKU: "belt-leather", Title: "Leather Belt", Category: "accessories", PurchasePrice: num(10)},
		},
		PurchaseRecords: []analytics.PurchaseRecord{
			{SellerID: "s-01", TotalAmount: num(150), Items: []analytics.LineItem{
				{SKU: "scarf-wool", Quantity: num(2), SalePrice: num(35)},
				{SKU: "bag-tote", Quantity: num(4), SalePrice: num(20), Discount: num(10)},
			}},
			{SellerID: "s-02", TotalAmount: num(90), Items: []analytics.LineItem{
				{SKU: "hat-felt", Quantity: num(2), SalePrice: num(45)},
			}},
			{SellerID: "s-01", TotalAmount: num(70), Items: []analytics.LineItem{
				{SKU: "belt-leather", Quantity: num(2), SalePrice: num(35), Discount: num(5)},
			}},
			{SellerID: "s-03", TotalAmount: num(210), Items: []analytics.LineItem{
				{SKU: "scarf-wool", Quantity: num(3), SalePrice: num(35)},
				{SKU: "hat-felt", Quantity: num(1), SalePrice: num(45)},
				{SKU: "bag-tote", Quantity: num(3), SalePrice: num(20)},
			}},
			{SellerID: "s-02", TotalAmount: num(40), Items: []analytics.LineItem{
				{SKU: "bag-tote", Quantity: num(2), SalePrice: num(20)},
			}},
		},
	}
}

func messyFeedDataset() analytics.Dataset {
	return analytics.Dataset{
		Sellers: []analytics.SellerRecord{
			{ID: "s-01", FirstName: "Ava", LastName: "Moreno"},
			{ID: "s-02", FirstName: "Liam", LastName: "Chen"},
		},
		Products: []analytics.ProductRecord{
			{SKU: "scarf-wool", Title: "Wool Scarf", PurchasePrice: num(12)},
		},
		PurchaseRecords: []analytics.PurchaseRecord{
			// Attributed, but one item references a SKU outside the catalog.
			{SellerID: "s-01", TotalAmount: num(100), Items: []analytics.LineItem{
				{SKU: "scarf-wool", Quantity: num(2), SalePrice: num(35)},
				{SKU: "ghost-sku", Quantity: num(9), SalePrice: num(99)},
			}},
			// Unknown seller: the whole record is ignored.
			{SellerID: "s-99", TotalAmount: num(500), Items: []analytics.LineItem{
				{SKU: "scarf-wool", Quantity: num(5), SalePrice: num(35)},
			}},
			// Missing quantity and sale price coerce to zero.
			{SellerID: "s-02", TotalAmount: num(35), Items: []analytics.LineItem{
				{SKU: "scarf-wool"},
			}},
		},
	}
}
