/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract: the engine
  works in decimals, the API speaks plain JSON numbers.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done by the engine and handlers, not in DTOs. DTOs are
  pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/config.go: ConfigJSON type embedded in ReportRequest
*/
package api

import (
	"github.com/warp/sales-analytics/analytics"
	"github.com/warp/sales-analytics/factory"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ReportRequest asks for a sales report. Data is optional: when omitted,
// the stored dataset is used.
type ReportRequest struct {
	Data   *analytics.Dataset `json:"data,omitempty"`
	Config factory.ConfigJSON `json:"config"`
}

// ReportRowDTO is one leaderboard row with monetary values as JSON numbers.
type ReportRowDTO struct {
	SellerID    string          `json:"seller_id"`
	Name        string          `json:"name"`
	Revenue     float64         `json:"revenue"`
	Profit      float64         `json:"profit"`
	SalesCount  int             `json:"sales_count"`
	TopProducts []TopProductDTO `json:"top_products"`
	Bonus       float64         `json:"bonus"`
}

// TopProductDTO is one best-selling entry.
type TopProductDTO struct {
	SKU      string  `json:"sku"`
	Quantity float64 `json:"quantity"`
}

// PoliciesDTO lists the registered policy names.
type PoliciesDTO struct {
	Revenue []string `json:"revenue"`
	Bonus   []string `json:"bonus"`
}

// ScenarioDTO describes one loadable demo dataset.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a demo dataset to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toReportRowDTOs(rows []analytics.ReportRow) []ReportRowDTO {
	dtos := make([]ReportRowDTO, len(rows))
	for i, row := range rows {
		top := make([]TopProductDTO, len(row.TopProducts))
		for j, p := range row.TopProducts {
			top[j] = TopProductDTO{SKU: p.SKU, Quantity: p.Quantity.InexactFloat64()}
		}
		dtos[i] = ReportRowDTO{
			SellerID:    row.SellerID,
			Name:        row.Name,
			Revenue:     row.Revenue.InexactFloat64(),
			Profit:      row.Profit.InexactFloat64(),
			SalesCount:  row.SalesCount,
			TopProducts: top,
			Bonus:       row.Bonus.InexactFloat64(),
		}
	}
	return dtos
}
