/*
Package analytics provides the core sales performance aggregation engine.

PURPOSE:
  This package turns a flat list of purchase records into a ranked seller
  leaderboard with incentive payouts. It joins three datasets (sellers,
  products, purchase line items), accumulates per-seller totals, ranks
  sellers by profitability, and applies a caller-supplied bonus policy.

KEY CONCEPTS IN THIS FILE (types.go):
  - Number: A tolerant numeric value (messy input coerces to zero)
  - Dataset: The three input collections the pipeline consumes
  - SellerStats: The mutable per-seller accumulator
  - ReportRow: The final projected reporting shape

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal to avoid floating-point errors
  2. Tolerance: Malformed individual records never abort a report;
     only structurally invalid top-level input does
  3. Orchestration only: Revenue and bonus formulas are injected
     policies, never hard-coded here

USAGE:
  rows, err := analytics.Analyze(&analytics.Dataset{
      Sellers:         sellers,
      Products:        products,
      PurchaseRecords: purchases,
  }, analytics.Config{
      CalculateRevenue: commission.SimpleRevenue,
      CalculateBonus:   commission.BonusByProfit,
  })

SEE ALSO:
  - policy.go: Policy function types and the named-policy registry
  - analyze.go: The pipeline (validate, index, accumulate)
  - rank.go: Profit ranking, bonus assignment, best sellers
  - report.go: Final projection and monetary rounding
*/
package analytics

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// NUMBER - Tolerant numeric value
// =============================================================================

// Number is a decimal that decodes permissively from JSON. Null, missing,
// boolean, and non-numeric string values all decode to zero; quoted numeric
// strings decode to their value. Per-record data quality problems therefore
// become zeros instead of decode failures.
type Number struct {
	value decimal.Decimal
}

func NumberFromFloat(f float64) Number {
	return Number{value: decimal.NewFromFloat(f)}
}

func NumberFromInt(n int64) Number {
	return Number{value: decimal.NewFromInt(n)}
}

func NumberFromDecimal(d decimal.Decimal) Number {
	return Number{value: d}
}

// Decimal returns the underlying decimal value. The zero Number is decimal zero.
func (n Number) Decimal() decimal.Decimal { return n.value }

func (n Number) IsZero() bool { return n.value.IsZero() }

func (n Number) String() string { return n.value.String() }

// UnmarshalJSON never fails: anything that is not a number (or a numeric
// string) becomes zero.
func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		n.value = decimal.Zero
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err == nil {
			if d, err := decimal.NewFromString(strings.TrimSpace(str)); err == nil {
				n.value = d
				return nil
			}
		}
		n.value = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		n.value = decimal.Zero
		return nil
	}
	n.value = d
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.value.String()), nil
}

// =============================================================================
// INPUT RECORDS - Immutable, externally supplied
// =============================================================================

// SellerRecord identifies a seller.
type SellerRecord struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FullName derives the display name used in reports.
func (s SellerRecord) FullName() string {
	return s.FirstName + " " + s.LastName
}

// ProductRecord is a catalog entry. PurchasePrice is the wholesale cost
// used for profit calculation.
type ProductRecord struct {
	SKU           string `json:"sku"`
	Title         string `json:"title,omitempty"`
	Category      string `json:"category,omitempty"`
	PurchasePrice Number `json:"purchase_price"`
}

// LineItem is one position inside a purchase. SalePrice and Discount are
// carried for revenue policies; the core itself only reads SKU and Quantity.
type LineItem struct {
	SKU       string `json:"sku"`
	Quantity  Number `json:"quantity"`
	SalePrice Number `json:"sale_price"`
	Discount  Number `json:"discount"`
}

// PurchaseRecord is one receipt attributed to a seller.
type PurchaseRecord struct {
	SellerID    string     `json:"seller_id"`
	TotalAmount Number     `json:"total_amount"`
	Items       []LineItem `json:"items"`
}

// Dataset bundles the three input collections.
type Dataset struct {
	Sellers         []SellerRecord   `json:"sellers"`
	Products        []ProductRecord  `json:"products"`
	PurchaseRecords []PurchaseRecord `json:"purchase_records"`
}

// =============================================================================
// SELLER STATS - Mutable per-seller accumulator
// =============================================================================

// SellerStats accumulates one seller's totals across the pipeline. Created
// during indexing, mutated during accumulation and ranking, read during
// formatting, discarded when Analyze returns.
type SellerStats struct {
	SellerID     string
	FullName     string
	TotalRevenue decimal.Decimal
	TotalProfit  decimal.Decimal
	TotalSales   int

	// Populated by Rank.
	BonusAmount decimal.Decimal
	BestSelling []TopProduct

	soldItems map[string]decimal.Decimal
	skuOrder  []string // first-seen order, keeps quantity ties stable
}

// NewSellerStats creates a zeroed accumulator for a seller.
func NewSellerStats(seller SellerRecord) *SellerStats {
	return &SellerStats{
		SellerID:  seller.ID,
		FullName:  seller.FullName(),
		soldItems: make(map[string]decimal.Decimal),
	}
}

// AddItemSale adds a sold quantity for a SKU, creating the entry at zero
// the first time the SKU is seen.
func (s *SellerStats) AddItemSale(sku string, quantity decimal.Decimal) {
	if _, ok := s.soldItems[sku]; !ok {
		s.skuOrder = append(s.skuOrder, sku)
	}
	s.soldItems[sku] = s.soldItems[sku].Add(quantity)
}

// SoldQuantity returns the cumulative quantity sold for a SKU.
func (s *SellerStats) SoldQuantity(sku string) decimal.Decimal {
	return s.soldItems[sku]
}

// soldPairs returns all (sku, quantity) pairs in first-seen order.
func (s *SellerStats) soldPairs() []TopProduct {
	pairs := make([]TopProduct, 0, len(s.skuOrder))
	for _, sku := range s.skuOrder {
		pairs = append(pairs, TopProduct{SKU: sku, Quantity: s.soldItems[sku]})
	}
	return pairs
}

// =============================================================================
// OUTPUT SHAPES
// =============================================================================

// TopProduct is one best-selling entry: a SKU and its cumulative quantity.
type TopProduct struct {
	SKU      string          `json:"sku"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ReportRow is the final reporting shape for one seller. Rows are produced
// in ranked order (descending profit). Monetary fields are rounded to two
// decimal places, half away from zero.
type ReportRow struct {
	SellerID    string          `json:"seller_id"`
	Name        string          `json:"name"`
	Revenue     decimal.Decimal `json:"revenue"`
	Profit      decimal.Decimal `json:"profit"`
	SalesCount  int             `json:"sales_count"`
	TopProducts []TopProduct    `json:"top_products"`
	Bonus       decimal.Decimal `json:"bonus"`
}
