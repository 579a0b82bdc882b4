/*
report.go - Final projection into reporting rows

PURPOSE:
  Projects the ranked accumulators into the external reporting shape.
  This is the only place monetary values are rounded.

ROUNDING RULE:
  Two decimal places, half away from zero (decimal.Round semantics):
  33.335 -> 33.34, -33.335 -> -33.34. Quantities are never rounded.

SEE ALSO:
  - rank.go: Produces the ordered accumulators consumed here
  - api/dto.go: Converts rows to plain JSON numbers for the HTTP API
*/
package analytics

import "github.com/shopspring/decimal"

// MoneyPlaces is the fixed scale of monetary report fields.
const MoneyPlaces = 2

// Report projects ranked accumulators into report rows, preserving their
// order. Monetary fields are rounded to MoneyPlaces; a seller with no
// attributed purchases yields zeros and an empty top-products list.
func Report(ranked []*SellerStats) []ReportRow {
	rows := make([]ReportRow, len(ranked))
	for i, seller := range ranked {
		top := seller.BestSelling
		if top == nil {
			top = []TopProduct{}
		}
		rows[i] = ReportRow{
			SellerID:    seller.SellerID,
			Name:        seller.FullName,
			Revenue:     RoundMoney(seller.TotalRevenue),
			Profit:      RoundMoney(seller.TotalProfit),
			SalesCount:  seller.TotalSales,
			TopProducts: top,
			Bonus:       RoundMoney(seller.BonusAmount),
		}
	}
	return rows
}

// RoundMoney rounds a monetary value to the report scale, half away from zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}
