/*
analyze.go - The aggregation pipeline

PURPOSE:
  The single public operation of the engine. Control flow is strictly
  linear: Validate -> Index -> Accumulate -> Rank+Bonus -> Format.

JOIN SEMANTICS:
  - A purchase whose seller_id has no matching seller is skipped entirely
    (no partial effects).
  - A line item whose sku has no matching product is skipped; the enclosing
    record's sales count and revenue are unaffected by per-item skips.
  - total_sales counts purchase records, not line items.

ACCUMULATION FORMULAS:
  revenue += total_amount                      (per attributed record)
  cost    = purchase_price * quantity          (per matched item)
  profit  += revenuePolicy(item, product) - cost
  sold_items[sku] += quantity

CONCURRENCY:
  Single-threaded and synchronous. All mutation is confined to
  accumulators created and discarded within one call, so concurrent
  Analyze calls on independent inputs are safe without locking (as long
  as the injected policies are themselves free of shared mutable state).

SEE ALSO:
  - validate.go: Precondition checks
  - rank.go: Ranking, bonus, best sellers
  - report.go: Final projection
*/
package analytics

// Analyze computes per-seller sales statistics and returns the report rows
// in descending-profit order. The dataset is never mutated; all state lives
// in accumulators private to this call.
func Analyze(data *Dataset, config Config) ([]ReportRow, error) {
	if err := Validate(data, config); err != nil {
		return nil, err
	}

	stats, sellerIndex, productIndex := buildIndexes(data)
	accumulate(data.PurchaseRecords, sellerIndex, productIndex, config.CalculateRevenue)
	Rank(stats, config.CalculateBonus)

	return Report(stats), nil
}

// buildIndexes creates one accumulator per seller (input order preserved)
// and the two lookup maps used for O(1) joins during accumulation.
// Duplicate seller ids or SKUs are not defended against: last one wins.
func buildIndexes(data *Dataset) ([]*SellerStats, map[string]*SellerStats, map[string]ProductRecord) {
	stats := make([]*SellerStats, 0, len(data.Sellers))
	sellerIndex := make(map[string]*SellerStats, len(data.Sellers))
	for _, seller := range data.Sellers {
		s := NewSellerStats(seller)
		stats = append(stats, s)
		sellerIndex[seller.ID] = s
	}

	productIndex := make(map[string]ProductRecord, len(data.Products))
	for _, product := range data.Products {
		productIndex[product.SKU] = product
	}

	return stats, sellerIndex, productIndex
}

// accumulate walks every purchase record and updates the matching seller's
// running totals in place.
func accumulate(records []PurchaseRecord, sellerIndex map[string]*SellerStats, productIndex map[string]ProductRecord, revenueOf RevenuePolicy) {
	for _, record := range records {
		seller, ok := sellerIndex[record.SellerID]
		if !ok {
			continue // unknown seller: ignore the whole record
		}

		seller.TotalSales++
		seller.TotalRevenue = seller.TotalRevenue.Add(record.TotalAmount.Decimal())

		for _, item := range record.Items {
			product, ok := productIndex[item.SKU]
			if !ok {
				continue // unknown product: ignore this item only
			}

			quantity := item.Quantity.Decimal()
			cost := product.PurchasePrice.Decimal().Mul(quantity)
			itemRevenue := revenueOf(item, product)

			seller.TotalProfit = seller.TotalProfit.Add(itemRevenue.Sub(cost))
			seller.AddItemSale(item.SKU, quantity)
		}
	}
}
