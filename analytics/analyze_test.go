package analytics_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/warp/sales-analytics/analytics"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func num(f float64) analytics.Number {
	return analytics.NumberFromFloat(f)
}

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// fixedPriceRevenue values every unit at the given price, ignoring the catalog.
func fixedPriceRevenue(unitPrice float64) analytics.RevenuePolicy {
	return func(item analytics.LineItem, _ analytics.ProductRecord) decimal.Decimal {
		return item.Quantity.Decimal().Mul(dec(unitPrice))
	}
}

// profitShareBonus pays every seller the same share of their profit.
func profitShareBonus(rate float64) analytics.BonusPolicy {
	return func(_, _ int, seller analytics.BonusContext) decimal.Decimal {
		return seller.Profit.Mul(dec(rate))
	}
}

func singleSellerDataset() *analytics.Dataset {
	return &analytics.Dataset{
		Sellers:  []analytics.SellerRecord{{ID: "s1", FirstName: "A", LastName: "X"}},
		Products: []analytics.ProductRecord{{SKU: "p1", PurchasePrice: num(10)}},
		PurchaseRecords: []analytics.PurchaseRecord{
			{SellerID: "s1", TotalAmount: num(100), Items: []analytics.LineItem{
				{SKU: "p1", Quantity: num(2)},
			}},
		},
	}
}

func validConfig() analytics.Config {
	return analytics.Config{
		CalculateRevenue: fixedPriceRevenue(50),
		CalculateBonus:   profitShareBonus(0.15),
	}
}

// =============================================================================
// WORKED EXAMPLE
// =============================================================================

func TestAnalyze_SingleSellerWorkedExample(t *testing.T) {
	// GIVEN: One seller, one product at wholesale 10, one receipt of 100
	//        with two units; revenue policy values each unit at 50
	// WHEN: Analyzing
	// THEN: revenue=100, profit=(2*50)-(10*2)=80, bonus=80*0.15=12

	rows, err := analytics.Analyze(singleSellerDataset(), validConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	row := rows[0]
	if row.SellerID != "s1" {
		t.Errorf("expected seller_id s1, got %s", row.SellerID)
	}
	if row.Name != "A X" {
		t.Errorf("expected name %q, got %q", "A X", row.Name)
	}
	if !row.Revenue.Equal(dec(100)) {
		t.Errorf("expected revenue 100, got %v", row.Revenue)
	}
	if !row.Profit.Equal(dec(80)) {
		t.Errorf("expected profit 80, got %v", row.Profit)
	}
	if !row.Bonus.Equal(dec(12)) {
		t.Errorf("expected bonus 12, got %v", row.Bonus)
	}
	if row.SalesCount != 1 {
		t.Errorf("expected sales_count 1, got %d", row.SalesCount)
	}
	if len(row.TopProducts) != 1 || row.TopProducts[0].SKU != "p1" || !row.TopProducts[0].Quantity.Equal(dec(2)) {
		t.Errorf("expected top_products [{p1 2}], got %v", row.TopProducts)
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestAnalyze_NilData(t *testing.T) {
	_, err := analytics.Analyze(nil, validConfig())
	if !errors.Is(err, analytics.ErrInvalidData) {
		t.Errorf("expected ErrInvalidData, got %v", err)
	}
}

func TestAnalyze_MissingOrEmptyCollections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*analytics.Dataset)
	}{
		{"sellers missing", func(d *analytics.Dataset) { d.Sellers = nil }},
		{"sellers empty", func(d *analytics.Dataset) { d.Sellers = []analytics.SellerRecord{} }},
		{"products missing", func(d *analytics.Dataset) { d.Products = nil }},
		{"products empty", func(d *analytics.Dataset) { d.Products = []analytics.ProductRecord{} }},
		{"purchase_records missing", func(d *analytics.Dataset) { d.PurchaseRecords = nil }},
		{"purchase_records empty", func(d *analytics.Dataset) { d.PurchaseRecords = []analytics.PurchaseRecord{} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := singleSellerDataset()
			tc.mutate(data)

			_, err := analytics.Analyze(data, validConfig())
			if !errors.Is(err, analytics.ErrInvalidData) {
				t.Errorf("expected ErrInvalidData, got %v", err)
			}

			var dataErr *analytics.InvalidDataError
			if !errors.As(err, &dataErr) {
				t.Errorf("expected *InvalidDataError, got %T", err)
			}
		})
	}
}

func TestAnalyze_MissingPolicies(t *testing.T) {
	data := singleSellerDataset()

	_, err := analytics.Analyze(data, analytics.Config{CalculateBonus: profitShareBonus(0.1)})
	if !errors.Is(err, analytics.ErrMissingPolicy) {
		t.Errorf("missing revenue policy: expected ErrMissingPolicy, got %v", err)
	}

	_, err = analytics.Analyze(data, analytics.Config{CalculateRevenue: fixedPriceRevenue(1)})
	if !errors.Is(err, analytics.ErrMissingPolicy) {
		t.Errorf("missing bonus policy: expected ErrMissingPolicy, got %v", err)
	}
}

// =============================================================================
// JOIN AND SKIP SEMANTICS
// =============================================================================

func TestAnalyze_UnknownSellerIgnoresWholeRecord(t *testing.T) {
	// GIVEN: A receipt referencing a seller outside the roster
	// WHEN: Analyzing
	// THEN: No accumulator changes anywhere

	data := singleSellerDataset()
	data.PurchaseRecords = append(data.PurchaseRecords, analytics.PurchaseRecord{
		SellerID:    "ghost",
		TotalAmount: num(9999),
		Items:       []analytics.LineItem{{SKU: "p1", Quantity: num(50)}},
	})

	rows, err := analytics.Analyze(data, validConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].SalesCount != 1 {
		t.Errorf("expected sales_count 1, got %d", rows[0].SalesCount)
	}
	if !rows[0].Revenue.Equal(dec(100)) {
		t.Errorf("expected revenue 100, got %v", rows[0].Revenue)
	}
}

func TestAnalyze_UnknownProductSkipsItemOnly(t *testing.T) {
	// GIVEN: A receipt with one catalog item and one unknown SKU
	// WHEN: Analyzing
	// THEN: sales_count and revenue still count the receipt; profit and
	//       sold_items only reflect the known item

	data := singleSellerDataset()
	data.PurchaseRecords = []analytics.PurchaseRecord{
		{SellerID: "s1", TotalAmount: num(100), Items: []analytics.LineItem{
			{SKU: "p1", Quantity: num(2)},
			{SKU: "ghost-sku", Quantity: num(7)},
		}},
	}

	rows, err := analytics.Analyze(data, validConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row := rows[0]
	if row.SalesCount != 1 {
		t.Errorf("expected sales_count 1, got %d", row.SalesCount)
	}
	if !row.Revenue.Equal(dec(100)) {
		t.Errorf("expected revenue 100, got %v", row.Revenue)
	}
	if !row.Profit.Equal(dec(80)) {
		t.Errorf("expected profit 80 (ghost item skipped), got %v", row.Profit)
	}
	if len(row.TopProducts) != 1 || row.TopProducts[0].SKU != "p1" {
		t.Errorf("expected only p1 in top products, got %v", row.TopProducts)
	}
}

func TestAnalyze_SellerCoverage(t *testing.T) {
	// GIVEN: Three sellers, only one with receipts
	// WHEN: Analyzing
	// THEN: Output has exactly one row per input seller; idle sellers
	//       report zeros and an empty top-products list

	data := &analytics.Dataset{
		Sellers: []analytics.SellerRecord{
			{ID: "s1", FirstName: "A", LastName: "X"},
			{ID: "s2", FirstName: "B", LastName: "Y"},
			{ID: "s3", FirstName: "C", LastName: "Z"},
		},
		Products: []analytics.ProductRecord{{SKU: "p1", PurchasePrice: num(10)}},
		PurchaseRecords: []analytics.PurchaseRecord{
			{SellerID: "s2", TotalAmount: num(60), Items: []analytics.LineItem{
				{SKU: "p1", Quantity: num(1)},
			}},
		},
	}

	rows, err := analytics.Analyze(data, validConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	seen := map[string]analytics.ReportRow{}
	for _, row := range rows {
		seen[row.SellerID] = row
	}
	for _, id := range []string{"s1", "s2", "s3"} {
		if _, ok := seen[id]; !ok {
			t.Errorf("seller %s missing from output", id)
		}
	}

	idle := seen["s1"]
	if idle.SalesCount != 0 || !idle.Revenue.IsZero() || !idle.Profit.IsZero() {
		t.Errorf("idle seller should report zeros, got %+v", idle)
	}
	if idle.TopProducts == nil || len(idle.TopProducts) != 0 {
		t.Errorf("idle seller should report empty top products, got %v", idle.TopProducts)
	}
}

func TestAnalyze_SalesCountPerRecordNotPerItem(t *testing.T) {
	// GIVEN: One receipt holding three line items
	// WHEN: Analyzing
	// THEN: sales_count is 1

	data := singleSellerDataset()
	data.PurchaseRecords = []analytics.PurchaseRecord{
		{SellerID: "s1", TotalAmount: num(300), Items: []analytics.LineItem{
			{SKU: "p1", Quantity: num(1)},
			{SKU: "p1", Quantity: num(2)},
			{SKU: "p1", Quantity: num(3)},
		}},
	}

	rows, err := analytics.Analyze(data, validConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0].SalesCount != 1 {
		t.Errorf("expected sales_count 1 for a single receipt, got %d", rows[0].SalesCount)
	}
	if !rows[0].TopProducts[0].Quantity.Equal(dec(6)) {
		t.Errorf("expected cumulative quantity 6, got %v", rows[0].TopProducts[0].Quantity)
	}
}

// =============================================================================
// NUMERIC COERCION
// =============================================================================

func TestDataset_MessyJSONCoercesToZero(t *testing.T) {
	// GIVEN: A JSON feed with null, string, boolean, and missing numerics
	// WHEN: Decoding and analyzing
	// THEN: Every malformed value behaves as zero; nothing fails

	raw := `{
		"sellers": [{"id": "s1", "first_name": "A", "last_name": "X"}],
		"products": [{"sku": "p1", "purchase_price": "10"}],
		"purchase_records": [
			{"seller_id": "s1", "total_amount": null, "items": [
				{"sku": "p1", "quantity": "oops", "sale_price": true}
			]},
			{"seller_id": "s1", "total_amount": "25.50", "items": [
				{"sku": "p1", "quantity": 2}
			]}
		]
	}`

	var data analytics.Dataset
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		t.Fatalf("decode should tolerate messy numerics: %v", err)
	}

	rows, err := analytics.Analyze(&data, validConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row := rows[0]
	if row.SalesCount != 2 {
		t.Errorf("expected sales_count 2, got %d", row.SalesCount)
	}
	// null total_amount counts as 0; quoted "25.50" parses.
	if !row.Revenue.Equal(dec(25.50)) {
		t.Errorf("expected revenue 25.50, got %v", row.Revenue)
	}
	// First receipt's item contributes 0 quantity at 0 revenue and 0 cost;
	// second contributes 2*50 - 10*2 = 80.
	if !row.Profit.Equal(dec(80)) {
		t.Errorf("expected profit 80, got %v", row.Profit)
	}
	if !row.TopProducts[0].Quantity.Equal(dec(2)) {
		t.Errorf("expected quantity 2, got %v", row.TopProducts[0].Quantity)
	}
}

func TestAnalyze_DatasetNotMutated(t *testing.T) {
	// GIVEN: A dataset
	// WHEN: Analyzing twice with the same input
	// THEN: Results are identical (no cross-call state)

	data := singleSellerDataset()

	first, err := analytics.Analyze(data, validConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := analytics.Analyze(data, validConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !first[0].Profit.Equal(second[0].Profit) || first[0].SalesCount != second[0].SalesCount {
		t.Errorf("repeated analysis diverged: %+v vs %+v", first[0], second[0])
	}
}
