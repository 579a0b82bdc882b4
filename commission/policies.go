/*
Package commission provides prebuilt revenue and bonus policies for the
sales analytics engine.

PURPOSE:
  The engine treats every business formula as an injected policy. This
  package owns the formulas the reporting pipeline actually runs with:
  how much revenue one line item brings in, and how a seller's leaderboard
  position translates into an incentive payout.

AVAILABLE POLICIES:
  Revenue:
    SimpleRevenue:    sale price x quantity, discounted by the line item's
                      percentage discount
    ListPriceRevenue: sale price x quantity, discount ignored

  Bonus:
    BonusByProfit: default rate table -
      rank 0        -> 15% of profit
      ranks 1 and 2 -> 10% of profit
      last rank     -> nothing
      everyone else -> 5% of profit
    RateTableBonus: same shape with caller-supplied rates
    NoBonus:        always zero

THESE ARE DEFAULTS, NOT INVARIANTS:
  The engine never interprets rank semantics or revenue composition.
  Callers are free to supply their own policy functions; these are the
  rates one reporting pipeline uses, packaged for reuse.

REGISTRATION:
  All policies register under stable names on init() so the factory and
  the API can resolve them from configuration:
    revenue: "simple", "list_price"
    bonus:   "profit_tiers", "none"

SEE ALSO:
  - analytics/policy.go: Policy contracts and registry
  - factory/config.go: Building a Config from policy names
*/
package commission

import (
	"github.com/shopspring/decimal"

	"github.com/warp/sales-analytics/analytics"
)

// Registry names for the prebuilt policies.
const (
	RevenueSimple    = "simple"
	RevenueListPrice = "list_price"
	BonusProfitTiers = "profit_tiers"
	BonusNone        = "none"
)

// Default bonus rate table (share of total profit by leaderboard position).
var (
	DefaultTopRate    = decimal.NewFromFloat(0.15) // rank 0
	DefaultPodiumRate = decimal.NewFromFloat(0.10) // ranks 1 and 2
	DefaultBaseRate   = decimal.NewFromFloat(0.05) // everyone except the last
)

var hundred = decimal.NewFromInt(100)

func init() {
	analytics.RegisterRevenuePolicy(RevenueSimple, SimpleRevenue)
	analytics.RegisterRevenuePolicy(RevenueListPrice, ListPriceRevenue)
	analytics.RegisterBonusPolicy(BonusProfitTiers, BonusByProfit)
	analytics.RegisterBonusPolicy(BonusNone, NoBonus)
}

// =============================================================================
// REVENUE POLICIES
// =============================================================================

// SimpleRevenue computes line-item revenue as the sale price times quantity,
// reduced by the item's percentage discount:
//
//	sale_price * quantity * (1 - discount/100)
//
// The product catalog entry is not consulted; the sale price on the line
// item already reflects what the customer was charged before discount.
func SimpleRevenue(item analytics.LineItem, _ analytics.ProductRecord) decimal.Decimal {
	discountFactor := decimal.NewFromInt(1).Sub(item.Discount.Decimal().Div(hundred))
	return item.SalePrice.Decimal().Mul(item.Quantity.Decimal()).Mul(discountFactor)
}

// ListPriceRevenue computes line-item revenue at full list price, ignoring
// any discount. Useful for gross-revenue reporting.
func ListPriceRevenue(item analytics.LineItem, _ analytics.ProductRecord) decimal.Decimal {
	return item.SalePrice.Decimal().Mul(item.Quantity.Decimal())
}

// =============================================================================
// BONUS POLICIES
// =============================================================================

// BonusByProfit is the default rate table: 15% of profit for the leader,
// 10% for second and third, nothing for the last place, 5% for the rest.
func BonusByProfit(rank, sellerCount int, seller analytics.BonusContext) decimal.Decimal {
	return RateTableBonus(DefaultTopRate, DefaultPodiumRate, DefaultBaseRate)(rank, sellerCount, seller)
}

// RateTableBonus builds a bonus policy with the BonusByProfit shape and
// caller-supplied rates. The last-ranked seller always receives zero.
func RateTableBonus(top, podium, base decimal.Decimal) analytics.BonusPolicy {
	return func(rank, sellerCount int, seller analytics.BonusContext) decimal.Decimal {
		switch {
		case rank == 0:
			return seller.Profit.Mul(top)
		case rank == 1 || rank == 2:
			return seller.Profit.Mul(podium)
		case rank == sellerCount-1:
			return decimal.Zero
		default:
			return seller.Profit.Mul(base)
		}
	}
}

// NoBonus suppresses incentive payouts entirely.
func NoBonus(_, _ int, _ analytics.BonusContext) decimal.Decimal {
	return decimal.Zero
}
