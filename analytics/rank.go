/*
rank.go - Profit ranking, bonus assignment, best-seller extraction

PURPOSE:
  Orders accumulators by profitability and applies the position-dependent
  bonus policy. The core passes (rank, sellerCount, profit) through to the
  injected policy and stores whatever comes back; tier thresholds and
  tie-break semantics live entirely in the policy.

ORDERING GUARANTEES:
  - Sellers: non-increasing total profit, stable (ties keep their
    input-derived relative order)
  - Best sellers: non-increasing quantity, stable (ties keep the order in
    which distinct SKUs were first sold), capped at 10 entries

SEE ALSO:
  - policy.go: BonusPolicy contract
  - commission/policies.go: The rate tiers one caller actually uses
*/
package analytics

import "sort"

// MaxBestSelling caps each seller's best-selling list.
const MaxBestSelling = 10

// Rank sorts the accumulators by total profit descending (stable), then
// populates BonusAmount and BestSelling on each. The slice is reordered in
// place and the same accumulators are returned.
func Rank(stats []*SellerStats, bonusOf BonusPolicy) []*SellerStats {
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalProfit.GreaterThan(stats[j].TotalProfit)
	})

	total := len(stats)
	for position, seller := range stats {
		seller.BonusAmount = bonusOf(position, total, BonusContext{Profit: seller.TotalProfit})
		seller.BestSelling = bestSelling(seller)
	}

	return stats
}

// bestSelling returns the seller's top sold SKUs by quantity.
func bestSelling(seller *SellerStats) []TopProduct {
	pairs := seller.soldPairs()
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Quantity.GreaterThan(pairs[j].Quantity)
	})
	if len(pairs) > MaxBestSelling {
		pairs = pairs[:MaxBestSelling]
	}
	return pairs
}
