/*
policy.go - Injected policy types and the named-policy registry

PURPOSE:
  Revenue-per-line-item and bonus-per-rank computation are deliberately
  caller-supplied strategies, not fixed algorithms. The core's job is pure
  orchestration; every business formula flows through one of these two
  function values.

HOW IT WORKS:
  1. Domain packages define concrete policies (see commission/)
  2. Domain packages register them on init() under stable names
  3. Factory/API look policies up by name to build a Config

POLICY CONTRACTS:
  RevenuePolicy(item, product):
    Revenue attributable to one line item. The result feeds directly into
    profit (revenue - wholesale cost); the core never interprets it.

  BonusPolicy(rank, sellerCount, seller):
    Bonus for the seller at a 0-based rank out of sellerCount sellers,
    given that seller's total profit. Tier thresholds, tie handling, and
    rates all live in the policy, never in the core.

WHY A REGISTRY:
  - The engine stays formula-agnostic
  - Report configuration can name policies from JSON or the API
  - Domains own their formulas

SEE ALSO:
  - commission/policies.go: Prebuilt policy implementations
  - factory/config.go: JSON-based Config construction
*/
package analytics

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

// =============================================================================
// POLICY TYPES
// =============================================================================

// RevenuePolicy computes the revenue attributable to one line item.
type RevenuePolicy func(item LineItem, product ProductRecord) decimal.Decimal

// BonusContext carries the per-seller figures a bonus policy may read.
type BonusContext struct {
	Profit decimal.Decimal
}

// BonusPolicy computes the bonus for the seller at the given 0-based rank
// out of sellerCount ranked sellers.
type BonusPolicy func(rank, sellerCount int, seller BonusContext) decimal.Decimal

// Config bundles the two injected policies for one Analyze call.
type Config struct {
	CalculateRevenue RevenuePolicy
	CalculateBonus   BonusPolicy
}

// Validate checks that both policies are present.
func (c Config) Validate() error {
	if c.CalculateRevenue == nil {
		return &PolicyError{Field: "calculateRevenue", Err: ErrMissingPolicy}
	}
	if c.CalculateBonus == nil {
		return &PolicyError{Field: "calculateBonus", Err: ErrMissingPolicy}
	}
	return nil
}

// ConfigFrom builds a Config from dynamically supplied policy values, for
// callers that receive policies as opaque configuration (deserialized
// registries, plugin tables). A nil value is a missing policy; a value of
// any other type is not invocable.
func ConfigFrom(revenue, bonus any) (Config, error) {
	var cfg Config

	switch p := revenue.(type) {
	case nil:
		return Config{}, &PolicyError{Field: "calculateRevenue", Err: ErrMissingPolicy}
	case RevenuePolicy:
		cfg.CalculateRevenue = p
	case func(LineItem, ProductRecord) decimal.Decimal:
		cfg.CalculateRevenue = p
	default:
		return Config{}, &PolicyError{Field: "calculateRevenue", Err: ErrInvalidPolicyType}
	}

	switch p := bonus.(type) {
	case nil:
		return Config{}, &PolicyError{Field: "calculateBonus", Err: ErrMissingPolicy}
	case BonusPolicy:
		cfg.CalculateBonus = p
	case func(int, int, BonusContext) decimal.Decimal:
		cfg.CalculateBonus = p
	default:
		return Config{}, &PolicyError{Field: "calculateBonus", Err: ErrInvalidPolicyType}
	}

	return cfg, nil
}

// =============================================================================
// POLICY REGISTRY
// =============================================================================

var (
	revenueRegistry = make(map[string]RevenuePolicy)
	bonusRegistry   = make(map[string]BonusPolicy)
	registryMu      sync.RWMutex
)

// RegisterRevenuePolicy adds a revenue policy to the global registry.
// Call this from domain package init() functions.
func RegisterRevenuePolicy(name string, p RevenuePolicy) {
	registryMu.Lock()
	defer registryMu.Unlock()
	revenueRegistry[name] = p
}

// LookupRevenuePolicy finds a registered revenue policy by name.
// Returns nil if not found.
func LookupRevenuePolicy(name string) RevenuePolicy {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return revenueRegistry[name]
}

// ListRevenuePolicies returns the names of all registered revenue policies,
// sorted for stable listings.
func ListRevenuePolicies() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(revenueRegistry))
	for name := range revenueRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterBonusPolicy adds a bonus policy to the global registry.
func RegisterBonusPolicy(name string, p BonusPolicy) {
	registryMu.Lock()
	defer registryMu.Unlock()
	bonusRegistry[name] = p
}

// LookupBonusPolicy finds a registered bonus policy by name.
// Returns nil if not found.
func LookupBonusPolicy(name string) BonusPolicy {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return bonusRegistry[name]
}

// ListBonusPolicies returns the names of all registered bonus policies, sorted.
func ListBonusPolicies() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(bonusRegistry))
	for name := range bonusRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
