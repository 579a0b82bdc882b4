/*
Package factory provides JSON to Go report-configuration conversion.

PURPOSE:
  Converts JSON configuration into an analytics.Config. This enables
  report configuration without code changes - operations can pick the
  revenue formula and bonus rate table in JSON, and the factory resolves
  the proper policy functions.

WHY JSON?
  - Non-developers can switch formulas
  - Easy integration with the reporting API
  - Version control for report configurations

JSON SCHEMA:
  {
    "revenue": {"name": "simple"},
    "bonus": {
      "name": "profit_tiers",
      "rates": {"top": 0.15, "podium": 0.10, "base": 0.05}
    }
  }

RESOLUTION RULES:
  - Policy names resolve through the analytics registry (domain packages
    register on init)
  - "rates" overrides the default profit_tiers rate table
  - Malformed or non-object JSON      -> analytics.ErrInvalidConfig
  - Missing policy name               -> analytics.ErrMissingPolicy
  - Name that resolves to no function -> analytics.ErrInvalidPolicyType

USAGE:
  factory := factory.NewConfigFactory()
  cfg, err := factory.ParseConfig(`{"revenue":{"name":"simple"},"bonus":{"name":"profit_tiers"}}`)
  rows, err := analytics.Analyze(data, cfg)

SEE ALSO:
  - analytics/policy.go: Policy registry
  - commission/policies.go: The registered policy implementations
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/sales-analytics/analytics"
	"github.com/warp/sales-analytics/commission"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ConfigJSON is the JSON representation of a report configuration.
type ConfigJSON struct {
	Revenue RevenueJSON `json:"revenue"`
	Bonus   BonusJSON   `json:"bonus"`
}

// RevenueJSON selects a registered revenue policy.
type RevenueJSON struct {
	Name string `json:"name"`
}

// BonusJSON selects a registered bonus policy, optionally overriding the
// profit_tiers rate table.
type BonusJSON struct {
	Name  string     `json:"name"`
	Rates *RatesJSON `json:"rates,omitempty"`
}

// RatesJSON is a custom rate table for the tiered bonus policy.
type RatesJSON struct {
	Top    float64 `json:"top"`
	Podium float64 `json:"podium"`
	Base   float64 `json:"base"`
}

// =============================================================================
// CONFIG FACTORY
// =============================================================================

// ConfigFactory converts JSON configurations to analytics.Config.
type ConfigFactory struct{}

// NewConfigFactory creates a new config factory.
func NewConfigFactory() *ConfigFactory {
	return &ConfigFactory{}
}

// ParseConfig parses a JSON string into an analytics.Config.
func (f *ConfigFactory) ParseConfig(jsonStr string) (analytics.Config, error) {
	var cj ConfigJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return analytics.Config{}, fmt.Errorf("%w: %v", analytics.ErrInvalidConfig, err)
	}
	return f.FromJSON(cj)
}

// FromJSON resolves a ConfigJSON into concrete policy functions.
func (f *ConfigFactory) FromJSON(cj ConfigJSON) (analytics.Config, error) {
	if cj.Revenue.Name == "" {
		return analytics.Config{}, &analytics.PolicyError{Field: "calculateRevenue", Err: analytics.ErrMissingPolicy}
	}
	revenue := analytics.LookupRevenuePolicy(cj.Revenue.Name)
	if revenue == nil {
		return analytics.Config{}, &analytics.PolicyError{Field: "calculateRevenue", Err: analytics.ErrInvalidPolicyType}
	}

	bonus, err := f.resolveBonus(cj.Bonus)
	if err != nil {
		return analytics.Config{}, err
	}

	return analytics.Config{CalculateRevenue: revenue, CalculateBonus: bonus}, nil
}

func (f *ConfigFactory) resolveBonus(bj BonusJSON) (analytics.BonusPolicy, error) {
	if bj.Name == "" {
		return nil, &analytics.PolicyError{Field: "calculateBonus", Err: analytics.ErrMissingPolicy}
	}

	// A custom rate table only makes sense for the tiered policy.
	if bj.Rates != nil && bj.Name == commission.BonusProfitTiers {
		return commission.RateTableBonus(
			decimal.NewFromFloat(bj.Rates.Top),
			decimal.NewFromFloat(bj.Rates.Podium),
			decimal.NewFromFloat(bj.Rates.Base),
		), nil
	}

	bonus := analytics.LookupBonusPolicy(bj.Name)
	if bonus == nil {
		return nil, &analytics.PolicyError{Field: "calculateBonus", Err: analytics.ErrInvalidPolicyType}
	}
	return bonus, nil
}
