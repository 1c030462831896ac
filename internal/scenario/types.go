// Package scenario computes government fees and sales tax for a vehicle purchase.
//
// Every value in this package is created for a single evaluation and never mutated
// afterwards, so an Engine can be shared freely between goroutines.
package scenario

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/autocalc-backend/pkg/enums"
)

// PurchaseContext holds the caller-supplied facts about a deal.
type PurchaseContext struct {
	SalePrice      decimal.Decimal `json:"sale_price"`
	CashDown       decimal.Decimal `json:"cash_down"`
	TradeAllowance decimal.Decimal `json:"trade_allowance"`
	TradePayoff    decimal.Decimal `json:"trade_payoff"`
	DealerFees     decimal.Decimal `json:"dealer_fees"`
	CustomerAddons decimal.Decimal `json:"customer_addons"`

	// StateTaxRate and CountyTaxRate are fractions (0.06), never percentages.
	StateTaxRate  decimal.Decimal `json:"state_tax_rate"`
	CountyTaxRate decimal.Decimal `json:"county_tax_rate"`

	StateName  string `json:"state_name"`
	CountyName string `json:"county_name"`

	IsFinanced bool `json:"is_financed"`
	HasTradeIn bool `json:"has_trade_in"`

	// TaxableBase overrides DefaultTaxableBase when valid.
	TaxableBase decimal.NullDecimal `json:"taxable_base"`
}

// ScenarioOverrides are the facts a user may pin. Nil means "derive from context".
type ScenarioOverrides struct {
	Enabled               *bool          `json:"enabled,omitempty"`
	CashPurchase          *bool          `json:"cash_purchase,omitempty"`
	IncludeTradeIn        *bool          `json:"include_trade_in,omitempty"`
	TagMode               *enums.TagMode `json:"tag_mode,omitempty"`
	FirstTimeRegistration *bool          `json:"first_time_registration,omitempty"`
}

// AutoCalculate reports whether automatic government fee detection is on.
func (o ScenarioOverrides) AutoCalculate() bool {
	return o.Enabled == nil || *o.Enabled
}

// DetectedScenario is the canonical set of facts fee rules are evaluated against.
type DetectedScenario struct {
	IsFinanced            bool               `json:"is_financed"`
	HasTradeIn            bool               `json:"has_trade_in"`
	IsTagTransfer         bool               `json:"is_tag_transfer"`
	TagMode               enums.TagMode      `json:"tag_mode"`
	FirstTimeRegistration bool               `json:"first_time_registration"`
	AutoCalculated        bool               `json:"auto_calculated"`
	Type                  enums.ScenarioType `json:"type"`
	Description           string             `json:"description"`
}

// VehicleIdentity carries the VIN-derived attributes used to estimate weight.
type VehicleIdentity struct {
	VIN           string         `json:"vin,omitempty"`
	CurbWeightLbs *int           `json:"curb_weight_lbs,omitempty"`
	GVWRLbs       *int           `json:"gvwr_lbs,omitempty"`
	BodyType      enums.BodyType `json:"body_type,omitempty"`
}

// ManualWeight is a bracket the user picked by hand. BracketLbs may be the bracket
// ceiling or any weight inside the bracket.
type ManualWeight struct {
	BracketLbs int `json:"bracket_lbs"`
}

// WeightResolution is the outcome of the weight fallback chain.
type WeightResolution struct {
	EstimatedWeightLbs *int               `json:"estimated_weight_lbs"`
	WeightSource       enums.WeightSource `json:"weight_source"`
	BodyType           enums.BodyType     `json:"body_type"`
	WeightBracketLbs   *int               `json:"weight_bracket_lbs"`
	BracketLabel       string             `json:"bracket_label,omitempty"`
}

// RequiresManualEntry reports whether weight-dependent fees cannot be computed yet.
func (w WeightResolution) RequiresManualEntry() bool {
	return !w.WeightSource.HasBracket() || w.WeightBracketLbs == nil
}

// LineItem is a single itemized fee or tax.
type LineItem struct {
	Category    enums.LineItemCategory `json:"category"`
	Code        string                 `json:"code"`
	Description string                 `json:"description"`
	Amount      decimal.Decimal        `json:"amount"`
}

// TaxBreakdown itemizes state and county sales tax.
type TaxBreakdown struct {
	TaxableBase       decimal.Decimal     `json:"taxable_base"`
	StateTaxRate      decimal.Decimal     `json:"state_tax_rate"`
	CountyTaxRate     decimal.Decimal     `json:"county_tax_rate"`
	CountyTaxCap      decimal.NullDecimal `json:"county_tax_cap"`
	CountyTaxableBase decimal.Decimal     `json:"county_taxable_base"`
	StateTax          decimal.Decimal     `json:"state_tax"`
	CountyTax         decimal.Decimal     `json:"county_tax"`
	CountyTaxCapped   bool                `json:"county_tax_capped"`
}

// Totals summarizes a result.
type Totals struct {
	GovernmentFees decimal.Decimal `json:"government_fees"`
	SalesTax       decimal.Decimal `json:"sales_tax"`
	TotalFees      decimal.Decimal `json:"total_fees"`
}

// ScenarioResult is rebuilt from scratch on every evaluation.
type ScenarioResult struct {
	Jurisdiction     string           `json:"jurisdiction"`
	DetectedScenario DetectedScenario `json:"detected_scenario"`
	LineItems        []LineItem       `json:"line_items"`
	AppliedRuleIDs   []string         `json:"applied_rule_ids"`
	Totals           Totals           `json:"totals"`
	TaxBreakdown     TaxBreakdown     `json:"tax_breakdown"`
	Weight           WeightResolution `json:"weight"`
	WeightRequired   bool             `json:"weight_required"`
}
