package quotes

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/autocalc-backend/internal/scenario"
	"github.com/angelmondragon/autocalc-backend/internal/vehicles"
	"github.com/angelmondragon/autocalc-backend/pkg/loanterms"
)

// Request is the API shape of a deal. Tax rates arrive as percentages (6 means 6%).
type Request struct {
	Jurisdiction string `json:"jurisdiction" validate:"omitempty,min=2,max=32"`

	SalePrice      decimal.Decimal `json:"sale_price"`
	CashDown       decimal.Decimal `json:"cash_down"`
	TradeAllowance decimal.Decimal `json:"trade_allowance"`
	TradePayoff    decimal.Decimal `json:"trade_payoff"`
	DealerFees     decimal.Decimal `json:"dealer_fees"`
	CustomerAddons decimal.Decimal `json:"customer_addons"`

	StateTaxRatePercent  decimal.Decimal `json:"state_tax_rate_percent"`
	CountyTaxRatePercent decimal.Decimal `json:"county_tax_rate_percent"`

	StateName  string `json:"state_name" validate:"max=64"`
	CountyName string `json:"county_name" validate:"max=64"`

	APR        decimal.Decimal `json:"apr"`
	TermMonths int             `json:"term_months" validate:"gte=0,lte=120"`

	// IsFinanced and HasTradeIn are derived from the numbers when omitted.
	IsFinanced *bool `json:"is_financed"`
	HasTradeIn *bool `json:"has_trade_in"`

	TaxableBase decimal.NullDecimal `json:"taxable_base"`

	Overrides scenario.ScenarioOverrides `json:"overrides"`
	Vehicle   *vehicles.WeightRequest    `json:"vehicle"`
}

// Quote is a scenario result plus the financing terms it was priced with.
type Quote struct {
	scenario.ScenarioResult
	Financing *Financing `json:"financing,omitempty"`
}

// Financing reports the loan term after normalization to a standard term.
type Financing struct {
	APR  decimal.Decimal `json:"apr"`
	Term loanterms.Info  `json:"term"`
}
