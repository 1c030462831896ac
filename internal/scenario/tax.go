package scenario

import "github.com/shopspring/decimal"

const moneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// TaxInput is everything the tax calculator needs. Rates are fractions.
type TaxInput struct {
	TaxableBase   decimal.Decimal
	StateTaxRate  decimal.Decimal
	CountyTaxRate decimal.Decimal
	// An invalid CountyCap means the county portion is uncapped.
	CountyCap decimal.NullDecimal
}

// TaxCalculator computes state and county sales tax.
type TaxCalculator struct{}

// Calculate clamps negative inputs to zero; it never fails.
func (TaxCalculator) Calculate(in TaxInput) TaxBreakdown {
	base := nonNegative(in.TaxableBase)
	stateRate := nonNegative(in.StateTaxRate)
	countyRate := nonNegative(in.CountyTaxRate)
	countyCap := in.CountyCap
	if countyCap.Valid {
		countyCap.Decimal = nonNegative(countyCap.Decimal)
	}

	countyBase := base
	capped := false
	if countyCap.Valid && base.GreaterThan(countyCap.Decimal) {
		countyBase = countyCap.Decimal
		capped = true
	}

	return TaxBreakdown{
		TaxableBase:       base,
		StateTaxRate:      stateRate,
		CountyTaxRate:     countyRate,
		CountyTaxCap:      countyCap,
		CountyTaxableBase: countyBase,
		StateTax:          roundMoney(base.Mul(stateRate)),
		CountyTax:         roundMoney(countyBase.Mul(countyRate)),
		CountyTaxCapped:   capped,
	}
}

// RateFromPercent turns a percentage such as 6.00 into the fraction 0.06.
// Call it once, where user input enters the system.
func RateFromPercent(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(hundred)
}

// DefaultTaxableBase is sale price plus dealer fees and add-ons, less the trade
// allowance when the resolved scenario keeps the trade-in.
func DefaultTaxableBase(ctx PurchaseContext, detected DetectedScenario) decimal.Decimal {
	base := ctx.SalePrice.Add(ctx.DealerFees).Add(ctx.CustomerAddons)
	if detected.HasTradeIn {
		base = base.Sub(nonNegative(ctx.TradeAllowance))
	}
	return nonNegative(base)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}
