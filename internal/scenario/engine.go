package scenario

import (
	"github.com/angelmondragon/autocalc-backend/pkg/enums"
)

const (
	StateSalesTaxCode  = "state_sales_tax"
	CountySalesTaxCode = "county_sales_tax"
)

// Engine composes the resolver, evaluator and tax calculator for one catalog.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	catalog   *Catalog
	resolver  Resolver
	evaluator Evaluator
	tax       TaxCalculator
	weights   *WeightResolver
}

// NewEngine binds an engine to a jurisdiction catalog.
func NewEngine(catalog *Catalog) *Engine {
	if catalog == nil {
		catalog = &Catalog{}
	}
	return &Engine{
		catalog: catalog,
		weights: NewWeightResolver(catalog.Schedules),
	}
}

// Catalog returns the catalog the engine evaluates.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Weights returns a weight resolver over the catalog's schedules.
func (e *Engine) Weights() *WeightResolver {
	return e.weights
}

// Evaluate recomputes the full result from its inputs.
func (e *Engine) Evaluate(ctx PurchaseContext, overrides ScenarioOverrides, weight WeightResolution) ScenarioResult {
	detected := e.resolver.Resolve(ctx, overrides)

	items := []LineItem{}
	applied := []string{}
	if detected.AutoCalculated {
		items, applied = e.evaluator.Evaluate(e.catalog, detected, weight)
	}

	base := DefaultTaxableBase(ctx, detected)
	if ctx.TaxableBase.Valid {
		base = ctx.TaxableBase.Decimal
	}
	breakdown := e.tax.Calculate(TaxInput{
		TaxableBase:   base,
		StateTaxRate:  ctx.StateTaxRate,
		CountyTaxRate: ctx.CountyTaxRate,
		CountyCap:     e.catalog.CountyTaxCap,
	})

	items = append(items,
		LineItem{
			Category:    enums.LineItemCategoryTax,
			Code:        StateSalesTaxCode,
			Description: "State sales tax",
			Amount:      breakdown.StateTax,
		},
		LineItem{
			Category:    enums.LineItemCategoryTax,
			Code:        CountySalesTaxCode,
			Description: "County sales tax",
			Amount:      breakdown.CountyTax,
		},
	)

	government := sumCategory(items, enums.LineItemCategoryGovernment)
	salesTax := breakdown.StateTax.Add(breakdown.CountyTax)

	return ScenarioResult{
		Jurisdiction:     e.catalog.Jurisdiction,
		DetectedScenario: detected,
		LineItems:        items,
		AppliedRuleIDs:   applied,
		Totals: Totals{
			GovernmentFees: government,
			SalesTax:       salesTax,
			TotalFees:      government.Add(salesTax),
		},
		TaxBreakdown:   breakdown,
		Weight:         copyWeight(weight),
		WeightRequired: detected.AutoCalculated && weight.RequiresManualEntry(),
	}
}

func copyWeight(w WeightResolution) WeightResolution {
	out := w
	if w.EstimatedWeightLbs != nil {
		out.EstimatedWeightLbs = intPtr(*w.EstimatedWeightLbs)
	}
	if w.WeightBracketLbs != nil {
		out.WeightBracketLbs = intPtr(*w.WeightBracketLbs)
	}
	return out
}
