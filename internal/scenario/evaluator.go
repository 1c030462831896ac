package scenario

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/autocalc-backend/pkg/enums"
)

// Evaluator runs a catalog against a resolved scenario.
type Evaluator struct{}

// Evaluate returns government line items and applied rule ids in catalog order.
// Zero-amount matches are emitted; callers decide whether to hide them.
func (Evaluator) Evaluate(catalog *Catalog, detected DetectedScenario, weight WeightResolution) ([]LineItem, []string) {
	items := []LineItem{}
	applied := []string{}
	if catalog == nil {
		return items, applied
	}

	weightMissing := weight.RequiresManualEntry()
	for _, rule := range catalog.Rules {
		if rule.AppliesTo == nil || rule.Amount == nil {
			continue
		}
		if rule.WeightDependent && weightMissing {
			continue
		}
		if !rule.AppliesTo(detected, weight) {
			continue
		}

		category := rule.Category
		if !category.IsValid() {
			category = enums.LineItemCategoryGovernment
		}
		items = append(items, LineItem{
			Category:    category,
			Code:        rule.ID,
			Description: rule.Description,
			Amount:      roundMoney(nonNegative(rule.Amount(detected, weight))),
		})
		applied = append(applied, rule.ID)
	}
	return items, applied
}

// sumCategory totals the line items of one category.
func sumCategory(items []LineItem, category enums.LineItemCategory) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.Category == category {
			total = total.Add(item.Amount)
		}
	}
	return total
}
