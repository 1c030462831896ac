package scenario

import (
	"strings"

	"github.com/angelmondragon/autocalc-backend/pkg/enums"
)

// Resolver merges purchase facts with user overrides into a DetectedScenario.
type Resolver struct{}

// Resolve never fails: unset or contradictory overrides are settled by priority.
func (Resolver) Resolve(ctx PurchaseContext, overrides ScenarioOverrides) DetectedScenario {
	auto := overrides.AutoCalculate()
	if !auto {
		overrides = disabledOverrides()
	}

	cash := !ctx.IsFinanced
	if overrides.CashPurchase != nil {
		cash = *overrides.CashPurchase
	}

	includeTrade := true
	if overrides.IncludeTradeIn != nil {
		includeTrade = *overrides.IncludeTradeIn
	}
	hasTrade := ctx.HasTradeIn && includeTrade

	tagMode := enums.TagModeUnset
	if overrides.TagMode != nil && overrides.TagMode.IsValid() {
		tagMode = *overrides.TagMode
	}
	if hasTrade {
		tagMode = enums.TagModeTransferExistingPlate
	}

	firstTime := false
	if overrides.FirstTimeRegistration != nil {
		firstTime = *overrides.FirstTimeRegistration
	}

	detected := DetectedScenario{
		IsFinanced:            !cash,
		HasTradeIn:            hasTrade,
		IsTagTransfer:         tagMode == enums.TagModeTransferExistingPlate,
		TagMode:               tagMode,
		FirstTimeRegistration: firstTime,
		AutoCalculated:        auto,
	}
	detected.Type = classify(detected)
	detected.Description = describe(detected)
	return detected
}

// disabledOverrides are the pins in force while fees are entered by hand: a financed
// purchase that keeps any trade-in, no tag mode, not a first-time registration.
func disabledOverrides() ScenarioOverrides {
	cash, includeTrade, firstTime := false, true, false
	return ScenarioOverrides{
		CashPurchase:          &cash,
		IncludeTradeIn:        &includeTrade,
		FirstTimeRegistration: &firstTime,
	}
}

func classify(s DetectedScenario) enums.ScenarioType {
	if !s.AutoCalculated {
		return enums.ScenarioTypeManual
	}
	switch {
	case s.IsFinanced && s.TagMode == enums.TagModeNewPlate:
		return enums.ScenarioTypeFinancedNewPlate
	case s.IsFinanced && s.TagMode == enums.TagModeTransferExistingPlate:
		return enums.ScenarioTypeFinancedTagTransfer
	case s.IsFinanced && s.TagMode == enums.TagModeTempTag:
		return enums.ScenarioTypeFinancedTempTag
	case s.IsFinanced:
		return enums.ScenarioTypeFinanced
	case s.TagMode == enums.TagModeNewPlate:
		return enums.ScenarioTypeCashNewPlate
	case s.TagMode == enums.TagModeTransferExistingPlate:
		return enums.ScenarioTypeCashTagTransfer
	case s.TagMode == enums.TagModeTempTag:
		return enums.ScenarioTypeCashTempTag
	default:
		return enums.ScenarioTypeCash
	}
}

func describe(s DetectedScenario) string {
	if !s.AutoCalculated {
		return "Government fees entered manually"
	}

	parts := make([]string, 0, 4)
	if s.IsFinanced {
		parts = append(parts, "Financed purchase")
	} else {
		parts = append(parts, "Cash purchase")
	}
	if s.HasTradeIn {
		parts = append(parts, "with trade-in")
	}
	switch s.TagMode {
	case enums.TagModeNewPlate:
		parts = append(parts, "new plate")
	case enums.TagModeTransferExistingPlate:
		parts = append(parts, "tag transfer")
	case enums.TagModeTempTag:
		parts = append(parts, "temporary tag")
	}
	if s.FirstTimeRegistration {
		parts = append(parts, "first-time registration")
	}

	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0] + " " + strings.Join(parts[1:], ", ")
}
