package scenario

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/autocalc-backend/pkg/enums"
)

// WeightBracket is one tier of a registration weight schedule.
type WeightBracket struct {
	CeilingLbs int
	OpenEnded  bool
	Fee        decimal.Decimal
	Label      string
}

// WeightSchedule is ordered by ascending ceiling; only the last tier may be open ended.
type WeightSchedule []WeightBracket

// Select returns the smallest bracket whose ceiling is >= weightLbs, or the open-ended
// top tier when the weight exceeds every closed ceiling.
func (s WeightSchedule) Select(weightLbs int) (WeightBracket, bool) {
	if len(s) == 0 {
		return WeightBracket{}, false
	}
	for _, bracket := range s {
		if bracket.OpenEnded || weightLbs <= bracket.CeilingLbs {
			return bracket, true
		}
	}
	return WeightBracket{}, false
}

// Schedules maps body types to their weight schedules.
type Schedules map[enums.BodyType]WeightSchedule

// For returns the schedule for bodyType, falling back to the auto schedule.
func (s Schedules) For(bodyType enums.BodyType) WeightSchedule {
	if schedule, ok := s[bodyType.OrDefault()]; ok && len(schedule) > 0 {
		return schedule
	}
	return s[enums.BodyTypeAuto]
}

// Predicate decides whether a rule applies.
type Predicate func(DetectedScenario, WeightResolution) bool

// AmountFunc computes a rule's fee.
type AmountFunc func(DetectedScenario, WeightResolution) decimal.Decimal

// FeeRule is a single government fee. Rules are pure and must not panic.
type FeeRule struct {
	ID              string
	Category        enums.LineItemCategory
	Description     string
	WeightDependent bool
	AppliesTo       Predicate
	Amount          AmountFunc
}

// Catalog is the static fee configuration for one jurisdiction.
type Catalog struct {
	Jurisdiction string
	Name         string
	CountyTaxCap decimal.NullDecimal
	Schedules    Schedules
	Rules        []FeeRule
}

// RuleIDs lists rule ids in declaration order.
func (c *Catalog) RuleIDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.Rules))
	for _, rule := range c.Rules {
		ids = append(ids, rule.ID)
	}
	return ids
}

// Validate checks the structural invariants the evaluator relies on.
func (c *Catalog) Validate() error {
	if c == nil {
		return fmt.Errorf("catalog is nil")
	}
	if strings.TrimSpace(c.Jurisdiction) == "" {
		return fmt.Errorf("catalog jurisdiction is required")
	}
	if c.CountyTaxCap.Valid && c.CountyTaxCap.Decimal.IsNegative() {
		return fmt.Errorf("catalog %s: county tax cap must not be negative", c.Jurisdiction)
	}
	if len(c.Schedules[enums.BodyTypeAuto]) == 0 {
		return fmt.Errorf("catalog %s: auto weight schedule is required", c.Jurisdiction)
	}
	for bodyType, schedule := range c.Schedules {
		if err := schedule.validate(); err != nil {
			return fmt.Errorf("catalog %s: %s schedule: %w", c.Jurisdiction, bodyType, err)
		}
	}
	seen := make(map[string]struct{}, len(c.Rules))
	for i, rule := range c.Rules {
		if strings.TrimSpace(rule.ID) == "" {
			return fmt.Errorf("catalog %s: rule %d has no id", c.Jurisdiction, i)
		}
		if _, dup := seen[rule.ID]; dup {
			return fmt.Errorf("catalog %s: duplicate rule id %q", c.Jurisdiction, rule.ID)
		}
		seen[rule.ID] = struct{}{}
		if rule.AppliesTo == nil || rule.Amount == nil {
			return fmt.Errorf("catalog %s: rule %q needs a predicate and an amount", c.Jurisdiction, rule.ID)
		}
	}
	return nil
}

func (s WeightSchedule) validate() error {
	prev := -1
	for i, bracket := range s {
		if bracket.CeilingLbs <= prev {
			return fmt.Errorf("bracket %d ceiling %d is not ascending", i, bracket.CeilingLbs)
		}
		if bracket.OpenEnded && i != len(s)-1 {
			return fmt.Errorf("bracket %d is open ended but not last", i)
		}
		if bracket.Fee.IsNegative() {
			return fmt.Errorf("bracket %d fee must not be negative", i)
		}
		prev = bracket.CeilingLbs
	}
	return nil
}

// Always matches every scenario.
func Always() Predicate {
	return func(DetectedScenario, WeightResolution) bool { return true }
}

// WhenFinanced matches financed (true) or cash (false) deals.
func WhenFinanced(financed bool) Predicate {
	return func(s DetectedScenario, _ WeightResolution) bool { return s.IsFinanced == financed }
}

// WhenTradeIn matches deals with (true) or without (false) a trade-in.
func WhenTradeIn(tradeIn bool) Predicate {
	return func(s DetectedScenario, _ WeightResolution) bool { return s.HasTradeIn == tradeIn }
}

// WhenTagMode matches the resolved tag mode.
func WhenTagMode(mode enums.TagMode) Predicate {
	return func(s DetectedScenario, _ WeightResolution) bool { return s.TagMode == mode }
}

// WhenFirstTimeRegistration matches the first-time registration flag.
func WhenFirstTimeRegistration(firstTime bool) Predicate {
	return func(s DetectedScenario, _ WeightResolution) bool { return s.FirstTimeRegistration == firstTime }
}

// WhenWeightKnown matches once a weight bracket has been selected.
func WhenWeightKnown() Predicate {
	return func(_ DetectedScenario, w WeightResolution) bool { return !w.RequiresManualEntry() }
}

// AllOf matches when every predicate matches. No predicates matches everything.
func AllOf(predicates ...Predicate) Predicate {
	return func(s DetectedScenario, w WeightResolution) bool {
		for _, p := range predicates {
			if p != nil && !p(s, w) {
				return false
			}
		}
		return true
	}
}

// FixedAmount always returns amount.
func FixedAmount(amount decimal.Decimal) AmountFunc {
	return func(DetectedScenario, WeightResolution) decimal.Decimal { return amount }
}

// ScheduleAmount looks up the fee of the resolved weight bracket. The bracket key is
// re-selected against the body type's schedule, so a key that is not one of its
// ceilings still prices to the enclosing tier.
func ScheduleAmount(schedules Schedules) AmountFunc {
	return func(_ DetectedScenario, w WeightResolution) decimal.Decimal {
		if w.WeightBracketLbs == nil {
			return decimal.Zero
		}
		bracket, ok := schedules.For(w.BodyType).Select(*w.WeightBracketLbs)
		if !ok {
			return decimal.Zero
		}
		return bracket.Fee
	}
}

// FixedFeeRule builds a government rule with a constant amount.
func FixedFeeRule(id, description string, amount decimal.Decimal, when Predicate) FeeRule {
	if when == nil {
		when = Always()
	}
	return FeeRule{
		ID:          id,
		Category:    enums.LineItemCategoryGovernment,
		Description: description,
		AppliesTo:   when,
		Amount:      FixedAmount(amount),
	}
}

// WeightFeeRule builds the registration-by-weight rule over schedules.
func WeightFeeRule(id, description string, schedules Schedules, when Predicate) FeeRule {
	return FeeRule{
		ID:              id,
		Category:        enums.LineItemCategoryGovernment,
		Description:     description,
		WeightDependent: true,
		AppliesTo:       AllOf(WhenWeightKnown(), when),
		Amount:          ScheduleAmount(schedules),
	}
}
