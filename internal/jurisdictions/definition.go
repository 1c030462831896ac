package jurisdictions

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/angelmondragon/autocalc-backend/internal/scenario"
	"github.com/angelmondragon/autocalc-backend/pkg/enums"
)

// Definition is the on-disk shape of a jurisdiction catalog.
type Definition struct {
	Code            string                         `yaml:"code" validate:"required,len=2,alpha"`
	Name            string                         `yaml:"name" validate:"required"`
	CountyTaxCap    string                         `yaml:"county_tax_cap" validate:"omitempty,numeric"`
	WeightSchedules map[string][]BracketDefinition `yaml:"weight_schedules" validate:"required,dive,keys,oneof=auto truck van other,endkeys,min=1,dive"`
	Rules           []RuleDefinition               `yaml:"rules" validate:"required,min=1,dive"`
}

type BracketDefinition struct {
	CeilingLbs int    `yaml:"ceiling_lbs" validate:"gt=0"`
	Fee        string `yaml:"fee" validate:"required,numeric"`
	OpenEnded  bool   `yaml:"open_ended"`
	Label      string `yaml:"label"`
}

type RuleDefinition struct {
	ID          string              `yaml:"id" validate:"required"`
	Description string              `yaml:"description"`
	When        ConditionDefinition `yaml:"when"`
	Amount      AmountDefinition    `yaml:"amount"`
}

// ConditionDefinition fields are ANDed; unset fields do not constrain.
type ConditionDefinition struct {
	Financed              *bool  `yaml:"financed"`
	Cash                  *bool  `yaml:"cash"`
	TradeIn               *bool  `yaml:"trade_in"`
	TagMode               string `yaml:"tag_mode" validate:"omitempty,oneof=new_plate transfer_existing_plate temp_tag"`
	FirstTimeRegistration *bool  `yaml:"first_time_registration"`
}

// AmountDefinition must set exactly one of Fixed or WeightSchedule.
type AmountDefinition struct {
	Fixed          string `yaml:"fixed" validate:"omitempty,numeric"`
	WeightSchedule bool   `yaml:"weight_schedule"`
}

var validate = validator.New()

// Parse decodes and compiles a YAML catalog.
func Parse(data []byte) (*scenario.Catalog, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return def.Compile()
}

// Compile validates the definition and turns it into an executable catalog.
func (d Definition) Compile() (*scenario.Catalog, error) {
	if err := validate.Struct(d); err != nil {
		return nil, fmt.Errorf("catalog %q: %w", d.Code, err)
	}

	var errs error
	var countyCap decimal.NullDecimal
	if strings.TrimSpace(d.CountyTaxCap) != "" {
		capAmount, err := decimal.NewFromString(d.CountyTaxCap)
		errs = multierr.Append(errs, err)
		countyCap = decimal.NewNullDecimal(capAmount)
	}

	schedules := make(scenario.Schedules, len(d.WeightSchedules))
	for rawBodyType, brackets := range d.WeightSchedules {
		bodyType, err := enums.ParseBodyType(rawBodyType)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		schedule := make(scenario.WeightSchedule, 0, len(brackets))
		for _, b := range brackets {
			fee, err := decimal.NewFromString(b.Fee)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%s bracket %d: %w", bodyType, b.CeilingLbs, err))
				continue
			}
			schedule = append(schedule, scenario.WeightBracket{
				CeilingLbs: b.CeilingLbs,
				OpenEnded:  b.OpenEnded,
				Fee:        fee,
				Label:      b.Label,
			})
		}
		schedules[bodyType] = schedule
	}

	rules := make([]scenario.FeeRule, 0, len(d.Rules))
	for _, rd := range d.Rules {
		rule, err := rd.compile(schedules)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		rules = append(rules, rule)
	}
	if errs != nil {
		return nil, fmt.Errorf("catalog %q: %w", d.Code, errs)
	}

	catalog := &scenario.Catalog{
		Jurisdiction: strings.ToUpper(d.Code),
		Name:         d.Name,
		CountyTaxCap: countyCap,
		Schedules:    schedules,
		Rules:        rules,
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (rd RuleDefinition) compile(schedules scenario.Schedules) (scenario.FeeRule, error) {
	hasFixed := strings.TrimSpace(rd.Amount.Fixed) != ""
	if hasFixed == rd.Amount.WeightSchedule {
		return scenario.FeeRule{}, fmt.Errorf("rule %q: amount needs exactly one of fixed or weight_schedule", rd.ID)
	}

	when, err := rd.When.predicate()
	if err != nil {
		return scenario.FeeRule{}, fmt.Errorf("rule %q: %w", rd.ID, err)
	}

	description := rd.Description
	if description == "" {
		description = rd.ID
	}

	if rd.Amount.WeightSchedule {
		return scenario.WeightFeeRule(rd.ID, description, schedules, when), nil
	}
	amount, err := decimal.NewFromString(rd.Amount.Fixed)
	if err != nil {
		return scenario.FeeRule{}, fmt.Errorf("rule %q: %w", rd.ID, err)
	}
	if amount.IsNegative() {
		return scenario.FeeRule{}, fmt.Errorf("rule %q: amount must not be negative", rd.ID)
	}
	return scenario.FixedFeeRule(rd.ID, description, amount, when), nil
}

func (c ConditionDefinition) predicate() (scenario.Predicate, error) {
	var preds []scenario.Predicate
	if c.Financed != nil {
		preds = append(preds, scenario.WhenFinanced(*c.Financed))
	}
	if c.Cash != nil {
		if c.Financed != nil && *c.Financed == *c.Cash {
			return nil, fmt.Errorf("financed and cash conditions contradict")
		}
		preds = append(preds, scenario.WhenFinanced(!*c.Cash))
	}
	if c.TradeIn != nil {
		preds = append(preds, scenario.WhenTradeIn(*c.TradeIn))
	}
	if c.TagMode != "" {
		mode, err := enums.ParseTagMode(c.TagMode)
		if err != nil {
			return nil, err
		}
		preds = append(preds, scenario.WhenTagMode(mode))
	}
	if c.FirstTimeRegistration != nil {
		preds = append(preds, scenario.WhenFirstTimeRegistration(*c.FirstTimeRegistration))
	}
	return scenario.AllOf(preds...), nil
}
