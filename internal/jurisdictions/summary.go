package jurisdictions

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/autocalc-backend/internal/scenario"
	"github.com/angelmondragon/autocalc-backend/pkg/enums"
)

// Summary is the read-only view of a catalog exposed over the API.
type Summary struct {
	Code            string                       `json:"code"`
	Name            string                       `json:"name"`
	Default         bool                         `json:"default"`
	CountyTaxCap    decimal.NullDecimal          `json:"county_tax_cap"`
	Rules           []RuleSummary                `json:"rules"`
	WeightSchedules map[enums.BodyType][]Bracket `json:"weight_schedules"`
}

type RuleSummary struct {
	ID              string                 `json:"id"`
	Category        enums.LineItemCategory `json:"category"`
	Description     string                 `json:"description"`
	WeightDependent bool                   `json:"weight_dependent"`
}

type Bracket struct {
	CeilingLbs int             `json:"ceiling_lbs"`
	OpenEnded  bool            `json:"open_ended"`
	Fee        decimal.Decimal `json:"fee"`
	Label      string          `json:"label"`
}

// Summarize builds the API view of a catalog.
func Summarize(catalog *scenario.Catalog) Summary {
	if catalog == nil {
		return Summary{}
	}
	summary := Summary{
		Code:            catalog.Jurisdiction,
		Name:            catalog.Name,
		CountyTaxCap:    catalog.CountyTaxCap,
		Rules:           make([]RuleSummary, 0, len(catalog.Rules)),
		WeightSchedules: make(map[enums.BodyType][]Bracket, len(catalog.Schedules)),
	}
	for _, rule := range catalog.Rules {
		summary.Rules = append(summary.Rules, RuleSummary{
			ID:              rule.ID,
			Category:        rule.Category,
			Description:     rule.Description,
			WeightDependent: rule.WeightDependent,
		})
	}
	for bodyType, schedule := range catalog.Schedules {
		brackets := make([]Bracket, 0, len(schedule))
		for _, b := range schedule {
			brackets = append(brackets, Bracket{CeilingLbs: b.CeilingLbs, OpenEnded: b.OpenEnded, Fee: b.Fee, Label: b.Label})
		}
		summary.WeightSchedules[bodyType] = brackets
	}
	return summary
}

// Summary returns the API view of one jurisdiction.
func (r *Registry) Summary(key string) (Summary, error) {
	catalog, err := r.Catalog(key)
	if err != nil {
		return Summary{}, err
	}
	summary := Summarize(catalog)
	summary.Default = summary.Code == r.defaultCode
	return summary, nil
}

// Summaries lists every loaded jurisdiction ordered by code.
func (r *Registry) Summaries() []Summary {
	codes := r.Codes()
	out := make([]Summary, 0, len(codes))
	for _, code := range codes {
		summary := Summarize(r.engines[code].Catalog())
		summary.Default = code == r.defaultCode
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
