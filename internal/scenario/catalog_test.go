package scenario

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/autocalc-backend/pkg/enums"
)

func money(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func requireMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Equal(t, want, got.StringFixed(2))
}

func schedule(ceilings []int, fees []string, openEnded bool) WeightSchedule {
	out := make(WeightSchedule, 0, len(ceilings))
	for i, c := range ceilings {
		out = append(out, WeightBracket{
			CeilingLbs: c,
			OpenEnded:  openEnded && i == len(ceilings)-1,
			Fee:        money(fees[i]),
		})
	}
	return out
}

func testSchedules() Schedules {
	truck := schedule(
		[]int{1999, 3000, 5000, 5999, 7999, 9999, 14999, 19999, 26000, 34999, 43999, 54999, 61999, 71999, 72000},
		[]string{"14.50", "22.50", "32.50", "60.75", "87.75", "103.00", "118.00", "177.00", "251.00", "324.00", "405.00", "773.00", "916.00", "1080.00", "1322.00"},
		true,
	)
	return Schedules{
		enums.BodyTypeAuto:  schedule([]int{2499, 3499, 3500}, []string{"14.50", "22.50", "32.50"}, true),
		enums.BodyTypeTruck: truck,
		enums.BodyTypeVan:   truck,
	}
}

func testCatalog() *Catalog {
	schedules := testSchedules()
	return &Catalog{
		Jurisdiction: "FL",
		Name:         "Florida",
		CountyTaxCap: capOf("5000"),
		Schedules:    schedules,
		Rules: []FeeRule{
			FixedFeeRule("fl.title_fee", "Title fee", money("75.25"), Always()),
			FixedFeeRule("fl.lien_recording_fee", "Lien recording fee", money("2.00"), WhenFinanced(true)),
			WeightFeeRule("fl.registration_weight", "Registration by weight", schedules, nil),
			FixedFeeRule("fl.initial_registration_fee", "Initial registration fee", money("225.00"), WhenFirstTimeRegistration(true)),
			FixedFeeRule("fl.plate_issuance_fee", "New plate issuance", money("28.00"), WhenTagMode(enums.TagModeNewPlate)),
			FixedFeeRule("fl.plate_transfer_fee", "Plate transfer", money("4.60"), WhenTagMode(enums.TagModeTransferExistingPlate)),
			FixedFeeRule("fl.temp_tag_fee", "Temporary tag", money("2.00"), WhenTagMode(enums.TagModeTempTag)),
		},
	}
}

func TestWeightScheduleSelect(t *testing.T) {
	auto := testSchedules()[enums.BodyTypeAuto]

	tests := []struct {
		weight  int
		ceiling int
	}{
		{weight: 1, ceiling: 2499},
		{weight: 2499, ceiling: 2499},
		{weight: 2500, ceiling: 3499},
		{weight: 3499, ceiling: 3499},
		{weight: 3500, ceiling: 3500},
		{weight: 9000, ceiling: 3500},
	}
	for _, tt := range tests {
		bracket, ok := auto.Select(tt.weight)
		require.True(t, ok)
		assert.Equal(t, tt.ceiling, bracket.CeilingLbs, "weight %d", tt.weight)
	}
}

func TestWeightScheduleSelectClosedTop(t *testing.T) {
	closed := schedule([]int{1000, 2000}, []string{"1", "2"}, false)
	_, ok := closed.Select(2500)
	assert.False(t, ok)

	_, ok = WeightSchedule(nil).Select(10)
	assert.False(t, ok)
}

func TestSchedulesForFallsBackToAuto(t *testing.T) {
	schedules := testSchedules()
	assert.Equal(t, schedules[enums.BodyTypeAuto], schedules.For(enums.BodyTypeOther))
	assert.Equal(t, schedules[enums.BodyTypeAuto], schedules.For(""))
	assert.Equal(t, schedules[enums.BodyTypeTruck], schedules.For(enums.BodyTypeVan))
}

func TestCatalogValidate(t *testing.T) {
	require.NoError(t, testCatalog().Validate())

	dup := testCatalog()
	dup.Rules = append(dup.Rules, FixedFeeRule("fl.title_fee", "again", money("1"), nil))
	assert.ErrorContains(t, dup.Validate(), "duplicate rule id")

	noAuto := testCatalog()
	delete(noAuto.Schedules, enums.BodyTypeAuto)
	assert.ErrorContains(t, noAuto.Validate(), "auto weight schedule")

	unordered := testCatalog()
	unordered.Schedules[enums.BodyTypeTruck] = schedule([]int{5000, 1000}, []string{"1", "2"}, false)
	assert.ErrorContains(t, unordered.Validate(), "not ascending")

	missingFn := testCatalog()
	missingFn.Rules[0].Amount = nil
	assert.ErrorContains(t, missingFn.Validate(), "needs a predicate")

	var nilCatalog *Catalog
	assert.Error(t, nilCatalog.Validate())
}

func TestCatalogRuleIDsKeepDeclarationOrder(t *testing.T) {
	assert.Equal(t, []string{
		"fl.title_fee",
		"fl.lien_recording_fee",
		"fl.registration_weight",
		"fl.initial_registration_fee",
		"fl.plate_issuance_fee",
		"fl.plate_transfer_fee",
		"fl.temp_tag_fee",
	}, testCatalog().RuleIDs())
}
