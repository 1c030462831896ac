package jurisdictions

import (
	"testing"
	"testing/fstest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/autocalc-backend/internal/scenario"
	"github.com/angelmondragon/autocalc-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/autocalc-backend/pkg/errors"
)

const georgiaYAML = `
code: ga
name: Georgia
weight_schedules:
  auto:
    - { ceiling_lbs: 1, fee: "20.00", open_ended: true }
rules:
  - id: ga.title_fee
    amount: { fixed: "18.00" }
  - id: ga.tag_fee
    when: { cash: true, trade_in: false }
    amount: { weight_schedule: true }
`

func TestLoadDefaultFlorida(t *testing.T) {
	reg, err := LoadDefault("FL", "")
	require.NoError(t, err)

	catalog, err := reg.Catalog("fl")
	require.NoError(t, err)
	assert.Equal(t, "FL", catalog.Jurisdiction)
	assert.Equal(t, "Florida", catalog.Name)
	require.True(t, catalog.CountyTaxCap.Valid)
	assert.True(t, catalog.CountyTaxCap.Decimal.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, []string{
		"fl.title_fee",
		"fl.lien_recording_fee",
		"fl.registration_weight",
		"fl.initial_registration_fee",
		"fl.plate_issuance_fee",
		"fl.plate_transfer_fee",
		"fl.temp_tag_fee",
	}, catalog.RuleIDs())

	assert.Len(t, catalog.Schedules[enums.BodyTypeAuto], 3)
	assert.Len(t, catalog.Schedules[enums.BodyTypeTruck], 15)
	assert.Len(t, catalog.Schedules[enums.BodyTypeVan], 15)

	byName, err := reg.Catalog(" Florida ")
	require.NoError(t, err)
	assert.Same(t, catalog, byName)

	def, err := reg.Engine("")
	require.NoError(t, err)
	assert.Same(t, catalog, def.Catalog())
	assert.Equal(t, "FL", reg.DefaultCode())
}

func TestFloridaEndToEnd(t *testing.T) {
	reg, err := LoadDefault("FL", "")
	require.NoError(t, err)
	engine, err := reg.Engine("FL")
	require.NoError(t, err)

	curb := 8500
	weight := engine.Weights().Resolve(scenario.VehicleIdentity{CurbWeightLbs: &curb, BodyType: enums.BodyTypeTruck}, nil)
	tag := enums.TagModeNewPlate
	result := engine.Evaluate(scenario.PurchaseContext{
		SalePrice:     decimal.NewFromInt(45000),
		StateTaxRate:  decimal.RequireFromString("0.06"),
		CountyTaxRate: decimal.RequireFromString("0.01"),
	}, scenario.ScenarioOverrides{TagMode: &tag}, weight)

	assert.Equal(t, []string{"fl.title_fee", "fl.registration_weight", "fl.plate_issuance_fee"}, result.AppliedRuleIDs)
	// 75.25 + 103.00 + 28.00
	assert.Equal(t, "206.25", result.Totals.GovernmentFees.StringFixed(2))
	assert.Equal(t, "2700.00", result.TaxBreakdown.StateTax.StringFixed(2))
	assert.Equal(t, "50.00", result.TaxBreakdown.CountyTax.StringFixed(2))
}

func TestRegistryUnknownJurisdiction(t *testing.T) {
	reg, err := LoadDefault("FL", "")
	require.NoError(t, err)

	_, err = reg.Engine("ZZ")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestLoadFSAddsAndReplacesCatalogs(t *testing.T) {
	fsys := fstest.MapFS{
		"ga.yaml":   {Data: []byte(georgiaYAML)},
		"notes.txt": {Data: []byte("ignored")},
	}
	extra, err := LoadFS(fsys, ".")
	require.NoError(t, err)
	require.Len(t, extra, 1)

	builtinCatalogs, err := LoadFS(builtin, "catalogs")
	require.NoError(t, err)

	reg, err := NewRegistry("ga", append(builtinCatalogs, extra...)...)
	require.NoError(t, err)
	assert.Equal(t, []string{"FL", "GA"}, reg.Codes())
	assert.Equal(t, "GA", reg.DefaultCode())

	engine, err := reg.Engine("georgia")
	require.NoError(t, err)
	weight := engine.Weights().Resolve(scenario.VehicleIdentity{}, &scenario.ManualWeight{BracketLbs: 3000})
	result := engine.Evaluate(scenario.PurchaseContext{SalePrice: decimal.NewFromInt(60000), CountyTaxRate: decimal.RequireFromString("0.01")}, scenario.ScenarioOverrides{}, weight)
	assert.Equal(t, []string{"ga.title_fee", "ga.tag_fee"}, result.AppliedRuleIDs)
	assert.False(t, result.TaxBreakdown.CountyTaxCapped)
	assert.False(t, result.TaxBreakdown.CountyTaxCap.Valid)
	assert.Equal(t, "600.00", result.TaxBreakdown.CountyTax.StringFixed(2))
}

func TestNewRegistryUnknownDefault(t *testing.T) {
	catalogs, err := LoadFS(builtin, "catalogs")
	require.NoError(t, err)
	_, err = NewRegistry("TX", catalogs...)
	assert.ErrorContains(t, err, "default jurisdiction")
}
