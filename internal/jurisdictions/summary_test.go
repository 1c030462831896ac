package jurisdictions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/autocalc-backend/pkg/enums"
)

func TestSummaryDescribesFlorida(t *testing.T) {
	reg, err := LoadDefault("FL", "")
	require.NoError(t, err)

	summary, err := reg.Summary("florida")
	require.NoError(t, err)
	assert.Equal(t, "FL", summary.Code)
	assert.True(t, summary.Default)
	assert.Equal(t, "5000.00", summary.CountyTaxCap.Decimal.StringFixed(2))
	require.Len(t, summary.Rules, 7)
	assert.Equal(t, "fl.registration_weight", summary.Rules[2].ID)
	assert.True(t, summary.Rules[2].WeightDependent)
	assert.Equal(t, enums.LineItemCategoryGovernment, summary.Rules[0].Category)

	auto := summary.WeightSchedules[enums.BodyTypeAuto]
	require.Len(t, auto, 3)
	assert.Equal(t, 2499, auto[0].CeilingLbs)
	assert.True(t, auto[2].OpenEnded)

	all := reg.Summaries()
	require.Len(t, all, 1)
	assert.Equal(t, summary.Code, all[0].Code)

	_, err = reg.Summary("ZZ")
	assert.Error(t, err)
}
