package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTagMode(t *testing.T) {
	mode, err := ParseTagMode(" Transfer_Existing_Plate ")
	require.NoError(t, err)
	assert.Equal(t, TagModeTransferExistingPlate, mode)

	mode, err = ParseTagMode("")
	require.NoError(t, err)
	assert.Equal(t, TagModeUnset, mode)
	assert.False(t, mode.IsValid())

	_, err = ParseTagMode("vanity")
	assert.Error(t, err)
}

func TestParseBodyType(t *testing.T) {
	bt, err := ParseBodyType("VAN")
	require.NoError(t, err)
	assert.Equal(t, BodyTypeVan, bt)

	_, err = ParseBodyType("boat")
	assert.Error(t, err)

	assert.Equal(t, BodyTypeAuto, BodyType("").OrDefault())
	assert.Equal(t, BodyTypeTruck, BodyTypeTruck.OrDefault())
}

func TestWeightSourceHasBracket(t *testing.T) {
	assert.True(t, WeightSourceNHTSAExact.HasBracket())
	assert.True(t, WeightSourceGVWRDerived.HasBracket())
	assert.True(t, WeightSourceManual.HasBracket())
	assert.False(t, WeightSourceManualRequired.HasBracket())
	assert.False(t, WeightSource("").HasBracket())
}

func TestLineItemCategoryIsValid(t *testing.T) {
	assert.True(t, LineItemCategoryGovernment.IsValid())
	assert.True(t, LineItemCategoryTax.IsValid())
	assert.False(t, LineItemCategory("dealer").IsValid())
}
