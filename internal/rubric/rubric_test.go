package rubric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryKinds(t *testing.T) {
	kinds := Kinds()
	assert.ElementsMatch(t, []string{KindPedagogical, KindManagement, KindTechnology, KindCommunity}, kinds)

	for _, kind := range kinds {
		v, err := Get(kind)
		require.NoError(t, err)
		assert.Equal(t, kind, v.Kind)
		assert.NotEmpty(t, v.Criteria)
	}

	_, err := Get("unknown")
	assert.Error(t, err)
}

func TestVariantMaxTotals(t *testing.T) {
	tests := []struct {
		kind string
		max  float64
	}{
		{KindPedagogical, 75},
		{KindManagement, 60},
		{KindTechnology, 80},
		{KindCommunity, 55},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			v, err := Get(tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.max, v.MaxTotal())
		})
	}
}

func TestCriterionLookup(t *testing.T) {
	v, err := Get(KindPedagogical)
	require.NoError(t, err)

	c, ok := v.Criterion("intentionality")
	require.True(t, ok)
	assert.Equal(t, float64(15), c.MaxScore())
	assert.NotEmpty(t, c.PayloadKeys)

	_, ok = v.Criterion("nope")
	assert.False(t, ok)
}

func TestResourceCriterion(t *testing.T) {
	for _, kind := range Kinds() {
		v, err := Get(kind)
		require.NoError(t, err)
		rc, ok := v.ResourceCriterion()
		require.True(t, ok, "every variant carries a budget criterion")
		assert.True(t, rc.ResourceTable)
	}
}

func TestMandatoryFields(t *testing.T) {
	v, err := Get(KindPedagogical)
	require.NoError(t, err)

	pairs := v.MandatoryFields()
	assert.NotEmpty(t, pairs)
	for _, pair := range pairs {
		c, ok := v.Criterion(pair[0])
		require.True(t, ok)
		assert.Contains(t, c.Fields, pair[1])
	}
}
