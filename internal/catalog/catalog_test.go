package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckIntegrity(t *testing.T) {
	require.NoError(t, CheckIntegrity())
}

func TestLabelFor(t *testing.T) {
	t.Run("schema fields use their declared label", func(t *testing.T) {
		assert.Equal(t, "IC Number (MyKad)", LabelFor("ic_number"))
		assert.Equal(t, "SSM Registration Number", LabelFor("ssm_number"))
	})

	t.Run("unknown fields get a derived label", func(t *testing.T) {
		assert.Equal(t, "Tax Reference Number", LabelFor("tax_reference_number"))
		assert.Equal(t, "Visa", LabelFor("visa"))
	})
}

func TestServiceIDs(t *testing.T) {
	ids := ServiceIDs()
	require.Len(t, ids, len(Services))
	assert.IsIncreasing(t, ids)
	assert.Contains(t, ids, "tax_filing")
	assert.Contains(t, ids, "passport_renewal")
}

func TestTierRank(t *testing.T) {
	assert.Equal(t, 1, TierRank(TierBasic))
	assert.Equal(t, 2, TierRank(TierVerified))
	assert.Equal(t, 3, TierRank(TierPremium))
	assert.Equal(t, 0, TierRank(Tier("galactic")))
}

func TestRequirementsFor(t *testing.T) {
	t.Run("every guided service declares requirements", func(t *testing.T) {
		for id := range Services {
			_, ok := RequirementsFor(id)
			assert.True(t, ok, "service %s has no requirements", id)
		}
	})

	t.Run("unknown service", func(t *testing.T) {
		_, ok := RequirementsFor("dog_license")
		assert.False(t, ok)
	})
}

func TestServiceFor(t *testing.T) {
	svc, ok := ServiceFor("ic_replacement")
	require.True(t, ok)
	assert.Equal(t, "MyKad (IC) Replacement", svc.Name)
	require.NotEmpty(t, svc.Steps)
	assert.Equal(t, 1, svc.Steps[0].ID)
}
