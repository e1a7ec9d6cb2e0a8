package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRunwayMonths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		runway Runway
		want   int
	}{
		{Runway6, 6},
		{Runway12, 12},
		{Runway18, 18},
		{Runway("24"), 0},
		{Runway(""), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.runway), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.runway.Months())
		})
	}
}

func TestEnumValid(t *testing.T) {
	t.Parallel()

	assert.True(t, CategoryEcommerce.Valid())
	assert.False(t, Category("mobile_app").Valid())
	assert.True(t, OfficePrivate.Valid())
	assert.Equal(t, "OFFICE", string(OfficePrivate))
	assert.False(t, City("MECCA").Valid())
	assert.True(t, ChallengeSupplyChain.Valid())
	assert.False(t, MVPReadiness("").Valid())
}

func TestEnumFields(t *testing.T) {
	t.Parallel()

	p := PlanInput{Category: CategoryWebsite, City: City("TABUK")}
	fields := p.EnumFields()
	require.Len(t, fields, 16)

	byName := make(map[string]Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}

	assert.True(t, byName["category"].Set)
	assert.True(t, byName["category"].Valid)
	assert.True(t, byName["city"].Set)
	assert.False(t, byName["city"].Valid)
	assert.False(t, byName["team"].Set)
	// Unset scope is still valid.
	assert.False(t, byName["scope"].Set)
	assert.True(t, byName["scope"].Valid)
}

func TestPlanInputDecoding(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		var p PlanInput
		err := json.Unmarshal([]byte(`{"category":"WEBSITE","capital":50000,"runway":"12","unit_price":0}`), &p)
		require.NoError(t, err)
		assert.Equal(t, CategoryWebsite, p.Category)
		require.NotNil(t, p.Capital)
		assert.Equal(t, 50000.0, *p.Capital)
		assert.Equal(t, Runway12, p.Runway)
		require.NotNil(t, p.UnitPrice)
		assert.Equal(t, 0.0, *p.UnitPrice)
		assert.Nil(t, p.TargetVolume)
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()
		var p PlanInput
		err := yaml.Unmarshal([]byte("category: MOBILE_APP\nrunway: \"6\"\ntarget_volume: 300\n"), &p)
		require.NoError(t, err)
		assert.Equal(t, CategoryMobileApp, p.Category)
		assert.Equal(t, Runway6, p.Runway)
		assert.Equal(t, 300.0, Value(p.TargetVolume))
		assert.Nil(t, p.Capital)
	})
}

func TestAmountValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, Value(nil))
	assert.Equal(t, 12.5, Value(Amount(12.5)))
}
