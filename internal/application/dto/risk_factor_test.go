package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Geeth0476/Vigilant-Backend/internal/application/dto"
)

func TestRiskFactorInput_UnmarshalJSON(t *testing.T) {
	t.Run("bare string", func(t *testing.T) {
		var f dto.RiskFactorInput
		require.NoError(t, json.Unmarshal([]byte(`"Requests SMS access"`), &f))
		assert.Equal(t, "Requests SMS access", f.Description)
		assert.Empty(t, f.FactorType)
		assert.Equal(t, 0, f.Score)
	})

	t.Run("structured object", func(t *testing.T) {
		var f dto.RiskFactorInput
		data := []byte(`{"description":"Cleartext traffic","type":"NETWORK","score":25}`)
		require.NoError(t, json.Unmarshal(data, &f))
		assert.Equal(t, "Cleartext traffic", f.Description)
		assert.Equal(t, "NETWORK", f.FactorType)
		assert.Equal(t, 25, f.Score)
	})

	t.Run("mixed batch", func(t *testing.T) {
		var factors []dto.RiskFactorInput
		data := []byte(`["Overlay permission",{"description":"Sideloaded","type":"ORIGIN","score":40}]`)
		require.NoError(t, json.Unmarshal(data, &factors))
		require.Len(t, factors, 2)
		assert.Equal(t, "Overlay permission", factors[0].Description)
		assert.Equal(t, "Sideloaded", factors[1].Description)
	})

	t.Run("rejects other shapes", func(t *testing.T) {
		var f dto.RiskFactorInput
		assert.Error(t, json.Unmarshal([]byte(`42`), &f))
	})
}

func TestRiskFactorInput_ToModel(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		m := dto.RiskFactorInput{}.ToModel()
		assert.Equal(t, "Unknown", m.Description)
		assert.Equal(t, "BEHAVIOR", m.FactorType)
		assert.Equal(t, 0, m.Score)
	})

	t.Run("clamps negative score", func(t *testing.T) {
		m := dto.RiskFactorInput{Description: "x", Score: -5}.ToModel()
		assert.Equal(t, 0, m.Score)
	})

	t.Run("keeps provided values", func(t *testing.T) {
		m := dto.RiskFactorInput{Description: "Cleartext traffic", FactorType: "NETWORK", Score: 25}.ToModel()
		assert.Equal(t, "Cleartext traffic", m.Description)
		assert.Equal(t, "NETWORK", m.FactorType)
		assert.Equal(t, 25, m.Score)
	})
}
