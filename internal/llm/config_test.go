package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultModels(t *testing.T) {
	models := DefaultModels()
	require.NotEmpty(t, models)

	for _, m := range models {
		assert.NoError(t, m.Validate(), m.ID)
	}
	assert.Equal(t, ShapeMessages, models[0].Shape)
	assert.Equal(t, ShapeCompletion, models[len(models)-1].Shape)
}

func TestDefaultModels_ReturnsFreshSlice(t *testing.T) {
	first := DefaultModels()
	first[0].ID = "mutated"

	assert.NotEqual(t, "mutated", DefaultModels()[0].ID)
}

func TestModelSpec_Validate(t *testing.T) {
	base := ModelSpec{ID: "m", Provider: ProviderBedrock, MaxTokens: 10, Shape: ShapeCompletion}

	tests := []struct {
		name    string
		mutate  func(m *ModelSpec)
		wantErr string
	}{
		{"valid", func(_ *ModelSpec) {}, ""},
		{"missing id", func(m *ModelSpec) { m.ID = "" }, "model id is required"},
		{"unknown provider", func(m *ModelSpec) { m.Provider = "openai" }, "unknown provider"},
		{"unknown shape", func(m *ModelSpec) { m.Shape = "xml" }, "unknown request shape"},
		{"zero tokens", func(m *ModelSpec) { m.MaxTokens = 0 }, "max_tokens"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := base
			tt.mutate(&m)
			err := m.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestModelSpec_String(t *testing.T) {
	assert.Equal(t, "Display", ModelSpec{ID: "id", Name: "Display"}.String())
	assert.Equal(t, "id", ModelSpec{ID: "id"}.String())
}

func TestProviders(t *testing.T) {
	providers := Providers(DefaultModels())
	assert.Equal(t, []Provider{ProviderBedrock, ProviderGemini}, providers)
}

func TestModelTierConstants(t *testing.T) {
	assert.Equal(t, ModelTier("lite"), TierLite)
	assert.Equal(t, ModelTier("standard"), TierStandard)
	assert.Equal(t, ModelTier("advanced"), TierAdvanced)
}
