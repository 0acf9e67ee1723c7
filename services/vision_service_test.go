package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripJSONFence(t *testing.T) {
	raw := `{"food_name": "Dal Tadka"}`

	assert.Equal(t, raw, stripJSONFence(raw))
	assert.Equal(t, raw, stripJSONFence("```json\n"+raw+"\n```"))
	assert.Equal(t, raw, stripJSONFence("```\n"+raw+"\n```"))
	assert.Equal(t, raw, stripJSONFence("  \n"+raw+"\n  "))
}

func TestFallbackAnalysis(t *testing.T) {
	a := fallbackAnalysis("Unable to analyze image clearly")

	assert.Equal(t, "Unknown Indian Dish", a.FoodName)
	assert.Equal(t, 200.0, a.CaloriesPer100g)
	assert.Equal(t, 10.0, a.ProteinPer100g)
	assert.Equal(t, 150.0, a.EstimatedPortionG)
	assert.Equal(t, "low", a.Confidence)
	assert.Equal(t, "Unable to analyze image clearly", a.Reasoning)
}
