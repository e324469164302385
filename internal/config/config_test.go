package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelgrowth/lead-relay/internal/entity"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://api.brevo.com/v3", cfg.BrevoBaseURL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "website", cfg.DefaultLeadSource)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BREVO_API_KEY", "xkeysib-abc")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "xkeysib-abc", cfg.BrevoAPIKey)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestListMapDefaults(t *testing.T) {
	m, err := Config{}.ListMap()
	require.NoError(t, err)

	assert.Equal(t, int64(1), m[entity.TagGeneral])
	assert.Equal(t, int64(2), m[entity.TagReelFitness])
	assert.Equal(t, int64(3), m[entity.TagReelNutrition])
	assert.Equal(t, int64(4), m[entity.TagNewsletter])
}

func TestListMapOverrides(t *testing.T) {
	cfg := Config{CRMListMap: "reel-fitness:12, newsletter:40"}

	m, err := cfg.ListMap()
	require.NoError(t, err)

	assert.Equal(t, int64(12), m[entity.TagReelFitness])
	assert.Equal(t, int64(40), m[entity.TagNewsletter])
	// Untouched entries keep their defaults.
	assert.Equal(t, int64(1), m[entity.TagGeneral])
	assert.Equal(t, int64(3), m[entity.TagReelNutrition])
}

func TestListMapRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"unknown tag", "vip:9"},
		{"missing separator", "general"},
		{"non-numeric id", "general:one"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Config{CRMListMap: tt.value}.ListMap()
			assert.Error(t, err)
		})
	}
}
