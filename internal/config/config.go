package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/reelgrowth/lead-relay/internal/entity"
)

// Config holds every environment-sourced setting. None of the secrets are
// required at startup; handlers report misconfiguration per request instead.
type Config struct {
	Port string `mapstructure:"PORT"`

	// Shared secret compared against the x-api-key header.
	APISecretKey string `mapstructure:"API_SECRET_KEY"`

	// CRM credentials. An empty key leaves the connector unconfigured.
	BrevoAPIKey  string `mapstructure:"BREVO_API_KEY"`
	BrevoBaseURL string `mapstructure:"BREVO_BASE_URL"`

	// HMAC secret shared with the e-commerce platform's webhook.
	PurchaseWebhookSecret string `mapstructure:"PURCHASE_WEBHOOK_SECRET"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// Tag to CRM list id pairs, e.g. "general:1,reel-fitness:2". Entries
	// override the built-in defaults so list ids can change without a
	// code change.
	CRMListMap string `mapstructure:"CRM_LIST_MAP"`

	DefaultLeadSource string `mapstructure:"DEFAULT_LEAD_SOURCE"`
}

// Load reads configuration from environment variables. Defaults are set for
// every key so viper.Unmarshal sees them all.
func Load() (Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("API_SECRET_KEY", "")
	viper.SetDefault("BREVO_API_KEY", "")
	viper.SetDefault("BREVO_BASE_URL", "https://api.brevo.com/v3")
	viper.SetDefault("PURCHASE_WEBHOOK_SECRET", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CRM_LIST_MAP", "")
	viper.SetDefault("DEFAULT_LEAD_SOURCE", "website")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func defaultListMap() map[entity.LeadTag]int64 {
	return map[entity.LeadTag]int64{
		entity.TagGeneral:       1,
		entity.TagReelFitness:   2,
		entity.TagReelNutrition: 3,
		entity.TagNewsletter:    4,
	}
}

// ListMap resolves the tag to CRM list id table: built-in defaults overridden
// by CRM_LIST_MAP entries. Entries naming an unknown tag fail startup rather
// than being silently dropped.
func (c Config) ListMap() (map[entity.LeadTag]int64, error) {
	m := defaultListMap()
	if c.CRMListMap == "" {
		return m, nil
	}
	for _, pair := range strings.Split(c.CRMListMap, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		tag, id, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("invalid CRM_LIST_MAP entry %q", pair)
		}
		tag = strings.TrimSpace(tag)
		if !entity.IsValidTag(tag) {
			return nil, fmt.Errorf("CRM_LIST_MAP names unknown tag %q", tag)
		}
		listID, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid list id in CRM_LIST_MAP entry %q", pair)
		}
		m[entity.LeadTag(tag)] = listID
	}
	return m, nil
}
