package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017/authbase", cfg.DatabaseURI)
	assert.Equal(t, 10, cfg.RateLimitPoints)
	assert.Equal(t, 60*time.Second, cfg.RateLimitDuration)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("RATE_LIMIT_POINTS", "3")
	t.Setenv("RATE_LIMIT_DURATION_SECONDS", "120")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 3, cfg.RateLimitPoints)
	assert.Equal(t, 2*time.Minute, cfg.RateLimitDuration)
}

func TestLoad_ProductionRejectsDefaultSecrets(t *testing.T) {
	t.Setenv("ENV", EnvProduction)

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ProductionRejectsEqualSecrets(t *testing.T) {
	t.Setenv("ENV", EnvProduction)
	t.Setenv("ACCESS_TOKEN_SECRET", "same-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "same-secret")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ProductionWithDistinctSecrets(t *testing.T) {
	t.Setenv("ENV", EnvProduction)
	t.Setenv("ACCESS_TOKEN_SECRET", "prod-access")
	t.Setenv("REFRESH_TOKEN_SECRET", "prod-refresh")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.False(t, cfg.IsDevelopment())
}

func TestCookieDomain(t *testing.T) {
	tests := []struct {
		name      string
		serverURL string
		want      string
	}{
		{name: "localhost with port", serverURL: "http://localhost:3000", want: "localhost"},
		{name: "public host", serverURL: "https://api.example.com", want: "api.example.com"},
		{name: "unparseable", serverURL: "://", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{ServerURL: tt.serverURL}
			assert.Equal(t, tt.want, cfg.CookieDomain())
		})
	}
}
