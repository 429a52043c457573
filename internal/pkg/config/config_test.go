package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.Pretty())
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Auth.EmailConfirmationRequired)
	assert.Equal(t, 7*24*time.Hour, cfg.Onboarding.DraftTTL)
	assert.Equal(t, int64(5<<20), cfg.Onboarding.MaxPictureBytes)
	assert.Equal(t, 1024, cfg.Onboarding.PictureMaxDimension)
	assert.Equal(t, 70, cfg.Onboarding.PictureQuality)
	assert.Equal(t, "max-age=3600", cfg.Onboarding.PictureCacheControl)
	assert.Equal(t, "cinemyst", cfg.Mongo.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":                       "s3cret",
		"ENV":                              "production",
		"AUTH_EMAIL_CONFIRMATION_REQUIRED": "true",
		"ONBOARDING_TTL":                   "48h",
		"PUBLIC_BASE_URL":                  "https://api.cinemyst.test",
	}))
	require.NoError(t, err)

	assert.False(t, cfg.Pretty())
	assert.True(t, cfg.Auth.EmailConfirmationRequired)
	assert.Equal(t, 48*time.Hour, cfg.Onboarding.DraftTTL)
	assert.Equal(t, "https://api.cinemyst.test", cfg.PublicBaseURL)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	assert.Error(t, err)
}
