package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredSecrets(t *testing.T) {
	t.Helper()

	t.Setenv("USER_JWT_SECRET", "user-secret")
	t.Setenv("SELLER_JWT_SECRET", "seller-secret")
	t.Setenv("ACTIVATION_SECRET", "activation-secret")
	t.Setenv("SHOP_ACTIVATION_SECRET", "shop-activation-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredSecrets(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:5173", cfg.ClientURL)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "bazario", cfg.MongoDB)
	assert.Equal(t, 7*24*time.Hour, cfg.AuthTokenTTL)
	assert.Equal(t, 15*time.Minute, cfg.ActivationTokenTTL)
	assert.False(t, cfg.CookieSecure)
}

func TestLoadRefusesMissingSecrets(t *testing.T) {
	t.Setenv("USER_JWT_SECRET", "user-secret")
	t.Setenv("SELLER_JWT_SECRET", "")
	t.Setenv("ACTIVATION_SECRET", "")
	t.Setenv("SHOP_ACTIVATION_SECRET", "shop-activation-secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SELLER_JWT_SECRET")
	assert.Contains(t, err.Error(), "ACTIVATION_SECRET")
}

func TestLoadOverrides(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("PORT", "9999")
	t.Setenv("AUTH_TOKEN_TTL", "12h")
	t.Setenv("NODE_ENV", "PRODUCTION")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 12*time.Hour, cfg.AuthTokenTTL)
	assert.True(t, cfg.CookieSecure)
}

func TestLoadRefusesInvalidTokenTTL(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("AUTH_TOKEN_TTL", "pas-une-duree")

	_, err := Load()
	assert.Error(t, err)
}
