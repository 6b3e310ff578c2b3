package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "pagehub-control-plane", cfg.App.Name)
	require.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	require.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	require.Equal(t, 172800, cfg.Auth.TokenValiditySeconds)
	require.Equal(t, 48*time.Hour, cfg.Auth.TokenValidity())
	require.Equal(t, "pagehub-site-", cfg.ObjectStore.BucketPrefix)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_TOKEN_VALIDITY_SECONDS", "600")
	t.Setenv("AUTH_TOKEN_SECRET_REF", "secrets/jwt")
	t.Setenv("AUTH_ADMIN_API_KEY_SECRET_REF", "secrets/admin")
	t.Setenv("OBJECT_STORE_BUCKET_PREFIX", "custom-")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	require.Equal(t, 10*time.Minute, cfg.Auth.TokenValidity())
	require.Equal(t, "secrets/jwt", cfg.Auth.TokenSecretRef)
	require.Equal(t, "secrets/admin", cfg.Auth.AdminAPIKeySecretRef)
	require.Equal(t, "custom-", cfg.ObjectStore.BucketPrefix)
}

func TestLoadInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}

func TestTokenValidityFallback(t *testing.T) {
	cfg := AuthConfig{TokenValiditySeconds: -1}
	require.Equal(t, 48*time.Hour, cfg.TokenValidity())
}
