package config_test

import (
	"testing"
	"time"

	"doodleparty/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, https://doodle.example")
	t.Setenv("JWT_KEY", "secret")
	t.Setenv("POSTGRES_URL", "postgres://u:p@localhost:5432/db")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	for _, key := range []string{"PORT", "LOG_LEVEL", "GIN_MODE", "PUBLIC_URL", "SESSION_MAX_AGE"} {
		t.Setenv(key, "")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"http://localhost:3000", "https://doodle.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "secret", cfg.JWTKey)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "http://localhost:5000", cfg.PublicURL)
	assert.Equal(t, 168*time.Hour, cfg.SessionMaxAge)
	assert.True(t, cfg.Pretty())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("PUBLIC_URL", "https://doodle.example")
	t.Setenv("SESSION_MAX_AGE", "2h")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "https://doodle.example", cfg.PublicURL)
	assert.Equal(t, 2*time.Hour, cfg.SessionMaxAge)
	assert.False(t, cfg.Pretty())
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		desc        string
		key         string
		value       string
		expectedErr error
	}{
		{desc: "no origins", key: "ALLOWED_ORIGINS", value: "", expectedErr: config.ErrMissingEnv},
		{desc: "blank origins", key: "ALLOWED_ORIGINS", value: " , ", expectedErr: config.ErrMissingEnv},
		{desc: "no jwt key", key: "JWT_KEY", value: "", expectedErr: config.ErrMissingEnv},
		{desc: "no postgres", key: "POSTGRES_URL", value: "", expectedErr: config.ErrMissingEnv},
		{desc: "bad session age", key: "SESSION_MAX_AGE", value: "forever", expectedErr: config.ErrInvalidEnv},
		{desc: "negative session age", key: "SESSION_MAX_AGE", value: "-1h", expectedErr: config.ErrInvalidEnv},
	}

	for _, tc := range testCases {

		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tc.key, tc.value)

			_, err := config.Load()
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.ErrorContains(t, err, tc.key)
		})
	}
}
