package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DATABASE_URL", "FLASK_DEBUG", "JWT_SECRET_KEY", "ACCESS_TTL",
		"STATIC_DIR", "CORS_ORIGIN", "DB_MAX_OPEN", "DB_MAX_IDLE", "DB_MAX_LIFETIME",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":3001", c.Addr)
	assert.Equal(t, "sqlite:////tmp/test.db", c.DatabaseURL)
	assert.False(t, c.Debug)
	assert.Equal(t, "super_secret", c.JWTSecret)
	assert.Equal(t, 15*time.Minute, c.AccessTTL)
	assert.Equal(t, "public", c.StaticDir)
	assert.Equal(t, []string{"*"}, c.CORSOrigins)
	assert.Equal(t, 300*time.Second, c.DBMaxLifetime)
}

func TestLoad_UsesDefaultsWithoutEnv(t *testing.T) {
	clearEnv(t)

	c, err := Load(nil)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Empty(t, cmp.Diff(&want, c))
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/app")
	t.Setenv("FLASK_DEBUG", "1")
	t.Setenv("JWT_SECRET_KEY", "k")
	t.Setenv("ACCESS_TTL", "30")
	t.Setenv("STATIC_DIR", "dist")
	t.Setenv("CORS_ORIGIN", "http://a.example/, http://b.example")
	t.Setenv("DB_MAX_OPEN", "5")
	t.Setenv("DB_MAX_IDLE", "2")
	t.Setenv("DB_MAX_LIFETIME", "60")

	c, err := Load(nil)
	require.NoError(t, err)

	want := &Config{
		Addr:          ":8080",
		DatabaseURL:   "postgres://u:p@localhost/app",
		Debug:         true,
		JWTSecret:     "k",
		AccessTTL:     30 * time.Minute,
		StaticDir:     "dist",
		CORSOrigins:   []string{"http://a.example", "http://b.example"},
		DBMaxOpen:     5,
		DBMaxIdle:     2,
		DBMaxLifetime: time.Minute,
	}
	assert.Empty(t, cmp.Diff(want, c))
	assert.True(t, c.Development())
}

func TestLoad_DebugOnlyWhenOne(t *testing.T) {
	clearEnv(t)
	t.Setenv("FLASK_DEBUG", "true")

	c, err := Load(nil)
	require.NoError(t, err)
	assert.False(t, c.Development())
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")

	c, err := Load([]string{"-a", "127.0.0.1:9090", "-d", "sqlite:///app.db", "-s", "www"})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", c.Addr)
	assert.Equal(t, "sqlite:///app.db", c.DatabaseURL)
	assert.Equal(t, "www", c.StaticDir)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		args []string
	}{
		{name: "bad ttl", key: "ACCESS_TTL", val: "soon"},
		{name: "bad pool size", key: "DB_MAX_OPEN", val: "many"},
		{name: "bad lifetime", key: "DB_MAX_LIFETIME", val: "1h"},
		{name: "unknown flag", args: []string{"-z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if tt.key != "" {
				t.Setenv(tt.key, tt.val)
			}
			_, err := Load(tt.args)
			require.Error(t, err)
		})
	}
}

func TestParseTTL(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 15 * time.Minute},
		{"20s", 20 * time.Second},
		{"2h", 2 * time.Hour},
		{"45m", 45 * time.Minute},
		{"10", 10 * time.Minute},
	}
	for _, tt := range tests {
		got, err := ParseTTL(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
