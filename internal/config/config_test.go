package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.HTTPAddr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "mongodb://localhost:27017", cfg.StoreURI)
	assert.Equal(t, "tasks_db", cfg.StoreDatabase)
	assert.Equal(t, "redis", cfg.CacheDriver)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Empty(t, cfg.CacheKeyPrefix)
	assert.True(t, cfg.CacheFailOpen)
	assert.False(t, cfg.CacheInvalidateOnWrite)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PORT", "2010")
	t.Setenv("MONGO_URI", "mongodb://mongo:27017")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CACHE_FAIL_OPEN", "false")
	t.Setenv("CACHE_INVALIDATE_ON_WRITE", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := load("")
	require.NoError(t, err)

	assert.Equal(t, 2010, cfg.Port)
	assert.Equal(t, "mongodb://mongo:27017", cfg.StoreURI)
	assert.Equal(t, "redis:6380", cfg.RedisAddr())
	assert.Equal(t, 2, cfg.RedisDB)
	assert.False(t, cfg.CacheFailOpen)
	assert.True(t, cfg.CacheInvalidateOnWrite)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_StoreURIPrecedence(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/taskdb")
	t.Setenv("STORE_URI", "memory://")

	cfg, err := load("")
	require.NoError(t, err)
	assert.Equal(t, "memory://", cfg.StoreURI)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("REDIS_HOST=cache.internal\nREDIS_DB=5\nCACHE_DRIVER=memory\n"), 0o600))

	t.Setenv("REDIS_DB", "7")

	cfg, err := load(path)
	require.NoError(t, err)

	assert.Equal(t, "cache.internal", cfg.RedisHost)
	assert.Equal(t, "memory", cfg.CacheDriver)
	assert.Equal(t, 7, cfg.RedisDB, "env wins over file")
}

func TestLoad_EnvFileStoreURIAliases(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		want    string
	}{
		{
			name:    "mongo uri",
			content: "MONGO_URI=mongodb://prod-db:27017\n",
			want:    "mongodb://prod-db:27017",
		},
		{
			name:    "database url",
			content: "DATABASE_URL=postgres://user:pass@db:5432/taskdb\n",
			want:    "postgres://user:pass@db:5432/taskdb",
		},
		{
			name:    "store uri wins in file",
			content: "MONGO_URI=mongodb://prod-db:27017\nSTORE_URI=memory://\n",
			want:    "memory://",
		},
		{
			name:    "env wins over file",
			content: "MONGO_URI=mongodb://prod-db:27017\n",
			env:     map[string]string{"STORE_URI": "mongodb://local:27017"},
			want:    "mongodb://local:27017",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".env")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.StoreURI)
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "verbose"}},
		{name: "bad cache driver", env: map[string]string{"CACHE_DRIVER": "memcached"}},
		{name: "redis db out of range", env: map[string]string{"REDIS_DB": "16"}},
		{name: "bad port", env: map[string]string{"PORT": "http"}},
		{name: "port out of range", env: map[string]string{"PORT": "99999"}},
		{name: "negative port", env: map[string]string{"PORT": "-1"}},
		{name: "zero port", env: map[string]string{"PORT": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := load("")
			assert.Error(t, err)
		})
	}
}
