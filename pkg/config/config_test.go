package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-remoteui/pkg/cache"
)

func TestLoadDefaults(t *testing.T) {
	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "en", settings.Locale().String())
	assert.Equal(t, "expr", settings.Engine)
	assert.Equal(t, cache.DefaultNamespace, settings.Cache.Namespace)
	assert.Equal(t, "memory", settings.Cache.Backend)
	assert.False(t, settings.Activity.Enabled)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	t.Setenv("REMOTEUI_CACHE_NAMESPACE", "from-env")
	t.Setenv("REMOTEUI_REDIS_DB", "5")

	settings, err := Load(WithFile("testdata/remoteui.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "de-DE", settings.Locale().String())
	assert.Equal(t, "ios", settings.Platform)
	assert.Equal(t, "4.2.0", settings.SDKVersion)
	assert.Equal(t, "cel", settings.Engine)
	assert.Equal(t, "from-env", settings.Cache.Namespace)
	assert.Equal(t, "cache.internal:6379", settings.Redis.Address)
	assert.Equal(t, 5, settings.Redis.DB)
	assert.True(t, settings.Activity.Enabled)
	assert.Equal(t, "remoteui", settings.Activity.Channel)

	redisOpts := settings.RedisOptions()
	assert.Equal(t, "cache.internal:6379", redisOpts.Addr)
	assert.Equal(t, 5, redisOpts.DB)
}

func TestLoadDotEnvSeedsEnvironment(t *testing.T) {
	for _, key := range []string{"REMOTEUI_PLATFORM", "REMOTEUI_CACHE_NAMESPACE"} {
		_, set := os.LookupEnv(key)
		require.False(t, set, "%s must not be set for this test", key)
		t.Cleanup(func() { _ = os.Unsetenv(key) })
	}

	settings, err := Load(WithDotEnv("testdata/missing.env", "testdata/remoteui.env"))
	require.NoError(t, err)

	assert.Equal(t, "android", settings.Platform)
	assert.Equal(t, "from-dotenv", settings.Cache.Namespace)
}

func TestLoadRejectsUnknownEngine(t *testing.T) {
	_, err := Load(WithFile("testdata/bad_engine.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown engine "lua"`)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(WithFile("testdata/absent.yaml"))
	require.Error(t, err)
}

func TestSettingsBuildCollaborators(t *testing.T) {
	settings, err := Load()
	require.NoError(t, err)

	store, closeFn, err := settings.CacheStore()
	require.NoError(t, err)
	require.NotNil(t, closeFn)
	assert.IsType(t, &cache.MemoryStore{}, store)
	assert.NoError(t, closeFn())

	c, err := cache.New[string](store, settings.CacheOptions()...)
	require.NoError(t, err)
	assert.Equal(t, cache.DefaultNamespace, c.Namespace())

	assert.Len(t, settings.LocalizerOptions(), 3)

	logger, err := settings.Logger()
	require.NoError(t, err)
	assert.NotNil(t, logger.Zap())
}

func TestSettingsRedisBackend(t *testing.T) {
	settings := Settings{Cache: CacheSettings{Backend: "redis"}, Redis: RedisSettings{Address: "127.0.0.1:0"}}
	store, closeFn, err := settings.CacheStore()
	require.NoError(t, err)
	assert.IsType(t, &cache.RedisStore{}, store)
	assert.NoError(t, closeFn())
}
