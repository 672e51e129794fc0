package config_test

import (
	"testing"

	"github.com/mikiasgoitom/videoreact/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "PRIMARY_STORE", "SQLITE_PATH", "MIRROR_PATH", "REDIS_URL", "REDIS_CHANNEL",
		"SUBSCRIBER_BUFFER", "RATE_LIMIT_PER_SECOND", "CORS_ALLOWED_ORIGINS", "RESET_PRIMARY_ON_START",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}

	cfg := config.NewConfig()
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, config.StoreSQLite, cfg.PrimaryStore)
	assert.Equal(t, 16, cfg.SubscriberBuffer)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.ResetPrimaryOnStart)
	assert.Equal(t, "interactions.db", cfg.SQLitePath)
	assert.Equal(t, "video_interactions.json", cfg.MirrorPath)
	assert.Equal(t, "interaction_update", cfg.RedisChannel)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 10.0, cfg.RateLimitPerSecond)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PRIMARY_STORE", "MongoDB")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DB_NAME", "videos")
	t.Setenv("SUBSCRIBER_BUFFER", "64")
	t.Setenv("RATE_LIMIT_PER_SECOND", "2.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("RESET_PRIMARY_ON_START", "true")

	cfg := config.NewConfig()
	assert.Equal(t, config.StoreMongoDB, cfg.PrimaryStore)
	assert.Equal(t, 64, cfg.SubscriberBuffer)
	assert.Equal(t, 2.5, cfg.RateLimitPerSecond)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.ResetPrimaryOnStart)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfig_BadNumbersFallBack(t *testing.T) {
	t.Setenv("SUBSCRIBER_BUFFER", "many")
	t.Setenv("RATE_LIMIT_PER_SECOND", "fast")

	cfg := config.NewConfig()
	assert.Equal(t, 16, cfg.SubscriberBuffer)
	assert.Equal(t, 10.0, cfg.RateLimitPerSecond)
}

func TestValidate(t *testing.T) {
	base := func() config.Config {
		return config.Config{
			PrimaryStore:       config.StoreSQLite,
			SQLitePath:         "interactions.db",
			MirrorPath:         "video_interactions.json",
			RateLimitPerSecond: 10,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr bool
	}{
		{"sqlite ok", func(c *config.Config) {}, false},
		{"sqlite without path", func(c *config.Config) { c.SQLitePath = "" }, true},
		{"mongodb without uri", func(c *config.Config) { c.PrimaryStore = config.StoreMongoDB }, true},
		{"mongodb ok", func(c *config.Config) {
			c.PrimaryStore = config.StoreMongoDB
			c.MongoURI = "mongodb://localhost"
			c.MongoDBName = "videos"
		}, false},
		{"unknown store", func(c *config.Config) { c.PrimaryStore = "postgres" }, true},
		{"empty mirror path", func(c *config.Config) { c.MirrorPath = "" }, true},
		{"zero rate limit", func(c *config.Config) { c.RateLimitPerSecond = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}
