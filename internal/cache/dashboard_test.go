package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ngson927/Greatea-smart-management/internal/config"
	"github.com/ngson927/Greatea-smart-management/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDashboardKey(t *testing.T) {
	base := DashboardKey{ReportDate: "2024-03-31", TopSuppliers: 5, TopCategories: 3}

	key := buildDashboardKey(base)
	assert.True(t, strings.HasPrefix(key, dashboardKeyPrefix+":"))
	assert.Equal(t, key, buildDashboardKey(base))

	nextDay := base
	nextDay.ReportDate = "2024-04-01"
	assert.NotEqual(t, key, buildDashboardKey(nextDay))

	moreSuppliers := base
	moreSuppliers.TopSuppliers = 10
	assert.NotEqual(t, key, buildDashboardKey(moreSuppliers))

	zoned := base
	zoned.Location = "Asia/Ho_Chi_Minh"
	assert.NotEqual(t, key, buildDashboardKey(zoned))
}

func TestNewDashboardCache_DisabledIsNoop(t *testing.T) {
	c, err := NewDashboardCache(config.CacheConfig{Enabled: false})
	require.NoError(t, err)

	ctx := context.Background()
	key := DashboardKey{ReportDate: "2024-03-31"}
	require.NoError(t, c.SetDashboard(ctx, key, &domain.Dashboard{ReportDate: "2024-03-31"}))

	got, ok, err := c.GetDashboard(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.NoError(t, c.InvalidateAll(ctx))
}

func TestDashboardRedisOptions(t *testing.T) {
	opts, err := dashboardRedisOptions(config.CacheConfig{RedisHost: "cache", RedisPort: "6380", RedisDB: 2})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)

	opts, err = dashboardRedisOptions(config.CacheConfig{RedisURL: "redis://:secret@redis.internal:6379/4"})
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6379", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 4, opts.DB)

	_, err = dashboardRedisOptions(config.CacheConfig{RedisURL: "http://nope"})
	assert.Error(t, err)
}

func TestDashboardRedisOptions_Defaults(t *testing.T) {
	opts, err := dashboardRedisOptions(config.CacheConfig{RedisPassword: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:6379", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
}

func TestDashboardTTL(t *testing.T) {
	assert.Equal(t, defaultDashboardTTL, dashboardTTL(config.CacheConfig{}))
	assert.Equal(t, defaultDashboardTTL, dashboardTTL(config.CacheConfig{DashboardTTLSeconds: -5}))
	assert.Equal(t, 90*time.Second, dashboardTTL(config.CacheConfig{DashboardTTLSeconds: 90}))
}

func TestNewDashboardCache_UnreachableRedis(t *testing.T) {
	_, err := NewDashboardCache(config.CacheConfig{Enabled: true, RedisHost: "127.0.0.1", RedisPort: "1"})

	assert.ErrorContains(t, err, "redis ping")
}
