package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/ngson927/Greatea-smart-management/internal/config"
	"github.com/ngson927/Greatea-smart-management/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	dashboardKeyPrefix  = "analytics:dashboard"
	defaultDashboardTTL = time.Minute
	scanBatchSize       = 100
	pingTimeout         = 5 * time.Second
)

// DashboardKey identifies one assembled dashboard. Payloads computed for a
// different day or different ranking sizes never share a key.
type DashboardKey struct {
	ReportDate    string
	TopSuppliers  int
	TopCategories int
	Location      string
}

type DashboardCache interface {
	GetDashboard(ctx context.Context, key DashboardKey) (*domain.Dashboard, bool, error)
	SetDashboard(ctx context.Context, key DashboardKey, dashboard *domain.Dashboard) error
	InvalidateAll(ctx context.Context) error
}

type redisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopDashboardCache struct{}

// NewDashboardCache connects to Redis when caching is enabled and fails fast
// if the server does not answer a ping.
func NewDashboardCache(cfg config.CacheConfig) (DashboardCache, error) {
	if !cfg.Enabled {
		return &noopDashboardCache{}, nil
	}

	opts, err := dashboardRedisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("dashboard cache: redis ping: %w", err)
	}

	return &redisDashboardCache{
		client: client,
		ttl:    dashboardTTL(cfg),
	}, nil
}

// dashboardRedisOptions prefers REDIS_URL and falls back to host and port.
func dashboardRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("dashboard cache: invalid redis url: %w", err)
		}
		return opts, nil
	}

	host, port := cfg.RedisHost, cfg.RedisPort
	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "6379"
	}
	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func dashboardTTL(cfg config.CacheConfig) time.Duration {
	if cfg.DashboardTTLSeconds <= 0 {
		return defaultDashboardTTL
	}
	return time.Duration(cfg.DashboardTTLSeconds) * time.Second
}

func NewNoopDashboardCache() DashboardCache {
	return &noopDashboardCache{}
}

func (c *redisDashboardCache) GetDashboard(ctx context.Context, key DashboardKey) (*domain.Dashboard, bool, error) {
	payload, err := c.client.Get(ctx, buildDashboardKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var dashboard domain.Dashboard
	if err := json.Unmarshal(payload, &dashboard); err != nil {
		return nil, false, fmt.Errorf("decode dashboard cache: %w", err)
	}

	return &dashboard, true, nil
}

func (c *redisDashboardCache) SetDashboard(ctx context.Context, key DashboardKey, dashboard *domain.Dashboard) error {
	payload, err := json.Marshal(dashboard)
	if err != nil {
		return fmt.Errorf("encode dashboard cache: %w", err)
	}

	if err := c.client.Set(ctx, buildDashboardKey(key), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

// InvalidateAll drops every cached dashboard, whatever day or ranking sizes
// it was built for. Keys are deleted in scan-sized batches.
func (c *redisDashboardCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, dashboardKeyPrefix+":*", scanBatchSize).Iterator()
	batch := make([]string, 0, scanBatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := c.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("redis delete failed: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan failed: %w", err)
	}
	return flush()
}

func (n *noopDashboardCache) GetDashboard(ctx context.Context, key DashboardKey) (*domain.Dashboard, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) SetDashboard(ctx context.Context, key DashboardKey, dashboard *domain.Dashboard) error {
	return nil
}

func (n *noopDashboardCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildDashboardKey(key DashboardKey) string {
	parts := []string{
		"date=" + key.ReportDate,
		fmt.Sprintf("top_suppliers=%d", key.TopSuppliers),
		fmt.Sprintf("top_categories=%d", key.TopCategories),
	}
	if key.Location != "" {
		parts = append(parts, "tz="+key.Location)
	}

	raw := strings.Join(parts, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", dashboardKeyPrefix, hex.EncodeToString(hash[:]))
}
