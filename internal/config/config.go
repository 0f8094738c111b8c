package config

import (
	"fmt"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Log       LogConfig
	Cache     CacheConfig
	Analytics AnalyticsConfig
	Storage   StorageConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the key/value connection string understood by both lib/pq and pgx.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogConfig struct {
	Level string
}

type CacheConfig struct {
	Enabled             bool
	RedisURL            string
	RedisHost           string
	RedisPort           string
	RedisPassword       string
	RedisDB             int
	DashboardTTLSeconds int
}

type AnalyticsConfig struct {
	TopSuppliers       int
	TopCategories      int
	StockFanOut        bool
	StockLookupTimeout time.Duration
	StockLookupWorkers int
	Location           *time.Location
}

type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		v := viper.New()
		setDefaults(v)

		// Read from environment variables
		v.AutomaticEnv()

		instance = fromViper(v)
	})

	return instance
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	v.SetDefault("SERVER_ALLOWED_ORIGINS", "*")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "greatea_inventory")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_DASHBOARD_TTL_SECONDS", 60)
	v.SetDefault("ANALYTICS_TOP_SUPPLIERS", 5)
	v.SetDefault("ANALYTICS_TOP_CATEGORIES", 3)
	v.SetDefault("ANALYTICS_STOCK_FANOUT", false)
	v.SetDefault("ANALYTICS_STOCK_LOOKUP_TIMEOUT_MS", 2000)
	v.SetDefault("ANALYTICS_STOCK_LOOKUP_WORKERS", 8)
	v.SetDefault("ANALYTICS_LOCATION", "UTC")
	v.SetDefault("STORAGE_ENABLED", false)
	v.SetDefault("STORAGE_ENDPOINT", "localhost:9000")
	v.SetDefault("STORAGE_ACCESS_KEY", "")
	v.SetDefault("STORAGE_SECRET_KEY", "")
	v.SetDefault("STORAGE_BUCKET", "greatea-reports")
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_USE_SSL", false)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Mode:           v.GetString("SERVER_MODE"),
			ReadTimeout:    v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: splitList(v.GetString("SERVER_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Cache: CacheConfig{
			Enabled:             v.GetBool("CACHE_ENABLED"),
			RedisURL:            v.GetString("REDIS_URL"),
			RedisHost:           v.GetString("REDIS_HOST"),
			RedisPort:           v.GetString("REDIS_PORT"),
			RedisPassword:       v.GetString("REDIS_PASSWORD"),
			RedisDB:             v.GetInt("REDIS_DB"),
			DashboardTTLSeconds: v.GetInt("CACHE_DASHBOARD_TTL_SECONDS"),
		},
		Analytics: AnalyticsConfig{
			TopSuppliers:       v.GetInt("ANALYTICS_TOP_SUPPLIERS"),
			TopCategories:      v.GetInt("ANALYTICS_TOP_CATEGORIES"),
			StockFanOut:        v.GetBool("ANALYTICS_STOCK_FANOUT"),
			StockLookupTimeout: time.Duration(v.GetInt("ANALYTICS_STOCK_LOOKUP_TIMEOUT_MS")) * time.Millisecond,
			StockLookupWorkers: v.GetInt("ANALYTICS_STOCK_LOOKUP_WORKERS"),
			Location:           loadLocation(v.GetString("ANALYTICS_LOCATION")),
		},
		Storage: StorageConfig{
			Enabled:   v.GetBool("STORAGE_ENABLED"),
			Endpoint:  v.GetString("STORAGE_ENDPOINT"),
			AccessKey: v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: v.GetString("STORAGE_SECRET_KEY"),
			Bucket:    v.GetString("STORAGE_BUCKET"),
			Region:    v.GetString("STORAGE_REGION"),
			UseSSL:    v.GetBool("STORAGE_USE_SSL"),
		},
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// loadLocation falls back to UTC for unknown zone names.
func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
