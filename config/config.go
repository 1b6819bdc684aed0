package config

import (
	"happycrafts_server/structs"
	"sync"
	"time"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = &structs.Config{
			Server: &structs.ServerConfig{
				AppName:        getEnvAsString("APP_NAME", "HappyCrafts_no_env"),
				Environment:    getEnvAsString("APP_ENV", "development"),
				Port:           getEnvAsString("APP_PORT", ":8084"),
				ReadTimeout:    getEnvAsTimeDuration("SERVER_READ_TIME_OUT", 15*time.Second),
				WriteTimeout:   getEnvAsTimeDuration("SERVER_WRITE_TIME_OUT", 15*time.Second),
				IdleTimeout:    getEnvAsTimeDuration("SERVER_IDLE_TIME_OUT", 60*time.Second),
				MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			},
			Cors: &structs.CorsConfig{
				AllowedOrigins:   getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"localhost", "http://localhost:3000"}),
				AllowedMethods:   getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
				AllowedHeaders:   getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token"}),
				AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", true),
				ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length", "Authorization"}),
				MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
			},
			Database: &structs.DatabaseConfig{
				Host:        getEnvAsString("DB_HOST", "localhost"),
				Port:        getEnvAsInt("DB_PORT", 5432),
				User:        getEnvAsString("DB_USER", "postgres"),
				Password:    getEnvAsString("DB_PASSWORD", "password"),
				Name:        getEnvAsString("DB_NAME", "happycrafts_db"),
				SSLMode:     getEnvAsString("DB_SSL_MODE", "disable"),
				MaxConns:    getEnvAsInt("DB_MAX_CONNS", 10),
				MinConns:    getEnvAsInt("DB_MIN_CONNS", 2),
				MaxLifetime: getEnvAsTimeDuration("DB_MAX_LIFETIME", 30*time.Minute),
				MaxIdleTime: getEnvAsTimeDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
			},
			Auth: &structs.AuthConfig{
				AccessTokenSecret:  getEnvAsString("AUTH_ACCESS_TOKEN_SECRET", "default_access_secret"),
				AccessTokenExpiry:  getEnvAsTimeDuration("AUTH_ACCESS_TOKEN_EXPIRY", 15*time.Minute),
				RefreshTokenSecret: getEnvAsString("AUTH_REFRESH_TOKEN_SECRET", "default_refresh_secret"),
				RefreshTokenExpiry: getEnvAsTimeDuration("AUTH_REFRESH_TOKEN_EXPIRY", 7*24*time.Hour),
				BlacklistCacheTTL:  getEnvAsTimeDuration("AUTH_BLACKLIST_CACHE_TTL", 7*24*time.Hour),
				CacheUserTTL:       getEnvAsTimeDuration("AUTH_CACHE_USER_TTL", 10*time.Minute),
			},
			Cache: &structs.CacheConfig{
				Address:  getEnvAsString("REDIS_ADDRESS", "localhost:6379"),
				Username: getEnvAsString("REDIS_USERNAME", ""),
				Password: getEnvAsString("REDIS_PASSWORD", ""),
				DB:       getEnvAsInt("REDIS_DB", 0),

				PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
				MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
				MaxIdleConns: getEnvAsInt("REDIS_MAX_IDLE_CONNS", 5),
				PoolTimeout:  getEnvAsTimeDuration("REDIS_POOL_TIMEOUT", 4*time.Second),
				IdleTimeout:  getEnvAsTimeDuration("REDIS_IDLE_TIMEOUT", 5*time.Minute),

				DialTimeout:  getEnvAsTimeDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
				ReadTimeout:  getEnvAsTimeDuration("REDIS_READ_TIMEOUT", 3*time.Second),
				WriteTimeout: getEnvAsTimeDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),

				MaxRetries:      getEnvAsInt("REDIS_MAX_RETRIES", 3),
				MinRetryBackoff: getEnvAsTimeDuration("REDIS_MIN_RETRY_BACKOFF", 8*time.Millisecond),
				MaxRetryBackoff: getEnvAsTimeDuration("REDIS_MAX_RETRY_BACKOFF", 512*time.Millisecond),

				ProductTTL:     getEnvAsTimeDuration("CACHE_PRODUCT_TTL", 5*time.Minute),
				ProductListTTL: getEnvAsTimeDuration("CACHE_PRODUCT_LIST_TTL", 2*time.Minute),
			},
			Storage: &structs.StorageConfig{
				Bucket:        getEnvAsString("STORAGE_BUCKET", "happycrafts-images"),
				Region:        getEnvAsString("STORAGE_REGION", "eu-central-1"),
				KeyPrefix:     getEnvAsString("STORAGE_KEY_PREFIX", "products"),
				PublicBaseURL: getEnvAsString("STORAGE_PUBLIC_BASE_URL", ""),
				UploadTimeout: getEnvAsTimeDuration("STORAGE_UPLOAD_TIMEOUT", 30*time.Second),
			},
			RateLimit: &structs.RateLimitConfig{
				Enabled: getEnvAsBool("RATE_LIMIT_ENABLED", true),

				GeneralLimit:  getEnvAsInt("RATE_LIMIT_GENERAL", 100),
				GeneralWindow: getEnvAsTimeDuration("RATE_LIMIT_GENERAL_WINDOW", time.Minute),

				AuthLimit:  getEnvAsInt("RATE_LIMIT_AUTH", 10),
				AuthWindow: getEnvAsTimeDuration("RATE_LIMIT_AUTH_WINDOW", time.Minute),

				AdminLimit:  getEnvAsInt("RATE_LIMIT_ADMIN", 60),
				AdminWindow: getEnvAsTimeDuration("RATE_LIMIT_ADMIN_WINDOW", time.Minute),

				ExpensiveLimit:  getEnvAsInt("RATE_LIMIT_EXPENSIVE", 60),
				ExpensiveWindow: getEnvAsTimeDuration("RATE_LIMIT_EXPENSIVE_WINDOW", time.Minute),
			},
			Email: &structs.EmailConfig{
				APIKey:       getEnvAsString("RESEND_API_KEY", ""),
				FromAddress:  getEnvAsString("EMAIL_FROM_ADDRESS", "noreply@happycrafts.shop"),
				AdminAddress: getEnvAsString("EMAIL_ADMIN_ADDRESS", ""),
			},
		}
	})
	return configInstance
}

func GetLogLevel() string {
	if GetConfig().Server.Environment == "production" {
		return "info"
	}
	return "debug"
}

func IsProduction() bool {
	return GetConfig().Server.Environment == "production"
}
