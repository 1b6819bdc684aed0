package structs

import "time"

type Config struct {
	Server    *ServerConfig
	Cors      *CorsConfig
	Database  *DatabaseConfig
	Auth      *AuthConfig
	Cache     *CacheConfig
	Storage   *StorageConfig
	RateLimit *RateLimitConfig
	Email     *EmailConfig
}

type ServerConfig struct {
	AppName        string        // HappyCrafts
	Environment    string        // development, production
	Port           string        // :8084
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	MaxLifetime time.Duration // in seconds
	MaxIdleTime time.Duration // in seconds
}

type AuthConfig struct {
	AccessTokenSecret  string
	AccessTokenExpiry  time.Duration
	RefreshTokenSecret string
	RefreshTokenExpiry time.Duration
	BlacklistCacheTTL  time.Duration
	CacheUserTTL       time.Duration
}

type CacheConfig struct {
	Address  string
	Username string
	Password string
	DB       int

	PoolSize     int
	MinIdleConns int
	MaxIdleConns int
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration

	ProductTTL     time.Duration
	ProductListTTL time.Duration
}

type StorageConfig struct {
	Bucket        string
	Region        string
	KeyPrefix     string // object key prefix, e.g. "products"
	PublicBaseURL string // e.g. https://<bucket>.s3.<region>.amazonaws.com
	UploadTimeout time.Duration
}

type RateLimitConfig struct {
	Enabled bool

	GeneralLimit  int
	GeneralWindow time.Duration

	AuthLimit  int
	AuthWindow time.Duration

	AdminLimit  int
	AdminWindow time.Duration

	ExpensiveLimit  int
	ExpensiveWindow time.Duration
}

type EmailConfig struct {
	APIKey       string
	FromAddress  string
	AdminAddress string
}
