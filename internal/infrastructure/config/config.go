package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Signature SignatureConfig
	Timestamp TimestampConfig
	Storage   StorageConfig
	Render    RenderConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig holds JWT settings for the registry gateway tokens
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	MaxBodySize    int64
	TrustedProxies []string
}

// SignatureConfig holds the signing-window bounds and the availability
// monitor settings for the external signature subsystem.
type SignatureConfig struct {
	WindowStart     string // "HH:MM", local to the signing officer's service
	WindowEnd       string // "HH:MM"
	MonitorKey      string // Redis key the availability probe writes
	MonitorInterval time.Duration
	MonitorURL      string // health endpoint of the signature subsystem; empty disables the probe
}

// TimestampConfig holds the timestamping-authority client settings
type TimestampConfig struct {
	BaseURL        string
	Timeout        time.Duration
	ReviewBlockKey string        // Redis key marking acts held for human review
	ReviewBlockTTL time.Duration // 0 means the block never expires on its own
}

// StorageConfig holds the S3 settings for the signed-document archive
type StorageConfig struct {
	Endpoint        string // custom endpoint, empty for AWS
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// RenderConfig holds the headless-browser PDF renderer settings
type RenderConfig struct {
	Timeout     time.Duration
	ChromePath  string // empty for the default lookup
	MarginInch  float64
	PaperWidth  float64 // inches
	PaperHeight float64 // inches
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with REGISTRY_ prefix (e.g., REGISTRY_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("REGISTRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:   v.GetString("jwt.secret"),
			Issuer:   v.GetString("jwt.issuer"),
			Audience: v.GetString("jwt.audience"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes: v.GetInt("http.max_header_bytes"),
			MaxBodySize:    v.GetInt64("http.max_body_size"),
			TrustedProxies: v.GetStringSlice("http.trusted_proxies"),
		},
		Signature: SignatureConfig{
			WindowStart:     v.GetString("signature.window_start"),
			WindowEnd:       v.GetString("signature.window_end"),
			MonitorKey:      v.GetString("signature.monitor_key"),
			MonitorInterval: v.GetDuration("signature.monitor_interval"),
			MonitorURL:      v.GetString("signature.monitor_url"),
		},
		Timestamp: TimestampConfig{
			BaseURL:        v.GetString("timestamp.base_url"),
			Timeout:        v.GetDuration("timestamp.timeout"),
			ReviewBlockKey: v.GetString("timestamp.review_block_key"),
			ReviewBlockTTL: v.GetDuration("timestamp.review_block_ttl"),
		},
		Storage: StorageConfig{
			Endpoint:        v.GetString("storage.endpoint"),
			Region:          v.GetString("storage.region"),
			Bucket:          v.GetString("storage.bucket"),
			AccessKeyID:     v.GetString("storage.access_key_id"),
			SecretAccessKey: v.GetString("storage.secret_access_key"),
			UsePathStyle:    v.GetBool("storage.use_path_style"),
		},
		Render: RenderConfig{
			Timeout:     v.GetDuration("render.timeout"),
			ChromePath:  v.GetString("render.chrome_path"),
			MarginInch:  v.GetFloat64("render.margin_inch"),
			PaperWidth:  v.GetFloat64("render.paper_width"),
			PaperHeight: v.GetFloat64("render.paper_height"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "civilregistry-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "civilregistry"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "civilregistry-gateway"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		// Signed PAdES documents arrive base64-encoded in the request body.
		cfg.HTTP.MaxBodySize = 32 << 20 // 32MB
	}
	if cfg.Signature.WindowStart == "" {
		cfg.Signature.WindowStart = "22:30"
	}
	if cfg.Signature.WindowEnd == "" {
		cfg.Signature.WindowEnd = "23:30"
	}
	if cfg.Signature.MonitorKey == "" {
		cfg.Signature.MonitorKey = "signature:availability"
	}
	if cfg.Signature.MonitorInterval == 0 {
		cfg.Signature.MonitorInterval = 30 * time.Second
	}
	if cfg.Timestamp.Timeout == 0 {
		cfg.Timestamp.Timeout = 30 * time.Second
	}
	if cfg.Timestamp.ReviewBlockKey == "" {
		cfg.Timestamp.ReviewBlockKey = "timestamp:review-block"
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "eu-west-3"
	}
	if cfg.Storage.Bucket == "" {
		cfg.Storage.Bucket = "mentions-archive"
	}
	if cfg.Render.Timeout == 0 {
		cfg.Render.Timeout = 60 * time.Second
	}
	if cfg.Render.MarginInch == 0 {
		cfg.Render.MarginInch = 0.8
	}
	if cfg.Render.PaperWidth == 0 {
		cfg.Render.PaperWidth = 8.27 // A4
	}
	if cfg.Render.PaperHeight == 0 {
		cfg.Render.PaperHeight = 11.69
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	for _, bound := range []string{c.Signature.WindowStart, c.Signature.WindowEnd} {
		if _, err := time.Parse("15:04", bound); err != nil {
			return fmt.Errorf("signature window bound %q is not HH:MM: %w", bound, err)
		}
	}

	if c.App.Env == "production" {
		if c.JWT.Secret == "" {
			return fmt.Errorf("jwt.secret is required in production")
		}
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be at least 32 characters in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		if c.Timestamp.BaseURL == "" {
			return fmt.Errorf("timestamp.base_url is required in production")
		}
		if c.Storage.AccessKeyID == "" || c.Storage.SecretAccessKey == "" {
			return fmt.Errorf("storage credentials are required in production")
		}
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Addr returns the Redis host:port address
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
