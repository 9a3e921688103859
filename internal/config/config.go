package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is the prefix of environment variables overriding the file.
const EnvPrefix = "IRREPORT"

// Config represents the application configuration
type Config struct {
	Environment string          `mapstructure:"environment" validate:"required,oneof=development staging production"`
	Server      ServerConfig    `mapstructure:"server"`
	Logging     LoggingConfig   `mapstructure:"logging"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Auth        AuthConfig      `mapstructure:"auth"`
	Reporting   ReportingConfig `mapstructure:"reporting"`
	Audit       AuditConfig     `mapstructure:"audit"`
	Metrics     MetricsConfig   `mapstructure:"metrics"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host" validate:"required"`
	HTTPPort        int           `mapstructure:"http_port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes" validate:"min=1024"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// RedisConfig contains Redis configuration for the export ticket store.
// An empty host selects the in-memory store.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"min=0,max=65535"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database" validate:"min=0"`
	PoolSize int    `mapstructure:"pool_size" validate:"min=1"`
	Prefix   string `mapstructure:"prefix"`
}

// AuthConfig contains API authentication settings
type AuthConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	JWTSecret string        `mapstructure:"jwt_secret" validate:"required_if=Enabled true"`
	Issuer    string        `mapstructure:"issuer"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// ReportingConfig contains export settings
type ReportingConfig struct {
	SchemaVersion  string           `mapstructure:"schema_version" validate:"required"`
	Indent         string           `mapstructure:"indent"`
	Namespaces     NamespacesConfig `mapstructure:"namespaces"`
	TicketTTL      time.Duration    `mapstructure:"ticket_ttl" validate:"min=1s"`
	EnabledFormats []string         `mapstructure:"enabled_formats" validate:"min=1,dive,oneof=xml pdf xlsx"`
	PDF            PDFConfig        `mapstructure:"pdf"`
	Excel          ExcelConfig      `mapstructure:"excel"`
}

// NamespacesConfig holds the URIs bound on the document root
type NamespacesConfig struct {
	Default string `mapstructure:"default" validate:"omitempty,uri"`
	Common  string `mapstructure:"common" validate:"omitempty,uri"`
	Enum    string `mapstructure:"enum" validate:"omitempty,uri"`
	XSI     string `mapstructure:"xsi" validate:"omitempty,uri"`
}

// PDFConfig contains PDF summary settings
type PDFConfig struct {
	FontFamily  string `mapstructure:"font_family"`
	FontSize    int    `mapstructure:"font_size" validate:"min=6,max=32"`
	Orientation string `mapstructure:"orientation" validate:"oneof=P L"`
}

// ExcelConfig contains transaction schedule settings
type ExcelConfig struct {
	SheetName string `mapstructure:"sheet_name" validate:"required,max=31"`
}

// AuditConfig contains export audit trail settings
type AuditConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	BufferSize    int           `mapstructure:"buffer_size" validate:"min=1"`
	BatchSize     int           `mapstructure:"batch_size" validate:"min=1"`
	FlushInterval time.Duration `mapstructure:"flush_interval"`
	MaxEntries    int           `mapstructure:"max_entries" validate:"min=1"`
}

// MetricsConfig contains Prometheus settings
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"startswith=/"`
}

// LoadConfig loads configuration from file and environment variables.
// An empty path loads defaults and environment overrides only.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "15s")
	v.SetDefault("server.max_body_bytes", 10<<20)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Redis defaults
	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.prefix", "irreport:export:")

	// Auth defaults
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.issuer", "aegisshield")
	v.SetDefault("auth.token_ttl", "1h")

	// Reporting defaults
	v.SetDefault("reporting.schema_version", "1.0")
	v.SetDefault("reporting.indent", "  ")
	v.SetDefault("reporting.ticket_ttl", "10m")
	v.SetDefault("reporting.enabled_formats", []string{"xml", "pdf", "xlsx"})
	v.SetDefault("reporting.namespaces.default", "http://www.impa.gov.il/IrregularReport")
	v.SetDefault("reporting.namespaces.common", "http://www.impa.gov.il/CommonTypes")
	v.SetDefault("reporting.namespaces.enum", "http://www.impa.gov.il/EnumTypes")
	v.SetDefault("reporting.namespaces.xsi", "http://www.w3.org/2001/XMLSchema-instance")
	v.SetDefault("reporting.pdf.font_family", "Arial")
	v.SetDefault("reporting.pdf.font_size", 11)
	v.SetDefault("reporting.pdf.orientation", "P")
	v.SetDefault("reporting.excel.sheet_name", "Transactions")

	// Audit defaults
	v.SetDefault("audit.enabled", true)
	v.SetDefault("audit.buffer_size", 1000)
	v.SetDefault("audit.batch_size", 100)
	v.SetDefault("audit.flush_interval", "5s")
	v.SetDefault("audit.max_entries", 10000)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.Redis.Host != "" && c.Redis.Port == 0 {
		return fmt.Errorf("redis port is required when redis host is set")
	}
	return nil
}

// GetRedisAddr returns the Redis connection address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// GetHTTPAddr returns the HTTP listen address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
}

// FormatEnabled reports whether exports in format are allowed.
func (c *ReportingConfig) FormatEnabled(format string) bool {
	return lo.Contains(c.EnabledFormats, format)
}

// InitLogger initializes the logger based on configuration
func (c *Config) InitLogger() (*zap.Logger, error) {
	var config zap.Config

	if c.Environment == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	config.Level = zap.NewAtomicLevelAt(level)
	config.Encoding = c.Logging.Format

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return logger, nil
}
