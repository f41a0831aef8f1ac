package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config groups the application configuration, read via Viper from env vars
// and optionally a file.
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	KSeF    KSeFConfig
	Invoice InvoiceConfig
	Cache   CacheConfig
}

// AppConfig general application settings.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig PostgreSQL settings. When DatabaseURL is set it is used as the
// full connection string.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString returns the DSN to use: DATABASE_URL when set, otherwise
// the one built from the parts.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN builds the PostgreSQL connection string, URL-encoding credentials.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig token settings.
type JWTConfig struct {
	Secret     string
	Expiration int // minutes
	Issuer     string
}

// HTTPConfig server settings.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// KSeFConfig settings for the external e-invoicing gateway. With an empty
// BaseURL submission runs in development mode and returns a synthetic
// reference without any network call.
type KSeFConfig struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// InvoiceConfig invoice rendering settings and the seller letterhead.
type InvoiceConfig struct {
	PDFDir         string
	AttachmentDir  string
	CompanyName    string
	CompanyNIP     string
	CompanyAddress string
	CompanyCity    string
	CompanyZipCode string
	CompanyEmail   string
	CompanyPhone   string
	CompanyBank    string
	CompanyAccount string
}

// CacheConfig read-cache settings.
type CacheConfig struct {
	TTL  time.Duration
	Size int
}

// Load reads configuration from environment variables and optionally from a
// .env / config.env file. Env vars win.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "magazyn-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "magazyn"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "magazyn-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		KSeF: KSeFConfig{
			BaseURL:    getString(v, "KSEF_BASE_URL", ""),
			Token:      getString(v, "KSEF_TOKEN", ""),
			Timeout:    time.Duration(getInt(v, "KSEF_TIMEOUT_SECONDS", 30)) * time.Second,
			MaxRetries: getInt(v, "KSEF_MAX_RETRIES", 3),
			RetryDelay: time.Duration(getInt(v, "KSEF_RETRY_DELAY_MS", 500)) * time.Millisecond,
		},
		Invoice: InvoiceConfig{
			PDFDir:         getString(v, "INVOICE_PDF_DIR", "./data/invoices"),
			AttachmentDir:  getString(v, "ATTACHMENT_DIR", "./data/attachments"),
			CompanyName:    getString(v, "COMPANY_NAME", ""),
			CompanyNIP:     getString(v, "COMPANY_NIP", ""),
			CompanyAddress: getString(v, "COMPANY_ADDRESS", ""),
			CompanyCity:    getString(v, "COMPANY_CITY", ""),
			CompanyZipCode: getString(v, "COMPANY_ZIP_CODE", ""),
			CompanyEmail:   getString(v, "COMPANY_EMAIL", ""),
			CompanyPhone:   getString(v, "COMPANY_PHONE", ""),
			CompanyBank:    getString(v, "COMPANY_BANK", ""),
			CompanyAccount: getString(v, "COMPANY_ACCOUNT", ""),
		},
		Cache: CacheConfig{
			TTL:  time.Duration(getInt(v, "CACHE_TTL_SECONDS", 60)) * time.Second,
			Size: getInt(v, "CACHE_SIZE", 1024),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
