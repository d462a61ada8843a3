package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           int      `yaml:"port" validate:"gt=0,lte=65535"`
		Mode           string   `yaml:"mode" validate:"oneof=debug release test"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Database struct {
		Enabled bool   `yaml:"enabled"`
		URI     string `yaml:"uri" validate:"required_if=Enabled true"`
		DBName  string `yaml:"dbname" validate:"required_if=Enabled true"`
	} `yaml:"database"`
	Redis struct {
		Enabled     bool   `yaml:"enabled"`
		Host        string `yaml:"host" validate:"required,hostname|ip"`
		Port        int    `yaml:"port" validate:"required,gt=0,lte=65535"`
		Password    string `yaml:"password"`
		DB          int    `yaml:"db" validate:"gte=0"`
		TLSEnabled  bool   `yaml:"tls_enabled"`
		TLSCertFile string `yaml:"tls_cert_file"`
	} `yaml:"redis"`
	Upstream struct {
		BaseURL    string        `yaml:"base_url" validate:"omitempty,url"`
		ListPath   string        `yaml:"list_path"`
		DetailPath string        `yaml:"detail_path"`
		APIKey     string        `yaml:"api_key"`
		Timeout    time.Duration `yaml:"timeout" validate:"gt=0"`
		RetryMax   int           `yaml:"retry_max" validate:"gte=0,lte=10"`
		MaxPages   int           `yaml:"max_pages" validate:"gte=1"`
	} `yaml:"upstream"`
	Search struct {
		DefaultLanguage  string        `yaml:"default_language" validate:"oneof=en ar ku"`
		PlaceholderImage string        `yaml:"placeholder_image"`
		PerPage          int           `yaml:"per_page" validate:"gte=1"`
		MaxPerPage       int           `yaml:"max_per_page" validate:"gtefield=PerPage"`
		CacheTTL         time.Duration `yaml:"cache_ttl" validate:"gte=0"`
	} `yaml:"search"`
	RateLimit struct {
		RequestsPerMinute int `yaml:"requests_per_minute" validate:"gte=0"`
		Burst             int `yaml:"burst" validate:"gte=0"`
	} `yaml:"rate_limit"`
	Log struct {
		Level string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	} `yaml:"log"`
}

// LoadConfig reads the YAML file at path, applies environment overrides and
// defaults, and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}
	return Parse(data)
}

// Parse builds a Config from YAML bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Override with environment variables if set
func (cfg *Config) applyEnv() error {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT value: %v", err)
		}
		cfg.Server.Port = portNum
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		cfg.Server.Mode = mode
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.Server.AllowedOrigins = splitList(origins)
	}

	if enabled := os.Getenv("MONGO_ENABLED"); enabled != "" {
		cfg.Database.Enabled = enabled == "true"
	}
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		cfg.Database.URI = uri
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		cfg.Database.DBName = dbname
	}

	if enabled := os.Getenv("REDIS_ENABLED"); enabled != "" {
		cfg.Redis.Enabled = enabled == "true"
	}
	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.Redis.Host = host
	}
	if port := os.Getenv("REDIS_PORT"); port != "" {
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid REDIS_PORT value: %v", err)
		}
		cfg.Redis.Port = portNum
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		dbNum, err := strconv.Atoi(db)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB value: %v", err)
		}
		cfg.Redis.DB = dbNum
	}
	if tlsEnabled := os.Getenv("REDIS_TLS_ENABLED"); tlsEnabled != "" {
		cfg.Redis.TLSEnabled = tlsEnabled == "true"
	}
	if tlsCertFile := os.Getenv("REDIS_TLS_CERT_FILE"); tlsCertFile != "" {
		cfg.Redis.TLSCertFile = tlsCertFile
	}

	if baseURL := os.Getenv("LISTINGS_API_URL"); baseURL != "" {
		cfg.Upstream.BaseURL = baseURL
	}
	if key := os.Getenv("LISTINGS_API_KEY"); key != "" {
		cfg.Upstream.APIKey = key
	}

	if lang := os.Getenv("DEFAULT_LANGUAGE"); lang != "" {
		cfg.Search.DefaultLanguage = lang
	}
	if ttl := os.Getenv("CACHE_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return fmt.Errorf("invalid CACHE_TTL value: %v", err)
		}
		cfg.Search.CacheTTL = d
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	return nil
}

// Set default values
func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.DB < 0 {
		cfg.Redis.DB = 0
	}
	if cfg.Upstream.ListPath == "" {
		cfg.Upstream.ListPath = "/api/properties"
	}
	if cfg.Upstream.DetailPath == "" {
		cfg.Upstream.DetailPath = "/api/properties/{id}"
	}
	if cfg.Upstream.Timeout == 0 {
		cfg.Upstream.Timeout = 10 * time.Second
	}
	if cfg.Upstream.RetryMax == 0 {
		cfg.Upstream.RetryMax = 3
	}
	if cfg.Upstream.MaxPages == 0 {
		cfg.Upstream.MaxPages = 20
	}
	if cfg.Search.DefaultLanguage == "" {
		cfg.Search.DefaultLanguage = "en"
	}
	if cfg.Search.PlaceholderImage == "" {
		cfg.Search.PlaceholderImage = "/images/placeholder-property.jpg"
	}
	if cfg.Search.PerPage == 0 {
		cfg.Search.PerPage = 12
	}
	if cfg.Search.MaxPerPage == 0 {
		cfg.Search.MaxPerPage = 100
	}
	if cfg.Search.CacheTTL == 0 {
		cfg.Search.CacheTTL = 5 * time.Minute
	}
	if cfg.RateLimit.RequestsPerMinute == 0 {
		cfg.RateLimit.RequestsPerMinute = 100
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 10
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Validate checks struct constraints and file references.
func (cfg *Config) Validate() error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Redis.TLSEnabled && cfg.Redis.TLSCertFile != "" {
		if _, err := os.Stat(cfg.Redis.TLSCertFile); os.IsNotExist(err) {
			return fmt.Errorf("TLS certificate file does not exist: %s", cfg.Redis.TLSCertFile)
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
