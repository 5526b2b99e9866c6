package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PINPOINT"

// Configuration keys. Flags with the same name override the environment.
const (
	KeyEnv           = "env"
	KeyProviderType  = "provider-type"
	KeyProviderKey   = "provider-key"
	KeyProviderURL   = "provider-url"
	KeyAddress       = "address"
	KeyAddressPrefix = "address-prefix"
	KeyTimeout       = "timeout"
	KeyRateLimit     = "rate-limit"
	KeyHTTPPort      = "http-port"
	KeyCatalog       = "catalog"
)

// Config holds the configuration settings for pinpoint.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - ProviderType: The type of geocoding provider to use (google, googlemaps, nominatim, visicom).
// - APIKey: The access credential for the provider, passed through unmodified.
// - ProviderURL: Optional endpoint override for the provider.
// - Address: The address to resolve in one-shot mode.
// - AddrPrefix: Prefix prepended to every address for more accurate geocoding.
// - Timeout: Upper bound for one lookup.
// - RateLimit: Requests per second enforced locally by providers that support it.
// - Port: The port of the HTTP server in serve mode.
// - Catalog: Optional path of a buildings CSV served in serve mode.
type Config struct {
	Env          string        `mapstructure:"env"`
	ProviderType string        `mapstructure:"provider-type"`
	APIKey       string        `mapstructure:"provider-key"`
	ProviderURL  string        `mapstructure:"provider-url"`
	Address      string        `mapstructure:"address"`
	AddrPrefix   string        `mapstructure:"address-prefix"`
	Timeout      time.Duration `mapstructure:"timeout"`
	RateLimit    int           `mapstructure:"rate-limit"`
	Port         int           `mapstructure:"http-port"`
	Catalog      string        `mapstructure:"catalog"`
}

// ErrInvalidValue is returned when a configured value cannot be parsed.
var ErrInvalidValue = errors.New("invalid configuration value")

// Load resolves the configuration from command-line flags, PINPOINT_* environment
// variables (optionally seeded from a .env file) and defaults, in that order.
// flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyEnv, "production")
	v.SetDefault(KeyProviderType, "google")
	v.SetDefault(KeyProviderKey, "")
	v.SetDefault(KeyProviderURL, "")
	v.SetDefault(KeyAddress, "")
	v.SetDefault(KeyAddressPrefix, "")
	v.SetDefault(KeyTimeout, "10s")
	v.SetDefault(KeyRateLimit, "0")
	v.SetDefault(KeyHTTPPort, "8080")
	v.SetDefault(KeyCatalog, "")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	timeout, err := time.ParseDuration(v.GetString(KeyTimeout))
	if err != nil || timeout < 0 {
		return nil, fmt.Errorf("%w: failed to parse timeout %q", ErrInvalidValue, v.GetString(KeyTimeout))
	}

	rateLimit, err := strconv.Atoi(v.GetString(KeyRateLimit))
	if err != nil {
		return nil, fmt.Errorf("%w: rate limit must be an integer, got %q", ErrInvalidValue, v.GetString(KeyRateLimit))
	}

	port, err := strconv.Atoi(v.GetString(KeyHTTPPort))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse HTTP port %q", ErrInvalidValue, v.GetString(KeyHTTPPort))
	}

	return &Config{
		Env:          v.GetString(KeyEnv),
		ProviderType: v.GetString(KeyProviderType),
		APIKey:       v.GetString(KeyProviderKey),
		ProviderURL:  v.GetString(KeyProviderURL),
		Address:      v.GetString(KeyAddress),
		AddrPrefix:   v.GetString(KeyAddressPrefix),
		Timeout:      timeout,
		RateLimit:    rateLimit,
		Port:         port,
		Catalog:      v.GetString(KeyCatalog),
	}, nil
}
