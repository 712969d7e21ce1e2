package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dmitrijs2005/vehireg/internal/logging"
)

// Config holds runtime settings for the vehireg CLI.
//
// Fields:
//   - ServerURL: base URL of the vehicle registry REST API.
//   - RequestTimeout: per-request timeout applied by the HTTP client.
//   - LogBackend / LogLevel: structured logger selection (see logging.New).
//   - S3Region / S3Endpoint / S3AccessKey / S3SecretKey: used only when an
//     image URI has the s3:// scheme. Without keys the default AWS
//     credential chain applies.
type Config struct {
	ServerURL      string        `mapstructure:"server-url"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
	LogBackend     string        `mapstructure:"log-backend"`
	LogLevel       string        `mapstructure:"log-level"`
	S3Region       string        `mapstructure:"s3-region"`
	S3Endpoint     string        `mapstructure:"s3-endpoint"`
	S3AccessKey    string        `mapstructure:"s3-access-key"`
	S3SecretKey    string        `mapstructure:"s3-secret-key"`
}

const (
	KeyServerURL      = "server-url"
	KeyRequestTimeout = "request-timeout"
	KeyLogBackend     = "log-backend"
	KeyLogLevel       = "log-level"
	KeyS3Region       = "s3-region"
	KeyS3Endpoint     = "s3-endpoint"
	KeyS3AccessKey    = "s3-access-key"
	KeyS3SecretKey    = "s3-secret-key"

	EnvPrefix = "VEHIREG"
)

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080/api/vehicles"
	c.RequestTimeout = 10 * time.Second
	c.LogBackend = logging.BackendSlog
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
	c.S3Endpoint = ""
	c.S3AccessKey = ""
	c.S3SecretKey = ""
}

// SetDefaults registers the defaults of Config on v. Every key must have a
// default for environment overrides to be picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	var d Config
	d.LoadDefaults()
	v.SetDefault(KeyServerURL, d.ServerURL)
	v.SetDefault(KeyRequestTimeout, d.RequestTimeout)
	v.SetDefault(KeyLogBackend, d.LogBackend)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyS3Region, d.S3Region)
	v.SetDefault(KeyS3Endpoint, d.S3Endpoint)
	v.SetDefault(KeyS3AccessKey, d.S3AccessKey)
	v.SetDefault(KeyS3SecretKey, d.S3SecretKey)
}

// RegisterFlags adds the configuration flags to fs and binds them on v.
func RegisterFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var d Config
	d.LoadDefaults()
	fs.String(KeyServerURL, d.ServerURL, "base URL of the vehicle registry API")
	fs.Duration(KeyRequestTimeout, d.RequestTimeout, "timeout of a single API request")
	fs.String(KeyLogBackend, d.LogBackend, "log backend: slog or zap")
	fs.String(KeyLogLevel, d.LogLevel, "log level: debug, info, warn or error")
	fs.String(KeyS3Region, d.S3Region, "AWS region for s3:// image URIs")
	fs.String(KeyS3Endpoint, d.S3Endpoint, "custom S3-compatible endpoint for s3:// image URIs")
	fs.String(KeyS3AccessKey, d.S3AccessKey, "static S3 access key")
	fs.String(KeyS3SecretKey, d.S3SecretKey, "static S3 secret key")

	for _, k := range []string{
		KeyServerURL, KeyRequestTimeout, KeyLogBackend, KeyLogLevel,
		KeyS3Region, KeyS3Endpoint, KeyS3AccessKey, KeyS3SecretKey,
	} {
		if err := v.BindPFlag(k, fs.Lookup(k)); err != nil {
			return fmt.Errorf("bind flag %s: %w", k, err)
		}
	}
	return nil
}

// Load builds a Config from v. Sources, later ones winning: defaults, the
// config file, VEHIREG_* environment variables, flags bound on v.
//
// When configFile is empty, vehireg.{yaml,json,...} is looked up in the
// working directory and in $HOME/.vehireg; a missing file is not an error.
// An explicitly named file must exist.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("vehireg")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.vehireg")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks configuration for errors.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return errors.New("server-url cannot be empty")
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server-url %q must be an absolute http(s) URL", c.ServerURL)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request-timeout must be positive")
	}
	if (c.S3AccessKey == "") != (c.S3SecretKey == "") {
		return errors.New("s3-access-key and s3-secret-key must be set together")
	}
	switch strings.ToLower(c.LogBackend) {
	case logging.BackendSlog, logging.BackendZap:
	default:
		return fmt.Errorf("log-backend must be %q or %q, got %q", logging.BackendSlog, logging.BackendZap, c.LogBackend)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log-level %q", c.LogLevel)
	}
	return nil
}
