package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	errInvalidPort           = errors.New("config: invalid PORT number")
	errInvalidCMSURL         = errors.New("config: CMS_BASE_URL must be an absolute http(s) URL")
	errConcurrencyOutOfRange = errors.New("config: PROBE_CONCURRENCY must be 1-50")
	errNonPositiveDuration   = errors.New("config: duration must be positive")
	errRenderWaitTooShort    = errors.New("config: RENDER_WAIT must not be shorter than CMS_TIMEOUT")
)

// Config holds all application configuration. Values come from defaults, an
// optional config file, and environment variables, in increasing priority.
type Config struct {
	Port             string        `mapstructure:"port"`
	LogLevel         string        `mapstructure:"log_level"`
	CMSBaseURL       string        `mapstructure:"cms_base_url"`
	CMSMediaURL      string        `mapstructure:"cms_media_url"`
	CMSAPIToken      string        `mapstructure:"cms_api_token"`
	CMSPopulate      string        `mapstructure:"cms_populate"`
	CMSTimeout       time.Duration `mapstructure:"cms_timeout"`
	RenderWait       time.Duration `mapstructure:"render_wait"`
	DefaultsFile     string        `mapstructure:"defaults_file"`
	AssetsDir        string        `mapstructure:"assets_dir"`
	ProbeConcurrency int           `mapstructure:"probe_concurrency"`
}

// Load reads configuration with sensible defaults. When file is empty, a
// config.yaml in the working directory is used if present.
func Load(file string) (Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "ERROR")
	v.SetDefault("cms_base_url", "http://localhost:1337/api")
	v.SetDefault("cms_media_url", "")
	v.SetDefault("cms_api_token", "")
	v.SetDefault("cms_populate", "deep")
	v.SetDefault("cms_timeout", "10s")
	v.SetDefault("render_wait", "0s")
	v.SetDefault("defaults_file", "")
	v.SetDefault("assets_dir", "public/assets")
	v.SetDefault("probe_concurrency", 5)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %s: %w", describe(file), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	cfg.CMSBaseURL = strings.TrimRight(cfg.CMSBaseURL, "/")
	if cfg.RenderWait == 0 {
		cfg.RenderWait = cfg.CMSTimeout
	}
	if cfg.CMSMediaURL == "" {
		cfg.CMSMediaURL = strings.TrimSuffix(cfg.CMSBaseURL, "/api")
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.Port)
	}

	u, err := url.Parse(c.CMSBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", errInvalidCMSURL, c.CMSBaseURL)
	}

	if c.ProbeConcurrency < 1 || c.ProbeConcurrency > 50 {
		return fmt.Errorf("%w: got %d", errConcurrencyOutOfRange, c.ProbeConcurrency)
	}

	if c.CMSTimeout <= 0 {
		return fmt.Errorf("%w: CMS_TIMEOUT=%s", errNonPositiveDuration, c.CMSTimeout)
	}
	if c.RenderWait <= 0 {
		return fmt.Errorf("%w: RENDER_WAIT=%s", errNonPositiveDuration, c.RenderWait)
	}
	// A page that stops waiting before the fetch can time out would render
	// the loading view while its load is still able to succeed.
	if c.RenderWait < c.CMSTimeout {
		return fmt.Errorf("%w: RENDER_WAIT=%s CMS_TIMEOUT=%s", errRenderWaitTooShort, c.RenderWait, c.CMSTimeout)
	}

	return nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func describe(file string) string {
	if file == "" {
		return "config.yaml"
	}
	return file
}
