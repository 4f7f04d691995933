package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BackendConfig points the client at the REST backend.
type BackendConfig struct {
	// BaseURL is the root of the backend API (e.g. https://tms.example.com/api).
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutSec bounds every single request.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`

	// SearchDebounceMs is how long list search waits for typing to settle.
	SearchDebounceMs int `mapstructure:"search_debounce_ms" yaml:"search_debounce_ms"`
}

// ReportConfig controls Excel report output.
type ReportConfig struct {
	OutputDir   string `mapstructure:"output_dir" yaml:"output_dir"`
	LogoPath    string `mapstructure:"logo_path" yaml:"logo_path"`
	CompanyName string `mapstructure:"company_name" yaml:"company_name"`
}

// MailConfig configures saving exported reports as IMAP drafts.
// The password lives in the system keyring, never in the file.
type MailConfig struct {
	Enabled       bool   `mapstructure:"enabled" yaml:"enabled"`
	Host          string `mapstructure:"host" yaml:"host"`
	Port          string `mapstructure:"port" yaml:"port"`
	Username      string `mapstructure:"username" yaml:"username"`
	TLS           bool   `mapstructure:"tls" yaml:"tls"`
	DraftsMailbox string `mapstructure:"drafts_mailbox" yaml:"drafts_mailbox"`
	From          string `mapstructure:"from" yaml:"from"`
}

// LogConfig selects where and how verbosely the client logs.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Backend BackendConfig `mapstructure:"backend" yaml:"backend"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Reports ReportConfig  `mapstructure:"reports" yaml:"reports"`
	Mail    MailConfig    `mapstructure:"mail" yaml:"mail"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// EnvPrefix is the prefix for environment overrides, e.g.
// FREIGHTDESK_BACKEND_BASE_URL.
const EnvPrefix = "FREIGHTDESK"

// ConfigDir returns ~/.config/freightdesk, falling back to the working
// directory when the home directory cannot be resolved.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "freightdesk")
}

// DefaultConfigPath returns the default path for the configuration file.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultDBPath returns the default location of the local SQLite database.
func DefaultDBPath() string {
	return filepath.Join(ConfigDir(), "freightdesk.db")
}

func defaultReportDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "reports"
	}
	return filepath.Join(home, "FreightDesk", "reports")
}

// defaults are applied to every viper instance so that environment
// overrides resolve for keys that are absent from the file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.base_url", "http://localhost:8080/api")
	v.SetDefault("backend.timeout_sec", 30)
	v.SetDefault("display.theme", "default")
	v.SetDefault("display.search_debounce_ms", 300)
	v.SetDefault("reports.output_dir", defaultReportDir())
	v.SetDefault("reports.logo_path", "")
	v.SetDefault("reports.company_name", "")
	v.SetDefault("mail.enabled", false)
	v.SetDefault("mail.host", "")
	v.SetDefault("mail.port", "993")
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.tls", true)
	v.SetDefault("mail.drafts_mailbox", "Drafts")
	v.SetDefault("mail.from", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(ConfigDir(), "freightdesk.log"))
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// A .env file in the working directory is loaded first, and FREIGHTDESK_*
// environment variables override file values. A missing file is not an
// error; defaults are used instead.
func LoadConfig(path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Backend.TimeoutSec <= 0 {
		cfg.Backend.TimeoutSec = 30
	}
	if cfg.Display.SearchDebounceMs <= 0 {
		cfg.Display.SearchDebounceMs = 300
	}
	cfg.Reports.OutputDir = expandHome(cfg.Reports.OutputDir)
	cfg.Reports.LogoPath = expandHome(cfg.Reports.LogoPath)
	cfg.Log.File = expandHome(cfg.Log.File)

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("backend", cfg.Backend)
	v.Set("display", cfg.Display)
	v.Set("reports", cfg.Reports)
	v.Set("mail", cfg.Mail)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
