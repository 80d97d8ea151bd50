// Load envs from .env
// Load YAML config
// Override with env vars
// Provide default values and validate

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

type Config struct {
	//Portal login
	Email               string        `yaml:"email" env:"EMAIL"`
	Password            string        `yaml:"password" env:"PASSWORD"`
	//Portal pages
	BaseURL             string        `yaml:"base_url"`
	CurrentJobID        string        `yaml:"current_job_id" env:"CURRJOB_ID"`
	ApplyLink           string        `yaml:"apply_link"`
	//Sinks
	GoogleSheetID       string        `yaml:"google_sheet_id" env:"GOOGLE_SHEET_ID"`
	GoogleServiceEmail  string        `yaml:"google_service_account_email" env:"GOOGLE_SERVICE_ACCOUNT_EMAIL"`
	GooglePrivateKey    string        `yaml:"-" env:"GOOGLE_PRIVATE_KEY"`
	WebhookURL          string        `yaml:"webhook_url" env:"N8N_WEBHOOK_URL"`
	TelegramToken       string        `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID      int64         `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	SinkSpacing         time.Duration `yaml:"sink_spacing"`
	CommitAfterDispatch bool          `yaml:"commit_after_dispatch"`
	//Browser
	Headless            bool          `yaml:"headless" env:"HEADLESS"`
	LoginTimeout        time.Duration `yaml:"login_timeout"`
	NavigationTimeout   time.Duration `yaml:"navigation_timeout"`
	//Paths
	MarkerPath          string        `yaml:"marker_path"`
	CookiesPath         string        `yaml:"cookies_path"`
	ScreenshotsDir      string        `yaml:"screenshots_dir"`
}

// Defaults mirror the portal the tool was written for.
func Defaults() *Config {
	return &Config{
		BaseURL:           "https://app.joinsuperset.com",
		ApplyLink:         "https://app.joinsuperset.com/students",
		SinkSpacing:       500 * time.Millisecond,
		Headless:          true,
		LoginTimeout:      60 * time.Second,
		NavigationTimeout: 30 * time.Second,
		MarkerPath:        "./lastJob.json",
		ScreenshotsDir:    "logs/screenshots",
	}
}

// Load reads and validates the configuration.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read loads .env, then the YAML file at path (optional), then env overrides.
// Nothing is validated.
func Read(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: Could not read %s: %v", path, err)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"EMAIL":                        &cfg.Email,
		"PASSWORD":                     &cfg.Password,
		"CURRJOB_ID":                   &cfg.CurrentJobID,
		"GOOGLE_SHEET_ID":              &cfg.GoogleSheetID,
		"GOOGLE_SERVICE_ACCOUNT_EMAIL": &cfg.GoogleServiceEmail,
		"GOOGLE_PRIVATE_KEY":           &cfg.GooglePrivateKey,
		"N8N_WEBHOOK_URL":              &cfg.WebhookURL,
		"TELEGRAM_BOT_TOKEN":           &cfg.TelegramToken,
		"MARKER_PATH":                  &cfg.MarkerPath,
		"COOKIES_PATH":                 &cfg.CookiesPath,
	}
	for name, dst := range strs {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	//keys pasted into .env keep their newlines escaped
	cfg.GooglePrivateKey = strings.ReplaceAll(cfg.GooglePrivateKey, `\n`, "\n")

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	if headless := os.Getenv("HEADLESS"); headless != "" {
		v, err := strconv.ParseBool(headless)
		if err != nil {
			return fmt.Errorf("invalid HEADLESS: %w", err)
		}
		cfg.Headless = v
	}
	return nil
}

// Validate checks presence only.
func (c *Config) Validate() error {
	var errs []error
	required := []struct{ name, value string }{
		{"EMAIL", c.Email},
		{"PASSWORD", c.Password},
		{"GOOGLE_SHEET_ID", c.GoogleSheetID},
		{"GOOGLE_SERVICE_ACCOUNT_EMAIL", c.GoogleServiceEmail},
		{"GOOGLE_PRIVATE_KEY", c.GooglePrivateKey},
		{"N8N_WEBHOOK_URL", c.WebhookURL},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%s is required", r.name))
		}
	}
	if c.TelegramToken != "" && c.TelegramChatID == 0 {
		errs = append(errs, errors.New("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set"))
	}
	return errors.Join(errs...)
}

// LoginURL is the student login page.
func (c *Config) LoginURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/students/login"
}

// JobProfilesURL lists job profiles, optionally focused on CurrentJobID.
func (c *Config) JobProfilesURL() string {
	u := strings.TrimRight(c.BaseURL, "/") + "/students/jobprofiles"
	if c.CurrentJobID != "" {
		u += "?currentJobId=" + c.CurrentJobID
	}
	return u
}

// TelegramEnabled reports whether the optional Telegram sink is configured.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != ""
}
