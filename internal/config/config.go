package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Defaults applied by Load. The client packages fall back to the same values.
const (
	DefaultEmailDomain = "xyz.com"
	DefaultBaseURL     = "https://api.zoom.us/v2"
	DefaultTokenURL    = "https://zoom.us/oauth/token"
	DefaultPageSize    = 300
	DefaultTimeout     = 30 * time.Second
)

// ErrMissingCredentials is returned when no API key or secret is configured.
var ErrMissingCredentials = errors.New("config: ZOOM_API_KEY and ZOOM_API_SECRET are required")

// Settings holds everything the token source and API client need.
type Settings struct {
	APIKey      string        `yaml:"api_key"`
	APISecret   string        `yaml:"api_secret"`
	AccountID   string        `yaml:"account_id,omitempty"`
	EmailDomain string        `yaml:"email_domain,omitempty"`
	BaseURL     string        `yaml:"base_url,omitempty"`
	TokenURL    string        `yaml:"token_url,omitempty"`
	PageSize    int           `yaml:"page_size,omitempty"`
	Timeout     time.Duration `yaml:"timeout,omitempty"`
}

// Load reads the settings file at path, applies environment overrides and
// defaults, and validates the result. A missing file is only an error when
// required is set; otherwise the environment alone may supply credentials.
func Load(path string, required bool) (Settings, error) {
	var s Settings
	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(content, &s); err != nil {
				return s, errors.Wrapf(err, "config: parse settings file %s", path)
			}
		case os.IsNotExist(err) && !required:
		default:
			return s, errors.Wrapf(err, "config: read settings file %s", path)
		}
	}

	if err := s.applyEnv(); err != nil {
		return s, err
	}
	s.applyDefaults()
	return s, s.Validate()
}

func (s *Settings) applyEnv() error {
	overrideString(&s.APIKey, "ZOOM_API_KEY")
	overrideString(&s.APISecret, "ZOOM_API_SECRET")
	overrideString(&s.AccountID, "ZOOM_ACCOUNT_ID")
	overrideString(&s.EmailDomain, "ZOOM_EMAIL_DOMAIN")
	overrideString(&s.BaseURL, "ZOOM_BASE_URL")
	overrideString(&s.TokenURL, "ZOOM_TOKEN_URL")

	if v := strings.TrimSpace(os.Getenv("ZOOM_PAGE_SIZE")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "config: ZOOM_PAGE_SIZE")
		}
		s.PageSize = n
	}
	if v := strings.TrimSpace(os.Getenv("ZOOM_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(err, "config: ZOOM_TIMEOUT")
		}
		s.Timeout = d
	}
	return nil
}

func (s *Settings) applyDefaults() {
	if s.EmailDomain == "" {
		s.EmailDomain = DefaultEmailDomain
	}
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.TokenURL == "" {
		s.TokenURL = DefaultTokenURL
	}
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}
}

// Validate reports configuration that would make every API call fail.
func (s Settings) Validate() error {
	if s.APIKey == "" || s.APISecret == "" {
		return ErrMissingCredentials
	}
	if !strings.HasPrefix(s.BaseURL, "http") {
		return errors.Errorf("config: invalid base url %q", s.BaseURL)
	}
	if strings.Contains(s.EmailDomain, "@") {
		return errors.Errorf("config: email domain %q must not contain '@'", s.EmailDomain)
	}
	return nil
}

func overrideString(dst *string, key string) {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		*dst = val
	}
}
