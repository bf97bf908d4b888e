package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	FormModePage     = "page"
	FormModeRedirect = "redirect"
)

type Config struct {
	Env       string `env:"APP_ENV" env-default:"development" env-description:"runtime environment name"`
	HTTPAddr  string `env:"HTTP_ADDR" env-default:":3000"`
	StaticDir string `env:"STATIC_DIR" env-default:"public"`

	Google Google

	AdminToken string `env:"ADMIN_TOKEN" env-description:"bearer secret for the admin endpoints"`

	FormResponseMode string        `env:"FORM_RESPONSE_MODE" env-default:"page" env-description:"page or redirect"`
	StoreTimeout     time.Duration `env:"STORE_TIMEOUT" env-default:"10s"`

	Notify Notify
}

// Google holds the spreadsheet location and the service account used to reach it.
type Google struct {
	SpreadsheetID      string `env:"GOOGLE_SHEET_ID"`
	SheetName          string `env:"GOOGLE_SHEET_NAME" env-default:"Sheet1"`
	ServiceAccountJSON string `env:"GOOGLE_SERVICE_ACCOUNT_JSON" env-description:"path to a service account key file"`

	ProjectID    string `env:"GOOGLE_PROJECT_ID"`
	ClientEmail  string `env:"GOOGLE_CLIENT_EMAIL"`
	PrivateKey   string `env:"GOOGLE_PRIVATE_KEY"`
	PrivateKeyID string `env:"GOOGLE_PRIVATE_KEY_ID"`
	ClientID     string `env:"GOOGLE_CLIENT_ID"`
}

type Notify struct {
	Provider       string `env:"NOTIFY_PROVIDER" env-default:"log"`
	OrganizerEmail string `env:"ORGANIZER_EMAIL" env-default:"organizers@cyberoasis.tn"`
	ContactEmail   string `env:"CONTACT_EMAIL" env-default:"contact@cyberoasis.tn"`

	// Timeout bounds each notification so a slow transport cannot hold a
	// submission response.
	Timeout time.Duration `env:"NOTIFY_TIMEOUT" env-default:"5s"`

	TelegramToken  string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `env:"TELEGRAM_CHAT_ID"`
}

func FromEnv() (Config, error) {
	var c Config
	if err := cleanenv.ReadEnv(&c); err != nil {
		return c, fmt.Errorf("read env: %w", err)
	}

	c.Env = strings.TrimSpace(c.Env)
	c.HTTPAddr = strings.TrimSpace(c.HTTPAddr)
	c.StaticDir = strings.TrimSpace(c.StaticDir)
	c.AdminToken = strings.TrimSpace(c.AdminToken)
	c.FormResponseMode = strings.ToLower(strings.TrimSpace(c.FormResponseMode))

	c.Google.SpreadsheetID = strings.TrimSpace(c.Google.SpreadsheetID)
	c.Google.SheetName = strings.TrimSpace(c.Google.SheetName)
	c.Google.ServiceAccountJSON = strings.TrimSpace(c.Google.ServiceAccountJSON)
	c.Google.ClientEmail = strings.TrimSpace(c.Google.ClientEmail)

	c.Notify.Provider = strings.ToLower(strings.TrimSpace(c.Notify.Provider))
	c.Notify.TelegramToken = strings.TrimSpace(c.Notify.TelegramToken)

	if c.HTTPAddr == "" {
		c.HTTPAddr = ":3000"
	}
	if c.Google.SheetName == "" {
		c.Google.SheetName = "Sheet1"
	}
	if c.StoreTimeout <= 0 {
		c.StoreTimeout = 10 * time.Second
	}
	if c.Notify.Timeout <= 0 {
		c.Notify.Timeout = 5 * time.Second
	}

	if c.AdminToken == "" {
		return c, fmt.Errorf("ADMIN_TOKEN is empty")
	}
	switch c.FormResponseMode {
	case FormModePage, FormModeRedirect:
	default:
		return c, fmt.Errorf("FORM_RESPONSE_MODE must be %q or %q, got %q", FormModePage, FormModeRedirect, c.FormResponseMode)
	}
	if c.Notify.Provider == "telegram" {
		if c.Notify.TelegramToken == "" {
			return c, fmt.Errorf("TELEGRAM_BOT_TOKEN is empty")
		}
		if c.Notify.TelegramChatID == 0 {
			return c, fmt.Errorf("TELEGRAM_CHAT_ID is empty")
		}
	}

	return c, nil
}

// StoreConfigured reports whether submissions can be written to the sheet.
func (c Config) StoreConfigured() bool {
	return c.Google.SpreadsheetID != ""
}

// Production reports whether the runtime environment is a production one.
func (c Config) Production() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	}
	return false
}
