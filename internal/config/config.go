package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
)

// Config holds all configuration from environment variables.
type Config struct {
	BotToken      string `envconfig:"BOT_TOKEN" required:"true"`
	WeatherAPIKey string `envconfig:"WEATHER_API_KEY" required:"true"`
	IMEIAPIToken  string `envconfig:"IMEI_API_TOKEN" required:"true"`

	// Provider endpoints, overridable for testing
	WeatherURL string `envconfig:"WEATHER_URL" default:"https://api.openweathermap.org/data/2.5/weather"`
	QuoteURL   string `envconfig:"QUOTE_URL" default:"https://api.forismatic.com/api/1.0/"`
	CatURL     string `envconfig:"CAT_URL" default:"https://api.thecatapi.com/v1/images/search"`
	IMEIURL    string `envconfig:"IMEI_URL" default:"https://api.imeicheck.net/v1/checks"`

	// How long the bot waits for a free-text reply to a prompt
	ReplyTimeout time.Duration `envconfig:"REPLY_TIMEOUT" default:"10s"`

	// Per-request timeout for outbound provider calls
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`

	// Path to messages.toml file
	MessagesFile string `envconfig:"MESSAGES_FILE" default:"messages.toml"`

	// Reply texts loaded from messages.toml
	Messages Messages
}

// Messages holds every user-visible reply text. Format verbs are part of the
// contract of each field.
type Messages struct {
	Greeting      string `toml:"greeting"` // %s: first name
	AskCity       string `toml:"ask_city"`
	AskIMEI       string `toml:"ask_imei"`
	InvalidIMEI   string `toml:"invalid_imei"`
	ReplyTimeout  string `toml:"reply_timeout"`
	WeatherReport string `toml:"weather_report"` // %s: city, %.2f: celsius, %s: description, %v: wind m/s
	WeatherFailed string `toml:"weather_failed"`
	CatFailed     string `toml:"cat_failed"`
	IMEIReport    string `toml:"imei_report"` // %s x4: status, model, manufacturer, serial
	IMEIFailed    string `toml:"imei_failed"`
}

// MessagesFileConfig represents the structure of messages.toml.
type MessagesFileConfig struct {
	Messages Messages `toml:"messages"`
}

// DefaultMessages provides fallback reply texts if messages.toml is not found.
var DefaultMessages = Messages{
	Greeting:      "Hi, %s. Look at the cat I found for you",
	AskCity:       "Which city are you interested in?",
	AskIMEI:       "Send me the 15-digit IMEI you want to check",
	InvalidIMEI:   "That doesn't look like a valid IMEI. Try again",
	ReplyTimeout:  "I didn't hear back in time, so I dropped that question. Pick something from the menu when you're ready",
	WeatherReport: "Weather in %s:\nTemperature: %.2f°C\nDescription: %s\nWind speed: %v m/s",
	WeatherFailed: "I couldn't get the weather for that city",
	CatFailed:     "I couldn't fetch a cat picture",
	IMEIReport:    "Status: %s\nModel: %s\nManufacturer: %s\nSerial: %s",
	IMEIFailed:    "The IMEI check service is unavailable right now. Try again later",
}

// LoadEnv loads the configuration from environment variables.
func (c Config) LoadEnv() (Config, error) {
	cfg := c

	if err := envconfig.Process("", &cfg); err != nil {
		return c, err
	}

	return cfg, nil
}

// LoadFile loads reply texts from the messages.toml file.
func (c *Config) LoadFile() error {
	// Try to find the messages file
	messagesPath := c.MessagesFile
	if !filepath.IsAbs(messagesPath) {
		// Try current directory first
		if _, err := os.Stat(messagesPath); os.IsNotExist(err) {
			// Try executable directory
			execPath, err := os.Executable()
			if err == nil {
				execDir := filepath.Dir(execPath)
				messagesPath = filepath.Join(execDir, c.MessagesFile)
			}
		}
	}

	// Check if file exists
	if _, err := os.Stat(messagesPath); os.IsNotExist(err) {
		// Use defaults if no messages file
		c.Messages = DefaultMessages
		return nil
	}

	// Load TOML file
	var fileConfig MessagesFileConfig
	if _, err := toml.DecodeFile(messagesPath, &fileConfig); err != nil {
		return err
	}

	c.Messages = fileConfig.Messages
	c.Messages.fillDefaults()

	return nil
}

// fillDefaults replaces empty reply texts with the compiled-in defaults so a
// partial messages.toml only overrides what it names.
func (m *Messages) fillDefaults() {
	if m.Greeting == "" {
		m.Greeting = DefaultMessages.Greeting
	}
	if m.AskCity == "" {
		m.AskCity = DefaultMessages.AskCity
	}
	if m.AskIMEI == "" {
		m.AskIMEI = DefaultMessages.AskIMEI
	}
	if m.InvalidIMEI == "" {
		m.InvalidIMEI = DefaultMessages.InvalidIMEI
	}
	if m.ReplyTimeout == "" {
		m.ReplyTimeout = DefaultMessages.ReplyTimeout
	}
	if m.WeatherReport == "" {
		m.WeatherReport = DefaultMessages.WeatherReport
	}
	if m.WeatherFailed == "" {
		m.WeatherFailed = DefaultMessages.WeatherFailed
	}
	if m.CatFailed == "" {
		m.CatFailed = DefaultMessages.CatFailed
	}
	if m.IMEIReport == "" {
		m.IMEIReport = DefaultMessages.IMEIReport
	}
	if m.IMEIFailed == "" {
		m.IMEIFailed = DefaultMessages.IMEIFailed
	}
}

func NewConfig() (*Config, error) {
	// Pick up a local .env if present, same as the original deployment did
	_ = godotenv.Load()

	var cfg Config
	loadedCfg, err := cfg.LoadEnv()
	if err != nil {
		return nil, err
	}

	// Load reply texts from messages.toml
	if err := loadedCfg.LoadFile(); err != nil {
		return nil, err
	}

	return &loadedCfg, nil
}

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(
			NewConfig,
		),
	)
}
