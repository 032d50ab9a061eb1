// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	token := cfg.Telegram.Token
//	sheetID := cfg.Sheets.SpreadsheetID
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Telegram      TelegramConfig      `yaml:"telegram"`
	Sheets        SheetsConfig        `yaml:"sheets"`
	Jobs          JobsConfig          `yaml:"jobs"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds webhook server settings.
type ServerConfig struct {
	Port     int    `yaml:"port"`
	Timezone string `yaml:"timezone"`
}

// TelegramConfig holds the bot token and the chats the bot talks to.
type TelegramConfig struct {
	Token              string `yaml:"token"`
	AdminChatID        string `yaml:"admin_chat_id"`
	SalesGroupID       string `yaml:"sales_group_id"`
	SalesThreadID      int    `yaml:"sales_thread_id"`
	AgentGroupID       string `yaml:"agent_group_id"`
	TransferGroupID    string `yaml:"transfer_group_id"`
	AgentNotifGroupID  string `yaml:"agent_notif_group_id"`
	AgentNotifThreadID int    `yaml:"agent_notif_thread_id"`
	ReminderThreadIDs  []int  `yaml:"reminder_thread_ids"`
}

// SheetsConfig holds the spreadsheet backing the order ledgers.
type SheetsConfig struct {
	SpreadsheetID   string `yaml:"spreadsheet_id"`
	CredentialsFile string `yaml:"credentials_file"`
	ClosingSheet    string `yaml:"closing_sheet"`
	ClosingMPSheet  string `yaml:"closing_mp_sheet"`
	AgentSheet      string `yaml:"agent_sheet"`
}

// JobsConfig holds the cron expressions for the scheduled jobs.
type JobsConfig struct {
	SalesReport     string `yaml:"sales_report"`
	AgentList       string `yaml:"agent_list"`
	ClosingReminder string `yaml:"closing_reminder"`
	MessageIDStore  string `yaml:"message_id_store"`
}

// ObservabilityConfig holds observability settings.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${TELEGRAM_TOKEN})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only.
func LoadFromEnv() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:     getEnvInt("PORT", 5000),
			Timezone: getEnv("BOT_TIMEZONE", "Asia/Jakarta"),
		},
		Telegram: TelegramConfig{
			Token:              os.Getenv("TELEGRAM_TOKEN"),
			AdminChatID:        os.Getenv("ADMIN_ID"),
			SalesGroupID:       os.Getenv("SALES_GRP_ID"),
			SalesThreadID:      getEnvInt("SALES_THREAD_ID", 0),
			AgentGroupID:       os.Getenv("AGENT_GROUP_ID"),
			TransferGroupID:    os.Getenv("OLD_TRANSFER_GROUP_ID"),
			AgentNotifGroupID:  os.Getenv("AGENT_NOTIF_GROUP_ID"),
			AgentNotifThreadID: getEnvInt("AGENT_NOTIF_THREAD_ID", 0),
			ReminderThreadIDs:  getEnvIntList("REMINDER_THREAD_IDS"),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:   os.Getenv("SS_ID"),
			CredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		},
	}
	cfg.Observability.Logging = LoggingConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "text"),
	}
	cfg.applyDefaults()
	return cfg
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables.
func LoadOrEnv() *Config {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath tries to load from specified path, falls back to environment variables.
func LoadOrEnvWithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

// applyDefaults fills in the settings that are almost never overridden.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.Timezone == "" {
		c.Server.Timezone = "Asia/Jakarta"
	}
	if c.Sheets.ClosingSheet == "" {
		c.Sheets.ClosingSheet = "Closing"
	}
	if c.Sheets.ClosingMPSheet == "" {
		c.Sheets.ClosingMPSheet = "Closing MP"
	}
	if c.Sheets.AgentSheet == "" {
		c.Sheets.AgentSheet = "AGEN"
	}
	if c.Jobs.SalesReport == "" {
		c.Jobs.SalesReport = "0 21 * * *"
	}
	if c.Jobs.AgentList == "" {
		c.Jobs.AgentList = "0 8 * * *"
	}
	if c.Jobs.ClosingReminder == "" {
		c.Jobs.ClosingReminder = "0 11,14,18 * * *"
	}
	if c.Jobs.MessageIDStore == "" {
		c.Jobs.MessageIDStore = "message_id_store.json"
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
}

// getEnv retrieves an environment variable with a fallback default.
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default.
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}

// getEnvIntList parses a comma-separated list of integers.
func getEnvIntList(key string) []int {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	var out []int
	for _, part := range strings.Split(val, ",") {
		var n int
		if _, err := fmt.Sscanf(strings.TrimSpace(part), "%d", &n); err == nil {
			out = append(out, n)
		}
	}
	return out
}
