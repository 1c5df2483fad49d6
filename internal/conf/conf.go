package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Command tokens understood by the bot.
const (
	CommandStart           = "/start"
	CommandRegisterMe      = "/registerme"
	CommandNewDefect       = "/newdefect"
	CommandSetDefectStatus = "/setdefectstatus"
	CommandCancel          = "/cancel"
)

// Config represents application configuration
type Config struct {
	// Bot configuration
	Bot BotConfig

	// Store configuration
	Store StoreConfig

	// Task configuration
	Task TaskConfig

	// Messages configuration (loaded from YAML)
	Messages *Messages

	// Debug mode
	Debug bool
}

// BotConfig contains transport configuration
type BotConfig struct {
	Token              string
	PollTimeoutSeconds int
	ButtonsPerRow      int
}

// StoreConfig contains persistence configuration
type StoreConfig struct {
	DBPath string
}

// TaskConfig contains command task configuration
type TaskConfig struct {
	TTLSeconds int
}

// TTL returns the task time-to-live as a duration
func (c *TaskConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	// Database path
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		homeDir, _ := os.UserHomeDir()
		dbPath = filepath.Join(homeDir, ".digichlist", "digichlist.db")
	}

	// Task expiration
	taskTTL := 60
	if val := os.Getenv("TASK_TTL_SECONDS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			taskTTL = parsed
		}
	}

	// Keyboard row width
	buttonsPerRow := 3
	if val := os.Getenv("BUTTONS_PER_ROW"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			buttonsPerRow = parsed
		}
	}

	// Long poll timeout
	pollTimeout := 30
	if val := os.Getenv("POLL_TIMEOUT_SECONDS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			pollTimeout = parsed
		}
	}

	// Reply texts from YAML. A broken file is a startup failure, not
	// something to limp along without.
	messages, err := LoadMessages(os.Getenv("MESSAGES_CONFIG_PATH"))
	if err != nil {
		return nil, fmt.Errorf("load reply texts: %w", err)
	}

	return &Config{
		Bot: BotConfig{
			Token:              os.Getenv("BOT_TOKEN"),
			PollTimeoutSeconds: pollTimeout,
			ButtonsPerRow:      buttonsPerRow,
		},
		Store: StoreConfig{
			DBPath: dbPath,
		},
		Task: TaskConfig{
			TTLSeconds: taskTTL,
		},
		Messages: messages,
		Debug:    os.Getenv("DEBUG") == "true",
	}, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Bot.Token == "" {
		return &ConfigError{Field: "BOT_TOKEN", Message: "required"}
	}
	if c.Task.TTLSeconds <= 0 {
		return &ConfigError{Field: "TASK_TTL_SECONDS", Message: "must be positive"}
	}
	if c.Messages == nil {
		return &ConfigError{Field: "MESSAGES_CONFIG_PATH", Message: "reply texts missing"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
