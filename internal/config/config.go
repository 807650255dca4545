package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm" validate:"required"`
	Task       TaskConfig       `mapstructure:"task" validate:"required"`
	Engagement EngagementConfig `mapstructure:"engagement" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// LLMConfig contains all settings for the content-generation collaborator.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string `mapstructure:"model_name" validate:"required"`

	// MaxRetries bounds retry attempts for transient generation failures.
	MaxRetries int `mapstructure:"max_retries" validate:"gte=0"`

	// RetryDelaySeconds is the base delay for exponential backoff.
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" validate:"gte=1"`
}

// TaskConfig contains settings for the background task runner.
type TaskConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0"`
	QueueSize   int `mapstructure:"queue_size" validate:"required,gt=0"`
}

// EngagementConfig contains settings for the daily engagement scheduler.
type EngagementConfig struct {
	// SettlingDelaySeconds is how long after startup the daily
	// notification check waits, to avoid contending with initial
	// request traffic. Advisory, not a correctness requirement.
	SettlingDelaySeconds int `mapstructure:"settling_delay_seconds" validate:"gte=0"`

	// CheckIntervalHours is how often the scheduler re-runs the daily
	// notification check. The per-day gate on the profile keeps repeat
	// runs within one calendar day quiet.
	CheckIntervalHours int `mapstructure:"check_interval_hours" validate:"required,gt=0"`
}
