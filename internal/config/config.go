package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Location      string              `mapstructure:"location" validate:"location"`
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Seeds         SeedsConfig         `mapstructure:"seeds"`
	Achievements  AchievementsConfig  `mapstructure:"achievements"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Reports       ReportsConfig       `mapstructure:"reports"`
	Timer         TimerConfig         `mapstructure:"timer"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

// StorageConfig selects the primary store and its last-known-good cache.
type StorageConfig struct {
	Driver         string `mapstructure:"driver" validate:"oneof=mysql yaml"`
	CacheDirectory string `mapstructure:"cache_directory" validate:"required"`
	RetryAttempts  uint   `mapstructure:"retry_attempts" validate:"min=1"`
	RetryDelayMs   int    `mapstructure:"retry_delay_ms" validate:"min=0"`
}

type SeedsConfig struct {
	CurriculumFile   string `mapstructure:"curriculum_file" validate:"omitempty,file"`
	AchievementsFile string `mapstructure:"achievements_file" validate:"omitempty,file"`
}

type AchievementsConfig struct {
	PoolFloor int `mapstructure:"pool_floor" validate:"min=1"`
}

type NotificationsConfig struct {
	Console bool          `mapstructure:"console"`
	Webhook WebhookConfig `mapstructure:"webhook"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

type WebhookConfig struct {
	URL            string `mapstructure:"url" validate:"omitempty,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

type ReportsConfig struct {
	OutputDirectory string `mapstructure:"output_directory"`
}

type TimerConfig struct {
	DefaultMinutes int `mapstructure:"default_minutes" validate:"min=1"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/studylog")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("location", "Local")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "studylog")
	v.SetDefault("database.username", "user")
	v.SetDefault("storage.driver", "yaml")
	v.SetDefault("storage.cache_directory", filepath.Join("data", "cache"))
	v.SetDefault("storage.retry_attempts", 3)
	v.SetDefault("storage.retry_delay_ms", 200)
	// Seed files are optional - if not specified, the embedded seeds are used
	v.SetDefault("seeds.curriculum_file", "")
	v.SetDefault("seeds.achievements_file", "")
	v.SetDefault("achievements.pool_floor", 5)
	v.SetDefault("notifications.console", true)
	v.SetDefault("notifications.webhook.timeout_seconds", 5)
	v.SetDefault("notifications.redis.channel", "studylog:events")
	v.SetDefault("reports.output_directory", filepath.Join("outputs", "reports"))
	v.SetDefault("timer.default_minutes", 25)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})

	// Secrets are bound to environment variables only
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("notifications.redis.password", "REDIS_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind REDIS_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("notifications.webhook.url", "STUDYLOG_WEBHOOK_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind STUDYLOG_WEBHOOK_URL environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// TimeLocation resolves the configured location used to decide what "today" is.
func (c Config) TimeLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", c.Location, err)
	}
	return loc, nil
}
