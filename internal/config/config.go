package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Learning LearningConfig `mapstructure:"learning"`
	Media    MediaConfig    `mapstructure:"media"`
	Exports  ExportsConfig  `mapstructure:"exports"`
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=sqlite mysql"`
	Path            string            `mapstructure:"path" validate:"required_if=Driver sqlite"`
	Host            string            `mapstructure:"host" validate:"required_if=Driver mysql"`
	Port            int               `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Database        string            `mapstructure:"database" validate:"required_if=Driver mysql"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds" validate:"min=0"`
	ConnectAttempts uint              `mapstructure:"connect_attempts" validate:"min=1"`
}

type LearningConfig struct {
	DefaultLimit         int    `mapstructure:"default_limit" validate:"min=1"`
	DefaultMode          string `mapstructure:"default_mode" validate:"oneof=due random"`
	MasteredIntervalDays int    `mapstructure:"mastered_interval_days" validate:"min=1"`
}

type MediaConfig struct {
	Directory string `mapstructure:"directory" validate:"required"`
}

type ExportsConfig struct {
	Directory        string `mapstructure:"directory" validate:"required"`
	MarkdownTemplate string `mapstructure:"markdown_template" validate:"omitempty,file"`
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
		v.AddConfigPath("$HOME/.config/flashlearn")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", filepath.Join("data", "learning_app.db"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "flashlearn")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.connect_attempts", 3)
	v.SetDefault("learning.default_limit", 20)
	v.SetDefault("learning.default_mode", "due")
	v.SetDefault("learning.mastered_interval_days", 21)
	v.SetDefault("media.directory", filepath.Join("data", "media"))
	v.SetDefault("exports.directory", "exports")
	// Template is optional - if not specified, will use embedded fallback template
	v.SetDefault("exports.markdown_template", "")

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "FLASHLEARN_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind FLASHLEARN_DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// Load reads the configuration from configFile, or from the default locations when empty
func Load(configFile string) (*Config, error) {
	loader, err := NewConfigLoader(configFile)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}
