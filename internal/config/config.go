package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path       string `mapstructure:"path"`
	LogMode    bool   `mapstructure:"log_mode"`
	MaxRetries int    `mapstructure:"max_retries"`
}

type RetentionConfig struct {
	MaxRetained int `mapstructure:"max_retained"`
}

// NotifierConfig selects the live-update transport.
// Driver is one of "websocket", "redis", "none".
type NotifierConfig struct {
	Driver        string `mapstructure:"driver"`
	RedisHost     string `mapstructure:"redis_host"`
	RedisPort     int    `mapstructure:"redis_port"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	RedisChannel  string `mapstructure:"redis_channel"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Retention RetentionConfig `mapstructure:"retention"`
	Notifier  NotifierConfig  `mapstructure:"notifier"`
	Log       LogConfig       `mapstructure:"log"`
}

// Load loads configuration from given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in current working directory.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	// environment overrides, e.g. ARD_SERVER_PORT=9000
	v.SetEnvPrefix("ARD") // appbot review dash
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&c)
	return &c, nil
}

func applyDefaults(c *Config) {
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Database.MaxRetries == 0 {
		c.Database.MaxRetries = 5
	}
	if c.Retention.MaxRetained == 0 {
		c.Retention.MaxRetained = 100
	}
	if c.Notifier.Driver == "" {
		c.Notifier.Driver = "websocket"
	}
	if c.Notifier.RedisChannel == "" {
		c.Notifier.RedisChannel = "reviews"
	}
}
