// Package config loads settings from .env, config.yaml and SHARE_* variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Store  StoreConfig  `mapstructure:"store"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	Kafka  KafkaConfig  `mapstructure:"kafka"`
	SMTP   SMTPConfig   `mapstructure:"smtp"`
	Log    LogConfig    `mapstructure:"log"`
	Jobs   JobsConfig   `mapstructure:"jobs"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// StoreConfig picks the slot backend: sqlite, mysql, redis or memory.
type StoreConfig struct {
	Driver     string      `mapstructure:"driver"`
	SQLitePath string      `mapstructure:"sqlite_path"`
	MySQLDSN   string      `mapstructure:"mysql_dsn"`
	Redis      RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	AccessSecret  string `mapstructure:"access_secret"`
	RefreshSecret string `mapstructure:"refresh_secret"`
}

// KafkaConfig is optional; without brokers moderation events are only logged.
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// SMTPConfig is optional; without a host no review notices are mailed.
type SMTPConfig struct {
	Host      string   `mapstructure:"host"`
	Port      int      `mapstructure:"port"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	From      string   `mapstructure:"from"`
	Reviewers []string `mapstructure:"reviewers"`
}

type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

type JobsConfig struct {
	BanSweep       string `mapstructure:"ban_sweep"`
	OutboxInterval string `mapstructure:"outbox_interval"`
	OutboxBatch    int    `mapstructure:"outbox_batch"`
	OutboxMaxRetry int    `mapstructure:"outbox_max_retry"`
	OutboxKeep     int    `mapstructure:"outbox_keep"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", "./data/share.db")
	v.SetDefault("store.redis.addr", "127.0.0.1:6379")
	v.SetDefault("jwt.access_secret", "")
	v.SetDefault("jwt.refresh_secret", "")
	v.SetDefault("kafka.topic", "share.moderation")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("log.debug", false)
	v.SetDefault("jobs.ban_sweep", "@every 1h")
	v.SetDefault("jobs.outbox_interval", "1s")
	v.SetDefault("jobs.outbox_batch", 200)
	v.SetDefault("jobs.outbox_max_retry", 5)
	v.SetDefault("jobs.outbox_keep", 1000)
}

// Load reads configuration. path may name a config file; when empty,
// config.yaml is looked up in the working directory and ./config. A missing
// file is not an error, environment variables and defaults still apply.
func Load(path string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("SHARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "sqlite", "memory", "redis":
	case "mysql":
		if c.Store.MySQLDSN == "" {
			return errors.New("store.mysql_dsn required for mysql driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	// memory 驱动只用于本地试用，允许使用内置的开发密钥
	if c.Store.Driver != "memory" {
		if weakSecret(c.JWT.AccessSecret) {
			return errors.New("jwt.access_secret must be set to a private value")
		}
		if weakSecret(c.JWT.RefreshSecret) {
			return errors.New("jwt.refresh_secret must be set to a private value")
		}
	}
	return nil
}

// weakSecret reports empty secrets and the publicly known placeholders.
func weakSecret(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "change-me", "change-me-too", "secret-key", "refresh-key":
		return true
	}
	return false
}
