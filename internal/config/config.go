package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bassista/go_pptcoach/internal/host"
	"github.com/bassista/go_pptcoach/internal/logger"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const envPrefix = "GO_PPTCOACH"

type Config struct {
	Server  ServerConfig
	Host    HostConfig
	Monitor MonitorConfig
	Journal JournalConfig
	Misc    MiscConfig
}

type ServerConfig struct {
	Port               int           `validate:"min=1,max=65535"`
	ReadTimeout        time.Duration `validate:"gt=0"`
	WriteTimeout       time.Duration `validate:"gt=0"`
	IdleTimeout        time.Duration `validate:"gt=0"`
	ShutDownTimeout    time.Duration `validate:"gt=0"`
	RequestTimeout     time.Duration `validate:"gt=0"`
	CORSAllowedOrigins string
}

type HostConfig struct {
	// Type selects the automation backend: "com" or "memory".
	Type string `validate:"oneof=com memory"`
	// AttachActive attaches to the active presentation at startup.
	AttachActive bool
}

type MonitorConfig struct {
	Enabled      bool
	PollInterval time.Duration `validate:"gt=0"`
	WatchFiles   bool
	Slide        bool
	Selection    bool
	Save         bool
}

type JournalConfig struct {
	FilePath        string        `validate:"required"`
	PersistInterval time.Duration `validate:"gt=0"`
	Capacity        int           `validate:"min=1"`
}

type MiscConfig struct {
	LogLevel string
	GinMode  string `validate:"omitempty,oneof=debug release test"`
}

// LoadConfig reads .env, config.yaml (from GO_PPTCOACH_CONFIG_PATH or
// ./config) and GO_PPTCOACH_* environment variables, in increasing order of
// precedence, and validates the result.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.WithComponent("config").Warnf("cannot read .env: %v", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getEnvOrDefault(envPrefix+"_CONFIG_PATH", "./config"))

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config file error: %w", err)
		}
		logger.WithComponent("config").Debug("no config file found, using defaults and env vars")
	}

	port, err := getEnvOrViperPort(v, "PORT", "server.port")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               port,
			ReadTimeout:        v.GetDuration("server.read_timeout"),
			WriteTimeout:       v.GetDuration("server.write_timeout"),
			IdleTimeout:        v.GetDuration("server.idle_timeout"),
			ShutDownTimeout:    v.GetDuration("server.shutdown_timeout"),
			RequestTimeout:     v.GetDuration("server.request_timeout"),
			CORSAllowedOrigins: v.GetString("server.cors_allowed_origins"),
		},
		Host: HostConfig{
			Type:         strings.ToLower(v.GetString("host.type")),
			AttachActive: v.GetBool("host.attach_active"),
		},
		Monitor: MonitorConfig{
			Enabled:      v.GetBool("monitor.enabled"),
			PollInterval: v.GetDuration("monitor.poll_interval"),
			WatchFiles:   v.GetBool("monitor.watch_files"),
			Slide:        v.GetBool("monitor.slide"),
			Selection:    v.GetBool("monitor.selection"),
			Save:         v.GetBool("monitor.save"),
		},
		Journal: JournalConfig{
			FilePath:        v.GetString("journal.file_path"),
			PersistInterval: v.GetDuration("journal.persist_interval"),
			Capacity:        v.GetInt("journal.capacity"),
		},
		Misc: MiscConfig{
			LogLevel: getEnvOrDefault("LOG_LEVEL", v.GetString("misc.log_level")),
			GinMode:  getEnvOrDefault("GIN_MODE", v.GetString("misc.gin_mode")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8084)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.request_timeout", 5*time.Second)
	v.SetDefault("server.cors_allowed_origins", "")

	v.SetDefault("host.type", host.HostTypeCOM)
	v.SetDefault("host.attach_active", true)

	v.SetDefault("monitor.enabled", true)
	v.SetDefault("monitor.poll_interval", 500*time.Millisecond)
	v.SetDefault("monitor.watch_files", true)
	v.SetDefault("monitor.slide", true)
	v.SetDefault("monitor.selection", true)
	v.SetDefault("monitor.save", true)

	v.SetDefault("journal.file_path", "./config/data/journal.json")
	v.SetDefault("journal.persist_interval", 5*time.Second)
	v.SetDefault("journal.capacity", 1000)

	v.SetDefault("misc.log_level", "info")
	v.SetDefault("misc.gin_mode", "release")
}

var validate = validator.New()

func (c *Config) validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Monitor.PollInterval < 10*time.Millisecond {
		return fmt.Errorf("monitor.poll_interval must be at least 10ms, got %v", c.Monitor.PollInterval)
	}
	if c.Misc.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.Misc.LogLevel); err != nil {
			return fmt.Errorf("misc.log_level: %w", err)
		}
	}
	return nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvOrViperPort prefers the plain env var (as set by most PaaS) over the
// viper key.
func getEnvOrViperPort(v *viper.Viper, envKey, viperKey string) (int, error) {
	if raw := os.Getenv(envKey); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("invalid %s %q: %w", envKey, raw, err)
		}
		return port, nil
	}
	return v.GetInt(viperKey), nil
}
