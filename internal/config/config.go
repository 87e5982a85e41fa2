// Package config loads the engine's settings: target frame rate, LED
// count, master brightness, output destinations, and the OSC control
// channel's bind address — from environment variables (optionally
// seeded by a .env file) layered over built-in defaults via viper.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every recognized setting the engine reads at startup.
type Config struct {
	TargetFPS        int              `mapstructure:"target_fps"`
	LEDCount         int              `mapstructure:"led_count"`
	MasterBrightness int              `mapstructure:"master_brightness"`
	Destinations     []DestinationCfg `mapstructure:"led_destinations"`
	OSC              OSCConfig        `mapstructure:"osc"`
	Logger           LoggerConfig     `mapstructure:"logger"`
}

// DestinationCfg describes one configured output destination.
type DestinationCfg struct {
	Name     string `mapstructure:"name"`
	IP       string `mapstructure:"ip"`
	Port     int    `mapstructure:"port"`
	CopyMode bool   `mapstructure:"copy_mode"`
	StartLed int    `mapstructure:"start_led"`
	EndLed   int    `mapstructure:"end_led"`
	Enabled  bool   `mapstructure:"enabled"`
}

// OSCConfig holds the control channel's bind address and the output
// channel's protocol address.
type OSCConfig struct {
	InputHost     string `mapstructure:"input_host"`
	InputPort     int    `mapstructure:"input_port"`
	OutputAddress string `mapstructure:"output_address"`
}

// LoggerConfig controls structured logging output.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	FilePath   string `mapstructure:"file_path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// EnvPrefix is the prefix viper requires on every environment variable
// it reads (e.g. LEDSHOW_TARGET_FPS).
const EnvPrefix = "LEDSHOW"

// Load reads configuration from a .env file (if present), then layers
// LEDSHOW_-prefixed environment variables over built-in defaults.
func Load() (*Config, error) {
	// A missing .env file is expected in production, where settings
	// come from plain environment variables — godotenv.Load's error is
	// intentionally ignored here.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("target_fps", 60)
	v.SetDefault("led_count", 150)
	v.SetDefault("master_brightness", 255)
	v.SetDefault("led_destinations", []map[string]any{})

	v.SetDefault("osc.input_host", "0.0.0.0")
	v.SetDefault("osc.input_port", 9000)
	v.SetDefault("osc.output_address", "/light/serial")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.max_size_mb", 100)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age_days", 28)
}
