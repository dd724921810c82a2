package imageredux

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the startup defaults for the conversion controls plus logging
// settings. Nothing here is written back; the app keeps no state between runs.
type Config struct {
	// Conversion defaults, editable in the UI afterwards
	Quality      int    `mapstructure:"quality"`      // JPEG quality, 1..100
	SizePercent  int    `mapstructure:"size_percent"` // reduction size, 1..100
	OutputFolder string `mapstructure:"output_folder"`

	// Window geometry
	WindowWidth  int `mapstructure:"window_width"`
	WindowHeight int `mapstructure:"window_height"`

	// Logging
	LogLevel string `mapstructure:"log_level"`
	LogJSON  bool   `mapstructure:"log_json"`
}

// Load reads configuration from an optional YAML file and IMAGEREDUX_*
// environment variables on top of built-in defaults.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			// Config file is optional
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("IMAGEREDUX")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("quality", 75)
	v.SetDefault("size_percent", 50)
	v.SetDefault("output_folder", "reduced")

	v.SetDefault("window_width", 540)
	v.SetDefault("window_height", 640)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)
}

func (cfg *Config) Validate() error {
	if cfg.Quality < 1 || cfg.Quality > 100 {
		return fmt.Errorf("quality must be in [1,100], got %d", cfg.Quality)
	}
	if cfg.SizePercent < 1 || cfg.SizePercent > 100 {
		return fmt.Errorf("size_percent must be in [1,100], got %d", cfg.SizePercent)
	}
	if cfg.OutputFolder == "" {
		cfg.OutputFolder = "reduced"
	}
	return nil
}

// SizeFactor converts the percentage setting into the (0,1] multiplier the
// reducer works with.
func (cfg *Config) SizeFactor() float64 {
	return float64(cfg.SizePercent) / 100.0
}
