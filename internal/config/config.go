// Package config loads server settings from the environment. Every key is
// read under the UGG_ prefix (UGG_PORT, UGG_LOG_LEVEL, ...), with .env files
// handled by godotenv in main.
package config

import "github.com/spf13/viper"

// Config carries everything the server is tunable on. Game-start overrides
// outside the min/max bounds are clamped at the boundary rather than
// rejected; the core only requires positive values.
type Config struct {
	Port     int
	LogLevel string

	DefaultTimerSeconds int
	MinTimerSeconds     int
	MaxTimerSeconds     int

	DefaultTotalRounds int
	MinTotalRounds     int
	MaxTotalRounds     int
}

// Load reads the environment with defaults applied.
func Load() Config {
	v := viper.New()
	v.SetEnvPrefix("UGG")
	v.AutomaticEnv()

	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("timer_seconds", 60)
	v.SetDefault("min_timer_seconds", 30)
	v.SetDefault("max_timer_seconds", 120)
	v.SetDefault("total_rounds", 10)
	v.SetDefault("min_total_rounds", 4)
	v.SetDefault("max_total_rounds", 20)

	return Config{
		Port:                v.GetInt("port"),
		LogLevel:            v.GetString("log_level"),
		DefaultTimerSeconds: v.GetInt("timer_seconds"),
		MinTimerSeconds:     v.GetInt("min_timer_seconds"),
		MaxTimerSeconds:     v.GetInt("max_timer_seconds"),
		DefaultTotalRounds:  v.GetInt("total_rounds"),
		MinTotalRounds:      v.GetInt("min_total_rounds"),
		MaxTotalRounds:      v.GetInt("max_total_rounds"),
	}
}

// ClampTimerSeconds maps a host-supplied turn duration into the allowed
// range; zero or negative means "use the default".
func (c Config) ClampTimerSeconds(v int) int {
	if v <= 0 {
		return c.DefaultTimerSeconds
	}
	return clamp(v, c.MinTimerSeconds, c.MaxTimerSeconds)
}

// ClampTotalRounds maps a host-supplied round target into the allowed range;
// zero or negative means "use the default".
func (c Config) ClampTotalRounds(v int) int {
	if v <= 0 {
		return c.DefaultTotalRounds
	}
	return clamp(v, c.MinTotalRounds, c.MaxTotalRounds)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
