package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// APIConfig selects the backend origin. The base URL is the only
// externally-configurable behavior of the session core itself.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	// Backend is "file" or "redis".
	Backend string
	// Dir holds the file-backed session entries.
	Dir string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RefreshConfig struct {
	Enabled bool
	// Spec is a cron expression with seconds.
	Spec string
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	API              APIConfig
	Session          SessionConfig
	Redis            RedisConfig
	Refresh          RefreshConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("CONSOLE")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 3000)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("api.baseurl", "http://localhost:8000/api")
	v.SetDefault("api.timeout", "10s")

	v.SetDefault("session.backend", "file")
	v.SetDefault("session.dir", ".console-session")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("refresh.enabled", false)
	v.SetDefault("refresh.spec", "0 */5 * * * *") // every five minutes
}
