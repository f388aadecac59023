package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Redis struct {
		Addr     string
		Password string
		DB       int
		TTL      time.Duration
	} `mapstructure:"redis"`

	TWC struct {
		BaseURL  string        `mapstructure:"base_url"`
		APIKey   string        `mapstructure:"api_key"`
		Timeout  time.Duration `mapstructure:"timeout"`
		POPrefix string        `mapstructure:"po_prefix"`
	} `mapstructure:"twc"`

	Pricing struct {
		InventoryMode string  `mapstructure:"inventory_mode"`
		MarkupPercent float64 `mapstructure:"markup_percent"`
	} `mapstructure:"pricing"`
}

// Load читает YAML и переопределения из окружения: APP_POSTGRES_DSN,
// APP_TWC_API_KEY и т.д. .env рядом с бинарником подхватывается, если есть.
func Load(path string) (Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", "prod")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("redis.ttl", 5*time.Minute)
	v.SetDefault("twc.timeout", 30*time.Second)
	v.SetDefault("pricing.inventory_mode", "selling")

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	if err := c.validate(); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.Pricing.InventoryMode {
	case "selling", "cost", "cost_with_markup":
	default:
		return fmt.Errorf("pricing.inventory_mode: unknown value %q", c.Pricing.InventoryMode)
	}
	if c.Pricing.MarkupPercent < 0 {
		return errors.New("pricing.markup_percent: must not be negative")
	}
	if c.Redis.Addr != "" && c.Redis.TTL <= 0 {
		return errors.New("redis.ttl: must be positive when redis.addr is set")
	}
	if c.TWC.Timeout <= 0 {
		return errors.New("twc.timeout: must be positive")
	}
	return nil
}
