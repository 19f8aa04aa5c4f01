package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Port     int    `mapstructure:"port" validate:"gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	StoreURI      string `mapstructure:"store_uri" validate:"required,uri"`
	StoreDatabase string `mapstructure:"store_database" validate:"required"`

	CacheDriver            string `mapstructure:"cache_driver" validate:"required,oneof=redis memory"`
	RedisHost              string `mapstructure:"redis_host" validate:"required_if=CacheDriver redis"`
	RedisPort              int    `mapstructure:"redis_port" validate:"gt=0,lt=65536"`
	RedisDB                int    `mapstructure:"redis_db" validate:"gte=0,lte=15"`
	RedisPassword          string `mapstructure:"redis_password"`
	CacheKeyPrefix         string `mapstructure:"cache_key_prefix"`
	CacheFailOpen          bool   `mapstructure:"cache_fail_open"`
	CacheInvalidateOnWrite bool   `mapstructure:"cache_invalidate_on_write"`
	MemoryCacheCapacity    int    `mapstructure:"memory_cache_capacity" validate:"gt=0"`
}

func (c Config) HTTPAddr() string {
	return ":" + strconv.Itoa(c.Port)
}

func (c Config) RedisAddr() string {
	return net.JoinHostPort(c.RedisHost, strconv.Itoa(c.RedisPort))
}

var defaults = map[string]interface{}{
	"port":                      8080,
	"log_level":                 "info",
	"store_uri":                 "mongodb://localhost:27017",
	"store_database":            "tasks_db",
	"cache_driver":              "redis",
	"redis_host":                "localhost",
	"redis_port":                6379,
	"redis_db":                  0,
	"redis_password":            "",
	"cache_key_prefix":          "",
	"cache_fail_open":           true,
	"cache_invalidate_on_write": false,
	"memory_cache_capacity":     10000,
}

// Load читает переменные окружения и, если есть, файл .env в рабочей директории.
// Окружение важнее файла.
func Load() (Config, error) {
	return load(".env")
}

func load(envFile string) (Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	v.AutomaticEnv()
	// у URI хранилища несколько исторических имен
	if err := v.BindEnv("store_uri", "STORE_URI", "MONGO_URI", "DATABASE_URL"); err != nil {
		return Config{}, err
	}

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("read %s: %w", envFile, err)
			}
		}
		aliasStoreURI(v)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// BindEnv не действует на ключи из файла, поэтому старые имена URI
// из .env переносим в store_uri. Окружение по-прежнему важнее.
func aliasStoreURI(v *viper.Viper) {
	if v.InConfig("store_uri") {
		return
	}
	for _, key := range []string{"mongo_uri", "database_url"} {
		if v.InConfig(key) {
			v.SetDefault("store_uri", v.GetString(key))
			return
		}
	}
}
