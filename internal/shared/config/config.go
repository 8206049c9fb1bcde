package config

import (
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application, divided into
// partial configurations per concern.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

type ServerConfig struct {
	Port string `mapstructure:"port" default:"3000"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host" default:"localhost"`
	Port     string `mapstructure:"port" default:"5432"`
	User     string `mapstructure:"user" default:"postgres"`
	Password string `mapstructure:"password" default:""`
	Name     string `mapstructure:"name" default:"school_admin"`
	SSLMode  string `mapstructure:"sslmode" default:"disable"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr" default:"localhost:6379"`
}

type KafkaConfig struct {
	Broker string `mapstructure:"broker" default:""`
}

type StorageConfig struct {
	Endpoint       string `mapstructure:"endpoint" default:""`
	AccessKey      string `mapstructure:"access_key" default:""`
	SecretKey      string `mapstructure:"secret_key" default:""`
	Bucket         string `mapstructure:"bucket" default:"school-admin-documents"`
	UseSSL         bool   `mapstructure:"use_ssl" default:"false"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" default:"30"`
}

// Load reads configuration from environment variables, with an optional
// .env file overlay. Nested keys map to env vars with underscores
// (e.g. DATABASE_HOST -> database.host).
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	bindDefaults(v, Config{}, "")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// bindDefaults walks the struct tags and registers every key with its
// default value so AutomaticEnv picks the key up even when unset.
func bindDefaults(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindDefaults(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
	}
}
