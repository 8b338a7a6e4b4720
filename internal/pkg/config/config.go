package config

import (
	"errors"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	App      AppConfig      `mapstructure:"app"`
	OSS      OSSConfig      `mapstructure:"oss"`
	Push     PushConfig     `mapstructure:"push"`
	Toss     TossConfig     `mapstructure:"toss"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Port     string `mapstructure:"port"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Expire int64  `mapstructure:"expire"` // hours
}

type AppConfig struct {
	Env          string `mapstructure:"env"`
	Debug        bool   `mapstructure:"debug"`
	TestMailCode string `mapstructure:"test_mail_code"`
}

type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	BucketName      string `mapstructure:"bucket_name"`
}

type PushConfig struct {
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	AppKey          int64  `mapstructure:"app_key"`
	RegionID        string `mapstructure:"region_id"` // e.g., "cn-hangzhou"
}

// TossConfig configures the payment gateway's server-to-server
// confirmation endpoint. The secret key never reaches the browser.
type TossConfig struct {
	SecretKey         string `mapstructure:"secret_key"`
	ConfirmURL        string `mapstructure:"confirm_url"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds"`
	PreparationTTLMin int    `mapstructure:"preparation_ttl_min"`  // minutes before a prepared row goes stale
	SweepIntervalMin  int    `mapstructure:"sweep_interval_min"`   // expiry sweeper period
}

var GlobalConfig Config

// Validate rejects configurations that cannot run safely.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" || c.JWT.Secret == "your_super_secret_key" {
		return errors.New("please set a secure JWT secret in production")
	}
	if len(c.JWT.Secret) < 32 {
		return errors.New("JWT secret should be at least 32 characters")
	}

	if c.Database.Host == "" || c.Database.User == "" || c.Database.DBName == "" {
		return errors.New("database configuration is incomplete")
	}

	if c.Redis.Addr == "" {
		return errors.New("redis address is required")
	}

	if c.Toss.SecretKey == "" {
		return errors.New("toss secret key is required")
	}

	return nil
}

// LoadConfig reads configs/config[.env].yaml, applies env overrides and
// validates the result.
func LoadConfig() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	configName := "config"
	if env != "" && env != "dev" {
		configName = "config." + env
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("jwt.expire", 24)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("app.env", "dev")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("toss.confirm_url", "https://api.tosspayments.com/v1/payments/confirm")
	viper.SetDefault("toss.timeout_seconds", 30)
	viper.SetDefault("toss.preparation_ttl_min", 30)
	viper.SetDefault("toss.sweep_interval_min", 5)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Config file not found, using defaults or env vars: %v", err)
	}

	viper.AutomaticEnv()

	if err := viper.Unmarshal(&GlobalConfig); err != nil {
		log.Fatalf("Unable to decode into struct: %v", err)
	}

	// Manual overrides for the values most commonly injected in containers.
	if host := os.Getenv("DB_HOST"); host != "" {
		GlobalConfig.Database.Host = host
	}
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		GlobalConfig.Redis.Addr = redisAddr
	}
	if jwtSecret := os.Getenv("JWT_SECRET"); jwtSecret != "" {
		GlobalConfig.JWT.Secret = jwtSecret
	}
	if tossKey := os.Getenv("TOSS_SECRET_KEY"); tossKey != "" {
		GlobalConfig.Toss.SecretKey = tossKey
	}

	if err := GlobalConfig.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	log.Printf("Configuration loaded and validated successfully. Environment: %s", GlobalConfig.App.Env)
}
