package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel     string      `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort     string      `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis        Redis       `yaml:"redis"`
	SQL          SQL         `yaml:"sql"`
	CloudSync    CloudSync   `yaml:"cloud-sync"`
	GoogleOAuth  GoogleOAuth `yaml:"google-oauth"`
	JWTSecretKey string      `yaml:"jwt-secret-key" env:"JWT_SECRET_KEY"`
	Session      Session     `yaml:"session"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// SQL is the relational store holding users and the cloud copy of every card.
type SQL struct {
	Driver string `yaml:"driver" env:"SQL_DRIVER" env-default:"sqlite3"`
	DSN    string `yaml:"dsn" env:"DATABASE_URL" env-default:"resobingo.db"`
}

type CloudSync struct {
	Enabled   bool          `yaml:"enabled" env:"CLOUD_SYNC_ENABLED" env-default:"true"`
	QueueSize int           `yaml:"queue-size" env:"CLOUD_SYNC_QUEUE_SIZE" env-default:"64"`
	Timeout   time.Duration `yaml:"timeout" env:"CLOUD_SYNC_TIMEOUT" env-default:"10s"`
}

type GoogleOAuth struct {
	ClientID     string   `yaml:"client-id" env:"GOOGLE_CLIENT_ID" env-default:""`
	ClientSecret string   `yaml:"client-secret" env:"GOOGLE_CLIENT_SECRET" env-default:""`
	RedirectURL  string   `yaml:"redirect-url" env:"GOOGLE_REDIRECT_URL" env-default:""`
	Scopes       []string `yaml:"scopes" env-default:"https://www.googleapis.com/auth/userinfo.email"`
}

type Session struct {
	Secret       string `yaml:"secret" env:"SESSION_SECRET"`
	SecureCookie bool   `yaml:"secure-cookie" env:"SESSION_SECURE_COOKIE" env-default:"false"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
