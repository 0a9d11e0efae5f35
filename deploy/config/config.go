package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPServer HTTPServer
	Fiat       Fiat
	Crypto     Crypto
	Upstream   Upstream
	Cache      Cache
	Redis      Redis
	Storage    Storage
	Session    Session
}

type HTTPServer struct {
	Port        string        `env:"HTTP_PORT" env-default:"8082"`
	Timeout     time.Duration `env:"HTTP_TIMEOUT" env-default:"2m"`
	IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type Fiat struct {
	URL string `env:"FIAT_URL" env-default:"https://api.frankfurter.dev/v1"`
}

type Crypto struct {
	URL string `env:"CRYPTO_URL" env-default:"https://api.coingecko.com/api/v3"`
}

type Upstream struct {
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT" env-default:"5s"`
}

type Cache struct {
	Driver     string        `env:"CACHE_DRIVER" env-default:"memory"`
	Prefix     string        `env:"CACHE_PREFIX" env-default:"converter:"`
	CatalogTTL time.Duration `env:"CACHE_CATALOG_TTL" env-default:"1h"`
	RatesTTL   time.Duration `env:"CACHE_RATES_TTL" env-default:"5m"`
}

type Redis struct {
	Host     string `env:"REDIS_HOST" env-default:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

type Storage struct {
	Driver   string        `env:"BD_DRIVER" env-default:"memory"`
	Timeout  time.Duration `env:"BD_TIMEOUT" env-default:"10s"`
	Host     string        `env:"BD_HOST" env-default:"localhost"`
	Port     int           `env:"BD_PORT" env-default:"5432"`
	User     string        `env:"BD_USER" env-default:"postgres"`
	Password string        `env:"BD_PASSWORD"`
	DBName   string        `env:"BD_DBNAME" env-default:"converter"`
	SSLMode  string        `env:"BD_SSL_MODE" env-default:"disable"`
	Schema   string        `env:"BD_SCHEMA" env-default:"public"`
}

type Session struct {
	CookieName    string  `env:"SESSION_COOKIE" env-default:"converter_session"`
	DefaultSource string  `env:"SESSION_DEFAULT_SOURCE" env-default:"USD"`
	DefaultAmount float64 `env:"SESSION_DEFAULT_AMOUNT" env-default:"100"`
}

func NewConfig() *Config {
	cfg := &Config{}

	_ = godotenv.Load(".env")

	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		log.Fatal("Error reading env")
	}

	return cfg
}
