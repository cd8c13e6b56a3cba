// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	PublicBaseURL           string `yaml:"public_base_url" env:"PUBLIC_BASE_URL" env-default:"http://localhost:8080"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	PaymentProvider         `yaml:"payment_provider"`
	CompletionService       `yaml:"completion_service"`
	DemoUser                `yaml:"demo_user"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// PaymentProvider настройки клиента платёжного провайдера
type PaymentProvider struct {
	ProviderSecretKey string `yaml:"secret_key" env:"PAYMENT_PROVIDER_SECRET_KEY"`
	ProviderAPIURL    string `yaml:"api_url" env-default:"https://api.stripe.com/v1"`
	PriceID           string `yaml:"price_id" env:"PAYMENT_PROVIDER_PRICE_ID"`
}

// CompletionService настройки клиента сервиса генерации текста
type CompletionService struct {
	CompletionAPIKey string `yaml:"api_key" env:"COMPLETION_API_KEY"`
	CompletionAPIURL string `yaml:"api_url" env-default:"https://api.openai.com/v1"`
	TipsModel        string `yaml:"tips_model" env-default:"gpt-3.5-turbo"`
	BreakdownModel   string `yaml:"breakdown_model" env-default:"gpt-3.5-turbo-1106"`
}

// DemoUser учетные данные демо-входа
type DemoUser struct {
	DemoEmail    string `yaml:"email" env-default:"test@example.com"`
	DemoPassword string `yaml:"password" env:"DEMO_PASSWORD" env-default:"demo123"`
}

// MustLoad функция для загрузки конфига, путь к файлу берется из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
