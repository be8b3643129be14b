package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	JWT       JWTConfig       `mapstructure:"jwt" validate:"required"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Worker    WorkerConfig    `mapstructure:"worker"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string `mapstructure:"port" validate:"required,numeric"`
	ReadTimeout  int    `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout int    `mapstructure:"write_timeout" validate:"gte=0"`
}

// JWTConfig содержит настройки JWT
type JWTConfig struct {
	// Секрет должен быть достаточно длинным
	Secret        string `mapstructure:"secret" validate:"required,min=32"`
	ExpirationHrs int    `mapstructure:"expiration_hrs" validate:"gt=0"`
}

// CacheConfig содержит настройки кеша результатов
type CacheConfig struct {
	// ResultsTTLSec: время жизни кеша результатов викторины в секундах
	ResultsTTLSec int `mapstructure:"results_ttl_sec" validate:"gt=0"`
	// SweepIntervalSec: интервал фоновой уборки истекших записей; 0 отключает
	SweepIntervalSec int `mapstructure:"sweep_interval_sec" validate:"gte=0"`
}

// RateLimitConfig содержит настройки ограничителя отправок
type RateLimitConfig struct {
	WindowSec      int   `mapstructure:"window_sec" validate:"gt=0"`
	MaxSubmissions int64 `mapstructure:"max_submissions" validate:"gt=0"`
}

// WorkerConfig содержит настройки воркера начисления очков
type WorkerConfig struct {
	PopTimeoutSec  int `mapstructure:"pop_timeout_sec" validate:"gt=0"`
	RetryBackoffMs int `mapstructure:"retry_backoff_ms" validate:"gt=0"`
}

// ResultsTTL возвращает время жизни кеша результатов
func (c *CacheConfig) ResultsTTL() time.Duration {
	return time.Duration(c.ResultsTTLSec) * time.Second
}

// SweepInterval возвращает интервал фоновой уборки кеша
func (c *CacheConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalSec) * time.Second
}

// Window возвращает окно ограничителя отправок
func (c *RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSec) * time.Second
}

// PopTimeout возвращает таймаут одного ожидания очереди
func (c *WorkerConfig) PopTimeout() time.Duration {
	return time.Duration(c.PopTimeoutSec) * time.Second
}

// RetryBackoff возвращает паузу перед повтором при временном сбое
func (c *WorkerConfig) RetryBackoff() time.Duration {
	return time.Duration(c.RetryBackoffMs) * time.Millisecond
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	log.Printf("Конфигурация успешно загружена из %s", configPath)
	return &cfg, nil
}

// setDefaults задает значения по умолчанию, совпадающие с исходной системой:
// кеш результатов 60с, окно лимита 60с по 5 отправок, повтор воркера 1с
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("jwt.expiration_hrs", 1)
	v.SetDefault("cache.results_ttl_sec", 60)
	v.SetDefault("cache.sweep_interval_sec", 30)
	v.SetDefault("ratelimit.window_sec", 60)
	v.SetDefault("ratelimit.max_submissions", 5)
	v.SetDefault("worker.pop_timeout_sec", 5)
	v.SetDefault("worker.retry_backoff_ms", 1000)
}

// validate проверяет конфигурацию и формирует понятное сообщение об ошибке
func validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var invalidValidationError *validator.InvalidValidationError
	if errors.As(err, &invalidValidationError) {
		return fmt.Errorf("внутренняя ошибка валидатора конфигурации: %w", err)
	}

	var messages []string
	for _, fieldErr := range err.(validator.ValidationErrors) {
		messages = append(messages, fmt.Sprintf(
			"Поле '%s' не прошло валидацию '%s' (значение: '%v')",
			fieldErr.Namespace(), fieldErr.Tag(), fieldErr.Value()))
	}
	return fmt.Errorf("ошибки валидации конфигурации:\n- %s", strings.Join(messages, "\n- "))
}
