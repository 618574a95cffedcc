// Package config настройки приложения из переменных окружения и .env файла.
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	HTTP     HTTP
	Probe    Probe
	Metrics  Metrics
	Catalog  Catalog
	Business Business
	Storage  Storage
	Postgres Postgres
	Redis    Redis
	Worker   Worker
	Bot      Bot
}

type App struct {
	Name      string `env:"APP_NAME" envDefault:"card-tracker"`
	Version   string `env:"APP_VERSION" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
}

// Bot оповещения в Telegram. Пустой токен отключает бота.
type Bot struct {
	Token  string `env:"BOT_TOKEN" json:"-"`
	ChatID int64  `env:"BOT_CHAT_ID"`
	// Команды принимаются только от AdminID, по умолчанию от ChatID
	AdminID  int64 `env:"BOT_ADMIN_ID"`
	Commands bool  `env:"BOT_COMMANDS" envDefault:"false"`
}

func (b Bot) Admin() int64 {
	if b.AdminID != 0 {
		return b.AdminID
	}

	return b.ChatID
}

func (b Bot) Enabled() bool {
	return b.Token != ""
}

func Load() (Config, error) {
	_ = godotenv.Load()

	return Parse()
}

// Parse читает настройки только из окружения.
func Parse() (Config, error) {
	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	config.Storage.Driver = strings.ToLower(strings.TrimSpace(config.Storage.Driver))

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config.Validate: %w", err)
	}

	switch {
	case c.Storage.Driver == StorageDriverPostgres && c.Postgres.DSN == "":
		return fmt.Errorf("config.Validate: PG_DSN is required for %s storage", c.Storage.Driver)
	case c.Bot.Enabled() && c.Bot.ChatID == 0:
		return fmt.Errorf("config.Validate: BOT_CHAT_ID is required when BOT_TOKEN is set")
	case math.IsNaN(c.Business.MinROI) || math.IsInf(c.Business.MinROI, 0):
		return fmt.Errorf("config.Validate: MIN_ROI must be a finite number")
	case c.Worker.Mode == WorkerModeAsynq && c.Storage.Driver != StorageDriverRedis && c.Redis.Address == "":
		return fmt.Errorf("config.Validate: REDIS_ADDRESS is required for asynq worker")
	}

	return nil
}
