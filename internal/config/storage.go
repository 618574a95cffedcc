package config

import "time"

const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
	StorageDriverRedis    = "redis"

	WorkerModeTicker = "ticker"
	WorkerModeAsynq  = "asynq"
)

type Storage struct {
	Driver string `env:"STORAGE_DRIVER" envDefault:"memory" validate:"oneof=memory postgres redis"`
}

// Worker фоновое обновление цен. Mode asynq требует Redis.
type Worker struct {
	Enabled     bool          `env:"WORKER_ENABLED" envDefault:"false"`
	Mode        string        `env:"WORKER_MODE" envDefault:"ticker" validate:"oneof=ticker asynq"`
	Interval    time.Duration `env:"WORKER_INTERVAL" envDefault:"1h"`
	CronSpec    string        `env:"WORKER_CRON" envDefault:"@every 1h"`
	Retention   time.Duration `env:"WORKER_RETENTION" envDefault:"2160h"`
	Concurrency int           `env:"WORKER_CONCURRENCY" envDefault:"4" validate:"gte=1"`
}
