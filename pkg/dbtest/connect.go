package dbtest

import (
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib" // golang postgres driver
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

const (
	EnvPostgresDSN  = "TEST_PG_DSN"
	EnvRedisAddress = "TEST_REDIS_ADDRESS"
)

// Postgres connects to the database from TEST_PG_DSN and closes it on cleanup.
// The test is skipped when the variable is not set.
func Postgres(t testing.TB) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv(EnvPostgresDSN)
	if dsn == "" {
		t.Skipf("%s is not set", EnvPostgresDSN)
	}

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		t.Fatalf("sqlx.Connect: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// Redis connects to the server from TEST_REDIS_ADDRESS, skipping the test
// when it is not set.
func Redis(t testing.TB) *redis.Client {
	t.Helper()

	addr := os.Getenv(EnvRedisAddress)
	if addr == "" {
		t.Skipf("%s is not set", EnvRedisAddress)
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}
