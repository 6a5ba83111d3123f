package testutil

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/udisondev/beastclash/internal/db"
)

// StartPostgres создаёт PostgreSQL testcontainer, применяет миграции и возвращает DSN.
// Использует модуль postgres с BasicWaitStrategies (log occurrence(2) + port check).
// Автоматически cleanup при завершении теста. Пропускается в -short.
func StartPostgres(tb testing.TB) string {
	tb.Helper()
	if testing.Short() {
		tb.Skip("postgres container tests are skipped in -short mode")
	}
	ctx := context.Background()

	// Запускаем PostgreSQL 16 через специализированный модуль
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("beastclash_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		tb.Fatalf("starting postgres container: %v", err)
	}

	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			tb.Logf("terminating postgres container: %v", err)
		}
	})

	// Получаем DSN через встроенный метод контейнера
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		tb.Fatalf("getting connection string: %v", err)
	}

	// Применяем миграции через goose
	if err := db.RunMigrations(ctx, dsn); err != nil {
		tb.Fatalf("running migrations: %v", err)
	}
	return dsn
}

// SetupTestDB поднимает контейнер через StartPostgres и возвращает pool.
func SetupTestDB(tb testing.TB) *pgxpool.Pool {
	tb.Helper()
	dsn := StartPostgres(tb)

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		tb.Fatalf("connecting to test db: %v", err)
	}
	tb.Cleanup(func() { pool.Close() })
	return pool
}

// Truncate очищает таблицы между подтестами, использующими один pool.
func Truncate(tb testing.TB, pool *pgxpool.Pool) {
	tb.Helper()
	for _, table := range []string{"battle_reports", "combatant_status"} {
		if _, err := pool.Exec(context.Background(), "TRUNCATE "+table); err != nil {
			tb.Fatalf("truncating %s: %v", table, err)
		}
	}
}
