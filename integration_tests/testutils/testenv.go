//go:build integration

package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/raynzz/eventdesk/db/bundb"
	"github.com/raynzz/eventdesk/integration_tests/containers"
	"github.com/raynzz/eventdesk/pkg/eventbus"
	"github.com/raynzz/eventdesk/pkg/observability"
	"github.com/testcontainers/testcontainers-go"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

// TestEnvironment holds the containers and connections shared by a package's tests.
type TestEnvironment struct {
	Ctx           context.Context
	cancel        context.CancelFunc
	PgContainer   testcontainers.Container
	NatsContainer testcontainers.Container
	DB            *bun.DB
	NatsURL       string
	Obs           observability.Observability
}

var (
	sharedEnv  *TestEnvironment
	sharedErr  error
	sharedOnce sync.Once
)

// GetOrCreateTestEnv starts the containers once per test binary.
func GetOrCreateTestEnv(t *testing.T) *TestEnvironment {
	t.Helper()
	sharedOnce.Do(func() {
		sharedEnv, sharedErr = NewTestEnvironment()
	})
	if sharedErr != nil {
		t.Fatalf("failed to set up test environment: %v", sharedErr)
	}
	return sharedEnv
}

// NewTestEnvironment starts Postgres and NATS and applies every migration.
func NewTestEnvironment() (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(context.Background())
	env := &TestEnvironment{
		Ctx:    ctx,
		cancel: cancel,
		Obs:    observability.NewNoop(),
	}

	pg, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		cancel()
		return nil, err
	}
	env.PgContainer = pg

	natsContainer, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		env.Cleanup()
		return nil, err
	}
	env.NatsContainer = natsContainer
	env.NatsURL = natsURL

	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to open sql DB connection: %w", err)
	}
	env.DB = bun.NewDB(sqlDB, pgdialect.New())

	if err := bundb.MigrateAll(ctx, env.DB); err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return env, nil
}

// NewNATSBus connects a fresh bus to the NATS container.
func (env *TestEnvironment) NewNATSBus(t *testing.T, prefix string) *eventbus.Bus {
	t.Helper()
	bus, err := eventbus.NewNATS(eventbus.NATSConfig{
		URL:              env.NatsURL,
		QueueGroupPrefix: prefix,
		ClientName:       "eventdesk-" + prefix,
	}, env.Obs.Logger)
	if err != nil {
		t.Fatalf("failed to connect event bus: %v", err)
	}
	t.Cleanup(func() { _ = bus.Close() })
	return bus
}

// TruncateTables empties the given tables between tests.
func (env *TestEnvironment) TruncateTables(t *testing.T, tables ...string) {
	t.Helper()
	for _, table := range tables {
		if _, err := env.DB.ExecContext(env.Ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}

// Cleanup closes connections and terminates the containers.
func (env *TestEnvironment) Cleanup() {
	if env.DB != nil {
		_ = env.DB.Close()
	}
	if env.NatsContainer != nil {
		_ = env.NatsContainer.Terminate(context.Background())
	}
	if env.PgContainer != nil {
		_ = env.PgContainer.Terminate(context.Background())
	}
	env.cancel()
}

// Shutdown tears down the shared environment, if one was started.
func Shutdown() {
	if sharedEnv != nil {
		sharedEnv.Cleanup()
	}
}
