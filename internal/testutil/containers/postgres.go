//go:build integration

package containers

import (
	"context"
	"testing"

	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"person-registry/internal/core/database"
	"person-registry/internal/feature/person"
)

// PostgresContainer is a throwaway postgres with the persons schema migrated.
type PostgresContainer struct {
	Container *tcpostgres.PostgresContainer
	DB        *gorm.DB
}

func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("persons"),
		tcpostgres.WithUsername("persons"),
		tcpostgres.WithPassword("persons"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := database.NewGorm(database.Opts{
		Driver:       "postgres",
		DSN:          dsn,
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		LogLevel:     "silent",
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to open postgres: %v", err)
	}
	if err := person.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return &PostgresContainer{Container: container, DB: db}
}

// Truncate empties the persons table between tests.
func (p *PostgresContainer) Truncate(ctx context.Context) error {
	return p.DB.WithContext(ctx).Exec("TRUNCATE TABLE persons").Error
}
