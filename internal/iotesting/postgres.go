package iotesting

import (
	"context"
	"testing"

	"github.com/gnames/kardex/pkg/config"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// PostgresImage is the image started by StartPostgres.
const PostgresImage = "postgres:17-alpine"

// StartPostgres runs a throwaway PostgreSQL container and returns its
// database configuration. The test is skipped when no container runtime
// is available. The container is removed when the test finishes.
//
// Usage:
//
//	dbCfg := iotesting.StartPostgres(t)
//	st := iopg.New()
//	err := st.Connect(ctx, dbCfg)
func StartPostgres(t *testing.T) *config.DatabaseConfig {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	res := GetTestDatabaseConfig()

	container, err := tcpostgres.Run(ctx, PostgresImage,
		tcpostgres.WithDatabase(res.Database),
		tcpostgres.WithUsername(res.User),
		tcpostgres.WithPassword(res.Password),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	if err != nil {
		t.Skipf("Cannot start PostgreSQL container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Cannot get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("Cannot get container port: %v", err)
	}

	res.Host = host
	res.Port = port.Int()
	res.SSLMode = "disable"
	return res
}
