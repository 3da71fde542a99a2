//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"clinic-booking-api/cmd/bootstrap"
	"clinic-booking-api/cmd/bootstrap/components"
	"clinic-booking-api/internal/infra/db"
	"clinic-booking-api/internal/pkg/config"
	"clinic-booking-api/internal/pkg/password"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

var (
	postgresContainerOnce sync.Once
	postgresTestContainer testcontainers.Container

	testUser     = "test"
	testPassword = "testpass"
)

// Fixed seed identifiers the tests can reference directly.
var (
	SeedAdminUsername = "admin"
	SeedAdminPassword = "admin-password"

	SeedCategoryID = uuid.MustParse("3f0e8a1c-93bd-4f0e-9a6e-111111111111")
	SeedCleaningID = uuid.MustParse("3f0e8a1c-93bd-4f0e-9a6e-222222222222")
	SeedConsultID  = uuid.MustParse("3f0e8a1c-93bd-4f0e-9a6e-333333333333")
	SeedInactiveID = uuid.MustParse("3f0e8a1c-93bd-4f0e-9a6e-444444444444")
)

type containerInfo struct {
	Host string
	Port nat.Port
}

func setupE2EEnvironment(t *testing.T) (*pgxpool.Pool, *gin.Engine, config.Config) {
	gin.SetMode(gin.TestMode)
	startPostgreSQLContainerOnce(t)

	info, err := getContainerHostPort(postgresTestContainer, "5432/tcp")
	require.NoError(t, err, "failed to resolve postgres container address")

	pool, dbConfig := prepareDatabase(t, info)

	router, cfg, app := buildE2EApp(pool, dbConfig)
	require.NotNil(t, router, "router setup failed")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx application", "error", err.Error())
		}
	})

	return pool, router, cfg
}

// prepareDatabase creates a throwaway database per test process, applies the
// schema and seeds the reference rows.
func prepareDatabase(t *testing.T, info containerInfo) (*pgxpool.Pool, config.DBConfig) {
	dbName := "testdb_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, info.Host, info.Port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "admin connection failed")
	defer adminPool.Close()

	_, err = adminPool.Exec(ctx, "CREATE DATABASE "+dbName)
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()

		cleanupPool, err := pgxpool.New(cleanupCtx, adminDSN)
		if err != nil {
			slog.Warn("cleanup connection failed", "database", dbName, "error", err.Error())
			return
		}
		defer cleanupPool.Close()

		if _, err := cleanupPool.Exec(cleanupCtx, "DROP DATABASE IF EXISTS "+dbName); err != nil {
			slog.Warn("failed to drop test database", "database", dbName, "error", err.Error())
		}
	})

	dbConfig := config.DBConfig{
		Host:     info.Host,
		Port:     info.Port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "Asia/Jakarta",
	}

	pool, _, err := db.Connect(dbConfig)
	require.NoError(t, err, "database connection failed")

	require.NoError(t, applySchema(t, pool), "schema setup failed")
	require.NoError(t, seedReferenceData(t, pool), "seed data failed")

	return pool, dbConfig
}

func applySchema(t *testing.T, pool *pgxpool.Pool) error {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Resolve the schema file relative to the package dir `go test` runs in.
	candidates := []string{
		filepath.Join("db", "schema.sql"),
		filepath.Join("..", "db", "schema.sql"),
		filepath.Join("..", "..", "db", "schema.sql"),
	}

	var (
		sqlContent []byte
		readErr    error
	)
	for _, cand := range candidates {
		sqlContent, readErr = os.ReadFile(cand)
		if readErr == nil {
			break
		}
	}
	if readErr != nil {
		return fmt.Errorf("failed to read schema file: %w", readErr)
	}

	if _, err := pool.Exec(ctx, string(sqlContent)); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func seedReferenceData(t *testing.T, pool *pgxpool.Pool) error {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hash, err := password.HashPassword(SeedAdminPassword)
	if err != nil {
		return err
	}

	statements := []struct {
		sql  string
		args []any
	}{
		{
			sql: `INSERT INTO users (username, full_name, password_hash, role, is_active)
			      VALUES ($1, 'Administrator', $2, 'admin', true)`,
			args: []any{SeedAdminUsername, hash},
		},
		{
			sql: `INSERT INTO service_categories (id, name, description, icon, display_order, is_active)
			      VALUES ($1, 'Perawatan Gigi', 'Perawatan gigi umum', 'tooth', 1, true)`,
			args: []any{SeedCategoryID},
		},
		{
			sql: `INSERT INTO services (id, name, description, base_price, category_id, display_order, is_active)
			      VALUES ($1, 'Pembersihan Karang Gigi', 'Scaling ultrasonik', 150000, $2, 1, true)`,
			args: []any{SeedCleaningID, SeedCategoryID},
		},
		{
			sql: `INSERT INTO services (id, name, description, base_price, category_id, display_order, is_active)
			      VALUES ($1, 'Konsultasi', 'Konsultasi dokter gigi', 50000, $2, 2, true)`,
			args: []any{SeedConsultID, SeedCategoryID},
		},
		{
			sql: `INSERT INTO services (id, name, description, base_price, category_id, display_order, is_active)
			      VALUES ($1, 'Perawatan Lama', 'Tidak ditawarkan lagi', 75000, $2, 3, false)`,
			args: []any{SeedInactiveID, SeedCategoryID},
		},
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt.sql, stmt.args...); err != nil {
			return err
		}
	}
	return nil
}

func buildE2EApp(pool *pgxpool.Pool, dbConfig config.DBConfig) (*gin.Engine, config.Config, *fx.App) {
	var router *gin.Engine
	var cfg config.Config

	testConfig := config.NewTestConfig()
	testConfig.DB = dbConfig

	app := fx.New(
		fx.Provide(
			func() *pgxpool.Pool { return pool },
			func() config.Config { return testConfig },
			func() *gin.Engine { return gin.New() },
		),
		bootstrap.JWTModule,
		components.RepositoryModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router, &cfg),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("failed to start fx app: %v", err))
	}

	return router, cfg, app
}

func startPostgreSQLContainerOnce(t *testing.T) {
	postgresContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{
				"/var/lib/postgresql/data": "rw,size=512m",
			},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "full_page_writes=off",
				"-c", "synchronous_commit=off",
				"-c", "log_statement=none",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
			Labels: map[string]string{"purpose": "e2e-tests"},
		}

		ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
		defer cancel()

		var err error
		postgresTestContainer, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		require.NoError(t, err, "failed to start postgres container")

		t.Cleanup(func() {
			if postgresTestContainer != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := postgresTestContainer.Terminate(ctx); err != nil {
					slog.Warn("failed to terminate postgres container", "error", err.Error())
				}
			}
		})
	})
}

func getContainerHostPort(c testcontainers.Container, port string) (containerInfo, error) {
	ctx := context.Background()
	mappedPort, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return containerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return containerInfo{}, err
	}
	return containerInfo{Host: host, Port: mappedPort}, nil
}

// SharedSuite wires the container-backed stack once per suite.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	db, router, cfg := setupE2EEnvironment(s.T())
	s.DB = db
	s.Router = router
	s.Config = cfg
}
