//go:build integration

// Package integration runs the storefront against a real PostgreSQL started
// with testcontainers.
package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/migration"
	"github.com/storefront/backend/migrations"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// storefrontTables are emptied between tests, children first
var storefrontTables = []string{
	"order_items", "orders", "cart_items", "carts", "products", "categories", "users",
}

// postgresServer is the one container every test of the package shares.
// It is started on first use and migrated once.
var postgresServer struct {
	once      sync.Once
	container *tcpostgres.PostgresContainer
	dsn       string
	err       error
}

// TestDB is a connection to the shared database with empty storefront tables
type TestDB struct {
	DB    *gorm.DB
	SqlDB *sql.DB
	DSN   string
}

// NewTestDB connects to the shared PostgreSQL and truncates the storefront
// tables, so every test starts from an empty store. Tests using it must not
// run in parallel with each other.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	postgresServer.once.Do(startPostgres)
	require.NoError(t, postgresServer.err, "Failed to start PostgreSQL container")

	db, sqlDB := connectToDatabase(t, postgresServer.dsn)
	t.Cleanup(func() { _ = sqlDB.Close() })

	tdb := &TestDB{DB: db, SqlDB: sqlDB, DSN: postgresServer.dsn}
	tdb.Reset(t)
	return tdb
}

// Reset empties every storefront table
func (tdb *TestDB) Reset(t *testing.T) {
	t.Helper()
	stmt := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(storefrontTables, ", "))
	require.NoError(t, tdb.DB.Exec(stmt).Error, "Failed to truncate storefront tables")
}

func startPostgres() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("storefront"),
		tcpostgres.WithPassword("storefront"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		postgresServer.err = err
		return
	}
	postgresServer.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		postgresServer.err = err
		return
	}
	postgresServer.dsn = dsn
	postgresServer.err = migrateSchema(dsn)
}

// migrateSchema applies the embedded migrations, exactly as storefrontctl migrate up does
func migrateSchema(dsn string) error {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	m, err := migration.New(sqlDB, migration.FromFS(migrations.FS, "."), zap.NewNop())
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	return m.Up()
}

func connectToDatabase(t *testing.T, dsn string) (*gorm.DB, *sql.DB) {
	t.Helper()

	level := gormlogger.Silent
	if os.Getenv("TEST_DB_DEBUG") != "" {
		level = gormlogger.Info
	}
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.NewGormLogger(zap.NewExample(), level),
	})
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// the concurrent checkout test needs one connection per buyer
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	return db, sqlDB
}

// CleanupSharedContainer terminates the shared container. Call it from TestMain.
func CleanupSharedContainer() {
	if postgresServer.container == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_ = postgresServer.container.Terminate(ctx)
	postgresServer.container = nil
}
