package suites

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/joefazee/sportsbook/app/database"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gLogger "gorm.io/gorm/logger"

	// database/sql driver for the raw connection
	_ "github.com/lib/pq"
)

const (
	pgImage    = "postgres:17.5-alpine3.21"
	pgPort     = "5432/tcp"
	pgDatabase = "sportsbook_test"
	pgUser     = "sportsbook"
	pgPassword = "sportsbook"

	// concurrency tests hold several wallet locks at once
	maxOpenConns = 16
)

// PostgresContainer is a throwaway postgres instance for one suite.
type PostgresContainer struct {
	testcontainers.Container
	URL string
}

func NewPostgresContainer(ctx context.Context) (*PostgresContainer, error) {
	dbURL := func(host string, port nat.Port) string {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, host, port.Port(), pgDatabase)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        pgImage,
			ExposedPorts: []string{pgPort},
			Cmd:          []string{"postgres", "-c", "fsync=off", "-c", "max_connections=200"},
			Env: map[string]string{
				"POSTGRES_DB":       pgDatabase,
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
			},
			WaitingFor: wait.ForSQL(pgPort, "postgres", dbURL).
				WithStartupTimeout(30 * time.Second).
				WithQuery("SELECT 1"),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, pgPort)
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	return &PostgresContainer{Container: container, URL: dbURL(host, port)}, nil
}

// RepositoryTestSuite runs a suite against a migrated postgres container.
// Every table except schema_migrations is truncated before each test.
type RepositoryTestSuite struct {
	suite.Suite
	Container      *PostgresContainer
	DB             *gorm.DB
	SQLDB          *sql.DB
	AutoMigrate    bool
	MigrationsPath string
}

func (suite *RepositoryTestSuite) SetupSuite() {
	suite.T().Helper()

	if testing.Short() {
		suite.T().Skip("Skipping database integration tests in short mode")
	}

	if suite.MigrationsPath == "" {
		suite.MigrationsPath = findMigrationsPath()
	}

	ctx := context.Background()
	container, err := NewPostgresContainer(ctx)
	suite.Require().NoError(err)
	suite.Container = container
	suite.T().Cleanup(suite.cleanup)

	suite.connect(ctx)

	if suite.AutoMigrate {
		suite.Require().NoError(database.Migrate(suite.MigrationsPath, suite.Container.URL), "migrations")
	}
}

func (suite *RepositoryTestSuite) connect(ctx context.Context) {
	sqlDB, err := sql.Open("postgres", suite.Container.URL)
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(4)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	suite.Require().NoError(sqlDB.PingContext(pingCtx))

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gLogger.Default.LogMode(gLogger.Silent),
	})
	suite.Require().NoError(err)

	suite.SQLDB = sqlDB
	suite.DB = gormDB
}

// findMigrationsPath walks up to the module root.
func findMigrationsPath() string {
	wd, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(wd, "go.mod")); err == nil {
			return filepath.Join(wd, "migrations")
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			return "migrations"
		}
		wd = parent
	}
}

func (suite *RepositoryTestSuite) BeforeTest(_, _ string) {
	suite.truncate()
}

func (suite *RepositoryTestSuite) truncate() {
	if suite.DB == nil {
		return
	}

	var tables []string
	suite.DB.Raw(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		AND table_type = 'BASE TABLE'
		AND table_name <> 'schema_migrations'
	`).Scan(&tables)
	if len(tables) == 0 {
		return
	}

	quoted := make([]string, len(tables))
	for i, table := range tables {
		quoted[i] = fmt.Sprintf("%q", table)
	}
	suite.Require().NoError(suite.DB.Exec("TRUNCATE " + strings.Join(quoted, ", ") + " CASCADE").Error)
}

func (suite *RepositoryTestSuite) cleanup() {
	if suite.SQLDB != nil {
		_ = suite.SQLDB.Close()
	}
	if suite.Container != nil {
		_ = suite.Container.Terminate(context.Background())
	}
}

// CountRecords counts every row in table.
func (suite *RepositoryTestSuite) CountRecords(table string) int64 {
	var c int64
	suite.Require().NoError(suite.DB.Table(table).Count(&c).Error)
	return c
}

func (suite *RepositoryTestSuite) AssertNoDBError(err error, args ...interface{}) {
	suite.Require().NoError(err, args...)
}
