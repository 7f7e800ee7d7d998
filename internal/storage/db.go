package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync/atomic"
	"time"

	appErrors "github.com/fatali-fataliyev/household_ledger/customErrors"
	"github.com/fatali-fataliyev/household_ledger/internal/auth"
	"github.com/fatali-fataliyev/household_ledger/internal/config"
	"github.com/fatali-fataliyev/household_ledger/internal/contextutil"
	"github.com/fatali-fataliyev/household_ledger/internal/ledger"
	"github.com/fatali-fataliyev/household_ledger/logging"
	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	MySQL  Dialect = "mysql"
	SQLite Dialect = "sqlite"
)

func (d Dialect) upsertUserQuery() string {
	insert := "INSERT INTO users (open_id, name, email, login_method, role, created_at, updated_at, last_signed_in) VALUES (?, ?, ?, ?, 'user', ?, ?, ?)"
	if d == MySQL {
		return insert + ` ON DUPLICATE KEY UPDATE
			name = COALESCE(VALUES(name), name),
			email = COALESCE(VALUES(email), email),
			login_method = COALESCE(VALUES(login_method), login_method),
			updated_at = VALUES(updated_at),
			last_signed_in = VALUES(last_signed_in)`
	}
	return insert + ` ON CONFLICT(open_id) DO UPDATE SET
		name = COALESCE(excluded.name, users.name),
		email = COALESCE(excluded.email, users.email),
		login_method = COALESCE(excluded.login_method, users.login_method),
		updated_at = excluded.updated_at,
		last_signed_in = excluded.last_signed_in`
}

var (
	_ ledger.Storage      = (*SQLStorage)(nil)
	_ auth.SessionStorage = (*SQLStorage)(nil)
)

type SQLStorage struct {
	db      *sql.DB
	dialect Dialect
	loc     *time.Location
	closed  atomic.Bool
}

func NewSQLStorage(db *sql.DB, dialect Dialect, loc *time.Location) *SQLStorage {
	if loc == nil {
		loc = time.UTC
	}
	return &SQLStorage{db: db, dialect: dialect, loc: loc}
}

func (s *SQLStorage) Dialect() Dialect {
	return s.dialect
}

func (s *SQLStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the pool. Every later call fails as UNAVAILABLE.
func (s *SQLStorage) Close() error {
	s.closed.Store(true)
	return s.db.Close()
}

// Open connects to the configured backend and migrates it.
func Open(ctx context.Context, cfg *config.Config) (*SQLStorage, error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		mysqlCfg, err := MySQLConfig(cfg)
		if err != nil {
			return nil, err
		}
		return OpenMySQL(ctx, mysqlCfg, cfg.Location)
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg.SQLitePath, cfg.Location)
	default:
		return nil, fmt.Errorf("unsupported database driver '%s'", cfg.DBDriver)
	}
}

func MySQLConfig(cfg *config.Config) (*mysql.Config, error) {
	var mysqlCfg *mysql.Config
	if cfg.FullDSN != "" {
		parsed, err := mysql.ParseDSN(cfg.FullDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to parse FULL_DSN: %w", err)
		}
		mysqlCfg = parsed
	} else {
		mysqlCfg = mysql.NewConfig()
		mysqlCfg.User = cfg.DBUser
		mysqlCfg.Passwd = cfg.DBPass
		mysqlCfg.Net = "tcp"
		mysqlCfg.Addr = net.JoinHostPort(cfg.DBHost, cfg.DBPort)
		mysqlCfg.DBName = cfg.DBName
	}

	mysqlCfg.ParseTime = true
	mysqlCfg.ClientFoundRows = true // affected rows counts matched rows
	// Columns hold UTC; the application zone is applied when reading.
	mysqlCfg.Loc = time.UTC
	return mysqlCfg, nil
}

// OpenMySQL waits for the server, creates the schema if needed and runs
// migrations.
func OpenMySQL(ctx context.Context, cfg *mysql.Config, loc *time.Location) (*SQLStorage, error) {
	dbname := cfg.DBName
	if dbname == "" {
		return nil, fmt.Errorf("mysql configuration has no database name")
	}

	adminCfg := cfg.Clone()
	adminCfg.DBName = ""

	logging.Logger.Info("Connecting to MySQL server for initialization...")
	adminDb, err := sql.Open("mysql", adminCfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open admin mysql handle: %w", err)
	}
	defer adminDb.Close()

	if err := waitForServer(ctx, adminDb, 15, 3*time.Second); err != nil {
		return nil, err
	}

	createDbSql := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci", strings.ReplaceAll(dbname, "`", ""))
	if _, err := adminDb.ExecContext(ctx, createDbSql); err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	logging.Logger.Info("Running migrations...")
	if err := runMySQLMigrations(cfg); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database handle: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logging.Logger.Info("Connected to database successfully")
	return NewSQLStorage(db, MySQL, loc), nil
}

// OpenSQLite opens path (":memory:" included) and runs migrations.
func OpenSQLite(ctx context.Context, path string, loc *time.Location) (*SQLStorage, error) {
	dsn := path + "?_pragma=busy_timeout(5000)&_time_format=sqlite"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One connection: SQLite has a single writer and every ":memory:"
	// connection is a separate database.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}

	if err := runSQLiteMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return NewSQLStorage(db, SQLite, loc), nil
}

func waitForServer(ctx context.Context, db *sql.DB, attempts int, interval time.Duration) error {
	for i := 0; i < attempts; i++ {
		if err := db.PingContext(ctx); err == nil {
			return nil
		}
		logging.Logger.Warnf("Database not ready, retrying... (%d/%d)", i+1, attempts)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	return fmt.Errorf("database unreachable after multiple attempts")
}

// isUnavailable reports connection level failures as opposed to failures of
// a single statement. A statement that ran out of time is not one of them.
func isUnavailable(err error) bool {
	if err == nil {
		return false
	}
	// context errors also satisfy net.Error.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) ||
		errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// fail logs err and turns it into the error shown to the caller.
func (s *SQLStorage) fail(ctx context.Context, function string, action string, err error, message string) error {
	traceID := contextutil.TraceIDFromContext(ctx)
	logging.Logger.Errorf("[TraceID=%s] | failed to %s in Storage.%s() function | Error: %v", traceID, action, function, err)

	if s.closed.Load() || isUnavailable(err) {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrUnavailable,
			Message: "Database not available.",
		}
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrConflict,
			Message: "The record already exists.",
		}
	}
	return appErrors.ErrorResponse{
		Code:    appErrors.ErrInternal,
		Message: message,
	}
}

func notFound(message string) error {
	return appErrors.ErrorResponse{
		Code:    appErrors.ErrNotFound,
		Message: message,
	}
}

// affected reads RowsAffected of a finished statement.
func (s *SQLStorage) affected(ctx context.Context, function string, res sql.Result) (int64, error) {
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, s.fail(ctx, function, "check affected rows", err, "Failed to confirm the change, try again later.")
	}
	return rowsAffected, nil
}
