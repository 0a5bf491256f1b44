package db

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported values for Options.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Options selects the database and how to reach it. Path is only used by
// sqlite; the network fields are only used by mysql and postgres.
type Options struct {
	Driver   string
	Path     string
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

// Open connects to the configured database.
func Open(opts Options) (*gorm.DB, error) {
	dialector, err := dialectorFor(opts)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true, // unique/foreign key violations become gorm.Err* values
		Logger: logger.New(logrus.StandardLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", opts.Driver, err)
	}
	return db, nil
}

// OpenSQLite opens (creating if needed) the sqlite database file at path.
func OpenSQLite(path string) (*gorm.DB, error) {
	return Open(Options{Driver: DriverSQLite, Path: path})
}

func dialectorFor(opts Options) (gorm.Dialector, error) {
	switch opts.Driver {
	case "", DriverSQLite:
		if opts.Path == "" || opts.Path == ":memory:" {
			// every pooled connection would get its own empty in-memory database
			return nil, fmt.Errorf("sqlite needs a database file path")
		}
		// _txlock=immediate makes every unit of work BEGIN IMMEDIATE: the write
		// lock is taken up front and waits at most _busy_timeout milliseconds.
		return sqlite.Open(opts.Path + "?_foreign_keys=1&_busy_timeout=30000&_txlock=immediate"), nil
	case DriverMySQL:
		// Data Source Name (DSN); clientFoundRows makes RowsAffected count matched rows
		dsn := opts.User + ":" + opts.Password + "@tcp(" + opts.Host + ":" + opts.Port + ")/" + opts.Name + "?parseTime=true&clientFoundRows=true"
		return mysql.Open(dsn), nil
	case DriverPostgres:
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			opts.Host, opts.Port, opts.User, opts.Password, opts.Name)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}
