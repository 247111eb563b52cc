// Package mysql implements the MySQL engine adapter.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"

	"github.com/satishbabariya/pure-orm/driver"
)

// MySQL server error numbers classified by Translate.
const (
	erDupEntry            = 1062
	erNoReferencedRow     = 1216
	erRowIsReferenced     = 1217
	erBadNull             = 1048
	erNoSuchTable         = 1146
	erRowIsReferenced2    = 1451
	erNoReferencedRow2    = 1452
	erNoDefaultForField   = 1364
	defaultConnectTimeout = 10 * time.Second
)

// Adapter implements driver.Adapter for MySQL.
type Adapter struct{}

func init() {
	driver.Register(Adapter{})
}

// Dialect returns the SQL dialect.
func (Adapter) Dialect() driver.Dialect {
	return driver.MySQL
}

// DriverName returns the database/sql driver name.
func (Adapter) DriverName() string {
	return "mysql"
}

// Open opens a single-connection MySQL handle and pings it.
func (a Adapter) Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open(a.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One shared handle per process.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(ctx, defaultConnectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Translate classifies MySQL server errors.
func (Adapter) Translate(err error) error {
	var myErr *mysqldrv.MySQLError
	if !errors.As(err, &myErr) {
		return err
	}

	switch myErr.Number {
	case erDupEntry:
		return driver.Classify(driver.ErrUniqueConstraint, err)
	case erNoReferencedRow, erRowIsReferenced, erRowIsReferenced2, erNoReferencedRow2:
		return driver.Classify(driver.ErrForeignKeyConstraint, err)
	case erBadNull, erNoDefaultForField:
		return driver.Classify(driver.ErrNullConstraint, err)
	case erNoSuchTable:
		return driver.Classify(driver.ErrNoSuchTable, err)
	default:
		return err
	}
}

// VersionQuery returns the statement reporting the server version.
func (Adapter) VersionQuery() string {
	return "SELECT VERSION()"
}

// FormatDSN renders a go-sql-driver DSN for a TCP server.
func FormatDSN(user, password, addr, dbName, charset string, params map[string]string) string {
	cfg := mysqldrv.NewConfig()
	cfg.User = user
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = addr
	cfg.DBName = dbName

	if len(params) > 0 || charset != "" {
		cfg.Params = make(map[string]string, len(params)+1)
		for k, v := range params {
			cfg.Params[k] = v
		}
		if charset != "" {
			cfg.Params["charset"] = charset
		}
	}

	return cfg.FormatDSN()
}

var _ driver.Adapter = Adapter{}
