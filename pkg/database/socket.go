package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/arthur-debert/archup/pkg/errors"
	"github.com/go-sql-driver/mysql"
)

// SocketAdmin talks to the server over its unix socket.
type SocketAdmin struct {
	db *sql.DB
}

var _ Admin = (*SocketAdmin)(nil)

// SocketDSN builds the driver DSN for root over the socket at path.
func SocketDSN(path, password string) string {
	cfg := mysql.NewConfig()
	cfg.User = "root"
	cfg.Passwd = password
	cfg.Net = "unix"
	cfg.Addr = path
	cfg.Timeout = 5 * time.Second
	return cfg.FormatDSN()
}

// OpenSocketAdmin opens a connection pool; nothing is dialled until the
// first statement.
func OpenSocketAdmin(path, password string) (*SocketAdmin, error) {
	db, err := sql.Open("mysql", SocketDSN(path, password))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDBUnavailable, "failed to open database connection")
	}
	db.SetMaxOpenConns(1)
	return &SocketAdmin{db: db}, nil
}

// Close releases the pool.
func (a *SocketAdmin) Close() error {
	return a.db.Close()
}

func (a *SocketAdmin) Ping(ctx context.Context) error {
	if err := a.db.PingContext(ctx); err != nil {
		return errors.Wrap(err, errors.ErrDBUnavailable, "database server is not answering")
	}
	return nil
}

// DatabaseExists iterates SHOW DATABASES for an exact match.
func (a *SocketAdmin) DatabaseExists(ctx context.Context, name string) (bool, error) {
	rows, err := a.db.QueryContext(ctx, "SHOW DATABASES")
	if err != nil {
		return false, errors.Wrap(err, errors.ErrDBUnavailable, "failed to list databases")
	}
	defer rows.Close()

	for rows.Next() {
		var dbName string
		if err := rows.Scan(&dbName); err != nil {
			return false, errors.Wrap(err, errors.ErrDBUnavailable, "failed to list databases")
		}
		if dbName == name {
			return true, nil
		}
	}
	return false, rows.Err()
}

func (a *SocketAdmin) CreateDatabase(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if _, err := a.db.ExecContext(ctx, createStatement(name)); err != nil {
		return errors.Wrapf(err, errors.ErrCommandFailed, "failed to create database %s", name)
	}
	return nil
}

func (a *SocketAdmin) SetRootPassword(ctx context.Context, password string) error {
	if _, err := a.db.ExecContext(ctx, passwordStatement(password)); err != nil {
		return errors.Wrap(err, errors.ErrCommandFailed, "failed to set root password")
	}
	return nil
}
