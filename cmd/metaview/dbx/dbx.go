// Package dbx holds connection settings for the PostgreSQL database whose
// catalog is exposed as an engine catalog.
package dbx

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func NewDB(databaseURI string) (*DB, error) {
	uri, err := url.Parse(databaseURI)
	if err != nil {
		return nil, err
	}
	db := new(DB)
	db.Host = uri.Hostname()
	db.Port = uri.Port()
	user := uri.User
	if user == nil {
		return nil, fmt.Errorf("username not specified in database URI: %s", databaseURI)
	}
	db.User = user.Username()
	db.Password, _ = user.Password()
	db.DBName = strings.TrimPrefix(uri.EscapedPath(), "/")
	db.SSLMode = strings.Join(uri.Query()["sslmode"], ",")
	return db, nil
}

func (d *DB) String() string {
	var sslmode string
	if d.SSLMode != "" {
		sslmode = " sslmode=" + d.SSLMode
	}
	return "host=" + d.Host + " port=" + d.Port + " user=" + d.User +
		" password=" + d.Password + " dbname=" + d.DBName + sslmode
}

func (d *DB) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, d.String())
	if err != nil {
		return nil, fmt.Errorf("connecting to database %s: %v", d.DBName, err)
	}
	return pool, nil
}
