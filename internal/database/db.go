package database

import (
	"github.com/uptrace/bun"
)

// Queries is every query the recorder runs.
type Queries interface {
	SessionEventQueries
}

type queriesImpl struct {
	db bun.IDB
}

// DBImpl is a connected database. The queries run directly on the connection pool; every write
// is a single insert, so nothing needs a transaction.
type DBImpl struct {
	db *bun.DB
	queriesImpl
}

func NewDB(db *bun.DB) *DBImpl {
	return &DBImpl{
		db:          db,
		queriesImpl: queriesImpl{db: db},
	}
}

func (d *DBImpl) BunDB() *bun.DB {
	return d.db
}

func (d *DBImpl) Close() error {
	return d.db.Close()
}
