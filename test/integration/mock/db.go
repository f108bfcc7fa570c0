package mock

import (
	"database/sql"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/integration/persistence/model"
)

var (
	once sync.Once
	db   *Db
)

// Db wraps the shared in-memory test database.
type Db struct {
	Conn *gorm.DB
}

// NewDb opens the shared in-memory sqlite database once and migrates the
// schema. cache=shared plus a single pooled connection keeps every gorm
// session on the same database.
func NewDb() *Db {
	once.Do(func() {
		sqlDB, err := sql.Open("sqlite", "file::memory:?cache=shared")
		if err != nil {
			panic(err)
		}
		sqlDB.SetMaxOpenConns(1)

		conn, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			panic("failed to connect to test database: " + err.Error())
		}

		if err := conn.AutoMigrate(
			&model.TransactionModel{},
			&model.StatementImportModel{},
			&model.StatementItemModel{},
			&model.EmailQueueModel{},
			&model.ExchangeRateModel{},
		); err != nil {
			panic("failed to migrate test database: " + err.Error())
		}

		db = &Db{Conn: conn}
	})

	return db
}

// Reset deletes every row so each scenario starts from a clean slate.
func (d *Db) Reset() error {
	for _, m := range []any{
		&model.StatementItemModel{},
		&model.TransactionModel{},
		&model.StatementImportModel{},
		&model.EmailQueueModel{},
		&model.ExchangeRateModel{},
	} {
		err := d.Conn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error
		if err != nil {
			return err
		}
	}
	return nil
}
