package db

import (
	"fmt"
	"strings"

	"repairdesk/internal/config"
	"repairdesk/internal/inventory"
	"repairdesk/internal/user"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqliteBusyTimeoutMs is how long a sqlite writer waits on a locked file
// before giving up with SQLITE_BUSY.
const sqliteBusyTimeoutMs = 5000

// Open connects to the database named by cfg.Postgres.DSN and migrates the
// schema. DSNs starting with "sqlite:" or "file:" select the sqlite driver;
// everything else is handed to postgres.
func Open(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}

	dial := dialector(cfg.Postgres.DSN)
	db, err := gorm.Open(dial, gormCfg)
	if err != nil {
		return nil, err
	}

	// sqlite allows one writer at a time. A single connection queues writers
	// in the pool so a racing insert reaches the unique index instead of
	// failing on the file lock.
	if dial.Name() == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&user.User{}, &inventory.Item{}); err != nil {
		return nil, err
	}
	return db, nil
}

func dialector(dsn string) gorm.Dialector {
	switch {
	case strings.HasPrefix(dsn, "sqlite:"):
		return sqlite.Open(withBusyTimeout(strings.TrimPrefix(dsn, "sqlite:")))
	case strings.HasPrefix(dsn, "file:"):
		return sqlite.Open(withBusyTimeout(dsn))
	default:
		return postgres.Open(dsn)
	}
}

func withBusyTimeout(dsn string) string {
	if strings.Contains(dsn, "_busy_timeout=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_busy_timeout=%d", dsn, sep, sqliteBusyTimeoutMs)
}
