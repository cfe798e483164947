package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the Postgres instance behind dsn and returns the
// handle. Callers own the handle and inject it into each service at
// construction time; there is no package-level connection state.
func Open(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	return gdb, nil
}

// AutoMigrate creates or updates tables for all content models.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&Category{},
		&Tag{},
		&Page{},
		&Post{},
		&Subscriber{},
		&Campaign{},
	)
}
