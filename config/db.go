package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	entity "dashboard.GO/model/entity"
)

// NewDB opens MySQL when MYSQL_DSN or MYSQL_HOST is set, otherwise a local SQLite file.
func NewDB() (*gorm.DB, error) {
	logMode := logger.Warn
	if os.Getenv("GORM_LOG") == "off" {
		logMode = logger.Silent
	} else if os.Getenv("GORM_LOG") == "info" {
		logMode = logger.Info
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // Use log.Logger for Printf support
		logger.Config{
			SlowThreshold: time.Second, // Slow SQL threshold
			LogLevel:      logMode,     // Log level
			Colorful:      true,        // Enable color
		},
	)

	db, err := gorm.Open(dialector(), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func dialector() gorm.Dialector {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" && os.Getenv("MYSQL_HOST") != "" {
		user := os.Getenv("MYSQL_USER")
		pass := os.Getenv("MYSQL_PASS")
		host := os.Getenv("MYSQL_HOST")
		port := GetEnv("MYSQL_PORT", "3306")
		db := os.Getenv("MYSQL_DB")
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=Local", user, pass, host, port, db)
	}
	if dsn != "" {
		return mysql.Open(dsn)
	}
	return sqlite.Open(GetEnv("SQLITE_PATH", "dashboard.db"))
}

// Migrate creates the tables the dashboard owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&entity.Session{}, &entity.PinnedLayout{})
}
