package database

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jsponceA/api-express-tienda/config"
	"github.com/jsponceA/api-express-tienda/models"
)

// Connect opens the postgres connection and migrates the schema. The handle
// is returned to the caller; nothing here is package-global.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	// TranslateError maps postgres unique violations onto
	// gorm.ErrDuplicatedKey, which the store layer relies on.
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, errors.Wrap(err, "connect database")
	}

	if err := db.AutoMigrate(
		&models.Product{},
		&models.Book{},
		&models.Customer{},
		&models.Student{},
		&models.Enrollment{},
	); err != nil {
		return nil, errors.Wrap(err, "auto migrate")
	}

	log.WithFields(log.Fields{"host": cfg.DBHost, "db": cfg.DBName}).Info("database connected and synced")
	return db, nil
}
