package db

import (
	"github.com/teamdesk-dev/teamdesk/internal/config"
	"github.com/teamdesk-dev/teamdesk/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the database and configures the connection pool. The handle
// is created once at startup and passed down; nothing else opens connections.
func Connect(cfg config.DBConfig) (*gorm.DB, error) {
	database, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{})

	if err != nil {
		return nil, err
	}

	sqlDB, err := database.DB()

	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return database, nil
}

func Migrate(database *gorm.DB) error {
	entities := []interface{}{
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
	}

	migrator := database.Migrator()

	for _, entity := range entities {
		if !migrator.HasTable(entity) {
			if err := database.AutoMigrate(entity); err != nil {
				return err
			}
		}
	}

	return nil
}
