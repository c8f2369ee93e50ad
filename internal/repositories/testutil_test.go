package repositories

import (
	"database/sql/driver"
	"sync"
	"testing"
	"time"

	gosqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/teamdesk-dev/teamdesk/internal/models"
	"gorm.io/gorm"
)

var registerNowOnce sync.Once

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	registerNowOnce.Do(func() {
		// An expression column has no declared type, so return text the
		// repository can decode rather than a raw time.Time.
		gosqlite.MustRegisterScalarFunction("NOW", 0, func(ctx *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			return time.Now().UTC().Format(time.RFC3339Nano), nil
		})
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Project{}, &models.ProjectMember{}))

	return db
}

func seedUser(t *testing.T, users *UserRepository, nome, sobrenome, email string) *models.User {
	t.Helper()

	user := &models.User{
		Nome:      nome,
		Sobrenome: sobrenome,
		Email:     email,
		SenhaHash: "digest",
	}
	require.NoError(t, users.Create(user))

	return user
}
