package handlers_test

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	gosqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/gin-gonic/gin"
	"github.com/teamdesk-dev/teamdesk/internal/config"
	"github.com/teamdesk-dev/teamdesk/internal/models"
	"github.com/teamdesk-dev/teamdesk/internal/router"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
}

var testSetupOnce sync.Once

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testSetupOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		// An expression column has no declared type, so return text the
		// repository can decode rather than a raw time.Time.
		gosqlite.MustRegisterScalarFunction("NOW", 0, func(ctx *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			return time.Now().UTC().Format(time.RFC3339Nano), nil
		})
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := db.AutoMigrate(&models.User{}, &models.Project{}, &models.ProjectMember{}); err != nil {
		t.Fatalf("failed automigrating models: %v", err)
	}

	cfg := config.Load()

	return &testEnv{router: router.New(db, cfg), db: db}
}

func createTestUser(t *testing.T, db *gorm.DB, nome, sobrenome, email, senha string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed hashing password: %v", err)
	}

	user := &models.User{
		Nome:      nome,
		Sobrenome: sobrenome,
		Email:     email,
		SenhaHash: string(hash),
		Cargo:     "Usuário",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed creating test user: %v", err)
	}

	return user
}

func performRequest(t *testing.T, env *testEnv, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, req)

	return recorder
}

func performJSONRequest(t *testing.T, env *testEnv, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader

	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	return performRequest(t, env, method, path, body)
}

func decodeJSONMap(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed decoding JSON response: %v body=%q", err, recorder.Body.String())
	}

	return payload
}

func decodeJSONList(t *testing.T, recorder *httptest.ResponseRecorder) []any {
	t.Helper()

	var payload []any
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed decoding JSON response: %v body=%q", err, recorder.Body.String())
	}

	return payload
}

func assertStatus(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()

	if recorder.Code != expected {
		t.Fatalf("expected status %d, got %d body=%q", expected, recorder.Code, recorder.Body.String())
	}
}

func assertError(t *testing.T, body map[string]any, expected string) {
	t.Helper()

	if got, _ := body["error"].(string); got != expected {
		t.Fatalf("expected error %q, got %q", expected, got)
	}
}
