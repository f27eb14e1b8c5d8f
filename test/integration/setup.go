package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"

	handler "github.com/aquaguard/api/internal/adapters/handler/http"
	repo "github.com/aquaguard/api/internal/adapters/repository/postgres"
	"github.com/aquaguard/api/internal/core/domain"
	"github.com/aquaguard/api/internal/core/ports"
	"github.com/aquaguard/api/internal/core/services"
)

const testJWTSecret = "test-secret"

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T) *TestApp {
	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	require.NoError(t, applyMigrations(db))

	userRepo := repo.NewUserRepository(db)
	tokenRepo := repo.NewAuthRepository(db)
	waterSourceRepo := repo.NewWaterSourceRepository(db)
	alertRepo := repo.NewAlertRepository(db)

	require.NoError(t, userRepo.EnsureRoles(ctx, []string{domain.RoleAdmin, domain.RoleUser}))

	hasher := services.NewBcryptHasher(bcrypt.MinCost)
	issuer := services.NewJWTIssuer([]byte(testJWTSecret), 15*time.Minute)
	refreshManager := services.NewRefreshTokenManager(tokenRepo, 24*time.Hour)
	authSvc := services.NewAuthService(userRepo, hasher, issuer, refreshManager)
	waterSourceSvc := services.NewWaterSourceService(waterSourceRepo)
	alertSvc := services.NewAlertService(alertRepo)

	authHandler := handler.NewAuthHandler(authSvc)
	waterSourceHandler := handler.NewWaterSourceHandler(waterSourceSvc)
	alertHandler := handler.NewAlertHandler(alertSvc)
	router := handler.NewHandler(authHandler, waterSourceHandler, alertHandler, issuer, []string{"*"})

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func (app *TestApp) postJSON(t *testing.T, path string, body any, token string) *http.Response {
	t.Helper()
	return app.doJSON(t, http.MethodPost, path, body, token)
}

func (app *TestApp) doJSON(t *testing.T, method, path string, body any, token string) *http.Response {
	t.Helper()

	var buf io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// registerUser registers a fresh account through the API and returns the
// issued token pair.
func (app *TestApp) registerUser(t *testing.T, email string) *ports.AuthResult {
	t.Helper()

	resp := app.postJSON(t, "/api/auth/register", map[string]string{
		"email":    email,
		"password": "P@ssw0rd1",
		"name":     "Test User",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	result := decodeJSON[*ports.AuthResult](t, resp)
	require.NotEmpty(t, result.AccessToken)
	require.NotEmpty(t, result.RefreshToken)
	return result
}
