package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"shoplist-service/internal/service"
	"shoplist-service/pkg/config"
	"shoplist-service/pkg/database"
	"shoplist-service/pkg/jwtutil"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var authSetupOnce sync.Once

func newAuthEnv(t *testing.T) (*echo.Echo, *service.AuthService, *service.UsersService) {
	t.Helper()

	authSetupOnce.Do(func() {
		jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-secret", ExpirationHours: 1})
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))

	users := service.NewUsersService(db)
	auth := service.NewAuthService(users)

	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		user := UserFromContext(c.Request().Context())
		if user == nil {
			return c.JSON(http.StatusOK, echo.Map{"email": nil})
		}
		return c.JSON(http.StatusOK, echo.Map{"email": user.Email})
	}, NewAuthMiddleware(auth).LoadUser)

	return e, auth, users
}

func signupAuthUser(t *testing.T, auth *service.AuthService) *service.AuthResponse {
	t.Helper()

	resp, err := auth.Signup(context.Background(), service.SignupInput{
		FullName: "Alice Johnson",
		Email:    "alice@example.com",
		Password: "123456",
	})
	require.NoError(t, err)
	return resp
}

func whoami(e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestLoadUserNoHeaderProceedsAnonymous(t *testing.T) {
	e, _, _ := newAuthEnv(t)

	rec := whoami(e, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"email": null}`, rec.Body.String())
}

func TestLoadUserValidToken(t *testing.T) {
	e, auth, _ := newAuthEnv(t)
	resp := signupAuthUser(t, auth)

	rec := whoami(e, "Bearer "+resp.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"email": "alice@example.com"}`, rec.Body.String())
}

func TestLoadUserBadHeaderFormat(t *testing.T) {
	e, auth, _ := newAuthEnv(t)
	resp := signupAuthUser(t, auth)

	for _, header := range []string{"Basic abc", resp.Token, "Bearer"} {
		rec := whoami(e, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestLoadUserInvalidToken(t *testing.T) {
	e, _, _ := newAuthEnv(t)

	rec := whoami(e, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoadUserBlockedAccount(t *testing.T) {
	e, auth, users := newAuthEnv(t)
	resp := signupAuthUser(t, auth)

	rec := whoami(e, "Bearer "+resp.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	// Block after the token was issued; the same token must stop working.
	_, err := users.Block(context.Background(), resp.User.ID, resp.User)
	require.NoError(t, err)

	rec = whoami(e, "Bearer "+resp.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
