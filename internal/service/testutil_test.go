package service

import (
	"context"
	"sync"
	"testing"

	"shoplist-service/internal/model"
	"shoplist-service/pkg/config"
	"shoplist-service/pkg/database"
	"shoplist-service/pkg/jwtutil"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testSetupOnce sync.Once

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testSetupOnce.Do(func() {
		jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-secret", ExpirationHours: 1})
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "failed opening in-memory sqlite database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db), "failed automigrating models")
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user, err := NewUsersService(db).Create(context.Background(), SignupInput{
		FullName: "Test User",
		Email:    email,
		Password: "123456",
	})
	require.NoError(t, err)
	return user
}
