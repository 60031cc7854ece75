package main

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courseapi/internal/app"
	"courseapi/internal/config"
	"courseapi/internal/db"
	"courseapi/internal/model"
)

func TestParseSeed_EmbeddedData(t *testing.T) {
	users, err := parseSeed(seedData)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "joe@smith.com", users[0].EmailAddress)
	assert.Len(t, users[0].Courses, 2)
}

func TestParseSeed_Invalid(t *testing.T) {
	_, err := parseSeed([]byte("{"))
	assert.Error(t, err)
}

func TestSeed_SkipsExistingUsers(t *testing.T) {
	gormDB, err := db.NewSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(gormDB, false))

	a := app.New(&config.Config{DBDriver: config.DriverSQLite}, gormDB, nil)
	users, err := parseSeed(seedData)
	require.NoError(t, err)

	created, skipped, courses, err := seed(context.Background(), a, users)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, 3, courses)

	created, skipped, courses, err = seed(context.Background(), a, users)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Equal(t, 2, skipped)
	assert.Equal(t, 0, courses)

	var count int64
	require.NoError(t, gormDB.Model(&model.Course{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}
