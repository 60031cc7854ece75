package db

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"courseapi/internal/config"
	"courseapi/internal/logger"
	"courseapi/internal/model"
)

func memoryDSN() string {
	return "file:" + uuid.NewString() + "?mode=memory&cache=shared"
}

func openWithLog(t *testing.T, buf *bytes.Buffer) *gorm.DB {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(memoryDSN()), gormConfig(logger.NewWithWriter("prod", buf)))
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, Migrate(gormDB, false))
	return gormDB
}

func TestGormLogs_RecordNotFoundIsSilent(t *testing.T) {
	var buf bytes.Buffer
	gormDB := openWithLog(t, &buf)
	buf.Reset()

	var user model.User
	err := gormDB.Where("email_address = ?", "nobody@b.com").First(&user).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var course model.Course
	err = gormDB.First(&course, 99).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.Empty(t, buf.String())
}

func TestGormLogs_FailuresAreJSON(t *testing.T) {
	var buf bytes.Buffer
	gormDB := openWithLog(t, &buf)
	buf.Reset()

	require.Error(t, gormDB.Exec("SELECT * FROM missing_table").Error)
	require.NotEmpty(t, buf.String())

	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry), scanner.Text())
		assert.Equal(t, "ERROR", entry["level"])
		assert.Contains(t, scanner.Text(), "missing_table")
	}
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestDuplicateEmailIsTranslated(t *testing.T) {
	var buf bytes.Buffer
	gormDB := openWithLog(t, &buf)

	u := func() *model.User {
		return &model.User{FirstName: "A", LastName: "B", EmailAddress: "a@b.com", Password: "hash"}
	}
	require.NoError(t, gormDB.Omit("Courses").Create(u()).Error)
	err := gormDB.Omit("Courses").Create(u()).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestMigrate_ResetDropsRows(t *testing.T) {
	gormDB, err := NewSQLite(memoryDSN())
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(gormDB, false))
	require.NoError(t, gormDB.Omit("Courses").Create(&model.User{
		FirstName: "A", LastName: "B", EmailAddress: "a@b.com", Password: "hash",
	}).Error)

	require.NoError(t, Migrate(gormDB, true))

	var count int64
	require.NoError(t, gormDB.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle"})
	assert.EqualError(t, err, `unsupported db driver "oracle"`)
}
