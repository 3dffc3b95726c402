package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	entity "dashboard.GO/model/entity"
)

func sessionTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.Session{}))
	return db
}

func TestSessionRepository_CreateFind(t *testing.T) {
	repo := NewSessionRepository(sessionTestDB(t))
	s := &entity.Session{Username: "mor_2314", Variant: "token", AccessToken: "tok"}
	require.NoError(t, repo.Create(s, time.Hour))
	require.NotEmpty(t, s.ID)

	got, err := repo.FindActive(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "tok", got.AccessToken)
	assert.Equal(t, "mor_2314", got.Username)
}

func TestSessionRepository_ExpiredNotFound(t *testing.T) {
	repo := NewSessionRepository(sessionTestDB(t))
	s := &entity.Session{Username: "u", Variant: "token", AccessToken: "tok"}
	require.NoError(t, repo.Create(s, time.Hour))

	repo.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err := repo.FindActive(s.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	n, err := repo.PurgeExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSessionRepository_Delete(t *testing.T) {
	repo := NewSessionRepository(sessionTestDB(t))
	s := &entity.Session{Username: "u", Variant: "token", AccessToken: "tok"}
	require.NoError(t, repo.Create(s, time.Hour))
	require.NoError(t, repo.Delete(s.ID))
	_, err := repo.FindActive(s.ID)
	assert.Error(t, err)
}
