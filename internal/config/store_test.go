package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/domain"
)

func TestCreateStore_SQLite(t *testing.T) {
	cfg := NewConfig()
	cfg.Store.Backend = BackendSQLite
	cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "tm.db")

	s, err := CreateStore(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, s)
	defer s.Close()

	task, err := s.Create(context.Background(), domain.NewTask{Title: "Test Task"})
	require.NoError(t, err)

	tasks, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
}

func TestCreateStore_UnknownBackend(t *testing.T) {
	cfg := NewConfig()
	cfg.Store.Backend = "redis"

	s, err := CreateStore(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, s)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestCreateStore_MongoUnreachable(t *testing.T) {
	cfg := NewConfig()
	cfg.Store.MongoURI = "mongodb://127.0.0.1:1/taskmanager?serverSelectionTimeoutMS=200"

	s, err := CreateStore(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, s)
}

func TestCreateTestStore(t *testing.T) {
	s, err := CreateTestStore()
	require.NoError(t, err)
	defer s.Close()

	assert.NoError(t, s.Ping(context.Background()))
	tasks, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
