package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/config"
	"task-manager/internal/domain"
)

func runRoot(t *testing.T, mock *mockTaskClient, args ...string) (*RootCommand, string, error) {
	t.Helper()
	root := NewRootCommand().WithEnvFile("")
	if mock != nil {
		root.WithClient(mock)
	}
	var out bytes.Buffer
	root.SetOutput(&out, &out)
	root.SetArgs(args)
	err := root.Execute(context.Background())
	return root, out.String(), err
}

func TestRootCommand_ClientCommands(t *testing.T) {
	mock := newMockTaskClient()

	_, out, err := runRoot(t, mock, "add", "Buy", "milk", "-d", "2 litres")
	require.NoError(t, err)
	assert.Contains(t, out, "Created task task-1: Buy milk")
	assert.Equal(t, "2 litres", mock.tasks[0].Description)

	_, _, err = runRoot(t, mock, "done", "task-1")
	require.NoError(t, err)
	assert.True(t, mock.tasks[0].Completed)

	_, _, err = runRoot(t, mock, "edit", "task-1", "--description", "")
	require.NoError(t, err)
	assert.Empty(t, mock.tasks[0].Description)
	last := mock.updates[len(mock.updates)-1]
	assert.Nil(t, last.Title, "flags that were not given are not sent")
	require.NotNil(t, last.Description)

	_, out, err = runRoot(t, mock, "list", "--format", "json")
	require.NoError(t, err)
	var tasks []domain.Task
	require.NoError(t, json.Unmarshal([]byte(out), &tasks))
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Completed)

	_, _, err = runRoot(t, mock, "undone", "task-1")
	require.NoError(t, err)
	assert.False(t, mock.tasks[0].Completed)

	_, _, err = runRoot(t, mock, "rm", "task-1")
	require.NoError(t, err)
	assert.Empty(t, mock.tasks)
}

func TestRootCommand_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "add without title", args: []string{"add"}},
		{name: "edit without id", args: []string{"edit", "--title", "x"}},
		{name: "done without id", args: []string{"done"}},
		{name: "delete without id", args: []string{"delete"}},
		{name: "list with args", args: []string{"list", "extra"}},
		{name: "unknown command", args: []string{"start"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runRoot(t, newMockTaskClient(), tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestRootCommand_FlagsOverrideConfig(t *testing.T) {
	t.Setenv("TM_API_URL", "http://env.example:9000/api/tasks")
	t.Setenv("TM_PORT", "6000")

	root, _, err := runRoot(t, newMockTaskClient(), "list", "--api-url", "http://flag.example/api/tasks", "--debug")
	require.NoError(t, err)

	cfg := root.Config()
	assert.Equal(t, "http://flag.example/api/tasks", cfg.Client.BaseURL)
	assert.Equal(t, 6000, cfg.Server.Port, "env applies when no flag is given")
	assert.True(t, cfg.Application.Debug)
}

func TestRootCommand_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  backend: sqlite\n  sqlite_path: from-file.db\n"), 0o644))

	root, _, err := runRoot(t, newMockTaskClient(), "--config", path, "list")
	require.NoError(t, err)
	assert.Equal(t, config.BackendSQLite, root.Config().Store.Backend)
	assert.Equal(t, "from-file.db", root.Config().Store.SQLitePath)
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	_, _, err := runRoot(t, newMockTaskClient(), "list", "--store", "postgres")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
	assert.Contains(t, err.Error(), "store.backend")
}

func TestRootCommand_Help(t *testing.T) {
	_, out, err := runRoot(t, nil, "--help")
	require.NoError(t, err)
	for _, name := range []string{"serve", "tui", "list", "add", "edit", "done", "undone", "delete", "output"} {
		assert.Contains(t, out, name)
	}
}

func TestRootCommand_Serve(t *testing.T) {
	port := freePort(t)
	dbPath := filepath.Join(t.TempDir(), "serve.db")

	root := NewRootCommand().WithEnvFile("")
	var logs bytes.Buffer
	root.SetOutput(&logs, &logs)
	root.SetArgs([]string{"serve", "--store", "sqlite", "--sqlite-path", dbPath, "--port", strconv.Itoa(port)})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- root.Execute(ctx) }()

	url := "http://127.0.0.1:" + strconv.Itoa(port) + "/readyz"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
	assert.FileExists(t, dbPath)
}

func TestRootCommand_ServeStoreUnavailable(t *testing.T) {
	t.Setenv("TM_STORE_CONNECT_TIMEOUT", "200ms")

	_, _, err := runRoot(t, nil, "serve", "--store", "mongo", "--mongo-uri", "mongodb://127.0.0.1:1/taskmanager", "--port", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to mongo")
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}
