package sqlite

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow scans a fixed set of values
type fakeRow struct {
	values []interface{}
	err    error
}

func (r fakeRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *string:
			*p = r.values[i].(string)
		case *bool:
			*p = r.values[i].(bool)
		}
	}
	return nil
}

type fakeRows struct {
	rows []fakeRow
	pos  int
}

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos <= len(r.rows)
}

func (r *fakeRows) Scan(dest ...interface{}) error {
	return r.rows[r.pos-1].Scan(dest...)
}

func (r *fakeRows) Err() error { return nil }

func taskRow(id, title, createdAt string) fakeRow {
	return fakeRow{values: []interface{}{int64(1), id, title, "", false, createdAt, createdAt}}
}

func TestScanTask(t *testing.T) {
	task, err := ScanTask(taskRow("abc", "Buy milk", "2024-01-15T10:30:45.000Z"))
	require.NoError(t, err)

	assert.Equal(t, "abc", task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.False(t, task.Completed)
	assert.True(t, task.CreatedAt.Equal(time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC)))
}

func TestScanTask_Errors(t *testing.T) {
	_, err := ScanTask(fakeRow{err: stderrors.New("boom")})
	assert.Error(t, err)

	_, err = ScanTask(taskRow("abc", "Buy milk", "not a time"))
	assert.Error(t, err)
}

func TestScanTasks(t *testing.T) {
	empty, err := ScanTasks(&fakeRows{})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)

	tasks, err := ScanTasks(&fakeRows{rows: []fakeRow{
		taskRow("a", "first", "2024-01-15T10:30:45.000Z"),
		taskRow("b", "second", "2024-01-15T10:30:46.000Z"),
	}})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "a", tasks[0].ID)
	assert.Equal(t, "b", tasks[1].ID)
}
