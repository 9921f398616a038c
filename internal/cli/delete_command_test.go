package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes tasks", func(t *testing.T) {
		app, mock, out := setupTestApp(t)
		seeded := mock.seed("keep", "drop")

		require.NoError(t, NewDeleteCommand(app).Execute(ctx, []string{seeded[1].ID}))

		require.Len(t, mock.tasks, 1)
		assert.Equal(t, "keep", mock.tasks[0].Title)
		assert.Equal(t, "Deleted task "+seeded[1].ID+"\n", out.String())
	})

	t.Run("unknown id", func(t *testing.T) {
		app, _, _ := setupTestApp(t)

		err := NewDeleteCommand(app).Execute(ctx, []string{"missing"})
		require.Error(t, err)
		assert.Equal(t, "failed to delete task: task not found: missing", err.Error())
		assert.True(t, app.errorHandler.IsNotFoundError(err))
	})

	t.Run("requires an id", func(t *testing.T) {
		app, _, _ := setupTestApp(t)

		err := NewDeleteCommand(app).Execute(ctx, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one task id is required")
	})
}
