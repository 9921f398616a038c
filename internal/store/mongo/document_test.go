package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

func TestParseID(t *testing.T) {
	oid := primitive.NewObjectID()

	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "valid hex", id: oid.Hex()},
		{name: "empty", id: "", wantErr: true},
		{name: "not hex", id: "not-an-object-id", wantErr: true},
		{name: "uuid", id: "3f2a9b7e-1c4d-4e8f-9a0b-2c3d4e5f6a7b", wantErr: true},
		{name: "too short", id: "abc123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseID(tt.id)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, oid, got)
		})
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	oid := primitive.NewObjectID()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	doc := newDocument(oid, domain.NewTask{Title: "Buy milk", Description: "2 litres"}, now)

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var decoded taskDocument
	require.NoError(t, bson.Unmarshal(raw, &decoded))

	task := decoded.toDomain()
	assert.Equal(t, oid.Hex(), task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "2 litres", task.Description)
	assert.False(t, task.Completed)
	assert.True(t, task.CreatedAt.Equal(now))
	assert.True(t, task.UpdatedAt.Equal(now))
	assert.Equal(t, time.UTC, task.CreatedAt.Location())
}

func TestDocumentOmitsEmptyDescription(t *testing.T) {
	doc := newDocument(primitive.NewObjectID(), domain.NewTask{Title: "Buy milk"}, time.Now())

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	_, err = bson.Raw(raw).LookupErr("description")
	assert.Error(t, err)
	assert.Equal(t, "Buy milk", bson.Raw(raw).Lookup("title").StringValue())
}

func TestUpdateDocument(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		patch    domain.TaskPatch
		expected bson.D
	}{
		{
			name:  "empty patch only refreshes updatedAt",
			patch: domain.TaskPatch{},
			expected: bson.D{
				{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: now}}},
			},
		},
		{
			name:  "completed only",
			patch: domain.TaskPatch{Completed: domain.BoolPtr(true)},
			expected: bson.D{
				{Key: "$set", Value: bson.D{
					{Key: "completed", Value: true},
					{Key: "updatedAt", Value: now},
				}},
			},
		},
		{
			name: "all fields",
			patch: domain.TaskPatch{
				Title:       domain.StringPtr("Final"),
				Description: domain.StringPtr("notes"),
				Completed:   domain.BoolPtr(false),
			},
			expected: bson.D{
				{Key: "$set", Value: bson.D{
					{Key: "title", Value: "Final"},
					{Key: "description", Value: "notes"},
					{Key: "completed", Value: false},
					{Key: "updatedAt", Value: now},
				}},
			},
		},
		{
			name:  "empty description is unset",
			patch: domain.TaskPatch{Description: domain.StringPtr("")},
			expected: bson.D{
				{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: now}}},
				{Key: "$unset", Value: bson.D{{Key: "description", Value: ""}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, updateDocument(tt.patch, now))
		})
	}
}
