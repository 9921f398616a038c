package mongo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

// taskDocument is the stored shape of a task.
type taskDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Completed   bool               `bson:"completed"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func newDocument(id primitive.ObjectID, task domain.NewTask, now time.Time) taskDocument {
	return taskDocument{
		ID:          id,
		Title:       task.Title,
		Description: task.Description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (d taskDocument) toDomain() domain.Task {
	return domain.Task{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Completed:   d.Completed,
		CreatedAt:   domain.Timestamp(d.CreatedAt),
		UpdatedAt:   domain.Timestamp(d.UpdatedAt),
	}
}

// parseID converts a hex id into an ObjectID.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errors.NewValidationError(fmt.Sprintf("invalid task id: %s", id), err).
			WithContext("field", "id")
	}
	return oid, nil
}

// updateDocument builds the update for patch. An empty description removes the field.
func updateDocument(patch domain.TaskPatch, now time.Time) bson.D {
	set := bson.D{}
	unset := bson.D{}

	if patch.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *patch.Title})
	}
	if patch.Description != nil {
		if *patch.Description == "" {
			unset = append(unset, bson.E{Key: "description", Value: ""})
		} else {
			set = append(set, bson.E{Key: "description", Value: *patch.Description})
		}
	}
	if patch.Completed != nil {
		set = append(set, bson.E{Key: "completed", Value: *patch.Completed})
	}
	set = append(set, bson.E{Key: "updatedAt", Value: now})

	update := bson.D{{Key: "$set", Value: set}}
	if len(unset) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unset})
	}
	return update
}
