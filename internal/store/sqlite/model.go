package sqlite

import (
	"task-manager/internal/domain"
)

// taskRecord is a row of the tasks table.
// seq only orders rows inserted within the same millisecond.
type taskRecord struct {
	Seq         int64
	ID          string
	Title       string
	Description string
	Completed   bool
	CreatedAt   string
	UpdatedAt   string
}

// toDomain converts a row to a domain Task.
func (r taskRecord) toDomain() (domain.Task, error) {
	createdAt, err := ParseTimeFromDB(r.CreatedAt)
	if err != nil {
		return domain.Task{}, err
	}
	updatedAt, err := ParseTimeFromDB(r.UpdatedAt)
	if err != nil {
		return domain.Task{}, err
	}
	return domain.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}
