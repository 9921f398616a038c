package sqlite

import (
	"task-manager/internal/domain"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// taskColumns matches the scan order of ScanTask.
const taskColumns = "seq, id, title, description, completed, created_at, updated_at"

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*domain.Task, error) {
	var record taskRecord
	err := scanner.Scan(
		&record.Seq,
		&record.ID,
		&record.Title,
		&record.Description,
		&record.Completed,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task, err := record.toDomain()
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
