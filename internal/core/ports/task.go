package ports

import (
	"context"
	"time"

	"github.com/agencydesk/crm-api/internal/core/domain"
)

// TaskRepository persists tasks. Status values cross this boundary in the
// board vocabulary; repositories translate to the stored spelling.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	// SetStatus updates exactly one task's status field. Calls for
	// different task ids are independent and carry no ordering guarantee.
	SetStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

// CreateTaskInput carries the data for a new task. Status defaults to todo
// when empty.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	DueDate     *time.Time
	AssigneeID  string
	OrderID     string
}

// UpdateTaskInput carries an explicit (non-drag) task edit.
type UpdateTaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	DueDate     *time.Time
	AssigneeID  string
}

// BoardColumn is one column of the rendered board.
type BoardColumn struct {
	ID     string         `json:"id"`
	Status string         `json:"status"`
	Tasks  []*domain.Task `json:"tasks"`
}

// MoveResult reports what a completed drop did.
type MoveResult struct {
	Task *domain.Task
	// Moved is false for the two no-op cases: an unrecognised drop target,
	// and a drop onto the task's current column.
	Moved bool
}

// TaskService defines the board use cases.
type TaskService interface {
	Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	Board(ctx context.Context) ([]BoardColumn, error)
	Update(ctx context.Context, id string, in UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, id string) error

	// DragStart records actorID lifting taskID; DragEnd commits at most one
	// status write and always clears the gesture slot first.
	DragStart(ctx context.Context, actorID, taskID string) error
	DragCancel(actorID string)
	DragEnd(ctx context.Context, actorID, targetColumn string) (*MoveResult, error)

	// Move is the drag-independent form: apply a drop of taskID onto
	// targetColumn for actorID's board.
	Move(ctx context.Context, actorID, taskID, targetColumn string) (*MoveResult, error)
}

// Notifier is the notification sink for mutation outcomes. Delivery is
// best-effort and never blocks the caller.
type Notifier interface {
	Success(recipientID, message string)
	Error(recipientID, message string)
	Info(recipientID, message string)
}
