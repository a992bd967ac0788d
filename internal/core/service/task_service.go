package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/agencydesk/crm-api/internal/api/metrics"
	"github.com/agencydesk/crm-api/internal/core/board"
	"github.com/agencydesk/crm-api/internal/core/domain"
	"github.com/agencydesk/crm-api/internal/core/ports"
)

// TaskService implements the board use cases on top of the pure drag
// machine in the board package.
type TaskService struct {
	repo     ports.TaskRepository
	tracker  *board.Tracker
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, tracker *board.Tracker, notifier ports.Notifier, log zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, tracker: tracker, notifier: notifier, log: log}
}

func (s *TaskService) Create(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	status := in.Status
	if status == "" {
		status = domain.TaskTodo
	}
	if !domain.ValidTaskStatus(status) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, in.Status)
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		DueDate:     in.DueDate,
		AssigneeID:  in.AssigneeID,
		OrderID:     in.OrderID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	s.log.Info().Str("task_id", created.ID).Str("status", string(created.Status)).Msg("task created")
	return created, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TaskService) List(ctx context.Context) ([]*domain.Task, error) {
	return s.repo.List(ctx)
}

// Board groups all tasks into the three columns, in board order.
func (s *TaskService) Board(ctx context.Context) ([]ports.BoardColumn, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	statuses := []domain.TaskStatus{domain.TaskTodo, domain.TaskWIP, domain.TaskDone}
	columns := make([]ports.BoardColumn, 0, len(statuses))
	for _, st := range statuses {
		col := ports.BoardColumn{
			ID:     board.ColumnPrefix + string(st),
			Status: string(st),
			Tasks:  []*domain.Task{},
		}
		for _, t := range tasks {
			if t.Status == st {
				col.Tasks = append(col.Tasks, t)
			}
		}
		columns = append(columns, col)
	}
	return columns, nil
}

func (s *TaskService) Update(ctx context.Context, id string, in ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Status != "" && !domain.ValidTaskStatus(in.Status) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, in.Status)
	}

	if in.Title != "" {
		task.Title = in.Title
	}
	task.Description = in.Description
	if in.Status != "" {
		task.Status = in.Status
	}
	task.DueDate = in.DueDate
	task.AssigneeID = in.AssigneeID
	task.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// DragStart records actorID lifting taskID. The task must exist and only
// one gesture may be active per actor.
func (s *TaskService) DragStart(ctx context.Context, actorID, taskID string) error {
	if _, err := s.repo.FindByID(ctx, taskID); err != nil {
		return err
	}
	return s.tracker.Begin(actorID, taskID)
}

// DragCancel discards the active gesture without committing anything.
func (s *TaskService) DragCancel(actorID string) {
	s.tracker.Cancel(actorID)
}

// DragEnd clears the gesture slot first, then commits at most one status
// write for the task that was being dragged.
func (s *TaskService) DragEnd(ctx context.Context, actorID, targetColumn string) (*ports.MoveResult, error) {
	taskID, ok := s.tracker.End(actorID)
	if !ok {
		return nil, domain.ErrNoGesture
	}
	return s.Move(ctx, actorID, taskID, targetColumn)
}

// Move applies a drop of taskID onto targetColumn. Unrecognised targets
// and same-column drops return Moved=false without touching the store.
// A failed write is reported through the notifier; the board is left to
// refetch rather than rolled back here.
func (s *TaskService) Move(ctx context.Context, actorID, taskID, targetColumn string) (*ports.MoveResult, error) {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	next, ok := board.ResolveDrop(targetColumn)
	if !ok {
		metrics.TaskDropsIgnoredTotal.WithLabelValues("invalid_target").Inc()
		s.log.Debug().Str("task_id", taskID).Str("target", targetColumn).Msg("drop target not recognised, ignored")
		return &ports.MoveResult{Task: task, Moved: false}, nil
	}
	if next == task.Status {
		metrics.TaskDropsIgnoredTotal.WithLabelValues("same_column").Inc()
		return &ports.MoveResult{Task: task, Moved: false}, nil
	}

	updated, err := s.repo.SetStatus(ctx, taskID, next)
	if err != nil {
		s.notifier.Error(actorID, fmt.Sprintf("Could not move %q", task.Title))
		return nil, fmt.Errorf("move task: %w", err)
	}

	metrics.TaskMovesTotal.WithLabelValues(string(task.Status), string(next)).Inc()
	s.notifier.Success(actorID, fmt.Sprintf("%q moved to %s", updated.Title, next))
	s.log.Info().
		Str("task_id", taskID).
		Str("from", string(task.Status)).
		Str("to", string(next)).
		Msg("task moved")

	return &ports.MoveResult{Task: updated, Moved: true}, nil
}
