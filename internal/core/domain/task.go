package domain

import "time"

// TaskStatus is the board-facing status vocabulary for tasks.
type TaskStatus string

const (
	TaskTodo TaskStatus = "todo"
	TaskWIP  TaskStatus = "wip"
	TaskDone TaskStatus = "done"
)

// The persisted store uses its own spelling for the same three states.
// Legacy data predates the board vocabulary, so the two sets differ.
const (
	persistedTodo = "to_do"
	persistedWIP  = "doing"
	persistedDone = "done"
)

var toPersisted = map[TaskStatus]string{
	TaskTodo: persistedTodo,
	TaskWIP:  persistedWIP,
	TaskDone: persistedDone,
}

var fromPersisted = map[string]TaskStatus{
	persistedTodo: TaskTodo,
	persistedWIP:  TaskWIP,
	persistedDone: TaskDone,
}

// Persisted converts a board status into its stored spelling. Unrecognised
// statuses map to "to_do" rather than failing, so that unexpected legacy
// values degrade to the backlog column instead of breaking reads.
func (s TaskStatus) Persisted() string {
	if p, ok := toPersisted[s]; ok {
		return p
	}
	return persistedTodo
}

// TaskStatusFromPersisted converts a stored spelling back to the board
// vocabulary, with the same "to_do" fallback for unknown values.
func TaskStatusFromPersisted(p string) TaskStatus {
	if s, ok := fromPersisted[p]; ok {
		return s
	}
	return TaskTodo
}

// ValidTaskStatus reports whether s is one of the three board states.
func ValidTaskStatus(s TaskStatus) bool {
	_, ok := toPersisted[s]
	return ok
}

// Task is a unit of work on the team board.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	AssigneeID  string     `json:"assignee_id,omitempty"`
	OrderID     string     `json:"order_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
