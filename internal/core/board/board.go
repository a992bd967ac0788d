// Package board implements the task board's drag-and-drop state machine:
// decoding drop targets into statuses and tracking the active gesture.
// The machine is pure; committing a transition is the task service's job.
package board

import (
	"strings"
	"sync"

	"github.com/agencydesk/crm-api/internal/core/domain"
)

// ColumnPrefix is stripped from drop-target ids to recover the status tag.
// The three valid columns are column-todo, column-wip, and column-done.
const ColumnPrefix = "column-"

// ResolveDrop decodes a drop-target column id into the status it stands
// for. Malformed ids are reported as not-ok, never as an error: drop
// targets come from UI internals and unrecognised ones are simply ignored.
func ResolveDrop(target string) (domain.TaskStatus, bool) {
	if !strings.HasPrefix(target, ColumnPrefix) {
		return "", false
	}
	s := domain.TaskStatus(strings.TrimPrefix(target, ColumnPrefix))
	if !domain.ValidTaskStatus(s) {
		return "", false
	}
	return s, true
}

// Transition decides what a completed drop does. It returns the new status
// and true when a commit is required, or false for the two no-op cases:
// an unrecognised target, and a drop onto the column the task is already
// in. The second case is what keeps repeated drops from issuing writes.
func Transition(current domain.TaskStatus, target string) (domain.TaskStatus, bool) {
	next, ok := ResolveDrop(target)
	if !ok {
		return "", false
	}
	if next == current {
		return "", false
	}
	return next, true
}

// Tracker records the active drag gesture per identity. The slot is
// single-valued: a second drag cannot start while one is active, and the
// slot is cleared synchronously at drag end, before any write is issued.
type Tracker struct {
	mu     sync.Mutex
	active map[string]string // identity id → task id being dragged
}

func NewTracker() *Tracker {
	return &Tracker{active: make(map[string]string)}
}

// Begin records taskID as the active drag for identityID. It fails with
// ErrGestureActive when a gesture is already in progress.
func (t *Tracker) Begin(identityID, taskID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, busy := t.active[identityID]; busy {
		return domain.ErrGestureActive
	}
	t.active[identityID] = taskID
	return nil
}

// Active returns the task currently being dragged by identityID, if any.
func (t *Tracker) Active(identityID string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	taskID, ok := t.active[identityID]
	return taskID, ok
}

// End clears the active slot and returns the task that was being dragged.
// Committing the transition happens after End returns, so the slot is
// always free again before any asynchronous work starts.
func (t *Tracker) End(identityID string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	taskID, ok := t.active[identityID]
	if ok {
		delete(t.active, identityID)
	}
	return taskID, ok
}

// Cancel drops the active gesture without committing anything.
func (t *Tracker) Cancel(identityID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.active, identityID)
}
