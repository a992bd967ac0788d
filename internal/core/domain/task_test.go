package domain

import "testing"

func TestTaskStatus_Persisted(t *testing.T) {
	cases := []struct {
		status TaskStatus
		want   string
	}{
		{TaskTodo, "to_do"},
		{TaskWIP, "doing"},
		{TaskDone, "done"},
	}
	for _, c := range cases {
		if got := c.status.Persisted(); got != c.want {
			t.Errorf("Persisted(%q) = %q, want %q", c.status, got, c.want)
		}
	}
}

func TestTaskStatus_Persisted_UnknownFallsBackToBacklog(t *testing.T) {
	if got := TaskStatus("blocked").Persisted(); got != "to_do" {
		t.Errorf("unknown status must persist as to_do, got %q", got)
	}
	if got := TaskStatus("").Persisted(); got != "to_do" {
		t.Errorf("empty status must persist as to_do, got %q", got)
	}
}

func TestTaskStatusFromPersisted(t *testing.T) {
	cases := []struct {
		stored string
		want   TaskStatus
	}{
		{"to_do", TaskTodo},
		{"doing", TaskWIP},
		{"done", TaskDone},
	}
	for _, c := range cases {
		if got := TaskStatusFromPersisted(c.stored); got != c.want {
			t.Errorf("TaskStatusFromPersisted(%q) = %q, want %q", c.stored, got, c.want)
		}
	}
}

func TestTaskStatusFromPersisted_UnknownFallsBackToTodo(t *testing.T) {
	for _, stored := range []string{"", "archived", "todo", "wip"} {
		if got := TaskStatusFromPersisted(stored); got != TaskTodo {
			t.Errorf("TaskStatusFromPersisted(%q) = %q, want %q", stored, got, TaskTodo)
		}
	}
}

// Every board status must survive a write and read back unchanged.
func TestTaskStatus_RoundTrip(t *testing.T) {
	for _, s := range []TaskStatus{TaskTodo, TaskWIP, TaskDone} {
		if got := TaskStatusFromPersisted(s.Persisted()); got != s {
			t.Errorf("round trip of %q returned %q", s, got)
		}
	}
}

func TestValidTaskStatus(t *testing.T) {
	for _, s := range []TaskStatus{TaskTodo, TaskWIP, TaskDone} {
		if !ValidTaskStatus(s) {
			t.Errorf("ValidTaskStatus(%q) = false, want true", s)
		}
	}
	// The persisted-only spellings are not board statuses.
	for _, s := range []TaskStatus{"to_do", "doing", "", "cancelled"} {
		if ValidTaskStatus(s) {
			t.Errorf("ValidTaskStatus(%q) = true, want false", s)
		}
	}
}
