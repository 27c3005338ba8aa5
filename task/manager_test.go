package task

import (
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
)

// fixedClock returns a clock that advances one second per call.
func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		now := current
		current = current.Add(time.Second)
		return now
	}
}

func openTestManager(t *testing.T) (*Manager, billy.Filesystem) {
	t.Helper()

	fs := memfs.New()
	m, err := Open("tasks.json", OpenOptions{FS: fs, Now: fixedClock(testNow)})
	if err != nil {
		t.Fatalf("failed to open manager: %v", err)
	}
	return m, fs
}

// seedTasks mirrors a typical board: four tasks across priorities, statuses
// and projects.
func seedTasks(t *testing.T, m *Manager) []int {
	t.Helper()

	fixtures := []struct {
		title    string
		priority Priority
		status   Status
		project  *string
	}{
		{"Fix login", PriorityHigh, StatusTodo, StringPtr("PROJ-1")},
		{"Write docs", PriorityMedium, StatusInProgress, StringPtr("PROJ-1")},
		{"Clean desk", PriorityLow, StatusTodo, nil},
		{"Deploy", PriorityHigh, StatusDone, StringPtr("PROJ-2")},
	}

	ids := make([]int, 0, len(fixtures))
	for _, fx := range fixtures {
		id, err := m.Add(fx.title, AddOptions{Priority: fx.priority})
		if err != nil {
			t.Fatalf("failed to add %q: %v", fx.title, err)
		}
		if fx.status != StatusTodo {
			if err := m.Update(id, UpdateOptions{Status: StatusPtr(fx.status)}); err != nil {
				t.Fatalf("failed to set status on %q: %v", fx.title, err)
			}
		}
		if fx.project != nil {
			if err := m.AssignProject(id, fx.project); err != nil {
				t.Fatalf("failed to assign %q: %v", fx.title, err)
			}
		}
		ids = append(ids, id)
	}
	return ids
}

func TestOpen_MissingFileGivesEmptyManager(t *testing.T) {
	m, _ := openTestManager(t)

	if m.Len() != 0 {
		t.Errorf("expected empty manager, got %d tasks", m.Len())
	}
	if m.StorageFile() != "tasks.json" {
		t.Errorf("expected storage file tasks.json, got %q", m.StorageFile())
	}
}

func TestOpen_DefaultStorageFile(t *testing.T) {
	m, err := Open("", OpenOptions{FS: memfs.New()})
	if err != nil {
		t.Fatalf("failed to open manager: %v", err)
	}
	if m.StorageFile() != DefaultStorageFile {
		t.Errorf("expected %q, got %q", DefaultStorageFile, m.StorageFile())
	}
}

func TestManager_TasksReturnsCopies(t *testing.T) {
	m, _ := openTestManager(t)
	ids := seedTasks(t, m)

	tasks := m.Tasks()
	if len(tasks) != len(ids) {
		t.Fatalf("expected %d tasks, got %d", len(ids), len(tasks))
	}
	for i, id := range ids {
		if tasks[i].ID != id {
			t.Errorf("expected insertion order, position %d has id %d want %d", i, tasks[i].ID, id)
		}
	}

	tasks[0].Title = "changed"
	*tasks[0].ProjectID = "changed"
	got, _ := m.Get(ids[0])
	if got.Title != "Fix login" || !got.HasProject("PROJ-1") {
		t.Errorf("expected manager state to be unaffected by caller mutation, got %+v", got)
	}
}

func TestManager_SharedSequence(t *testing.T) {
	seq := NewSequence()
	first, err := Open("a.json", OpenOptions{FS: memfs.New(), Sequence: seq})
	if err != nil {
		t.Fatalf("open first: %v", err)
	}
	second, err := Open("b.json", OpenOptions{FS: memfs.New(), Sequence: seq})
	if err != nil {
		t.Fatalf("open second: %v", err)
	}

	a, _ := first.Add("a", AddOptions{})
	b, _ := second.Add("b", AddOptions{})
	if a == b {
		t.Errorf("expected distinct ids across managers sharing a sequence, got %d twice", a)
	}
}
