package task

import (
	"errors"
	"fmt"
	"testing"
)

func TestManager_Add(t *testing.T) {
	m, _ := openTestManager(t)

	id, err := m.Add("Buy groceries", AddOptions{Description: "Milk and eggs", Priority: PriorityHigh})
	if err != nil {
		t.Fatalf("failed to add task: %v", err)
	}

	got, ok := m.Get(id)
	if !ok {
		t.Fatalf("expected task %d to exist", id)
	}
	if got.Title != "Buy groceries" || got.Description != "Milk and eggs" || got.Priority != PriorityHigh {
		t.Errorf("unexpected task fields: %+v", got)
	}
	if got.Status != StatusTodo {
		t.Errorf("expected status TODO, got %q", got.Status)
	}
	if got.CompletedAt != nil {
		t.Errorf("expected nil completed_at, got %v", got.CompletedAt)
	}
	if !got.CreatedAt.Equal(testNow) {
		t.Errorf("expected created_at from the clock, got %v", got.CreatedAt)
	}
}

func TestManager_Add_Defaults(t *testing.T) {
	m, _ := openTestManager(t)

	id, err := m.Add("Nouvelle tâche", AddOptions{})
	if err != nil {
		t.Fatalf("failed to add task: %v", err)
	}
	got, _ := m.Get(id)
	if got.Priority != PriorityMedium {
		t.Errorf("expected MEDIUM priority, got %q", got.Priority)
	}
	if got.Description != "" {
		t.Errorf("expected empty description, got %q", got.Description)
	}
}

func TestManager_Add_Invalid(t *testing.T) {
	m, _ := openTestManager(t)

	if _, err := m.Add("", AddOptions{}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for empty title, got %v", err)
	}
	if _, err := m.Add("Task", AddOptions{Priority: Priority("SOON")}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for bad priority, got %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("expected failed adds to store nothing, got %d tasks", m.Len())
	}

	id, err := m.Add("First valid", AddOptions{})
	if err != nil {
		t.Fatalf("failed to add task: %v", err)
	}
	if id != 1 {
		t.Errorf("expected failed adds not to consume ids, got id %d", id)
	}
}

func TestManager_Add_UniqueIDs(t *testing.T) {
	m, _ := openTestManager(t)

	seen := make(map[int]bool)
	for i := 0; i < 5; i++ {
		id, err := m.Add(fmt.Sprintf("Task %d", i), AddOptions{})
		if err != nil {
			t.Fatalf("failed to add task: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != 5 {
		t.Errorf("expected 5 unique ids, got %d", len(seen))
	}
}

func TestManager_Get_Missing(t *testing.T) {
	m, _ := openTestManager(t)

	if _, ok := m.Get(999999); ok {
		t.Error("expected unknown id to be absent")
	}
}

func TestManager_ByStatusAndPriority(t *testing.T) {
	m, _ := openTestManager(t)

	if got := m.ByStatus(StatusTodo); len(got) != 0 {
		t.Errorf("expected no tasks on empty manager, got %d", len(got))
	}

	seedTasks(t, m)

	todo := m.ByStatus(StatusTodo)
	if len(todo) != 2 {
		t.Errorf("expected 2 TODO tasks, got %d", len(todo))
	}
	for _, task := range todo {
		if task.Status != StatusTodo {
			t.Errorf("unexpected status %q", task.Status)
		}
	}

	high := m.ByPriority(PriorityHigh)
	if len(high) != 2 {
		t.Fatalf("expected 2 HIGH tasks, got %d", len(high))
	}
	if high[0].Title != "Fix login" || high[1].Title != "Deploy" {
		t.Errorf("expected insertion order, got %q then %q", high[0].Title, high[1].Title)
	}

	if got := m.ByPriority(PriorityUrgent); len(got) != 0 {
		t.Errorf("expected no URGENT tasks, got %d", len(got))
	}
}

func TestManager_Update(t *testing.T) {
	m, _ := openTestManager(t)
	id, _ := m.Add("Original", AddOptions{Description: "Before", Priority: PriorityLow})

	err := m.Update(id, UpdateOptions{
		Title:        StringPtr("Titre mis à jour"),
		Description:  StringPtr("Description mise à jour"),
		PriorityName: StringPtr("URGENT"),
	})
	if err != nil {
		t.Fatalf("failed to update task: %v", err)
	}

	got, _ := m.Get(id)
	if got.Title != "Titre mis à jour" || got.Description != "Description mise à jour" {
		t.Errorf("unexpected text fields: %+v", got)
	}
	if got.Priority != PriorityUrgent {
		t.Errorf("expected URGENT, got %q", got.Priority)
	}
	if got.Status != StatusTodo {
		t.Errorf("expected status to be untouched, got %q", got.Status)
	}
}

func TestManager_Update_NotFound(t *testing.T) {
	m, _ := openTestManager(t)

	err := m.Update(999, UpdateOptions{Title: StringPtr("Nouveau titre")})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestManager_Update_EmptyTitleAllowed(t *testing.T) {
	m, _ := openTestManager(t)
	id, _ := m.Add("Has a title", AddOptions{})

	if err := m.Update(id, UpdateOptions{Title: StringPtr("")}); err != nil {
		t.Fatalf("expected empty title update to succeed, got %v", err)
	}
	got, _ := m.Get(id)
	if got.Title != "" {
		t.Errorf("expected empty title, got %q", got.Title)
	}
}

func TestManager_Update_UnknownPriorityNameKeepsEarlierFields(t *testing.T) {
	m, _ := openTestManager(t)
	id, _ := m.Add("Before", AddOptions{Priority: PriorityLow})

	err := m.Update(id, UpdateOptions{
		Title:        StringPtr("After"),
		PriorityName: StringPtr("INVALID_PRIORITY"),
		Status:       StatusPtr(StatusDone),
	})
	if !errors.Is(err, ErrUnknownEnumValue) {
		t.Fatalf("expected ErrUnknownEnumValue, got %v", err)
	}

	got, _ := m.Get(id)
	if got.Title != "After" {
		t.Errorf("expected title update to stay applied, got %q", got.Title)
	}
	if got.Priority != PriorityLow {
		t.Errorf("expected priority unchanged, got %q", got.Priority)
	}
	if got.Status != StatusTodo {
		t.Errorf("expected status after the failing field to be untouched, got %q", got.Status)
	}
}

func TestManager_Update_TypedPriorityIsNotValidated(t *testing.T) {
	m, _ := openTestManager(t)
	id, _ := m.Add("Task", AddOptions{})

	if err := m.Update(id, UpdateOptions{Priority: PriorityPtr(Priority("WHENEVER"))}); err != nil {
		t.Fatalf("expected typed priority to be assigned, got %v", err)
	}
	got, _ := m.Get(id)
	if got.Priority != Priority("WHENEVER") {
		t.Errorf("expected priority to be stored verbatim, got %q", got.Priority)
	}
}

func TestManager_Update_StatusIsStoredVerbatim(t *testing.T) {
	m, _ := openTestManager(t)
	id, _ := m.Add("Tâche de test", AddOptions{})

	if err := m.Update(id, UpdateOptions{Status: StatusPtr(Status("INVALIDE"))}); err != nil {
		t.Fatalf("expected unvalidated status update, got %v", err)
	}
	got, _ := m.Get(id)
	if got.Status != Status("INVALIDE") {
		t.Errorf("expected status INVALIDE, got %q", got.Status)
	}

	if err := m.Update(id, UpdateOptions{Status: StatusPtr(StatusInProgress)}); err != nil {
		t.Fatalf("failed to update status: %v", err)
	}
	got, _ = m.Get(id)
	if got.Status != StatusInProgress {
		t.Errorf("expected IN_PROGRESS, got %q", got.Status)
	}
}

func TestManager_Complete(t *testing.T) {
	m, _ := openTestManager(t)
	id, _ := m.Add("Finish me", AddOptions{})

	if err := m.Complete(id); err != nil {
		t.Fatalf("failed to complete task: %v", err)
	}
	got, _ := m.Get(id)
	if got.Status != StatusDone || got.CompletedAt == nil {
		t.Errorf("expected DONE with completed_at, got %+v", got)
	}

	if err := m.Complete(404); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestManager_Filter(t *testing.T) {
	m, _ := openTestManager(t)
	seedTasks(t, m)

	tests := []struct {
		name   string
		filter Filter
		titles []string
	}{
		{"no criteria", Filter{}, []string{"Fix login", "Write docs", "Clean desk", "Deploy"}},
		{"status", Filter{Status: StatusPtr(StatusDone)}, []string{"Deploy"}},
		{"priority", Filter{Priority: PriorityPtr(PriorityHigh)}, []string{"Fix login", "Deploy"}},
		{"project", Filter{ProjectID: StringPtr("PROJ-1")}, []string{"Fix login", "Write docs"}},
		{"status and priority", Filter{Status: StatusPtr(StatusTodo), Priority: PriorityPtr(PriorityHigh)}, []string{"Fix login"}},
		{"all three", Filter{Status: StatusPtr(StatusTodo), Priority: PriorityPtr(PriorityHigh), ProjectID: StringPtr("PROJ-1")}, []string{"Fix login"}},
		{"all three no match", Filter{Status: StatusPtr(StatusDone), Priority: PriorityPtr(PriorityHigh), ProjectID: StringPtr("PROJ-1")}, nil},
		{"unknown project", Filter{ProjectID: StringPtr("INEXISTANT")}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Filter(tt.filter)
			if len(got) != len(tt.titles) {
				t.Fatalf("expected %d tasks, got %d: %+v", len(tt.titles), len(got), got)
			}
			for i, title := range tt.titles {
				if got[i].Title != title {
					t.Errorf("position %d: expected %q, got %q", i, title, got[i].Title)
				}
			}
		})
	}
}

func TestManager_Filter_Empty(t *testing.T) {
	m, _ := openTestManager(t)

	if got := m.Filter(Filter{}); len(got) != 0 {
		t.Errorf("expected no tasks, got %d", len(got))
	}
}

func TestManager_Filter_UnassignedNeverMatchesProject(t *testing.T) {
	m, _ := openTestManager(t)
	with, _ := m.Add("Tâche avec project_id", AddOptions{})
	m.Add("Tâche sans project_id", AddOptions{})
	if err := m.AssignProject(with, StringPtr("PROJ1")); err != nil {
		t.Fatalf("assign: %v", err)
	}

	got := m.Filter(Filter{ProjectID: StringPtr("PROJ1")})
	if len(got) != 1 || got[0].ID != with {
		t.Errorf("expected only the assigned task, got %+v", got)
	}
}

func TestManager_Delete(t *testing.T) {
	m, _ := openTestManager(t)
	ids := seedTasks(t, m)

	if err := m.Delete(ids[1]); err != nil {
		t.Fatalf("failed to delete task: %v", err)
	}
	if _, ok := m.Get(ids[1]); ok {
		t.Error("expected deleted task to be absent")
	}
	if m.Len() != len(ids)-1 {
		t.Errorf("expected %d tasks, got %d", len(ids)-1, m.Len())
	}

	remaining := m.Tasks()
	if remaining[0].ID != ids[0] || remaining[1].ID != ids[2] || remaining[2].ID != ids[3] {
		t.Errorf("expected order to be preserved after delete, got %+v", remaining)
	}

	if err := m.Delete(ids[1]); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestManager_Statistics_Empty(t *testing.T) {
	m, _ := openTestManager(t)

	stats := m.Statistics()
	if stats.Total != 0 || stats.Completed != 0 {
		t.Errorf("expected zero totals, got %+v", stats)
	}
	for _, priority := range ValidPriorities() {
		count, ok := stats.ByPriority[priority]
		if !ok || count != 0 {
			t.Errorf("expected %s present with 0, got %d (present=%v)", priority, count, ok)
		}
	}
	for _, status := range ValidStatuses() {
		count, ok := stats.ByStatus[status]
		if !ok || count != 0 {
			t.Errorf("expected %s present with 0, got %d (present=%v)", status, count, ok)
		}
	}
}

func TestManager_Statistics(t *testing.T) {
	m, _ := openTestManager(t)
	seedTasks(t, m)

	stats := m.Statistics()
	if stats.Total != 4 {
		t.Errorf("expected total 4, got %d", stats.Total)
	}
	if stats.Completed != 1 {
		t.Errorf("expected completed 1, got %d", stats.Completed)
	}

	wantPriority := map[Priority]int{PriorityHigh: 2, PriorityMedium: 1, PriorityLow: 1, PriorityUrgent: 0}
	for priority, want := range wantPriority {
		if got := stats.ByPriority[priority]; got != want {
			t.Errorf("by_priority[%s]: expected %d, got %d", priority, want, got)
		}
	}
	wantStatus := map[Status]int{StatusTodo: 2, StatusInProgress: 1, StatusDone: 1, StatusCancelled: 0}
	for status, want := range wantStatus {
		if got := stats.ByStatus[status]; got != want {
			t.Errorf("by_status[%s]: expected %d, got %d", status, want, got)
		}
	}
}

func TestManager_Statistics_HighHighLow(t *testing.T) {
	m, _ := openTestManager(t)
	for _, priority := range []Priority{PriorityHigh, PriorityHigh, PriorityLow} {
		if _, err := m.Add("Task", AddOptions{Priority: priority}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	got := m.Statistics().ByPriority
	want := map[Priority]int{PriorityHigh: 2, PriorityMedium: 0, PriorityLow: 1, PriorityUrgent: 0}
	if len(got) != len(want) {
		t.Fatalf("expected %d keys, got %v", len(want), got)
	}
	for priority, count := range want {
		if got[priority] != count {
			t.Errorf("%s: expected %d, got %d", priority, count, got[priority])
		}
	}
}

func TestManager_Statistics_IgnoresUnknownValuesInBreakdown(t *testing.T) {
	m, _ := openTestManager(t)
	id, _ := m.Add("Odd", AddOptions{})
	if err := m.Update(id, UpdateOptions{Status: StatusPtr(Status("INVALIDE"))}); err != nil {
		t.Fatalf("update: %v", err)
	}

	stats := m.Statistics()
	if stats.Total != 1 {
		t.Errorf("expected total 1, got %d", stats.Total)
	}
	if len(stats.ByStatus) != len(ValidStatuses()) {
		t.Errorf("expected only enumeration keys, got %v", stats.ByStatus)
	}
	if stats.ByPriority[PriorityMedium] != 1 {
		t.Errorf("expected MEDIUM count 1, got %d", stats.ByPriority[PriorityMedium])
	}
}
