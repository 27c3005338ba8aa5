package task

import (
	"log/slog"
	"time"

	"github.com/amonks/tasks/internal/paths"
	"github.com/go-git/go-billy/v5"
)

// Manager owns an in-memory collection of tasks and persists it to a JSON
// file. Iteration follows insertion order.
//
// A Manager does no locking; callers sharing one across goroutines must
// serialize access themselves.
type Manager struct {
	tasks       map[int]*Task
	order       []int
	storageFile string
	fs          billy.Filesystem
	hostPaths   bool
	ids         *Sequence
	now         func() time.Time
	logger      *slog.Logger
}

// OpenOptions configures how a Manager is opened.
type OpenOptions struct {
	// FS is the filesystem the task file lives on. Defaults to the OS
	// filesystem, where relative paths resolve against the working directory.
	FS billy.Filesystem

	// Sequence issues ids for new tasks. Defaults to a fresh sequence.
	// Share one Sequence between managers to keep ids unique across them.
	Sequence *Sequence

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Logger receives debug diagnostics. Defaults to discarding them.
	Logger *slog.Logger
}

// Open returns a manager backed by storageFile (DefaultStorageFile if empty).
// An existing file is loaded eagerly and a load failure fails Open;
// a missing file yields an empty manager.
func Open(storageFile string, opts OpenOptions) (*Manager, error) {
	if storageFile == "" {
		storageFile = DefaultStorageFile
	}
	hostPaths := opts.FS == nil
	if hostPaths {
		opts.FS = paths.HostFS()
	}
	if opts.Sequence == nil {
		opts.Sequence = NewSequence()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	m := &Manager{
		tasks:       make(map[int]*Task),
		storageFile: storageFile,
		fs:          opts.FS,
		hostPaths:   hostPaths,
		ids:         opts.Sequence,
		now:         opts.Now,
		logger:      opts.Logger,
	}

	if _, err := m.Load(""); err != nil {
		return nil, err
	}
	return m, nil
}

// StorageFile returns the path Save and Load use by default.
func (m *Manager) StorageFile() string {
	return m.storageFile
}

// Len returns the number of tasks.
func (m *Manager) Len() int {
	return len(m.order)
}

// Tasks returns copies of all tasks in insertion order.
func (m *Manager) Tasks() []Task {
	result := make([]Task, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.tasks[id].clone())
	}
	return result
}

func (m *Manager) each(fn func(t *Task)) {
	for _, id := range m.order {
		fn(m.tasks[id])
	}
}
