package tasks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/google/uuid"
)

type memoryEntry struct {
	task models.Task
	seq  uint64
}

// InMemoryRepository keeps tasks in process memory. Tasks created within the
// same clock tick are still listed newest first.
type InMemoryRepository struct {
	mu    sync.RWMutex
	tasks map[string]memoryEntry
	seq   uint64
	now   func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{tasks: make(map[string]memoryEntry), now: time.Now}
}

func (r *InMemoryRepository) Create(_ context.Context, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := r.now().UTC()
	task.CreatedAt, task.UpdatedAt = now, now

	r.seq++
	r.tasks[task.ID] = memoryEntry{task: *task, seq: r.seq}

	out := *task
	return &out, nil
}

func (r *InMemoryRepository) List(_ context.Context, ownerID, query string) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(query)
	entries := make([]memoryEntry, 0)
	for _, e := range r.tasks {
		if e.task.OwnerID != ownerID {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(e.task.Title), needle) {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.task.CreatedAt.Equal(b.task.CreatedAt) {
			return a.task.CreatedAt.After(b.task.CreatedAt)
		}
		return a.seq > b.seq
	})

	result := make([]models.Task, len(entries))
	for i, e := range entries {
		result[i] = e.task
	}
	return result, nil
}

func (r *InMemoryRepository) Update(_ context.Context, ownerID, id string, patch models.TaskPatch) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.tasks[id]
	if !ok || e.task.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}

	patch.Apply(&e.task)
	e.task.UpdatedAt = r.now().UTC()
	r.tasks[id] = e

	out := e.task
	return &out, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.tasks[id]
	if !ok || e.task.OwnerID != ownerID {
		return common.ErrorNotFound
	}
	delete(r.tasks, id)
	return nil
}
