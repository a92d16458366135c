package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"FieldOps-App/internal/domain/model"
	"FieldOps-App/internal/domain/repository"
)

// MemoryTasksRepository インメモリの作業割り当てリポジトリ
type MemoryTasksRepository struct {
	mu    sync.RWMutex
	tasks map[string]*model.TaskAssignment
}

// NewMemoryTasksRepository は初期データ付きのインメモリリポジトリを作成する
func NewMemoryTasksRepository(tasks []*model.TaskAssignment) repository.TasksRepository {
	m := make(map[string]*model.TaskAssignment, len(tasks))
	for _, t := range tasks {
		m[t.ID] = t
	}
	return &MemoryTasksRepository{tasks: m}
}

func (r *MemoryTasksRepository) ListByWorkerAndDate(ctx context.Context, workerID string, date time.Time) ([]*model.TaskAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dateStr := date.Format("2006-01-02")
	var result []*model.TaskAssignment
	for _, t := range r.tasks {
		if t.WorkerID == workerID && t.DueAt.Format("2006-01-02") == dateStr {
			copied := *t
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *MemoryTasksRepository) UpdateStatus(ctx context.Context, taskID string, status string) error {
	if !model.IsValidTaskStatus(status) {
		return fmt.Errorf("無効なタスクステータスです: %s", status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[taskID]
	if !ok {
		return fmt.Errorf("タスクID %s が見つかりません", taskID)
	}
	t.Status = status
	return nil
}
