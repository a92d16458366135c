package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"FieldOps-App/internal/domain/model"
	"FieldOps-App/internal/domain/repository"
)

// MemoryWorkSessionsRepository インメモリの勤務セッションリポジトリ。
// ローカル実行とテストで使用する
type MemoryWorkSessionsRepository struct {
	mu       sync.RWMutex
	sessions map[string]*model.WorkSession // セッションIDがキー
}

// NewMemoryWorkSessionsRepository は新しいインメモリリポジトリを作成する
func NewMemoryWorkSessionsRepository() repository.WorkSessionsRepository {
	return &MemoryWorkSessionsRepository{
		sessions: make(map[string]*model.WorkSession),
	}
}

func (r *MemoryWorkSessionsRepository) Create(ctx context.Context, session *model.WorkSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.ID]; ok {
		return fmt.Errorf("セッションID %s は既に存在します", session.ID)
	}
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *MemoryWorkSessionsRepository) Update(ctx context.Context, session *model.WorkSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.ID]; !ok {
		return fmt.Errorf("セッションID %s が見つかりません", session.ID)
	}
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *MemoryWorkSessionsRepository) FindOpenByWorker(ctx context.Context, workerID string) (*model.WorkSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.sessions {
		if s.WorkerID == workerID && s.IsOpen() {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *MemoryWorkSessionsRepository) ListByWorker(ctx context.Context, workerID string, limit int) ([]*model.WorkSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.WorkSession
	for _, s := range r.sessions {
		if s.WorkerID == workerID {
			copied := *s
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ClockInAt.After(result[j].ClockInAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
