package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"FieldOps-App/internal/domain/model"
	"FieldOps-App/internal/domain/repository"
)

// MemoryRoutePlansRepository インメモリのルート計画キャッシュ。
// TTLは保持するが期限切れの掃除は行わない（ローカル実行・テスト用）
type MemoryRoutePlansRepository struct {
	mu    sync.RWMutex
	plans map[string]*model.RoutePlan
}

// NewMemoryRoutePlansRepository は新しいインメモリキャッシュを作成する
func NewMemoryRoutePlansRepository() repository.RoutePlansRepository {
	return &MemoryRoutePlansRepository{
		plans: make(map[string]*model.RoutePlan),
	}
}

func (r *MemoryRoutePlansRepository) SaveRoutePlan(ctx context.Context, plan *model.RoutePlan, ttlHours int) (*model.RoutePlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := *plan
	saved.PlanID = fmt.Sprintf("plan_%s", uuid.New().String())
	r.plans[saved.PlanID] = &saved
	return &saved, nil
}

func (r *MemoryRoutePlansRepository) GetRoutePlan(ctx context.Context, planID string) (*model.RoutePlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plan, ok := r.plans[planID]
	if !ok {
		return nil, fmt.Errorf("ルート計画が見つかりません: %s", planID)
	}
	copied := *plan
	return &copied, nil
}
