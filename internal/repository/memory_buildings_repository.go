package repository

import (
	"context"
	"fmt"
	"sync"

	"FieldOps-App/internal/domain/model"
	"FieldOps-App/internal/domain/repository"
)

// MemoryBuildingsRepository インメモリの建物リポジトリ。
// データロード時に投入された建物を以後変更せずに参照する
type MemoryBuildingsRepository struct {
	mu        sync.RWMutex
	buildings map[string]*model.Building
}

// NewMemoryBuildingsRepository は初期データ付きのインメモリリポジトリを作成する
func NewMemoryBuildingsRepository(buildings []*model.Building) repository.BuildingsRepository {
	m := make(map[string]*model.Building, len(buildings))
	for _, b := range buildings {
		m[b.ID] = b
	}
	return &MemoryBuildingsRepository{buildings: m}
}

func (r *MemoryBuildingsRepository) GetByID(ctx context.Context, id string) (*model.Building, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.buildings[id]
	if !ok {
		return nil, fmt.Errorf("建物ID %s が見つかりません", id)
	}
	return b, nil
}

func (r *MemoryBuildingsRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*model.Building, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*model.Building, len(ids))
	for _, id := range ids {
		b, ok := r.buildings[id]
		if !ok {
			return nil, fmt.Errorf("建物ID %s が見つかりません", id)
		}
		result[id] = b
	}
	return result, nil
}

func (r *MemoryBuildingsRepository) GetByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]*model.Building, error) {
	if minLng >= maxLng || minLat >= maxLat {
		return nil, fmt.Errorf("無効な境界ボックス: min値がmax値以上です")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Building
	for _, b := range r.buildings {
		ll := b.ToLatLng()
		if ll.Lng >= minLng && ll.Lng <= maxLng && ll.Lat >= minLat && ll.Lat <= maxLat {
			result = append(result, b)
		}
	}
	return result, nil
}
