package repository

import (
	"FieldOps-App/internal/domain/model"
	"context"
)

// BuildingsRepository 建物参照データへのアクセスを提供するインターフェース
type BuildingsRepository interface {
	// GetByID は指定されたIDの建物を取得する
	GetByID(ctx context.Context, id string) (*model.Building, error)

	// GetByIDs は指定されたID群の建物をIDをキーとするマップで取得する
	GetByIDs(ctx context.Context, ids []string) (map[string]*model.Building, error)

	// GetByBoundingBox は境界ボックス内の建物を取得する（管理エリア表示用）
	GetByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]*model.Building, error)
}
