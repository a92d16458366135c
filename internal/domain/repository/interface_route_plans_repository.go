package repository

import (
	"FieldOps-App/internal/domain/model"
	"context"
)

// RoutePlansRepository 計算済みルート計画のキャッシュを提供するインターフェース。
// ルート計画は派生データなので、キャッシュが消えても再計算すればよい
type RoutePlansRepository interface {
	// SaveRoutePlan は計画をTTL付きで保存し、plan_idを付与して返す
	SaveRoutePlan(ctx context.Context, plan *model.RoutePlan, ttlHours int) (*model.RoutePlan, error)

	// GetRoutePlan は指定されたplan_idの計画を取得する
	GetRoutePlan(ctx context.Context, planID string) (*model.RoutePlan, error)
}
