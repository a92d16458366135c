package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"FieldOps-App/internal/domain/helper"
	"FieldOps-App/internal/domain/model"
	"FieldOps-App/internal/domain/repository"
	"FieldOps-App/internal/domain/service"
)

type RoutePlanUseCase interface {
	// GeneratePlan は作業員の指定日分のタスクから最適化された訪問計画を生成し、
	// キャッシュに保存してplan_id付きで返す
	GeneratePlan(ctx context.Context, req *model.RoutePlanRequest) (*model.RoutePlan, error)

	// GetPlan は指定されたplan_idの計画をキャッシュから取得する
	GetPlan(ctx context.Context, planID string) (*model.RoutePlan, error)
}

// routePlanUseCaseImpl はRoutePlanUseCaseの実装
type routePlanUseCaseImpl struct {
	tasks     repository.TasksRepository
	buildings repository.BuildingsRepository
	plans     repository.RoutePlansRepository
	optimizer *service.RouteOptimizerService
	ttlHours  int
}

// NewRoutePlanUseCase は新しいRoutePlanUseCaseインスタンスを作成。
// plansがnilの場合はキャッシュせずに計画を返す（ローカル実行用）
func NewRoutePlanUseCase(
	tasks repository.TasksRepository,
	buildings repository.BuildingsRepository,
	plans repository.RoutePlansRepository,
	optimizer *service.RouteOptimizerService,
) RoutePlanUseCase {
	return &routePlanUseCaseImpl{
		tasks:     tasks,
		buildings: buildings,
		plans:     plans,
		optimizer: optimizer,
		ttlHours:  model.DefaultRoutePlanTTLHours,
	}
}

// GeneratePlan は作業員の指定日分のタスクから最適化された訪問計画を生成する
func (u *routePlanUseCaseImpl) GeneratePlan(ctx context.Context, req *model.RoutePlanRequest) (*model.RoutePlan, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("日付の形式が不正です (YYYY-MM-DD): %w", err)
	}

	tasks, err := u.tasks.ListByWorkerAndDate(ctx, req.WorkerID, date)
	if err != nil {
		return nil, fmt.Errorf("タスクの取得失敗: %w", err)
	}

	// 期限を過ぎた未完了タスクはこのタイミングでoverdueに遷移させる
	now := time.Now()
	for _, task := range tasks {
		if task.MarkOverdueIfPast(now) {
			if err := u.tasks.UpdateStatus(ctx, task.ID, model.TaskStatusOverdue); err != nil {
				log.Printf("⚠️ タスク %s のステータス更新失敗: %v", task.ID, err)
			} else {
				log.Printf("📋 タスク %s を「%s」に更新", task.ID, model.GetTaskStatusJapaneseName(model.TaskStatusOverdue))
			}
		}
	}

	// タスクが参照する建物だけを取得する
	buildings := map[string]*model.Building{}
	if ids := helper.DistinctBuildingIDs(tasks); len(ids) > 0 {
		buildings, err = u.buildings.GetByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("建物の取得失敗: %w", err)
		}
	}

	plan, err := u.optimizer.Optimize(req.WorkerID, tasks, buildings, req.StartLocation.ToLatLng(), date)
	if err != nil {
		return nil, fmt.Errorf("ルート最適化に失敗: %w", err)
	}

	log.Printf("✅ ルート計画生成: worker=%s date=%s stops=%d distance=%.1fkm",
		req.WorkerID, req.Date, len(plan.OrderedStops), plan.TotalDistanceKm)

	if u.plans == nil {
		return plan, nil
	}

	saved, err := u.plans.SaveRoutePlan(ctx, plan, u.ttlHours)
	if err != nil {
		// キャッシュ保存の失敗で計画自体を落とさない（計画は再計算可能な派生データ）
		log.Printf("⚠️ ルート計画のキャッシュ保存失敗: %v", err)
		return plan, nil
	}
	return saved, nil
}

// GetPlan は指定されたplan_idの計画をキャッシュから取得する
func (u *routePlanUseCaseImpl) GetPlan(ctx context.Context, planID string) (*model.RoutePlan, error) {
	if u.plans == nil {
		return nil, fmt.Errorf("ルート計画キャッシュが構成されていません")
	}
	return u.plans.GetRoutePlan(ctx, planID)
}
