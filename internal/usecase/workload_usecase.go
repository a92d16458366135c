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

type WorkloadUseCase interface {
	// BalanceSnapshots は集計済みスナップショットから負荷バランスを評価する
	BalanceSnapshots(snapshots []*model.WorkloadSnapshot) *model.WorkloadReport

	// ComputeCrewWorkload はチームの指定日分のスナップショットを構築して評価する
	ComputeCrewWorkload(ctx context.Context, workerIDs []string, date time.Time, start model.LatLng) (*model.WorkloadReport, []*model.WorkloadSnapshot, error)
}

// workloadUseCaseImpl はWorkloadUseCaseの実装。
// スナップショットは派生データとして都度計算し、呼び出し間で状態を共有しない
type workloadUseCaseImpl struct {
	tasks     repository.TasksRepository
	buildings repository.BuildingsRepository
	optimizer *service.RouteOptimizerService
	balancer  *service.WorkloadBalancerService
}

// NewWorkloadUseCase は新しいWorkloadUseCaseインスタンスを作成
func NewWorkloadUseCase(
	tasks repository.TasksRepository,
	buildings repository.BuildingsRepository,
	optimizer *service.RouteOptimizerService,
	balancer *service.WorkloadBalancerService,
) WorkloadUseCase {
	return &workloadUseCaseImpl{
		tasks:     tasks,
		buildings: buildings,
		optimizer: optimizer,
		balancer:  balancer,
	}
}

// BalanceSnapshots は集計済みスナップショットから負荷バランスを評価する
func (u *workloadUseCaseImpl) BalanceSnapshots(snapshots []*model.WorkloadSnapshot) *model.WorkloadReport {
	return u.balancer.Balance(snapshots)
}

// ComputeCrewWorkload はチームの指定日分のスナップショットを構築して評価する。
// 効率は各作業員のルート計画（作業時間＋移動時間）から算出する
func (u *workloadUseCaseImpl) ComputeCrewWorkload(ctx context.Context, workerIDs []string, date time.Time, start model.LatLng) (*model.WorkloadReport, []*model.WorkloadSnapshot, error) {
	snapshots := make([]*model.WorkloadSnapshot, 0, len(workerIDs))

	for _, workerID := range workerIDs {
		tasks, err := u.tasks.ListByWorkerAndDate(ctx, workerID, date)
		if err != nil {
			return nil, nil, fmt.Errorf("作業員 %s のタスク取得失敗: %w", workerID, err)
		}

		buildings := map[string]*model.Building{}
		if ids := helper.DistinctBuildingIDs(tasks); len(ids) > 0 {
			buildings, err = u.buildings.GetByIDs(ctx, ids)
			if err != nil {
				return nil, nil, fmt.Errorf("作業員 %s の建物取得失敗: %w", workerID, err)
			}
		}

		plan, err := u.optimizer.Optimize(workerID, tasks, buildings, start, date)
		if err != nil {
			return nil, nil, fmt.Errorf("作業員 %s のルート最適化失敗: %w", workerID, err)
		}

		snapshots = append(snapshots, &model.WorkloadSnapshot{
			WorkerID:         workerID,
			TaskCount:        plan.TaskCount,
			DailyHours:       float64(plan.TotalDurationMinutes) / 60.0,
			Efficiency:       plan.EfficiencyTasksPerHour,
			BuildingsCovered: len(plan.OrderedStops),
		})
	}

	report := u.balancer.Balance(snapshots)
	log.Printf("✅ チーム負荷評価: workers=%d avgEff=%.2f balance=%.2f",
		report.WorkerCount, report.AverageEfficiency, report.BalanceScore)
	return report, snapshots, nil
}
