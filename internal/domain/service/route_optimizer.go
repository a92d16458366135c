package service

import (
	"FieldOps-App/internal/domain/helper"
	"FieldOps-App/internal/domain/model"
	"fmt"
	"time"
)

// RouteOptimizerService は作業員1日分の訪問順序を最近傍法で構築する。
// 厳密なTSP解法ではなく貪欲な近似だが、1人あたりの訪問先は高々数十件なので
// 「十分良く・速く・決定的」という要件にはこれで足りる
type RouteOptimizerService struct {
	averageSpeedKmh float64
	maxStops        int
}

// NewRouteOptimizerService はデフォルト設定のRouteOptimizerServiceを作成する
func NewRouteOptimizerService() *RouteOptimizerService {
	return &RouteOptimizerService{
		averageSpeedKmh: model.DefaultAverageTravelSpeedKmh,
		maxStops:        model.DefaultMaxRouteStops,
	}
}

// NewRouteOptimizerServiceWithConfig は移動速度と訪問先上限を指定して作成する
func NewRouteOptimizerServiceWithConfig(averageSpeedKmh float64, maxStops int) *RouteOptimizerService {
	return &RouteOptimizerService{
		averageSpeedKmh: averageSpeedKmh,
		maxStops:        maxStops,
	}
}

// stopCandidate 訪問先候補（建物＋その建物の最も早い期限）
type stopCandidate struct {
	building    *model.Building
	earliestDue time.Time
}

// Optimize はタスクリストから訪問計画を構築する。
// タスクが空の場合は空の計画を返す（エラーではない）。
// OrderedStops はタスクが参照する建物IDの順列になる（重複なし・欠落なし）
func (s *RouteOptimizerService) Optimize(workerID string, tasks []*model.TaskAssignment, buildings map[string]*model.Building, start model.LatLng, at time.Time) (*model.RoutePlan, error) {
	plan := &model.RoutePlan{
		WorkerID:     workerID,
		Date:         at.Format("2006-01-02"),
		OrderedStops: []string{},
		Legs:         []model.RouteLeg{},
	}

	if len(tasks) == 0 {
		return plan, nil
	}
	if !start.IsValid() {
		return nil, fmt.Errorf("開始地点の座標が不正です: lat=%v, lng=%v", start.Lat, start.Lng)
	}

	// タスクが参照する建物ごとに最も早い期限を集計する（同じ建物に複数タスクがありうる）
	earliestDue := make(map[string]time.Time)
	taskMinutes := 0
	for _, task := range tasks {
		taskMinutes += task.EstimatedDurationMinutes
		if due, ok := earliestDue[task.BuildingID]; !ok || task.DueAt.Before(due) {
			earliestDue[task.BuildingID] = task.DueAt
		}
	}

	var remaining []*stopCandidate
	for _, id := range helper.DistinctBuildingIDs(tasks) {
		b, ok := buildings[id]
		if !ok {
			return nil, fmt.Errorf("建物レジストリに建物 %s が存在しません", id)
		}
		remaining = append(remaining, &stopCandidate{building: b, earliestDue: earliestDue[id]})
	}

	if len(remaining) > s.maxStops {
		return nil, fmt.Errorf("訪問先数が上限を超えています (%d > %d)", len(remaining), s.maxStops)
	}

	// 最近傍法: 現在地から最も近い未訪問の建物を選び続ける。
	// 距離が同じ場合は期限の早い方、さらに同じ場合は建物IDの昇順で決定的に選ぶ
	current := start
	totalDistanceKm := 0.0
	for len(remaining) > 0 {
		bestIdx := 0
		bestDist := helper.HaversineDistanceBuilding(current, remaining[0].building)
		for i := 1; i < len(remaining); i++ {
			dist := helper.HaversineDistanceBuilding(current, remaining[i].building)
			if dist < bestDist {
				bestIdx, bestDist = i, dist
				continue
			}
			if dist == bestDist {
				cand, best := remaining[i], remaining[bestIdx]
				if cand.earliestDue.Before(best.earliestDue) ||
					(cand.earliestDue.Equal(best.earliestDue) && cand.building.ID < best.building.ID) {
					bestIdx = i
				}
			}
		}

		next := remaining[bestIdx]
		totalDistanceKm += bestDist
		plan.OrderedStops = append(plan.OrderedStops, next.building.ID)
		plan.Legs = append(plan.Legs, model.RouteLeg{
			BuildingID:    next.building.ID,
			BuildingName:  next.building.Name,
			DistanceKm:    bestDist,
			TravelMinutes: s.travelMinutes(bestDist),
		})
		current = next.building.ToLatLng()
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	travelMinutes := s.travelMinutes(totalDistanceKm)
	plan.TotalDistanceKm = totalDistanceKm
	plan.TotalDurationMinutes = taskMinutes + int(travelMinutes+0.5)
	plan.TaskCount = len(tasks)
	if plan.TotalDurationMinutes > 0 {
		plan.EfficiencyTasksPerHour = float64(plan.TaskCount) / (float64(plan.TotalDurationMinutes) / 60.0)
	}
	return plan, nil
}

// travelMinutes は移動距離から移動時間（分）を算出する
func (s *RouteOptimizerService) travelMinutes(distanceKm float64) float64 {
	if s.averageSpeedKmh <= 0 {
		return 0
	}
	return distanceKm / s.averageSpeedKmh * 60.0
}
