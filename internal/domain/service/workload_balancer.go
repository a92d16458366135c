package service

import (
	"FieldOps-App/internal/domain/model"
	"math"
)

// WorkloadBalancerService はチーム全体のタスク配分の偏りを評価する。
// 入力を変更しない読み取り専用の計算で、並行実行しても安全
type WorkloadBalancerService struct{}

// NewWorkloadBalancerService は新しいWorkloadBalancerServiceを作成する
func NewWorkloadBalancerService() *WorkloadBalancerService {
	return &WorkloadBalancerService{}
}

// Balance はスナップショット群から平均効率と負荷バランススコアを計算する。
// スコアはタスク数の変動係数を最大値（√(n-1)）で正規化し、1から引いて[0,1]に収める。
// 作業員が0人または1人の場合は自明にバランスしているとみなして1.0を返す
func (s *WorkloadBalancerService) Balance(snapshots []*model.WorkloadSnapshot) *model.WorkloadReport {
	report := &model.WorkloadReport{
		BalanceScore: 1.0,
		WorkerCount:  len(snapshots),
	}

	if len(snapshots) == 0 {
		return report
	}

	efficiencySum := 0.0
	taskSum := 0.0
	for _, snap := range snapshots {
		efficiencySum += snap.Efficiency
		taskSum += float64(snap.TaskCount)
	}
	n := float64(len(snapshots))
	report.AverageEfficiency = efficiencySum / n

	if len(snapshots) == 1 {
		return report
	}

	mean := taskSum / n
	if mean == 0 {
		// 全員タスク0件なら偏りは存在しない
		return report
	}

	variance := 0.0
	for _, snap := range snapshots {
		diff := float64(snap.TaskCount) - mean
		variance += diff * diff
	}
	variance /= n

	cv := math.Sqrt(variance) / mean
	normalizedCV := cv / math.Sqrt(n-1)

	score := 1.0 - normalizedCV
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	report.BalanceScore = score
	return report
}
