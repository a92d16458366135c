package test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FieldOps-App/internal/domain/model"
	"FieldOps-App/internal/domain/service"
)

func snapshot(workerID string, taskCount int, efficiency float64) *model.WorkloadSnapshot {
	return &model.WorkloadSnapshot{
		WorkerID:   workerID,
		TaskCount:  taskCount,
		Efficiency: efficiency,
		DailyHours: 8,
	}
}

// TestWorkloadBalancer_DegenerateCases は0人・1人のチームが自明にバランスすることを検証する
func TestWorkloadBalancer_DegenerateCases(t *testing.T) {
	balancer := service.NewWorkloadBalancerService()

	t.Run("作業員0人", func(t *testing.T) {
		report := balancer.Balance(nil)
		require.NotNil(t, report)
		assert.Equal(t, 1.0, report.BalanceScore)
		assert.Equal(t, 0.0, report.AverageEfficiency)
		assert.Equal(t, 0, report.WorkerCount)
	})

	t.Run("作業員1人", func(t *testing.T) {
		report := balancer.Balance([]*model.WorkloadSnapshot{snapshot("w1", 12, 1.5)})
		assert.Equal(t, 1.0, report.BalanceScore)
		assert.Equal(t, 1.5, report.AverageEfficiency)
		assert.Equal(t, 1, report.WorkerCount)
	})
}

// TestWorkloadBalancer_EvenDistribution は均等配分でスコア1.0になることを検証する
func TestWorkloadBalancer_EvenDistribution(t *testing.T) {
	balancer := service.NewWorkloadBalancerService()

	snapshots := []*model.WorkloadSnapshot{
		snapshot("w1", 8, 1.0),
		snapshot("w2", 8, 1.2),
		snapshot("w3", 8, 0.8),
	}
	report := balancer.Balance(snapshots)

	assert.Equal(t, 1.0, report.BalanceScore)
	assert.InDelta(t, 1.0, report.AverageEfficiency, 1e-9)
}

// TestWorkloadBalancer_SkewedDistribution は偏った配分でスコアが下がることを検証する
func TestWorkloadBalancer_SkewedDistribution(t *testing.T) {
	balancer := service.NewWorkloadBalancerService()

	even := balancer.Balance([]*model.WorkloadSnapshot{
		snapshot("w1", 7, 1.0),
		snapshot("w2", 8, 1.0),
		snapshot("w3", 9, 1.0),
	})
	skewed := balancer.Balance([]*model.WorkloadSnapshot{
		snapshot("w1", 1, 1.0),
		snapshot("w2", 1, 1.0),
		snapshot("w3", 22, 1.0),
	})

	assert.Less(t, skewed.BalanceScore, even.BalanceScore,
		"偏った配分の方がスコアが低いはずです")
	assert.GreaterOrEqual(t, skewed.BalanceScore, 0.0)
	assert.LessOrEqual(t, even.BalanceScore, 1.0)
}

// TestWorkloadBalancer_AllZeroTasks は全員タスク0件でスコア1.0になることを検証する
func TestWorkloadBalancer_AllZeroTasks(t *testing.T) {
	balancer := service.NewWorkloadBalancerService()

	report := balancer.Balance([]*model.WorkloadSnapshot{
		snapshot("w1", 0, 0),
		snapshot("w2", 0, 0),
	})
	assert.Equal(t, 1.0, report.BalanceScore)
}

// TestWorkloadBalancer_ScoreRange はスコアが常に[0,1]に収まることを検証する
func TestWorkloadBalancer_ScoreRange(t *testing.T) {
	balancer := service.NewWorkloadBalancerService()

	cases := [][]*model.WorkloadSnapshot{
		{snapshot("w1", 0, 0), snapshot("w2", 100, 2.0)},
		{snapshot("w1", 1, 0.5), snapshot("w2", 2, 0.7), snapshot("w3", 3, 0.9), snapshot("w4", 4, 1.1)},
		{snapshot("w1", 50, 1.0), snapshot("w2", 50, 1.0), snapshot("w3", 0, 0)},
	}
	for i, snapshots := range cases {
		report := balancer.Balance(snapshots)
		assert.GreaterOrEqual(t, report.BalanceScore, 0.0, "ケース%d", i)
		assert.LessOrEqual(t, report.BalanceScore, 1.0, "ケース%d", i)
	}
}
