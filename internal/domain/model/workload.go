package model

// WorkloadSnapshot 作業員1人分の負荷集計。オンデマンドで計算される派生データ
type WorkloadSnapshot struct {
	WorkerID         string  `json:"worker_id"`         // 作業員ID
	TaskCount        int     `json:"task_count"`        // 割り当てタスク数
	DailyHours       float64 `json:"daily_hours"`       // 1日の想定稼働時間
	Efficiency       float64 `json:"efficiency"`        // 時間あたりタスク数
	BuildingsCovered int     `json:"buildings_covered"` // 担当建物数
}

// WorkloadReport チーム全体の負荷バランス評価
type WorkloadReport struct {
	AverageEfficiency float64 `json:"average_efficiency"` // 平均効率（時間あたりタスク数）
	BalanceScore      float64 `json:"balance_score"`      // 負荷バランススコア [0,1]
	WorkerCount       int     `json:"worker_count"`       // 集計対象の作業員数
}

// WorkloadRequest 負荷バランス計算APIのリクエスト（集計済みスナップショットを渡す）
type WorkloadRequest struct {
	Snapshots []*WorkloadSnapshot `json:"snapshots" validate:"required"`
}
