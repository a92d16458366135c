package model

import "time"

// RouteLeg 訪問順序内の1区間（前の地点から次の建物までの移動）
type RouteLeg struct {
	BuildingID    string  `json:"building_id"`    // 到着先の建物ID
	BuildingName  string  `json:"building_name"`  // 到着先の建物名
	DistanceKm    float64 `json:"distance_km"`    // 前の地点からの距離
	TravelMinutes float64 `json:"travel_minutes"` // 移動時間（分）
}

// RoutePlan 1日の最適化された訪問計画。オンデマンドで再計算される派生データであり、
// 永続化の正とはしない
type RoutePlan struct {
	PlanID                 string     `json:"plan_id,omitempty"`        // キャッシュ用の一時ID
	WorkerID               string     `json:"worker_id"`                // 作業員ID
	Date                   string     `json:"date"`                     // 対象日（YYYY-MM-DD）
	OrderedStops           []string   `json:"ordered_stops"`            // 訪問順の建物ID列
	Legs                   []RouteLeg `json:"legs"`                     // 区間詳細
	TotalDistanceKm        float64    `json:"total_distance_km"`        // 総移動距離
	TotalDurationMinutes   int        `json:"total_duration_minutes"`   // 作業時間＋移動時間の合計（分）
	TaskCount              int        `json:"task_count"`               // 対象タスク数
	EfficiencyTasksPerHour float64    `json:"efficiency_tasks_per_hour"` // 時間あたりタスク数
}

// FirestoreRoutePlan Firestoreキャッシュ保存用のルート計画
type FirestoreRoutePlan struct {
	WorkerID               string     `firestore:"worker_id"`
	Date                   string     `firestore:"date"`
	OrderedStops           []string   `firestore:"ordered_stops"`
	Legs                   []RouteLeg `firestore:"legs"`
	TotalDistanceKm        float64    `firestore:"total_distance_km"`
	TotalDurationMinutes   int        `firestore:"total_duration_minutes"`
	TaskCount              int        `firestore:"task_count"`
	EfficiencyTasksPerHour float64    `firestore:"efficiency_tasks_per_hour"`
	ExpireAt               time.Time  `firestore:"expireAt"`
}

// ToFirestoreRoutePlan RoutePlan を Firestore 保存用に変換（TTL付き）
func (p *RoutePlan) ToFirestoreRoutePlan(ttlHours int) *FirestoreRoutePlan {
	return &FirestoreRoutePlan{
		WorkerID:               p.WorkerID,
		Date:                   p.Date,
		OrderedStops:           p.OrderedStops,
		Legs:                   p.Legs,
		TotalDistanceKm:        p.TotalDistanceKm,
		TotalDurationMinutes:   p.TotalDurationMinutes,
		TaskCount:              p.TaskCount,
		EfficiencyTasksPerHour: p.EfficiencyTasksPerHour,
		ExpireAt:               time.Now().Add(time.Duration(ttlHours) * time.Hour),
	}
}

// ToRoutePlan Firestore 保存形式から RoutePlan に変換
func (fp *FirestoreRoutePlan) ToRoutePlan(planID string) *RoutePlan {
	return &RoutePlan{
		PlanID:                 planID,
		WorkerID:               fp.WorkerID,
		Date:                   fp.Date,
		OrderedStops:           fp.OrderedStops,
		Legs:                   fp.Legs,
		TotalDistanceKm:        fp.TotalDistanceKm,
		TotalDurationMinutes:   fp.TotalDurationMinutes,
		TaskCount:              fp.TaskCount,
		EfficiencyTasksPerHour: fp.EfficiencyTasksPerHour,
	}
}

// RoutePlanRequest ルート計画生成APIのリクエスト
type RoutePlanRequest struct {
	WorkerID      string    `json:"worker_id" validate:"required"`
	Date          string    `json:"date" validate:"required"` // YYYY-MM-DD
	StartLocation *Location `json:"start_location" validate:"required"`
}
