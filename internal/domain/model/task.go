package model

import "time"

// TaskAssignment 作業員への作業割り当て。スケジューリング側で作成される読み取り専用データで、
// このサブシステムが行うステータス遷移は期限超過（overdue）への変更のみ
type TaskAssignment struct {
	ID                       string    `json:"id" db:"id"`                                               // ユニークなタスクID
	WorkerID                 string    `json:"worker_id" db:"worker_id"`                                 // 割り当て先の作業員ID
	BuildingID               string    `json:"building_id" db:"building_id"`                             // 作業対象の建物ID
	EstimatedDurationMinutes int       `json:"estimated_duration_minutes" db:"estimated_duration_minutes"` // 見積もり作業時間（分）
	Priority                 int       `json:"priority" db:"priority"`                                   // 優先度（大きいほど高い）
	DueAt                    time.Time `json:"due_at" db:"due_at"`                                       // 期限
	Status                   string    `json:"status" db:"status"`                                       // ステータス
}

// IsDone タスクが完了済みかチェック
func (t *TaskAssignment) IsDone() bool {
	return t.Status == TaskStatusCompleted
}

// MarkOverdueIfPast 期限を過ぎた未完了タスクをoverdueに遷移させる。
// 遷移した場合はtrueを返す
func (t *TaskAssignment) MarkOverdueIfPast(now time.Time) bool {
	if t.Status == TaskStatusCompleted || t.Status == TaskStatusOverdue {
		return false
	}
	if now.After(t.DueAt) {
		t.Status = TaskStatusOverdue
		return true
	}
	return false
}
