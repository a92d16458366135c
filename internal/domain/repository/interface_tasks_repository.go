package repository

import (
	"FieldOps-App/internal/domain/model"
	"context"
	"time"
)

// TasksRepository 作業割り当てデータへのアクセスを提供するインターフェース。
// タスクの作成はスケジューリング側の責務で、ここからはステータス更新のみ行う
type TasksRepository interface {
	// ListByWorkerAndDate は作業員の指定日分のタスクを取得する
	ListByWorkerAndDate(ctx context.Context, workerID string, date time.Time) ([]*model.TaskAssignment, error)

	// UpdateStatus はタスクのステータスを更新する（期限超過への遷移等）
	UpdateStatus(ctx context.Context, taskID string, status string) error
}
