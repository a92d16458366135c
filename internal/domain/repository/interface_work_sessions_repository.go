package repository

import (
	"FieldOps-App/internal/domain/model"
	"context"
)

// WorkSessionsRepository 勤務セッションの永続化を提供するインターフェース
type WorkSessionsRepository interface {
	// Create は新しい勤務セッションを保存する
	Create(ctx context.Context, session *model.WorkSession) error

	// Update は既存セッションを更新する（退勤打刻で使用）
	Update(ctx context.Context, session *model.WorkSession) error

	// FindOpenByWorker は作業員の未終了セッションを取得する。存在しない場合はnilを返す
	FindOpenByWorker(ctx context.Context, workerID string) (*model.WorkSession, error)

	// ListByWorker は作業員のセッション履歴を新しい順に取得する
	ListByWorker(ctx context.Context, workerID string, limit int) ([]*model.WorkSession, error)
}
