package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"FieldOps-App/internal/database"
	"FieldOps-App/internal/domain/model"
	"FieldOps-App/internal/domain/repository"
)

type SupabaseWorkSessionsRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseWorkSessionsRepository(client *database.SupabaseClient) repository.WorkSessionsRepository {
	return &SupabaseWorkSessionsRepository{
		client: client,
	}
}

// toDB WorkSession を DB 保存用の形式に変換（地理情報を含む）
func (r *SupabaseWorkSessionsRepository) toDB(session *model.WorkSession) *WorkSessionDB {
	db := &WorkSessionDB{
		ID:                    session.ID,
		WorkerID:              session.WorkerID,
		BuildingID:            session.BuildingID,
		ClockInAt:             session.ClockInAt.Format(time.RFC3339),
		ClockInLocation:       LocationToGeoPoint(session.ClockInLocation),
		ClockInAccuracyMeters: session.ClockInAccuracyMeters,
		Warning:               session.Warning,
	}
	if session.ClockOutAt != nil {
		out := session.ClockOutAt.Format(time.RFC3339)
		db.ClockOutAt = &out
	}
	return db
}

// fromDB DB 保存形式から WorkSession に変換
func (r *SupabaseWorkSessionsRepository) fromDB(db *WorkSessionDB) (*model.WorkSession, error) {
	clockInAt, err := time.Parse(time.RFC3339, db.ClockInAt)
	if err != nil {
		return nil, fmt.Errorf("clock_in_atのパース失敗: %w", err)
	}
	session := &model.WorkSession{
		ID:                    db.ID,
		WorkerID:              db.WorkerID,
		BuildingID:            db.BuildingID,
		ClockInAt:             clockInAt,
		ClockInLocation:       GeoPointToLocation(db.ClockInLocation),
		ClockInAccuracyMeters: db.ClockInAccuracyMeters,
		Warning:               db.Warning,
	}
	if db.ClockOutAt != nil {
		clockOutAt, err := time.Parse(time.RFC3339, *db.ClockOutAt)
		if err != nil {
			return nil, fmt.Errorf("clock_out_atのパース失敗: %w", err)
		}
		session.ClockOutAt = &clockOutAt
	}
	return session, nil
}

func (r *SupabaseWorkSessionsRepository) Create(ctx context.Context, session *model.WorkSession) error {
	data, err := json.Marshal(r.toDB(session))
	if err != nil {
		return fmt.Errorf("セッションデータのJSONマーシャル失敗: %w", err)
	}

	_, _, err = r.client.GetClient().From("work_sessions").Insert(string(data), false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("セッションデータの作成失敗: %w", err)
	}

	return nil
}

func (r *SupabaseWorkSessionsRepository) Update(ctx context.Context, session *model.WorkSession) error {
	data, err := json.Marshal(r.toDB(session))
	if err != nil {
		return fmt.Errorf("セッションデータのJSONマーシャル失敗: %w", err)
	}

	_, _, err = r.client.GetClient().From("work_sessions").Update(string(data), "", "").Eq("id", session.ID).Execute()
	if err != nil {
		return fmt.Errorf("セッションデータの更新失敗: %w", err)
	}

	return nil
}

func (r *SupabaseWorkSessionsRepository) FindOpenByWorker(ctx context.Context, workerID string) (*model.WorkSession, error) {
	data, count, err := r.client.GetClient().From("work_sessions").
		Select("*", "exact", false).
		Eq("worker_id", workerID).
		Filter("clock_out_at", "is", "null").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("未終了セッションの取得失敗: %w", err)
	}
	_ = count

	var rows []WorkSessionDB
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, fmt.Errorf("セッションデータのJSONアンマーシャル失敗: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return r.fromDB(&rows[0])
}

func (r *SupabaseWorkSessionsRepository) ListByWorker(ctx context.Context, workerID string, limit int) ([]*model.WorkSession, error) {
	data, count, err := r.client.GetClient().From("work_sessions").
		Select("*", "exact", false).
		Eq("worker_id", workerID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("セッション履歴の取得失敗: %w", err)
	}
	_ = count

	var rows []WorkSessionDB
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, fmt.Errorf("セッションデータのJSONアンマーシャル失敗: %w", err)
	}

	sessions := make([]*model.WorkSession, 0, len(rows))
	for i := range rows {
		session, err := r.fromDB(&rows[i])
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	// 新しい順に並べ替え、必要なら件数を絞る
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ClockInAt.After(sessions[j].ClockInAt)
	})
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}
