package repository

import (
	"context"
	"fmt"
	"time"

	"FieldOps-App/internal/domain/model"
	"FieldOps-App/internal/domain/repository"
	"FieldOps-App/internal/infrastructure/database"
)

type PostgresTasksRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresTasksRepository(client *database.PostgreSQLClient) repository.TasksRepository {
	return &PostgresTasksRepository{
		client: client,
	}
}

func (r *PostgresTasksRepository) ListByWorkerAndDate(ctx context.Context, workerID string, date time.Time) ([]*model.TaskAssignment, error) {
	query := `
		SELECT id, worker_id, building_id, estimated_duration_minutes, priority, due_at, status
		FROM task_assignments
		WHERE worker_id = $1 AND due_at::date = $2::date
		ORDER BY due_at, id
	`

	rows, err := r.client.DB.QueryContext(ctx, query, workerID, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("タスクデータの取得失敗: %w", err)
	}
	defer rows.Close()

	var tasks []*model.TaskAssignment
	for rows.Next() {
		var task model.TaskAssignment
		if err := rows.Scan(
			&task.ID, &task.WorkerID, &task.BuildingID,
			&task.EstimatedDurationMinutes, &task.Priority, &task.DueAt, &task.Status,
		); err != nil {
			return nil, fmt.Errorf("タスクデータのスキャン失敗: %w", err)
		}
		tasks = append(tasks, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("タスクデータの読み取り失敗: %w", err)
	}

	return tasks, nil
}

func (r *PostgresTasksRepository) UpdateStatus(ctx context.Context, taskID string, status string) error {
	if !model.IsValidTaskStatus(status) {
		return fmt.Errorf("無効なタスクステータスです: %s", status)
	}

	result, err := r.client.DB.ExecContext(ctx,
		`UPDATE task_assignments SET status = $1 WHERE id = $2`, status, taskID)
	if err != nil {
		return fmt.Errorf("タスクステータスの更新失敗: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新結果の確認失敗: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("タスクID %s が見つかりません", taskID)
	}

	return nil
}
