package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"FieldOps-App/internal/domain/model"
	"FieldOps-App/internal/domain/repository"
	"FieldOps-App/internal/infrastructure/database"
)

type PostgresBuildingsRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresBuildingsRepository(client *database.PostgreSQLClient) repository.BuildingsRepository {
	return &PostgresBuildingsRepository{
		client: client,
	}
}

// BuildingResult PostGIS関数の結果を受け取るための構造体
type BuildingResult struct {
	ID                   string
	Name                 string
	Location             string
	GeofenceRadiusMeters float64
	GridCellID           int
}

// ToBuilding BuildingResultをmodel.Buildingに変換
func (br *BuildingResult) ToBuilding() (*model.Building, error) {
	var location model.Geometry
	if err := json.Unmarshal([]byte(br.Location), &location); err != nil {
		return nil, fmt.Errorf("location JSONBパースエラー: %w", err)
	}

	return &model.Building{
		ID:                   br.ID,
		Name:                 br.Name,
		Location:             &location,
		GeofenceRadiusMeters: br.GeofenceRadiusMeters,
		GridCellID:           br.GridCellID,
	}, nil
}

func (r *PostgresBuildingsRepository) GetByID(ctx context.Context, id string) (*model.Building, error) {
	query := `
		SELECT id, name, ST_AsGeoJSON(location), geofence_radius_meters, grid_cell_id
		FROM buildings
		WHERE id = $1
	`

	var result BuildingResult
	err := r.client.DB.QueryRowContext(ctx, query, id).Scan(
		&result.ID, &result.Name, &result.Location, &result.GeofenceRadiusMeters, &result.GridCellID,
	)
	if err != nil {
		return nil, fmt.Errorf("建物ID %s の取得失敗: %w", id, err)
	}

	return result.ToBuilding()
}

func (r *PostgresBuildingsRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*model.Building, error) {
	if len(ids) == 0 {
		return map[string]*model.Building{}, nil
	}

	query := `
		SELECT id, name, ST_AsGeoJSON(location), geofence_radius_meters, grid_cell_id
		FROM buildings
		WHERE id = ANY($1)
	`

	rows, err := r.client.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("建物の一括取得失敗: %w", err)
	}
	defer rows.Close()

	buildings := make(map[string]*model.Building, len(ids))
	for rows.Next() {
		var result BuildingResult
		if err := rows.Scan(&result.ID, &result.Name, &result.Location, &result.GeofenceRadiusMeters, &result.GridCellID); err != nil {
			return nil, fmt.Errorf("建物データのスキャン失敗: %w", err)
		}
		building, err := result.ToBuilding()
		if err != nil {
			return nil, err
		}
		buildings[building.ID] = building
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("建物データの読み取り失敗: %w", err)
	}

	for _, id := range ids {
		if _, ok := buildings[id]; !ok {
			return nil, fmt.Errorf("建物ID %s が見つかりません", id)
		}
	}

	return buildings, nil
}

func (r *PostgresBuildingsRepository) GetByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]*model.Building, error) {
	if minLng >= maxLng || minLat >= maxLat {
		return nil, fmt.Errorf("無効な境界ボックス: min値がmax値以上です")
	}

	query := `
		SELECT id, name, ST_AsGeoJSON(location), geofence_radius_meters, grid_cell_id
		FROM buildings
		WHERE ST_Intersects(location, ST_MakeEnvelope($1, $2, $3, $4, 4326))
	`

	rows, err := r.client.DB.QueryContext(ctx, query, minLng, minLat, maxLng, maxLat)
	if err != nil {
		return nil, fmt.Errorf("境界ボックス検索エラー: %w", err)
	}
	defer rows.Close()

	var buildings []*model.Building
	for rows.Next() {
		var result BuildingResult
		if err := rows.Scan(&result.ID, &result.Name, &result.Location, &result.GeofenceRadiusMeters, &result.GridCellID); err != nil {
			return nil, fmt.Errorf("建物データのスキャン失敗: %w", err)
		}
		building, err := result.ToBuilding()
		if err != nil {
			return nil, err
		}
		buildings = append(buildings, building)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("建物データの読み取り失敗: %w", err)
	}

	return buildings, nil
}
