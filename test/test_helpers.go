package test

import (
	"fmt"
	"time"

	"FieldOps-App/internal/domain/model"
)

// makeBuilding はテスト用の建物を作成する
func makeBuilding(id, name string, lat, lng, radiusMeters float64) *model.Building {
	return &model.Building{
		ID:   id,
		Name: name,
		Location: &model.Geometry{
			Type:        "Point",
			Coordinates: []float64{lng, lat}, // GeoJSONでは [lng, lat]
		},
		GeofenceRadiusMeters: radiusMeters,
	}
}

// makeTask はテスト用の作業割り当てを作成する
func makeTask(id, workerID, buildingID string, durationMinutes int, dueAt time.Time) *model.TaskAssignment {
	return &model.TaskAssignment{
		ID:                       id,
		WorkerID:                 workerID,
		BuildingID:               buildingID,
		EstimatedDurationMinutes: durationMinutes,
		Priority:                 1,
		DueAt:                    dueAt,
		Status:                   model.TaskStatusPending,
	}
}

// buildingMap は建物スライスをIDをキーとするマップに変換する
func buildingMap(buildings ...*model.Building) map[string]*model.Building {
	m := make(map[string]*model.Building, len(buildings))
	for _, b := range buildings {
		m[b.ID] = b
	}
	return m
}

// kyotoTestBuildings は京都市内に並べたテスト用建物群を作成する
// （おおよそ緯度0.009度 ≒ 1km）
func kyotoTestBuildings(count int) []*model.Building {
	buildings := make([]*model.Building, 0, count)
	for i := 0; i < count; i++ {
		buildings = append(buildings, makeBuilding(
			fmt.Sprintf("bldg-%02d", i),
			fmt.Sprintf("テスト建物%d", i),
			35.0116+float64(i)*0.004,
			135.7681+float64(i%3)*0.003,
			100,
		))
	}
	return buildings
}
