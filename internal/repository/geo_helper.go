package repository

import (
	"github.com/paulmach/orb"

	"FieldOps-App/internal/domain/model"
)

// GeoPoint PostGIS POINT 型の JSON 表現
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// LocationToGeoPoint model.Location を PostGIS POINT 形式に変換
func LocationToGeoPoint(location *model.Location) *GeoPoint {
	if location == nil {
		return nil
	}

	point := orb.Point{location.Longitude, location.Latitude}

	return &GeoPoint{
		Type:        "Point",
		Coordinates: []float64{point.Lon(), point.Lat()},
	}
}

// GeoPointToLocation PostGIS POINT を model.Location に変換
func GeoPointToLocation(geoPoint *GeoPoint) *model.Location {
	if geoPoint == nil || len(geoPoint.Coordinates) < 2 {
		return nil
	}

	point := orb.Point{geoPoint.Coordinates[0], geoPoint.Coordinates[1]}

	return &model.Location{
		Latitude:  point.Lat(),
		Longitude: point.Lon(),
	}
}

// BuildingsBound は建物群を含む境界ボックスを作成する（約100mのパディング付き）。
// 管理エリアの地図表示やエリア単位の建物検索で使用する
func BuildingsBound(buildings []*model.Building) *orb.Bound {
	if len(buildings) == 0 {
		return nil
	}

	first := buildings[0].ToLatLng()
	bound := orb.Bound{
		Min: orb.Point{first.Lng, first.Lat},
		Max: orb.Point{first.Lng, first.Lat},
	}
	for _, b := range buildings[1:] {
		ll := b.ToLatLng()
		bound = bound.Extend(orb.Point{ll.Lng, ll.Lat})
	}

	// 少し余裕を持たせる（約100m程度）
	padding := 0.001 // 約111m
	bound = bound.Pad(padding)
	return &bound
}

// WorkSessionDB WorkSession を DB 保存用に変換した構造体
type WorkSessionDB struct {
	ID                    string    `json:"id"`
	WorkerID              string    `json:"worker_id"`
	BuildingID            string    `json:"building_id"`
	ClockInAt             string    `json:"clock_in_at"`
	ClockInLocation       *GeoPoint `json:"clock_in_location"`
	ClockInAccuracyMeters float64   `json:"clock_in_accuracy_meters"`
	ClockOutAt            *string   `json:"clock_out_at"`
	Warning               string    `json:"warning"`
}
