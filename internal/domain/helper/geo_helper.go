package helper

import (
	"FieldOps-App/internal/domain/model"
	"math"
	"sort"
)

const earthRadiusKm = 6371.0

// HaversineDistance は2地点間の距離を計算する (km)
func HaversineDistance(p1, p2 model.LatLng) float64 {
	lat1 := p1.Lat * math.Pi / 180
	lng1 := p1.Lng * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	lng2 := p2.Lng * math.Pi / 180
	dLat := lat2 - lat1
	dLng := lng2 - lng1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// HaversineDistanceMeters は2地点間の距離を計算する (m)
func HaversineDistanceMeters(p1, p2 model.LatLng) float64 {
	return HaversineDistance(p1, p2) * 1000
}

// HaversineDistanceBuilding は基準地点から建物までの距離を計算する (km)
func HaversineDistanceBuilding(origin model.LatLng, b *model.Building) float64 {
	return HaversineDistance(origin, b.ToLatLng())
}

// SortBuildingsByDistance は基準地点からの距離で建物スライスをソートする
func SortBuildingsByDistance(origin model.LatLng, targets []*model.Building) {
	sort.Slice(targets, func(i, j int) bool {
		distI := HaversineDistanceBuilding(origin, targets[i])
		distJ := HaversineDistanceBuilding(origin, targets[j])
		return distI < distJ
	})
}

// RemoveBuilding はスライスから特定の建物を削除する
func RemoveBuilding(buildings []*model.Building, target *model.Building) []*model.Building {
	var result []*model.Building
	for _, b := range buildings {
		if b.ID != target.ID {
			result = append(result, b)
		}
	}
	return result
}

// DistinctBuildingIDs はタスクリストが参照する建物IDの重複なし一覧を返す（出現順）
func DistinctBuildingIDs(tasks []*model.TaskAssignment) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, t := range tasks {
		if _, ok := seen[t.BuildingID]; ok {
			continue
		}
		seen[t.BuildingID] = struct{}{}
		ids = append(ids, t.BuildingID)
	}
	return ids
}
