package model

// Building 管理物件（建物）を表すモデル。データロード時に作成される参照データで、
// このサブシステムからは変更しない
type Building struct {
	ID                   string    `json:"id" db:"id"`                                         // ユニークな建物ID
	Name                 string    `json:"name" db:"name"`                                     // 建物名
	Location             *Geometry `json:"location" db:"location"`                             // 位置情報（PostGIS GEOMETRY型）
	GeofenceRadiusMeters float64   `json:"geofence_radius_meters" db:"geofence_radius_meters"` // ジオフェンス半径（メートル）
	GridCellID           int       `json:"grid_cell_id" db:"grid_cell_id"`                     // グリッドセルID
}

// ToLatLng 建物の位置情報をLatLng型に変換
func (b *Building) ToLatLng() LatLng {
	if b.Location != nil && len(b.Location.Coordinates) >= 2 {
		return LatLng{
			Lat: b.Location.Coordinates[1], // latitude
			Lng: b.Location.Coordinates[0], // longitude
		}
	}
	return LatLng{}
}

// EffectiveGeofenceRadius 半径が未設定（0以下）の場合はデフォルト値を返す
func (b *Building) EffectiveGeofenceRadius() float64 {
	if b.GeofenceRadiusMeters <= 0 {
		return DefaultGeofenceRadiusMeters
	}
	return b.GeofenceRadiusMeters
}
