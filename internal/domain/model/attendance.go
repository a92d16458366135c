package model

// GeofenceRejectReason 拒否理由のコード
const (
	RejectReasonDistance = "distance" // ジオフェンス半径の外
	RejectReasonAccuracy = "accuracy" // GPS精度がハード上限超過
)

// GeofenceValidation ジオフェンス判定の結果
type GeofenceValidation struct {
	Status         string  `json:"status"`                // "ok" / "warn" / "reject"
	DistanceMeters float64 `json:"distance_meters"`       // 建物からの距離
	Reason         string  `json:"reason,omitempty"`      // warn/reject の説明文
	ReasonCode     string  `json:"reason_code,omitempty"` // reject 時の理由コード
}

// ClockInRequest 出勤打刻APIのリクエスト
type ClockInRequest struct {
	WorkerID           string    `json:"worker_id" validate:"required"`
	BuildingID         string    `json:"building_id" validate:"required"`
	Location           *Location `json:"location" validate:"required"`
	AccuracyMeters     float64   `json:"accuracy_meters"`
	OverrideAuthorized bool      `json:"override_authorized"` // 管理者によるジオフェンス無効化
}

// ClockOutRequest 退勤打刻APIのリクエスト
type ClockOutRequest struct {
	WorkerID string `json:"worker_id" validate:"required"`
}

// ClockInResult 出勤打刻の結果。警告付き成功（精度低下・オーバーライド）がありうる
type ClockInResult struct {
	Session        *WorkSession `json:"session"`
	Status         string       `json:"status"`            // ジオフェンス判定結果
	DistanceMeters float64      `json:"distance_meters"`   // 建物からの距離
	Warning        string       `json:"warning,omitempty"` // 呼び出し側が表示すべき警告
}

// AttendanceErrorKind 勤怠打刻の業務エラー種別
type AttendanceErrorKind string

const (
	ErrAlreadyClockedIn  AttendanceErrorKind = "already_clocked_in"
	ErrNoOpenSession     AttendanceErrorKind = "no_open_session"
	ErrGeofenceRejected  AttendanceErrorKind = "geofence_rejected"
	ErrAccuracyTooLow    AttendanceErrorKind = "accuracy_too_low"
	ErrInvalidCoordinate AttendanceErrorKind = "invalid_coordinate"
	ErrBuildingNotFound  AttendanceErrorKind = "building_not_found"
)

// AttendanceError 勤怠打刻の業務エラー。想定内の失敗は全てこの型で呼び出し側に返す
type AttendanceError struct {
	Kind           AttendanceErrorKind `json:"kind"`
	Message        string              `json:"message"`
	DistanceMeters float64             `json:"distance_meters,omitempty"` // ジオフェンス拒否時の距離
}

func (e *AttendanceError) Error() string {
	return e.Message
}

// IsAttendanceError エラーが指定された種別の業務エラーかチェック
func IsAttendanceError(err error, kind AttendanceErrorKind) bool {
	ae, ok := err.(*AttendanceError)
	return ok && ae.Kind == kind
}
