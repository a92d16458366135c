package model

// GeofenceConstants ジオフェンス判定で使用するデフォルト設定値
const (
	DefaultGeofenceRadiusMeters      = 100.0 // 建物ごとの半径が未設定の場合に適用
	DefaultSoftAccuracyMeters        = 50.0  // これを超えるGPS精度は警告扱い
	DefaultHardAccuracyCeilingMeters = 150.0 // これを超えるGPS精度は打刻拒否
)

// RouteConstants ルート最適化で使用するデフォルト設定値
const (
	DefaultAverageTravelSpeedKmh = 25.0 // 物件間移動の想定平均速度（車両）
	DefaultMaxRouteStops         = 500  // 1計画あたりの訪問先数の上限
	DefaultRoutePlanTTLHours     = 24   // Firestoreキャッシュの有効期限
)

// GeofenceStatusConstants ジオフェンス判定結果のステータス
const (
	GeofenceStatusOK     = "ok"
	GeofenceStatusWarn   = "warn"
	GeofenceStatusReject = "reject"
)

// TaskStatusConstants タスクのステータス
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusOverdue    = "overdue"
)

// GeofenceStatusNameMap ジオフェンス判定結果から日本語名へのマッピング
var GeofenceStatusNameMap = map[string]string{
	GeofenceStatusOK:     "正常",
	GeofenceStatusWarn:   "警告",
	GeofenceStatusReject: "拒否",
}

// TaskStatusNameMap タスクステータスから日本語名へのマッピング
var TaskStatusNameMap = map[string]string{
	TaskStatusPending:    "未着手",
	TaskStatusInProgress: "作業中",
	TaskStatusCompleted:  "完了",
	TaskStatusOverdue:    "期限超過",
}

// GetGeofenceStatusJapaneseName ジオフェンス判定結果から日本語名を取得する
func GetGeofenceStatusJapaneseName(status string) string {
	if name, ok := GeofenceStatusNameMap[status]; ok {
		return name
	}
	return status // デフォルトはそのまま返す
}

// GetTaskStatusJapaneseName タスクステータスから日本語名を取得する
func GetTaskStatusJapaneseName(status string) string {
	if name, ok := TaskStatusNameMap[status]; ok {
		return name
	}
	return status // デフォルトはそのまま返す
}

// IsValidTaskStatus タスクステータスが有効かチェック
func IsValidTaskStatus(status string) bool {
	_, ok := TaskStatusNameMap[status]
	return ok
}

// GetAllTaskStatuses 全タスクステータスの一覧を取得する
func GetAllTaskStatuses() []string {
	return []string{
		TaskStatusPending,
		TaskStatusInProgress,
		TaskStatusCompleted,
		TaskStatusOverdue,
	}
}
