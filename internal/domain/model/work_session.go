package model

import "time"

// WorkSession 作業員の勤務セッション。出勤打刻成功時に作成され、退勤打刻で閉じる。
// 1人の作業員につき未終了セッション（ClockOutAtがnil）は常に最大1件
type WorkSession struct {
	ID                    string     `json:"id" db:"id"`                                           // ユニークなセッションID
	WorkerID              string     `json:"worker_id" db:"worker_id"`                             // 作業員ID
	BuildingID            string     `json:"building_id" db:"building_id"`                         // 出勤先の建物ID
	ClockInAt             time.Time  `json:"clock_in_at" db:"clock_in_at"`                         // 出勤時刻
	ClockInLocation       *Location  `json:"clock_in_location" db:"clock_in_location"`             // 出勤時の報告位置
	ClockInAccuracyMeters float64    `json:"clock_in_accuracy_meters" db:"clock_in_accuracy_meters"` // GPS精度（メートル）
	ClockOutAt            *time.Time `json:"clock_out_at,omitempty" db:"clock_out_at"`             // 退勤時刻（NULLABLE）
	Warning               string     `json:"warning,omitempty" db:"warning"`                       // 打刻時の警告（精度低下・管理者オーバーライド等）
}

// IsOpen セッションが未終了（勤務中）かチェック
func (s *WorkSession) IsOpen() bool {
	return s.ClockOutAt == nil
}

// Close セッションを指定時刻で終了する
func (s *WorkSession) Close(now time.Time) {
	t := now
	s.ClockOutAt = &t
}

// Duration セッションの勤務時間を返す（未終了の場合はnowまでの経過時間）
func (s *WorkSession) Duration(now time.Time) time.Duration {
	if s.ClockOutAt != nil {
		return s.ClockOutAt.Sub(s.ClockInAt)
	}
	return now.Sub(s.ClockInAt)
}
