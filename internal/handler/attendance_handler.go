package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"FieldOps-App/internal/domain/model"
	"FieldOps-App/internal/usecase"
)

// AttendanceHandler は勤怠打刻APIのハンドラー
type AttendanceHandler struct {
	attendanceUseCase usecase.AttendanceUseCase
}

// NewAttendanceHandler は新しいAttendanceHandlerインスタンスを作成
func NewAttendanceHandler(attendanceUseCase usecase.AttendanceUseCase) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceUseCase: attendanceUseCase,
	}
}

// PostClockIn は出勤打刻を行うエンドポイント
// POST /attendance/clock-in
func (h *AttendanceHandler) PostClockIn(c *gin.Context) {
	var req model.ClockInRequest

	// リクエストボディのバインド
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	// バリデーション
	if err := h.validateClockInRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": err.Error(),
		})
		return
	}

	result, err := h.attendanceUseCase.ClockIn(c.Request.Context(), &req)
	if err != nil {
		h.writeAttendanceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// PostClockOut は退勤打刻を行うエンドポイント
// POST /attendance/clock-out
func (h *AttendanceHandler) PostClockOut(c *gin.Context) {
	var req model.ClockOutRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	if req.WorkerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "worker_idが指定されていません",
		})
		return
	}

	session, err := h.attendanceUseCase.ClockOut(c.Request.Context(), req.WorkerID)
	if err != nil {
		h.writeAttendanceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// GetOpenSession は作業員の勤務中セッションを取得するエンドポイント
// GET /attendance/:worker_id/open
func (h *AttendanceHandler) GetOpenSession(c *gin.Context) {
	workerID := c.Param("worker_id")
	if workerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "worker_idが指定されていません",
		})
		return
	}

	session, err := h.attendanceUseCase.OpenSessionFor(c.Request.Context(), workerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "セッションの取得に失敗しました",
			"details": err.Error(),
		})
		return
	}
	if session == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, session)
}

// validateClockInRequest はリクエストの詳細バリデーションを行う
func (h *AttendanceHandler) validateClockInRequest(req *model.ClockInRequest) error {
	if req.WorkerID == "" {
		return &ValidationError{Field: "worker_id", Message: "作業員IDは必須です"}
	}
	if req.BuildingID == "" {
		return &ValidationError{Field: "building_id", Message: "建物IDは必須です"}
	}
	if req.Location == nil {
		return &ValidationError{Field: "location", Message: "位置情報は必須です"}
	}

	// 緯度経度の範囲チェック
	if req.Location.Latitude < -90 || req.Location.Latitude > 90 {
		return &ValidationError{Field: "location.latitude", Message: "緯度は-90から90の範囲で指定してください"}
	}
	if req.Location.Longitude < -180 || req.Location.Longitude > 180 {
		return &ValidationError{Field: "location.longitude", Message: "経度は-180から180の範囲で指定してください"}
	}

	if req.AccuracyMeters < 0 {
		return &ValidationError{Field: "accuracy_meters", Message: "GPS精度は0以上で指定してください"}
	}

	return nil
}

// writeAttendanceError は業務エラーをHTTPステータスに変換して返す
func (h *AttendanceHandler) writeAttendanceError(c *gin.Context, err error) {
	ae, ok := err.(*model.AttendanceError)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "打刻処理に失敗しました",
			"details": err.Error(),
		})
		return
	}

	body := gin.H{
		"error": ae.Message,
		"kind":  ae.Kind,
	}
	if ae.DistanceMeters > 0 {
		// 距離を返すことでUI側が管理者オーバーライドの導線を出せる
		body["distance_meters"] = ae.DistanceMeters
	}

	switch ae.Kind {
	case model.ErrAlreadyClockedIn:
		c.JSON(http.StatusConflict, body)
	case model.ErrGeofenceRejected, model.ErrAccuracyTooLow:
		c.JSON(http.StatusForbidden, body)
	case model.ErrNoOpenSession, model.ErrBuildingNotFound:
		c.JSON(http.StatusNotFound, body)
	case model.ErrInvalidCoordinate:
		c.JSON(http.StatusBadRequest, body)
	default:
		c.JSON(http.StatusInternalServerError, body)
	}
}

// ValidationError はバリデーションエラーを表す
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
