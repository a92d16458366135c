package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"FieldOps-App/internal/domain/model"
	"FieldOps-App/internal/usecase"
)

// WorkloadHandler はチーム負荷バランスAPIのハンドラー
type WorkloadHandler struct {
	workloadUseCase usecase.WorkloadUseCase
}

// NewWorkloadHandler は新しいWorkloadHandlerインスタンスを作成
func NewWorkloadHandler(workloadUseCase usecase.WorkloadUseCase) *WorkloadHandler {
	return &WorkloadHandler{
		workloadUseCase: workloadUseCase,
	}
}

// PostWorkloadBalance は集計済みスナップショットから負荷バランスを計算するエンドポイント
// POST /workload/balance
func (h *WorkloadHandler) PostWorkloadBalance(c *gin.Context) {
	var req model.WorkloadRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	report := h.workloadUseCase.BalanceSnapshots(req.Snapshots)
	c.JSON(http.StatusOK, report)
}

// GetCrewWorkload はチームの指定日分の負荷を集計して返すエンドポイント
// GET /workload/crew?worker_ids=w1,w2&date=2025-07-01&lat=35.0&lng=135.7
func (h *WorkloadHandler) GetCrewWorkload(c *gin.Context) {
	workerIDsParam := c.Query("worker_ids")
	if workerIDsParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "worker_idsが指定されていません",
		})
		return
	}
	workerIDs := strings.Split(workerIDsParam, ",")

	dateParam := c.Query("date")
	date, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "dateはYYYY-MM-DD形式で指定してください",
		})
		return
	}

	var start model.Location
	if err := parseLatLngQuery(c, &start); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "開始地点の指定が不正です",
			"details": err.Error(),
		})
		return
	}

	report, snapshots, err := h.workloadUseCase.ComputeCrewWorkload(c.Request.Context(), workerIDs, date, start.ToLatLng())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "チーム負荷の集計に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report":    report,
		"snapshots": snapshots,
	})
}
