package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"FieldOps-App/internal/domain/model"
	"FieldOps-App/internal/usecase"
)

// RoutePlanHandler はルート計画APIのハンドラー
type RoutePlanHandler struct {
	routePlanUseCase usecase.RoutePlanUseCase
}

// NewRoutePlanHandler は新しいRoutePlanHandlerインスタンスを作成
func NewRoutePlanHandler(routePlanUseCase usecase.RoutePlanUseCase) *RoutePlanHandler {
	return &RoutePlanHandler{
		routePlanUseCase: routePlanUseCase,
	}
}

// PostRoutePlans はルート計画を生成するエンドポイント
// POST /routes/plans
func (h *RoutePlanHandler) PostRoutePlans(c *gin.Context) {
	var req model.RoutePlanRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	if err := h.validateRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": err.Error(),
		})
		return
	}

	plan, err := h.routePlanUseCase.GeneratePlan(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "ルート計画の生成に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, plan)
}

// GetRoutePlan は特定のルート計画を取得するエンドポイント
// GET /routes/plans/:id
func (h *RoutePlanHandler) GetRoutePlan(c *gin.Context) {
	planID := c.Param("id")
	if planID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "plan_idが指定されていません",
		})
		return
	}

	plan, err := h.routePlanUseCase.GetPlan(c.Request.Context(), planID)
	if err != nil {
		// エラーメッセージから404か500かを判定
		if strings.Contains(err.Error(), "見つかりません") || strings.Contains(err.Error(), "有効期限切れ") {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "ルート計画が見つかりません",
				"details": err.Error(),
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "ルート計画の取得に失敗しました",
				"details": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// validateRequest はリクエストの詳細バリデーションを行う
func (h *RoutePlanHandler) validateRequest(req *model.RoutePlanRequest) error {
	if req.WorkerID == "" {
		return &ValidationError{Field: "worker_id", Message: "作業員IDは必須です"}
	}
	if req.Date == "" {
		return &ValidationError{Field: "date", Message: "対象日は必須です"}
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return &ValidationError{Field: "date", Message: "対象日はYYYY-MM-DD形式で指定してください"}
	}
	if req.StartLocation == nil {
		return &ValidationError{Field: "start_location", Message: "開始地点は必須です"}
	}
	if req.StartLocation.Latitude < -90 || req.StartLocation.Latitude > 90 {
		return &ValidationError{Field: "start_location.latitude", Message: "緯度は-90から90の範囲で指定してください"}
	}
	if req.StartLocation.Longitude < -180 || req.StartLocation.Longitude > 180 {
		return &ValidationError{Field: "start_location.longitude", Message: "経度は-180から180の範囲で指定してください"}
	}
	return nil
}
