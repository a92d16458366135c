package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"FieldOps-App/internal/domain/model"
)

// parseLatLngQuery はクエリパラメータlat/lngをLocationにパースする
func parseLatLngQuery(c *gin.Context, loc *model.Location) error {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return &ValidationError{Field: "lat", Message: "緯度は数値で指定してください"}
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		return &ValidationError{Field: "lng", Message: "経度は数値で指定してください"}
	}

	if lat < -90 || lat > 90 {
		return &ValidationError{Field: "lat", Message: "緯度は-90から90の範囲で指定してください"}
	}
	if lng < -180 || lng > 180 {
		return &ValidationError{Field: "lng", Message: "経度は-180から180の範囲で指定してください"}
	}

	loc.Latitude = lat
	loc.Longitude = lng
	return nil
}
