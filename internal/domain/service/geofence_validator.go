package service

import (
	"FieldOps-App/internal/domain/helper"
	"FieldOps-App/internal/domain/model"
	"fmt"
)

// GeofenceValidator は出勤打刻の位置情報を建物のジオフェンスに対して判定する。
// 副作用を持たない純粋な判定器で、閾値は生成時の設定で固定される
type GeofenceValidator struct {
	softAccuracyMeters        float64
	hardAccuracyCeilingMeters float64
}

// NewGeofenceValidator はデフォルト閾値のGeofenceValidatorを作成する
func NewGeofenceValidator() *GeofenceValidator {
	return &GeofenceValidator{
		softAccuracyMeters:        model.DefaultSoftAccuracyMeters,
		hardAccuracyCeilingMeters: model.DefaultHardAccuracyCeilingMeters,
	}
}

// NewGeofenceValidatorWithThresholds は閾値を指定してGeofenceValidatorを作成する
func NewGeofenceValidatorWithThresholds(softAccuracyMeters, hardAccuracyCeilingMeters float64) *GeofenceValidator {
	return &GeofenceValidator{
		softAccuracyMeters:        softAccuracyMeters,
		hardAccuracyCeilingMeters: hardAccuracyCeilingMeters,
	}
}

// Validate は報告位置と建物のジオフェンスから打刻の妥当性を判定する。
// 入力が同じなら常に同じ結果を返す。座標が不正な場合のみエラーを返す
func (v *GeofenceValidator) Validate(reported model.LatLng, accuracyMeters float64, building *model.Building) (*model.GeofenceValidation, error) {
	if !reported.IsValid() {
		return nil, fmt.Errorf("報告位置の座標が不正です: lat=%v, lng=%v", reported.Lat, reported.Lng)
	}
	target := building.ToLatLng()
	if !target.IsValid() {
		return nil, fmt.Errorf("建物 %s の座標が不正です", building.ID)
	}

	distanceMeters := helper.HaversineDistanceMeters(reported, target)
	radius := building.EffectiveGeofenceRadius()

	// GPS精度がハード上限を超える場合は距離に関わらず拒否
	if accuracyMeters > v.hardAccuracyCeilingMeters {
		return &model.GeofenceValidation{
			Status:         model.GeofenceStatusReject,
			DistanceMeters: distanceMeters,
			Reason:         fmt.Sprintf("GPS精度が上限を超えています (%.0fm > %.0fm)", accuracyMeters, v.hardAccuracyCeilingMeters),
			ReasonCode:     model.RejectReasonAccuracy,
		}, nil
	}

	if distanceMeters > radius {
		return &model.GeofenceValidation{
			Status:         model.GeofenceStatusReject,
			DistanceMeters: distanceMeters,
			Reason:         fmt.Sprintf("建物から%.0fm離れています（許容範囲: %.0fm）", distanceMeters, radius),
			ReasonCode:     model.RejectReasonDistance,
		}, nil
	}

	if accuracyMeters > v.softAccuracyMeters {
		return &model.GeofenceValidation{
			Status:         model.GeofenceStatusWarn,
			DistanceMeters: distanceMeters,
			Reason:         fmt.Sprintf("GPS精度が低下しています (%.0fm)", accuracyMeters),
		}, nil
	}

	return &model.GeofenceValidation{
		Status:         model.GeofenceStatusOK,
		DistanceMeters: distanceMeters,
	}, nil
}
