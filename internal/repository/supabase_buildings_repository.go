package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"

	"FieldOps-App/internal/database"
	"FieldOps-App/internal/domain/model"
	"FieldOps-App/internal/domain/repository"
)

type SupabaseBuildingsRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseBuildingsRepository(client *database.SupabaseClient) repository.BuildingsRepository {
	return &SupabaseBuildingsRepository{
		client: client,
	}
}

func (r *SupabaseBuildingsRepository) GetByID(ctx context.Context, id string) (*model.Building, error) {
	var buildings []model.Building
	data, count, err := r.client.GetClient().From("buildings").Select("*", "exact", false).Eq("id", id).Execute()
	if err != nil {
		return nil, fmt.Errorf("建物データの取得失敗: %w", err)
	}
	_ = count

	if err := json.Unmarshal([]byte(data), &buildings); err != nil {
		return nil, fmt.Errorf("建物データのJSONアンマーシャル失敗: %w", err)
	}

	if len(buildings) == 0 {
		return nil, fmt.Errorf("建物ID %s が見つかりません", id)
	}

	return &buildings[0], nil
}

func (r *SupabaseBuildingsRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*model.Building, error) {
	if len(ids) == 0 {
		return map[string]*model.Building{}, nil
	}

	var buildings []model.Building
	data, count, err := r.client.GetClient().From("buildings").
		Select("*", "exact", false).
		In("id", ids).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("建物データの一括取得失敗: %w", err)
	}
	_ = count

	if err := json.Unmarshal([]byte(data), &buildings); err != nil {
		return nil, fmt.Errorf("建物データのJSONアンマーシャル失敗: %w", err)
	}

	result := make(map[string]*model.Building, len(buildings))
	for i := range buildings {
		result[buildings[i].ID] = &buildings[i]
	}

	// 参照データの欠落は呼び出し側のバグか投入漏れなのでここで検出する
	for _, id := range ids {
		if _, ok := result[id]; !ok {
			return nil, fmt.Errorf("建物ID %s が見つかりません", id)
		}
	}

	return result, nil
}

func (r *SupabaseBuildingsRepository) GetByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]*model.Building, error) {
	// 入力値の検証
	if minLng >= maxLng || minLat >= maxLat {
		return nil, fmt.Errorf("無効な境界ボックス: min値がmax値以上です")
	}

	// 座標値の範囲チェック（経度: -180〜180, 緯度: -90〜90）
	if minLng < -180 || maxLng > 180 || minLat < -90 || maxLat > 90 {
		return nil, fmt.Errorf("座標値が有効範囲外です")
	}

	// orb.Bound を使用して境界ボックスを作成
	bound := orb.Bound{
		Min: orb.Point{minLng, minLat},
		Max: orb.Point{maxLng, maxLat},
	}

	// orb.Polygon として境界ボックスを作成し、WKT文字列として出力
	polygon := bound.ToPolygon()
	wktString := wkt.MarshalString(polygon)

	// PostGIS ST_Intersects関数を使用して境界ボックス内の建物を検索
	var buildings []model.Building
	data, count, err := r.client.GetClient().From("buildings").
		Select("*", "exact", false).
		Filter("location", "st_intersects", fmt.Sprintf("ST_GeomFromText('%s', 4326)", wktString)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("境界ボックス検索エラー: %w", err)
	}
	_ = count

	if err := json.Unmarshal([]byte(data), &buildings); err != nil {
		return nil, fmt.Errorf("建物データのJSONアンマーシャル失敗: %w", err)
	}

	result := make([]*model.Building, 0, len(buildings))
	for i := range buildings {
		result = append(result, &buildings[i])
	}
	return result, nil
}
