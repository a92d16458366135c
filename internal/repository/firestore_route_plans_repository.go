package repository

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"FieldOps-App/internal/domain/model"
	"FieldOps-App/internal/domain/repository"
)

// FirestoreRoutePlansRepository Firestoreを使用したルート計画キャッシュリポジトリ
type FirestoreRoutePlansRepository struct {
	client *firestore.Client
}

// NewFirestoreRoutePlansRepository 新しいFirestoreRoutePlansRepositoryインスタンスを作成
func NewFirestoreRoutePlansRepository(client *firestore.Client) repository.RoutePlansRepository {
	return &FirestoreRoutePlansRepository{
		client: client,
	}
}

// SaveRoutePlan はルート計画をFirestoreにTTL付きで保存し、plan_idを生成して返す
func (r *FirestoreRoutePlansRepository) SaveRoutePlan(ctx context.Context, plan *model.RoutePlan, ttlHours int) (*model.RoutePlan, error) {
	planID := fmt.Sprintf("plan_%s", uuid.New().String())

	firestoreData := plan.ToFirestoreRoutePlan(ttlHours)

	_, err := r.client.Collection("routePlans").Doc(planID).Set(ctx, firestoreData)
	if err != nil {
		log.Printf("❌ Failed to save route plan %s: %v", planID, err)
		return nil, fmt.Errorf("ルート計画の保存に失敗しました: %w", err)
	}

	log.Printf("✅ Route plan saved: %s (expires in %d hours)", planID, ttlHours)

	saved := *plan
	saved.PlanID = planID
	return &saved, nil
}

// GetRoutePlan は指定されたplan_idのルート計画をFirestoreから取得する
func (r *FirestoreRoutePlansRepository) GetRoutePlan(ctx context.Context, planID string) (*model.RoutePlan, error) {
	doc, err := r.client.Collection("routePlans").Doc(planID).Get(ctx)
	if err != nil {
		// Firestoreのエラータイプをチェック
		if status := err.Error(); strings.Contains(status, "NotFound") || strings.Contains(status, "not found") {
			return nil, fmt.Errorf("ルート計画が見つかりません（有効期限切れまたは無効なID）: %s", planID)
		}
		return nil, fmt.Errorf("ルート計画の取得に失敗しました: %w", err)
	}

	var firestoreData model.FirestoreRoutePlan
	if err := doc.DataTo(&firestoreData); err != nil {
		return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
	}

	log.Printf("✅ Route plan retrieved: %s", planID)
	return firestoreData.ToRoutePlan(planID), nil
}
