package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"FieldOps-App/internal/domain/model"
	"FieldOps-App/internal/domain/repository"
	"FieldOps-App/internal/domain/service"
)

type AttendanceUseCase interface {
	// ClockIn はジオフェンス判定を経て出勤セッションを開始する
	ClockIn(ctx context.Context, req *model.ClockInRequest) (*model.ClockInResult, error)

	// ClockOut は作業員の未終了セッションを終了する
	ClockOut(ctx context.Context, workerID string) (*model.WorkSession, error)

	// OpenSessionFor は作業員の未終了セッションを返す（存在しない場合はnil）
	OpenSessionFor(ctx context.Context, workerID string) (*model.WorkSession, error)
}

// attendanceUseCaseImpl はAttendanceUseCaseの実装。
// 作業員ごとのロックで打刻を直列化し、「未終了セッションは1人1件まで」の不変条件を
// 同時リクエスト下でも保証する。別の作業員同士の打刻は競合しない
type attendanceUseCaseImpl struct {
	sessions  repository.WorkSessionsRepository
	buildings repository.BuildingsRepository
	validator *service.GeofenceValidator
	now       func() time.Time

	mu          sync.Mutex
	workerLocks map[string]*sync.Mutex
}

// NewAttendanceUseCase は新しいAttendanceUseCaseインスタンスを作成。
// 時計は注入する（グローバル状態に依存しない）
func NewAttendanceUseCase(
	sessions repository.WorkSessionsRepository,
	buildings repository.BuildingsRepository,
	validator *service.GeofenceValidator,
	now func() time.Time,
) AttendanceUseCase {
	if now == nil {
		now = time.Now
	}
	return &attendanceUseCaseImpl{
		sessions:    sessions,
		buildings:   buildings,
		validator:   validator,
		now:         now,
		workerLocks: make(map[string]*sync.Mutex),
	}
}

// lockFor は作業員単位のロックを取得する（なければ作成）
func (u *attendanceUseCaseImpl) lockFor(workerID string) *sync.Mutex {
	u.mu.Lock()
	defer u.mu.Unlock()

	lock, ok := u.workerLocks[workerID]
	if !ok {
		lock = &sync.Mutex{}
		u.workerLocks[workerID] = lock
	}
	return lock
}

// ClockIn はジオフェンス判定を経て出勤セッションを開始する
func (u *attendanceUseCaseImpl) ClockIn(ctx context.Context, req *model.ClockInRequest) (*model.ClockInResult, error) {
	lock := u.lockFor(req.WorkerID)
	lock.Lock()
	defer lock.Unlock()

	// 既に勤務中なら二重打刻として拒否
	open, err := u.sessions.FindOpenByWorker(ctx, req.WorkerID)
	if err != nil {
		return nil, fmt.Errorf("未終了セッションの確認失敗: %w", err)
	}
	if open != nil {
		return nil, &model.AttendanceError{
			Kind:    model.ErrAlreadyClockedIn,
			Message: fmt.Sprintf("作業員 %s は建物 %s で勤務中です", req.WorkerID, open.BuildingID),
		}
	}

	building, err := u.buildings.GetByID(ctx, req.BuildingID)
	if err != nil {
		return nil, &model.AttendanceError{
			Kind:    model.ErrBuildingNotFound,
			Message: fmt.Sprintf("建物 %s が見つかりません", req.BuildingID),
		}
	}

	if req.Location == nil {
		return nil, &model.AttendanceError{
			Kind:    model.ErrInvalidCoordinate,
			Message: "位置情報が指定されていません",
		}
	}

	validation, err := u.validator.Validate(req.Location.ToLatLng(), req.AccuracyMeters, building)
	if err != nil {
		return nil, &model.AttendanceError{
			Kind:    model.ErrInvalidCoordinate,
			Message: err.Error(),
		}
	}

	warning := ""
	switch validation.Status {
	case model.GeofenceStatusReject:
		if !req.OverrideAuthorized {
			kind := model.ErrGeofenceRejected
			if validation.ReasonCode == model.RejectReasonAccuracy {
				kind = model.ErrAccuracyTooLow
			}
			return nil, &model.AttendanceError{
				Kind:           kind,
				Message:        validation.Reason,
				DistanceMeters: validation.DistanceMeters,
			}
		}
		// 管理者オーバーライド: 拒否理由を警告としてセッションに記録して続行する
		warning = fmt.Sprintf("管理者オーバーライドで打刻 (%s)", validation.Reason)
	case model.GeofenceStatusWarn:
		warning = validation.Reason
	}

	now := u.now()
	session := &model.WorkSession{
		ID:                    uuid.New().String(),
		WorkerID:              req.WorkerID,
		BuildingID:            req.BuildingID,
		ClockInAt:             now,
		ClockInLocation:       req.Location,
		ClockInAccuracyMeters: req.AccuracyMeters,
		Warning:               warning,
	}

	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("セッションの保存失敗: %w", err)
	}

	log.Printf("✅ 出勤打刻: worker=%s building=%s distance=%.0fm status=%s",
		req.WorkerID, req.BuildingID, validation.DistanceMeters,
		model.GetGeofenceStatusJapaneseName(validation.Status))

	return &model.ClockInResult{
		Session:        session,
		Status:         validation.Status,
		DistanceMeters: validation.DistanceMeters,
		Warning:        warning,
	}, nil
}

// ClockOut は作業員の未終了セッションを終了する
func (u *attendanceUseCaseImpl) ClockOut(ctx context.Context, workerID string) (*model.WorkSession, error) {
	lock := u.lockFor(workerID)
	lock.Lock()
	defer lock.Unlock()

	open, err := u.sessions.FindOpenByWorker(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("未終了セッションの確認失敗: %w", err)
	}
	if open == nil {
		return nil, &model.AttendanceError{
			Kind:    model.ErrNoOpenSession,
			Message: fmt.Sprintf("作業員 %s に勤務中のセッションがありません", workerID),
		}
	}

	open.Close(u.now())
	if err := u.sessions.Update(ctx, open); err != nil {
		return nil, fmt.Errorf("セッションの更新失敗: %w", err)
	}

	log.Printf("✅ 退勤打刻: worker=%s building=%s 勤務時間=%d分",
		workerID, open.BuildingID, int(open.Duration(u.now()).Minutes()))

	return open, nil
}

// OpenSessionFor は作業員の未終了セッションを返す（存在しない場合はnil）
func (u *attendanceUseCaseImpl) OpenSessionFor(ctx context.Context, workerID string) (*model.WorkSession, error) {
	return u.sessions.FindOpenByWorker(ctx, workerID)
}
