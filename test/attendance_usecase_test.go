package test

import (
	"context"
	"sync"
	"testing"
	"time"

	"FieldOps-App/internal/domain/model"
	"FieldOps-App/internal/domain/service"
	"FieldOps-App/internal/repository"
	"FieldOps-App/internal/usecase"
)

func newTestAttendanceUseCase(buildings ...*model.Building) usecase.AttendanceUseCase {
	sessionsRepo := repository.NewMemoryWorkSessionsRepository()
	buildingsRepo := repository.NewMemoryBuildingsRepository(buildings)
	validator := service.NewGeofenceValidator()
	clock := func() time.Time { return time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC) }
	return usecase.NewAttendanceUseCase(sessionsRepo, buildingsRepo, validator, clock)
}

func validClockInRequest(workerID string) *model.ClockInRequest {
	return &model.ClockInRequest{
		WorkerID:       workerID,
		BuildingID:     "bldg-main",
		Location:       &model.Location{Latitude: 35.0117, Longitude: 135.7682},
		AccuracyMeters: 10,
	}
}

// TestAttendance_ClockInAndOut は基本的な出退勤フローを検証する
func TestAttendance_ClockInAndOut(t *testing.T) {
	ctx := context.Background()
	uc := newTestAttendanceUseCase(makeBuilding("bldg-main", "本社ビル", 35.0116, 135.7681, 100))

	result, err := uc.ClockIn(ctx, validClockInRequest("worker-1"))
	if err != nil {
		t.Fatalf("出勤打刻でエラーが発生: %v", err)
	}
	if result.Session == nil || !result.Session.IsOpen() {
		t.Fatal("出勤後に未終了セッションがありません")
	}
	if result.Status != model.GeofenceStatusOK {
		t.Errorf("期待ステータス ok, 実際 %s", result.Status)
	}
	if result.Warning != "" {
		t.Errorf("警告は不要です: %s", result.Warning)
	}

	open, err := uc.OpenSessionFor(ctx, "worker-1")
	if err != nil {
		t.Fatalf("セッション取得でエラーが発生: %v", err)
	}
	if open == nil || open.ID != result.Session.ID {
		t.Error("未終了セッションの照会結果が一致しません")
	}

	closed, err := uc.ClockOut(ctx, "worker-1")
	if err != nil {
		t.Fatalf("退勤打刻でエラーが発生: %v", err)
	}
	if closed.IsOpen() {
		t.Error("退勤後もセッションが開いたままです")
	}

	open, err = uc.OpenSessionFor(ctx, "worker-1")
	if err != nil {
		t.Fatalf("セッション取得でエラーが発生: %v", err)
	}
	if open != nil {
		t.Error("退勤後に未終了セッションが残っています")
	}
}

// TestAttendance_AlreadyClockedIn は二重打刻が拒否されることを検証する
func TestAttendance_AlreadyClockedIn(t *testing.T) {
	ctx := context.Background()
	uc := newTestAttendanceUseCase(makeBuilding("bldg-main", "本社ビル", 35.0116, 135.7681, 100))

	if _, err := uc.ClockIn(ctx, validClockInRequest("worker-1")); err != nil {
		t.Fatalf("1回目の出勤打刻でエラーが発生: %v", err)
	}

	_, err := uc.ClockIn(ctx, validClockInRequest("worker-1"))
	if !model.IsAttendanceError(err, model.ErrAlreadyClockedIn) {
		t.Errorf("期待エラー AlreadyClockedIn, 実際 %v", err)
	}
}

// TestAttendance_ClockOutWithoutSession はセッションなしの退勤が常に失敗することを検証する
func TestAttendance_ClockOutWithoutSession(t *testing.T) {
	ctx := context.Background()
	uc := newTestAttendanceUseCase(makeBuilding("bldg-main", "本社ビル", 35.0116, 135.7681, 100))

	_, err := uc.ClockOut(ctx, "worker-1")
	if !model.IsAttendanceError(err, model.ErrNoOpenSession) {
		t.Errorf("期待エラー NoOpenSession, 実際 %v", err)
	}

	// 出勤→退勤の後も同様
	if _, err := uc.ClockIn(ctx, validClockInRequest("worker-1")); err != nil {
		t.Fatalf("出勤打刻でエラーが発生: %v", err)
	}
	if _, err := uc.ClockOut(ctx, "worker-1"); err != nil {
		t.Fatalf("退勤打刻でエラーが発生: %v", err)
	}
	_, err = uc.ClockOut(ctx, "worker-1")
	if !model.IsAttendanceError(err, model.ErrNoOpenSession) {
		t.Errorf("2回目の退勤は NoOpenSession のはずです, 実際 %v", err)
	}
}

// TestAttendance_GeofenceRejected はジオフェンス外の打刻が拒否されることを検証する
func TestAttendance_GeofenceRejected(t *testing.T) {
	ctx := context.Background()
	uc := newTestAttendanceUseCase(makeBuilding("bldg-main", "本社ビル", 35.0116, 135.7681, 100))

	req := validClockInRequest("worker-1")
	req.Location = &model.Location{Latitude: 35.0216, Longitude: 135.7681} // 約1.1km北

	_, err := uc.ClockIn(ctx, req)
	if !model.IsAttendanceError(err, model.ErrGeofenceRejected) {
		t.Fatalf("期待エラー GeofenceRejected, 実際 %v", err)
	}
	ae := err.(*model.AttendanceError)
	if ae.DistanceMeters < 1000 {
		t.Errorf("エラーに距離が含まれていません: %.0fm", ae.DistanceMeters)
	}

	// 管理者オーバーライドなら警告付きで成功する
	req.OverrideAuthorized = true
	result, err := uc.ClockIn(ctx, req)
	if err != nil {
		t.Fatalf("オーバーライド打刻でエラーが発生: %v", err)
	}
	if result.Warning == "" {
		t.Error("オーバーライド打刻には警告が必要です")
	}
	if result.Session.Warning == "" {
		t.Error("セッションに警告が記録されていません")
	}
}

// TestAttendance_AccuracyTooLow はGPS精度のハード上限超過が拒否されることを検証する
func TestAttendance_AccuracyTooLow(t *testing.T) {
	ctx := context.Background()
	uc := newTestAttendanceUseCase(makeBuilding("bldg-main", "本社ビル", 35.0116, 135.7681, 100))

	req := validClockInRequest("worker-1")
	req.AccuracyMeters = 300

	_, err := uc.ClockIn(ctx, req)
	if !model.IsAttendanceError(err, model.ErrAccuracyTooLow) {
		t.Errorf("期待エラー AccuracyTooLow, 実際 %v", err)
	}

	// ソフト閾値超過は警告付きで成功する
	req.AccuracyMeters = 80
	result, err := uc.ClockIn(ctx, req)
	if err != nil {
		t.Fatalf("精度警告の打刻でエラーが発生: %v", err)
	}
	if result.Status != model.GeofenceStatusWarn || result.Warning == "" {
		t.Errorf("精度警告が返っていません: status=%s warning=%q", result.Status, result.Warning)
	}
}

// TestAttendance_ConcurrentClockIn は同時打刻でも勝者が1人だけになることを検証する
func TestAttendance_ConcurrentClockIn(t *testing.T) {
	ctx := context.Background()
	uc := newTestAttendanceUseCase(makeBuilding("bldg-main", "本社ビル", 35.0116, 135.7681, 100))

	const attempts = 32
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.ClockIn(ctx, validClockInRequest("worker-1"))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	rejected := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		if model.IsAttendanceError(err, model.ErrAlreadyClockedIn) {
			rejected++
			continue
		}
		t.Errorf("想定外のエラー: %v", err)
	}

	if succeeded != 1 {
		t.Errorf("成功は1件のはずです: %d", succeeded)
	}
	if rejected != attempts-1 {
		t.Errorf("拒否は%d件のはずです: %d", attempts-1, rejected)
	}

	open, err := uc.OpenSessionFor(ctx, "worker-1")
	if err != nil {
		t.Fatalf("セッション取得でエラーが発生: %v", err)
	}
	if open == nil {
		t.Fatal("未終了セッションが存在しません")
	}
}

// TestAttendance_IndependentWorkers は別作業員の打刻が互いに干渉しないことを検証する
func TestAttendance_IndependentWorkers(t *testing.T) {
	ctx := context.Background()
	uc := newTestAttendanceUseCase(makeBuilding("bldg-main", "本社ビル", 35.0116, 135.7681, 100))

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			workerID := "worker-" + string(rune('A'+n))
			if _, err := uc.ClockIn(ctx, validClockInRequest(workerID)); err != nil {
				errs <- err
				return
			}
			if _, err := uc.ClockOut(ctx, workerID); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("並行の出退勤でエラーが発生: %v", err)
	}
}

// TestAttendance_BuildingNotFound は未知の建物IDでの打刻が失敗することを検証する
func TestAttendance_BuildingNotFound(t *testing.T) {
	ctx := context.Background()
	uc := newTestAttendanceUseCase(makeBuilding("bldg-main", "本社ビル", 35.0116, 135.7681, 100))

	req := validClockInRequest("worker-1")
	req.BuildingID = "bldg-unknown"

	_, err := uc.ClockIn(ctx, req)
	if !model.IsAttendanceError(err, model.ErrBuildingNotFound) {
		t.Errorf("期待エラー BuildingNotFound, 実際 %v", err)
	}
}
