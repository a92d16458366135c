package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"FieldOps-App/internal/database"
	"FieldOps-App/internal/handler"
	infradb "FieldOps-App/internal/infrastructure/database"
	"FieldOps-App/internal/infrastructure/firestore"
	"FieldOps-App/internal/repository"

	domainrepo "FieldOps-App/internal/domain/repository"
	"FieldOps-App/internal/domain/service"
	"FieldOps-App/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseAnonKey := os.Getenv("SUPABASE_ANON_KEY")

	if supabaseURL == "" || supabaseAnonKey == "" {
		fmt.Println("⚠️  環境変数が設定されていません:")
		fmt.Println("必要な環境変数: SUPABASE_URL, SUPABASE_ANON_KEY")
		fmt.Println("任意の環境変数: SUPABASE_DB_PASSWORD, GOOGLE_CLOUD_PROJECT_ID, PORT")
		fmt.Println("\n.envファイルを作成するか、環境変数を設定してください")
		log.Fatal("Environment variables not set")
	}

	fmt.Println("Initializing Supabase client...")
	supabaseClient, err := database.NewSupabaseClient()
	if err != nil {
		log.Fatalf("Supabaseクライアント初期化失敗: %v", err)
	}

	fmt.Println("Performing Supabase health check...")
	if err := supabaseClient.HealthCheck(); err != nil {
		log.Fatalf("Supabaseヘルスチェック失敗: %v", err)
	}
	fmt.Println("✅ Supabase connection successful!")

	// リポジトリの初期化
	sessionsRepo := repository.NewSupabaseWorkSessionsRepository(supabaseClient)
	buildingsRepo := repository.NewSupabaseBuildingsRepository(supabaseClient)

	// タスク検索はSQLの日付条件が必要なのでPostgreSQL直接接続を使う
	if os.Getenv("SUPABASE_DB_PASSWORD") == "" {
		log.Fatal("SUPABASE_DB_PASSWORD環境変数が設定されていません（タスク検索に必要）")
	}
	fmt.Println("Initializing PostgreSQL client...")
	pgClient, err := infradb.NewPostgreSQLClient()
	if err != nil {
		log.Fatalf("PostgreSQLクライアント初期化失敗: %v", err)
	}
	defer pgClient.Close()
	var tasksRepo domainrepo.TasksRepository = repository.NewPostgresTasksRepository(pgClient)

	// ルート計画キャッシュ（Firestoreはオプショナル）
	var plansRepo domainrepo.RoutePlansRepository = repository.NewMemoryRoutePlansRepository()
	if projectID := os.Getenv("GOOGLE_CLOUD_PROJECT_ID"); projectID != "" {
		fsClient, err := firestore.NewFirestoreClient(context.Background(), projectID)
		if err != nil {
			log.Printf("⚠️ Firestore初期化失敗（インメモリキャッシュで継続）: %v", err)
		} else {
			defer fsClient.Close()
			plansRepo = repository.NewFirestoreRoutePlansRepository(fsClient.GetClient())
		}
	}

	// サービスとユースケースの初期化
	validator := service.NewGeofenceValidator()
	optimizer := service.NewRouteOptimizerService()
	balancer := service.NewWorkloadBalancerService()

	attendanceUseCase := usecase.NewAttendanceUseCase(sessionsRepo, buildingsRepo, validator, nil)
	routePlanUseCase := usecase.NewRoutePlanUseCase(tasksRepo, buildingsRepo, plansRepo, optimizer)
	workloadUseCase := usecase.NewWorkloadUseCase(tasksRepo, buildingsRepo, optimizer, balancer)

	attendanceHandler := handler.NewAttendanceHandler(attendanceUseCase)
	routePlanHandler := handler.NewRoutePlanHandler(routePlanUseCase)
	workloadHandler := handler.NewWorkloadHandler(workloadUseCase)

	// ルーティングの設定
	r := gin.Default()

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "FieldOps-App"})
	})

	r.POST("/attendance/clock-in", attendanceHandler.PostClockIn)
	r.POST("/attendance/clock-out", attendanceHandler.PostClockOut)
	r.GET("/attendance/:worker_id/open", attendanceHandler.GetOpenSession)

	r.POST("/routes/plans", routePlanHandler.PostRoutePlans)
	r.GET("/routes/plans/:id", routePlanHandler.GetRoutePlan)

	r.POST("/workload/balance", workloadHandler.PostWorkloadBalance)
	r.GET("/workload/crew", workloadHandler.GetCrewWorkload)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("FieldOps-App server starting on :%s...\n", port)
	log.Fatal(r.Run(":" + port))
}
