package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/spf13/pflag"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"emptrack_backend/internals/configs"
	database "emptrack_backend/internals/databases"
	attendanceModel "emptrack_backend/internals/features/attendance/attendance_records/model"
	attendanceRepo "emptrack_backend/internals/features/attendance/attendance_records/repository"
	attendanceService "emptrack_backend/internals/features/attendance/attendance_records/service"
	githubModel "emptrack_backend/internals/features/github/github_activities/model"
	meetingModel "emptrack_backend/internals/features/meetings/meetings/model"
	meetingService "emptrack_backend/internals/features/meetings/meetings/service"
	performanceModel "emptrack_backend/internals/features/performance/performance_reviews/model"
	authModel "emptrack_backend/internals/features/users/auth/model"
	scheduler "emptrack_backend/internals/features/users/auth/scheduler"
	userModel "emptrack_backend/internals/features/users/user/model"
	helper "emptrack_backend/internals/helpers"
	middlewares "emptrack_backend/internals/middlewares"
	routes "emptrack_backend/internals/route"
)

func main() {
	envFile := pflag.String("env-file", "", "path to a .env file (default ./.env)")
	migrateOnly := pflag.Bool("migrate-only", false, "run database migrations and exit")
	pflag.Parse()

	if *envFile != "" {
		configs.LoadEnv(*envFile)
	} else {
		configs.LoadEnv()
	}

	// 🔌 DB connect + pool
	database.ConnectDB()
	database.TunePool()

	if *migrateOnly || configs.GetEnvBool("DB_AUTO_MIGRATE", true) {
		if err := database.Migrate(database.DB,
			&userModel.UserModel{},
			&authModel.TokenBlacklist{},
			&attendanceModel.AttendanceRecordModel{},
			&meetingModel.MeetingModel{},
			&meetingModel.MeetingAttendeeModel{},
			&githubModel.GithubActivityModel{},
			&performanceModel.PerformanceReviewModel{},
		); err != nil {
			log.Fatalf("[ERROR] %v", err)
		}
		if *migrateOnly {
			database.Close()
			return
		}
	}
	database.WarmUpQueries()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store, mongoClient := buildAttendanceStore(ctx)
	attendance := attendanceService.New(store, configs.Location())

	// ⏱ scheduler after the DB is ready
	scheduler.StartBlacklistCleanupScheduler(ctx, database.DB)

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          helper.ErrorHandler,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(middlewares.RequestContext(5 * time.Second))
	middlewares.SetupMiddlewares(app)

	routes.SetupRoutes(app, database.DB, attendance, meetingService.NewNotifierFromEnv())

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")
	go func() {
		log.Printf("[INFO] Listening on :%s (attendance store: %s)", port, configs.AttendanceStore)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + close pools
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(shutdownCtx)

	if mongoClient != nil {
		_ = mongoClient.Disconnect(shutdownCtx)
	}
	database.Close()
}

// buildAttendanceStore picks the attendance backend from ATTENDANCE_STORE
// (postgres | mongo | memory). The mongo client is returned for shutdown.
func buildAttendanceStore(ctx context.Context) (attendanceService.Store, *mongo.Client) {
	switch configs.AttendanceStore {
	case "mongo":
		uri := configs.GetEnv("MONGO_URI", "mongodb://localhost:27017")
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
		if err != nil {
			log.Fatalf("[ERROR] mongo connect: %v", err)
		}
		if err := client.Ping(connectCtx, nil); err != nil {
			log.Fatalf("[ERROR] mongo ping: %v", err)
		}
		store, err := attendanceRepo.NewMongoAttendanceStore(connectCtx, client.Database(configs.GetEnv("MONGO_DB", "emptrack")))
		if err != nil {
			log.Fatalf("[ERROR] mongo attendance store: %v", err)
		}
		log.Println("[INFO] Attendance stored in MongoDB")
		return store, client
	case "memory":
		log.Println("[WARN] Attendance stored in memory, records are lost on restart")
		return attendanceRepo.NewMemoryAttendanceStore(), nil
	default:
		return attendanceRepo.NewGormAttendanceStore(database.DB), nil
	}
}
