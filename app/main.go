package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"campus/config"
	"campus/domain"
	"campus/services/attendance/delivery"
	"campus/services/attendance/repository"
	"campus/services/attendance/usecase"
)

var log *logrus.Logger
var wg sync.WaitGroup

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, using environment")
	}

	log = config.GetLogrusInstance()

	startHTTP()
}

func startHTTP() {
	log.Info("Starting HTTP")
	app := fiber.New(config.GetFiberConfig())

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	ctx := context.Background()

	if _, err := config.BootDB(); err != nil {
		log.Fatalf("Failed to boot DB: %v", err)
		return
	}

	pool, err := config.BootPool(ctx)
	if err != nil {
		log.Fatalf("Failed to create pgx pool: %v", err)
		return
	}

	gormDB, err := config.BootGorm()
	if err != nil {
		log.Fatalf("Failed to boot gorm: %v", err)
		return
	}

	timeout := 10 * time.Second

	attendanceRepo := repository.NewAttendanceRepository(pool)
	courseRepo := repository.NewCourseRepository(gormDB)

	courseUC := usecase.NewCourseUseCase(courseRepo, timeout)
	attendanceUC := usecase.NewAttendanceUseCase(
		attendanceRepo,
		courseRepo,
		courseRepo,
		domain.MarkingPolicy{AllowPartial: false},
		domain.StatsPolicy{LateCountsAsPresent: false, ExcusedCountsAsPresent: false},
		timeout,
	)

	delivery.NewCourseHandler(app, courseUC)
	delivery.NewAttendanceHandler(app, attendanceUC)

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infof("Starting HTTP server for Public on port %s", config.GetFiberHttpPort())
		if err := app.Listen(config.GetFiberListenAddress()); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt)

	<-signalChan

	log.Info("Shutting down the server...")

	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
	}

	pool.Close()

	wg.Wait()
}
