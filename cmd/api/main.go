package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/config"
	appHTTP "github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/handler/http"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/pkg/cron"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/pkg/database"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/pkg/sse"
	"github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/repository/postgresql"
	correctionService "github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/service/correction"
	notificationService "github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/service/notification"
	overtimeService "github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/service/overtime"
	reportService "github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/service/report"
	timesheetService "github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/service/timesheet"
	tripService "github.com/mikailpirgozi/Dochadzkovy-system-sub003/internal/service/trip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	eventRepo := postgresql.NewEventRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	tripRepo := postgresql.NewTripRepository(db)
	correctionRepo := postgresql.NewCorrectionRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	hub := sse.NewHub()
	notifService := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{
		BatchSize:     cfg.Notification.BatchSize,
		FlushInterval: cfg.Notification.FlushInterval,
		WorkerCount:   cfg.Notification.WorkerCount,
		QueueSize:     cfg.Notification.QueueSize,
	})
	defer notifService.Stop()

	tsService := timesheetService.NewTimesheetService(eventRepo, employeeRepo)
	otService := overtimeService.NewOvertimeService(eventRepo, employeeRepo, companyRepo, notifService, overtimeService.Config{
		DailyThreshold: time.Duration(cfg.Attendance.OvertimeThresholdHours * float64(time.Hour)),
	})
	btService := tripService.NewTripService(db, tripRepo, eventRepo, employeeRepo, notifService)
	corrService := correctionService.NewCorrectionService(db, correctionRepo, eventRepo, employeeRepo, notifService)
	repService := reportService.NewReportService(eventRepo, employeeRepo, companyRepo, reportService.Config{
		StandardStartTime: cfg.Attendance.StandardStartTime,
		ToleranceMinutes:  cfg.Attendance.LateToleranceMinutes,
	})

	scheduler := cron.NewScheduler()
	cron.NewOvertimeJobs(otService).RegisterJobs(scheduler, cfg.Attendance.SweepInterval)
	scheduler.StartAll()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg.App,
		appHTTP.NewAttendanceHandler(tsService),
		appHTTP.NewOvertimeHandler(otService),
		appHTTP.NewTripHandler(btService),
		appHTTP.NewCorrectionHandler(corrService),
		appHTTP.NewReportHandler(repService),
		appHTTP.NewNotificationHandler(notifService),
		appHTTP.NewJobsHandler(scheduler),
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server listening", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
	_ = server.Close()
}
