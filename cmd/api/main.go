package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/workpulse-hr/attendance-backend-go/internal/config"
	appHTTP "github.com/workpulse-hr/attendance-backend-go/internal/handler/http"
	"github.com/workpulse-hr/attendance-backend-go/internal/pkg/database"
	"github.com/workpulse-hr/attendance-backend-go/internal/pkg/jwt"
	"github.com/workpulse-hr/attendance-backend-go/internal/pkg/sse"
	"github.com/workpulse-hr/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/workpulse-hr/attendance-backend-go/internal/service/attendance"
	auditService "github.com/workpulse-hr/attendance-backend-go/internal/service/audit"
	authService "github.com/workpulse-hr/attendance-backend-go/internal/service/auth"
	leaveService "github.com/workpulse-hr/attendance-backend-go/internal/service/leave"
	notificationService "github.com/workpulse-hr/attendance-backend-go/internal/service/notification"
	policyService "github.com/workpulse-hr/attendance-backend-go/internal/service/policy"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.App.LogLevel),
	}))

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		logger.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	timeRecordRepo := postgresql.NewTimeRecordRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveQuotaRepo := postgresql.NewLeaveQuotaRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	auditLogRepo := postgresql.NewAuditLogRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()

	auditSvc := auditService.NewAuditService(auditLogRepo, logger)
	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub, logger, notificationService.Config{})
	authSvc := authService.NewAuthService(employeeRepo, jwtService, logger)
	policySvc := policyService.NewPolicyService(policyRepo, holidayRepo, auditSvc)
	typeSvc := leaveService.NewLeaveTypeService(leaveTypeRepo)
	quotaSvc := leaveService.NewQuotaService(leaveQuotaRepo, leaveTypeRepo, employeeRepo, auditSvc)
	requestSvc := leaveService.NewRequestService(
		postgresql.NewTxRunner(db),
		leaveRequestRepo,
		employeeRepo,
		quotaSvc,
		notificationSvc,
		auditSvc,
		cfg.Leave.AllowCancelApproved,
	)
	attendanceSvc := attendanceService.NewAttendanceService(timeRecordRepo, policyRepo, holidayRepo, leaveRequestRepo, nil)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(requestSvc, quotaSvc, typeSvc)
	policyHandler := appHTTP.NewPolicyHandler(policySvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc, jwtService, hub)
	auditHandler := appHTTP.NewAuditHandler(auditSvc)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		attendanceHandler,
		leaveHandler,
		policyHandler,
		notificationHandler,
		auditHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	if err := notificationSvc.Shutdown(shutdownCtx); err != nil {
		logger.Error("Notification worker shutdown error", "error", err)
	}
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
