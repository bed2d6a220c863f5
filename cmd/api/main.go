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

	"github.com/peopleops/hrms-backend-go/internal/config"
	appHTTP "github.com/peopleops/hrms-backend-go/internal/handler/http"
	"github.com/peopleops/hrms-backend-go/internal/pkg/database"
	"github.com/peopleops/hrms-backend-go/internal/pkg/jwt"
	"github.com/peopleops/hrms-backend-go/internal/pkg/sse"
	"github.com/peopleops/hrms-backend-go/internal/repository/postgresql"
	attendanceService "github.com/peopleops/hrms-backend-go/internal/service/attendance"
	authService "github.com/peopleops/hrms-backend-go/internal/service/auth"
	employeeService "github.com/peopleops/hrms-backend-go/internal/service/employee"
	leaveService "github.com/peopleops/hrms-backend-go/internal/service/leave"
	payrollService "github.com/peopleops/hrms-backend-go/internal/service/payroll"
	reportService "github.com/peopleops/hrms-backend-go/internal/service/report"
	"github.com/peopleops/hrms-backend-go/internal/service/session"
	userService "github.com/peopleops/hrms-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "peopleops-hrms"),
		slog.String("env", cfg.App.Env),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		logger.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	hub := sse.NewHub()

	authSvc := authService.NewAuthService(userRepo, employeeRepo, refreshTokenRepo, jwtSvc, hub, logger)
	userSvc := userService.NewUserService(userRepo, hub, logger)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, logger)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, logger)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, logger)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, logger)
	reportSvc := reportService.NewReportService(reportRepo, payrollRepo, logger)

	authHandler := appHTTP.NewAuthHandler(jwtSvc, authSvc)
	sessionHandler := appHTTP.NewSessionHandler(jwtSvc, userSvc, session.ProfileFetcherFunc(userSvc.FetchProfile), hub)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		jwtSvc,
		cfg.App.FrontendURL,
		authHandler,
		sessionHandler,
		employeeHandler,
		attendanceHandler,
		leaveHandler,
		payrollHandler,
		reportHandler,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}
