package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/buildtrack/construction-api/internal"
	"github.com/buildtrack/construction-api/internal/attendance"
	attendancepg "github.com/buildtrack/construction-api/internal/attendance/postgres"
	"github.com/buildtrack/construction-api/internal/auth"
	"github.com/buildtrack/construction-api/internal/core/events"
	"github.com/buildtrack/construction-api/internal/dashboard"
	"github.com/buildtrack/construction-api/internal/expense"
	expensepg "github.com/buildtrack/construction-api/internal/expense/postgres"
	"github.com/buildtrack/construction-api/internal/inquiry"
	inquirypg "github.com/buildtrack/construction-api/internal/inquiry/postgres"
	"github.com/buildtrack/construction-api/internal/invoice"
	invoicepg "github.com/buildtrack/construction-api/internal/invoice/postgres"
	"github.com/buildtrack/construction-api/internal/leave"
	leavepg "github.com/buildtrack/construction-api/internal/leave/postgres"
	"github.com/buildtrack/construction-api/internal/project"
	projectpg "github.com/buildtrack/construction-api/internal/project/postgres"
	"github.com/buildtrack/construction-api/internal/reminder"
	reminderpg "github.com/buildtrack/construction-api/internal/reminder/postgres"
	"github.com/buildtrack/construction-api/internal/scheduler"
	"github.com/buildtrack/construction-api/internal/task"
	taskpg "github.com/buildtrack/construction-api/internal/task/postgres"
	"github.com/buildtrack/construction-api/internal/transport/rest"
	"github.com/buildtrack/construction-api/internal/user"
	userpg "github.com/buildtrack/construction-api/internal/user/postgres"
	"github.com/buildtrack/construction-api/internal/worklog"
	worklogpg "github.com/buildtrack/construction-api/internal/worklog/postgres"
	"github.com/buildtrack/construction-api/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config    *internal.Config
	DB        *gorm.DB
	Router    *chi.Mux
	Scheduler *scheduler.Scheduler
	Bus       *events.EventBus
	Logger    *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := deps.Scheduler.Start(); err != nil {
		deps.Logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		deps.Scheduler.Stop()
		deps.Bus.Drain()
		if sqlDB, err := deps.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				deps.Logger.Error("database close error", "error", err)
			}
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Logging.Format, cfg.Logging.Level)
	log := logger.L()

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Repositories
	userRepo := userpg.NewUserRepository(db)
	projectRepo := projectpg.NewProjectRepository(db)
	taskRepo := taskpg.NewTaskRepository(db)
	expenseRepo := expensepg.NewExpenseRepository(db)
	reminderRepo := reminderpg.NewReminderRepository(db)
	leaveRepo := leavepg.NewLeaveRepository(db)
	attendanceRepo := attendancepg.NewAttendanceRepository(db)
	worklogRepo := worklogpg.NewWorkLogRepository(db)
	invoiceRepo := invoicepg.NewInvoiceRepository(db)
	inquiryRepo := inquirypg.NewInquiryRepository(db)

	// Event bus and cross-domain subscriptions
	bus := events.NewEventBus(log)
	reminder.NewEventHandler(reminderRepo, log).RegisterHandlers(bus)

	// Services
	userService := user.NewService(userRepo, cfg.Security.BCryptCost, log)
	tokens := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(userService, tokens, log)
	taskService := task.NewService(taskRepo, log)
	expenseService := expense.NewService(expenseRepo, bus, log)
	projectService := project.NewService(projectRepo, expenseRepo, taskRepo, log)
	reminderService := reminder.NewService(reminderRepo, log)
	leaveService := leave.NewService(leaveRepo, log)
	attendanceService := attendance.NewService(attendanceRepo, userRepo, leaveRepo, cfg.Scheduler, log)
	worklogService := worklog.NewService(worklogRepo, log)
	invoiceService := invoice.NewService(invoiceRepo, log)
	inquiryService := inquiry.NewService(inquiryRepo, log)
	dashboardService := dashboard.NewService(
		projectRepo,
		expenseRepo,
		reminderRepo,
		leaveRepo,
		invoiceRepo,
		inquiryRepo,
		taskRepo,
		attendanceRepo,
		log,
	)

	sched := scheduler.New(cfg.Scheduler, log,
		scheduler.Sweeper{Name: "reminders", Sweeper: reminderService},
		scheduler.Sweeper{Name: "invoices", Sweeper: invoiceService},
	)

	handlers := rest.Handlers{
		Auth:       auth.NewHandler(authService),
		User:       user.NewHandler(userService),
		Project:    project.NewHandler(projectService),
		Task:       task.NewHandler(taskService),
		Expense:    expense.NewHandler(expenseService),
		Reminder:   reminder.NewHandler(reminderService),
		Leave:      leave.NewHandler(leaveService),
		Attendance: attendance.NewHandler(attendanceService),
		WorkLog:    worklog.NewHandler(worklogService),
		Invoice:    invoice.NewHandler(invoiceService),
		Inquiry:    inquiry.NewHandler(inquiryService),
		Dashboard:  dashboard.NewHandler(dashboardService),
	}

	router := chi.NewRouter()
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap sql.DB: %w", err)
	}
	rest.RegisterAllRoutes(router, sqlDB, handlers, cfg.Server.AllowedOrigins, log)

	return &Dependencies{
		Config:    cfg,
		DB:        db,
		Router:    router,
		Scheduler: sched,
		Bus:       bus,
		Logger:    log,
	}, nil
}

// initDB opens the GORM connection and applies the pool settings.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Source), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
