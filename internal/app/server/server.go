package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/candidate"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/evaluation"
	"hrms/internal/domain/exit"
	"hrms/internal/domain/leave"
	"hrms/internal/domain/loan"
	"hrms/internal/domain/notifications"
	"hrms/internal/domain/performance"
	"hrms/internal/domain/salary"
	"hrms/internal/domain/timesheet"
	"hrms/internal/platform/authz"
	"hrms/internal/platform/config"
	"hrms/internal/platform/crypto"
	"hrms/internal/platform/metrics"
	"hrms/internal/transport/http/api"
	audithandler "hrms/internal/transport/http/handlers/audit"
	authhandler "hrms/internal/transport/http/handlers/auth"
	candidatehandler "hrms/internal/transport/http/handlers/candidate"
	employeehandler "hrms/internal/transport/http/handlers/employee"
	evaluationhandler "hrms/internal/transport/http/handlers/evaluation"
	exithandler "hrms/internal/transport/http/handlers/exit"
	leavehandler "hrms/internal/transport/http/handlers/leave"
	loanhandler "hrms/internal/transport/http/handlers/loan"
	notificationshandler "hrms/internal/transport/http/handlers/notifications"
	performancehandler "hrms/internal/transport/http/handlers/performance"
	salaryhandler "hrms/internal/transport/http/handlers/salary"
	timesheethandler "hrms/internal/transport/http/handlers/timesheet"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/spa"
)

type App struct {
	Config  config.Config
	Logger  *zap.Logger
	Metrics *metrics.Collector
	Router  http.Handler

	ready func(ctx context.Context) error
}

// New wires every store, service and handler onto one router.
func New(cfg config.Config, pool *pgxpool.Pool, log *zap.Logger) (*App, error) {
	cryptoSvc, err := crypto.New(cfg.DataEncryptionKey)
	if err != nil {
		return nil, err
	}
	if !cryptoSvc.Configured() {
		log.Warn("DATA_ENCRYPTION_KEY not set; uploaded documents and MFA secrets are stored unencrypted")
	}
	enforcer, err := authz.New(auth.RolePermissions)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Logger: log, Metrics: metrics.New()}
	if pool != nil {
		app.ready = pool.Ping
	}

	auditSvc := audit.New(pool)
	notifySvc := notifications.New(notifications.NewStore(pool))
	authSvc := auth.NewService(auth.NewStore(pool), cfg.JWTSecret, cfg.SessionTTL, cryptoSvc, enforcer)
	salarySvc := salary.NewService(salary.NewStore(pool))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer(log))
	router.Use(middleware.Logger(log, app.Metrics))
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes, cfg.MaxUploadBytes))
	router.Use(middleware.Auth(authSvc))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", app.handleReady)
	router.With(middleware.RequirePermission(auth.PermMetricsRead, enforcer)).Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, app.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
	})

	router.Route("/api", func(r chi.Router) {
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			api.Fail(w, http.StatusNotFound, "not_found", "resource not found", middleware.GetRequestID(r.Context()))
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			api.Fail(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", middleware.GetRequestID(r.Context()))
		})

		authhandler.NewHandler(authSvc, auditSvc, app.Metrics, cfg.IsProduction()).
			RegisterRoutes(r, middleware.RateLimit(cfg.LoginRatePerMinute))

		employeehandler.NewHandler(employee.NewService(employee.NewStore(pool)), enforcer, auditSvc).RegisterRoutes(r)
		candidatehandler.NewHandler(candidate.NewService(candidate.NewStore(pool), cryptoSvc), enforcer, auditSvc, cfg.MaxUploadBytes).RegisterRoutes(r)
		evaluationhandler.NewHandler(evaluation.NewService(evaluation.NewStore(pool)), enforcer, auditSvc).RegisterRoutes(r)
		salaryhandler.NewHandler(salarySvc, enforcer, auditSvc).RegisterRoutes(r)
		timesheethandler.NewHandler(timesheet.NewService(timesheet.NewStore(pool), cfg.ShortLeaveHours), enforcer, auditSvc).RegisterRoutes(r)
		leavehandler.NewHandler(leave.NewService(leave.NewStore(pool), notifySvc, cfg.LeaveAnnualEntitlement), enforcer, auditSvc).RegisterRoutes(r)
		loanhandler.NewHandler(loan.NewService(loan.NewStore(pool), notifySvc), enforcer, auditSvc).RegisterRoutes(r)
		performancehandler.NewHandler(performance.NewService(performance.NewStore(pool), notifySvc), enforcer, auditSvc).RegisterRoutes(r)
		exithandler.NewHandler(exit.NewService(exit.NewStore(pool), salarySvc, cryptoSvc, notifySvc), enforcer, auditSvc, cfg.MaxUploadBytes).RegisterRoutes(r)
		notificationshandler.NewHandler(notifySvc).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc, enforcer).RegisterRoutes(r)
	})

	router.Handle("/*", spa.NewDir(cfg.FrontendDir))

	app.Router = router
	return app, nil
}

func (a *App) handleReady(w http.ResponseWriter, r *http.Request) {
	if a.ready == nil {
		http.Error(w, "db not ready", http.StatusServiceUnavailable)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := a.ready(ctx); err != nil {
		a.Logger.Warn("readiness check failed", zap.Error(err))
		http.Error(w, "db not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Run serves until ctx is cancelled, then drains in-flight requests for
// up to ShutdownTimeout.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr(),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("HRMS server listening", zap.String("addr", srv.Addr), zap.String("env", a.Config.Environment))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down", zap.Duration("timeout", a.Config.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
