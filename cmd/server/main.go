package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/codecraft/backend/internal/config"
	"github.com/codecraft/backend/internal/fallback"
	"github.com/codecraft/backend/internal/handler"
	"github.com/codecraft/backend/internal/kv"
	"github.com/codecraft/backend/internal/logging"
	"github.com/codecraft/backend/internal/repository"
	"github.com/codecraft/backend/internal/service"
	"github.com/codecraft/backend/internal/session"
	"github.com/codecraft/backend/internal/storage"
	"github.com/codecraft/backend/pkg/auth"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal(logging.Setup(), "load config failed", zap.Error(err))
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal(logger, "failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	store, err := kv.Open(ctx, cfg.KV)
	if err != nil {
		logging.Fatal(logger, "failed to open local store", zap.String("driver", cfg.KV.Driver), zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	objects, err := storage.Open(ctx, cfg.Storage, logger)
	if err != nil {
		logging.Fatal(logger, "failed to open object storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}

	userRepo := repository.NewPgUserRepository(pool)
	profileRepo := repository.NewPgProfileRepository(pool)
	sessionRepo := repository.NewPgSessionRepository(pool)
	projectRepo := repository.NewPgProjectRepository(pool)
	testimonialRepo := repository.NewPgTestimonialRepository(pool)
	inquiryRepo := repository.NewPgInquiryRepository(pool)

	localInquiries := fallback.NewInquiryLog(store, logger)

	sessionService := service.NewSessionService(sessionRepo, logger).WithTTL(cfg.Session.TTL)
	authService := service.NewAuthService(userRepo, profileRepo, sessionService, logger)
	profileService := service.NewProfileService(profileRepo)
	projectService := service.NewProjectService(projectRepo)
	testimonialService := service.NewTestimonialService(testimonialRepo)
	inquiryService := service.NewInquiryService(inquiryRepo, localInquiries, logger)
	landingService := service.NewLandingService(projectService, testimonialService)
	statsService := service.NewStatsService(projectRepo, testimonialRepo, inquiryRepo, localInquiries)

	bypass := session.NewBypass(cfg.Bypass)
	if bypass.Enabled() {
		logger.Info("local admin credential enabled", zap.String("username", cfg.Bypass.Username))
	}
	gate := session.NewGate(sessionService, profileService, bypass, auth.SessionSecretBytes(cfg.Session.Secret)).
		WithTTL(cfg.Session.TTL)

	h := handler.New(pool, cfg.FrontendURL)
	authHandler := handler.NewAuthHandler(authService, gate, profileService, handler.AuthConfig{
		EmailDomain:  cfg.Session.EmailDomain,
		TTL:          cfg.Session.TTL,
		SecureCookie: cfg.IsProduction(),
	}, logger)
	landingHandler := handler.NewLandingHandler(landingService)
	projectHandler := handler.NewProjectHandler(projectService)
	testimonialHandler := handler.NewTestimonialHandler(testimonialService)
	inquiryHandler := handler.NewInquiryHandler(inquiryService, logger)
	imageHandler := handler.NewImageHandler(objects, cfg.HTTP.MaxImageBytes, logger)
	statsHandler := handler.NewStatsHandler(statsService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /api/landing", landingHandler.Landing)
	mux.HandleFunc("GET /api/services", landingHandler.Services)
	mux.HandleFunc("GET /api/projects", projectHandler.List)
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.Get)
	mux.HandleFunc("GET /api/testimonials", testimonialHandler.List)
	mux.HandleFunc("POST /api/inquiries", inquiryHandler.Submit)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/me", authHandler.Me)

	// ローカルストレージの場合はアップロード画像を配信する
	if local, ok := objects.(*storage.LocalStorage); ok {
		prefix := local.URLPrefix() + "/"
		mux.Handle("GET "+prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(local.BaseDir()))))
	}

	// 管理者エンドポイント（セッション + admin ロール）
	requireAuth := auth.RequireAuth(gate)
	withRole := auth.RoleMiddleware(gate.RoleOf)
	admin := func(fn http.HandlerFunc) http.Handler {
		return requireAuth(withRole(auth.RequireAdmin(fn)))
	}
	mux.Handle("POST /api/admin/projects", admin(projectHandler.Create))
	mux.Handle("PUT /api/admin/projects/{id}", admin(projectHandler.Update))
	mux.Handle("DELETE /api/admin/projects/{id}", admin(projectHandler.Delete))
	mux.Handle("POST /api/admin/testimonials", admin(testimonialHandler.Create))
	mux.Handle("PUT /api/admin/testimonials/{id}", admin(testimonialHandler.Update))
	mux.Handle("DELETE /api/admin/testimonials/{id}", admin(testimonialHandler.Delete))
	mux.Handle("GET /api/admin/inquiries", admin(inquiryHandler.AdminList))
	mux.Handle("PATCH /api/admin/inquiries/{id}/status", admin(inquiryHandler.SetStatus))
	mux.Handle("DELETE /api/admin/inquiries/{id}", admin(inquiryHandler.Delete))
	mux.Handle("POST /api/admin/images", admin(imageHandler.Upload))
	mux.Handle("GET /api/admin/stats", admin(statsHandler.Dashboard))

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler.RequestLogger(logger)(handler.SecurityHeaders(h.CORS(mux))),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal(logger, "server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
