// cmd/server/main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"growingtogether/internal/admin"
	"growingtogether/internal/allotment"
	"growingtogether/internal/auth"
	"growingtogether/internal/community"
	"growingtogether/internal/config"
	"growingtogether/internal/diary"
	"growingtogether/internal/events"
	"growingtogether/internal/governance"
	"growingtogether/internal/inspection"
	"growingtogether/internal/membership"
	"growingtogether/internal/plants"
	"growingtogether/internal/tasks"
	"growingtogether/internal/weather"
	"growingtogether/pkg/docstore"
	"growingtogether/pkg/logger"
	"growingtogether/pkg/telemetry"
)

const serviceName = "growingtogether"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, serviceName)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync()

	shutdownTelemetry, err := telemetry.Setup(ctx, serviceName, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer shutdownTelemetry(context.Background())

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	store := docstore.NewPostgresStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}

	var cache *redis.Client
	if cfg.Redis.Addr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer cache.Close()
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)

	membershipSvc := membership.NewService(store, tokens, cfg.Auth.JoinCode, log)
	allotmentSvc := allotment.NewService(store, log)
	tasksSvc := tasks.NewService(store, log)
	inspectionSvc := inspection.NewService(store, allotmentSvc, tasksSvc, log)
	diarySvc := diary.NewService(store, log)
	eventsSvc := events.NewService(store)
	communitySvc := community.NewService(store, membershipSvc)
	governanceSvc := governance.NewService(store)
	weatherSvc := weather.NewService(cfg.Weather, cache)
	plantsSvc := plants.NewService(store)
	adminSvc := admin.NewService(store)

	membershipH := membership.NewHandler(membershipSvc)
	allotmentH := allotment.NewHandler(allotmentSvc)
	inspectionH := inspection.NewHandler(inspectionSvc, allotmentSvc)
	tasksH := tasks.NewHandler(tasksSvc)
	diaryH := diary.NewHandler(diarySvc)
	eventsH := events.NewHandler(eventsSvc)
	communityH := community.NewHandler(communitySvc)
	governanceH := governance.NewHandler(governanceSvc)
	weatherH := weather.NewHandler(weatherSvc)
	plantsH := plants.NewHandler(plantsSvc)
	adminH := admin.NewHandler(adminSvc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(telemetry.RequestMetrics(serviceName))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes.
		r.Post("/auth/register", membershipH.HandleRegister)
		r.Post("/auth/login", membershipH.HandleLogin)

		// Member routes.
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(tokens))

			r.Get("/auth/me", membershipH.HandleMe)

			r.Get("/plots", allotmentH.HandleListPlots)
			r.Get("/plots/my", allotmentH.HandleMyPlot)
			r.Get("/plots/{plotID}", allotmentH.HandleGetPlot)

			r.Get("/inspections", inspectionH.HandleListInspections)
			r.Get("/member-notices", inspectionH.HandleMyNotices)
			r.Post("/member-notices/{noticeID}/acknowledge", inspectionH.HandleAcknowledgeNotice)

			r.Post("/tasks", tasksH.HandleCreateTask)
			r.Get("/tasks", tasksH.HandleListTasks)
			r.Post("/tasks/{taskID}/complete", tasksH.HandleCompleteTask)

			r.Post("/diary", diaryH.HandleCreateEntry)
			r.Get("/diary", diaryH.HandleListEntries)

			r.Get("/events", eventsH.HandleListEvents)
			r.Post("/events/{eventID}/rsvp", eventsH.HandleToggleRSVP)

			r.Post("/posts", communityH.HandleCreatePost)
			r.Get("/posts", communityH.HandleListPosts)

			r.Get("/rules", governanceH.HandleListRules)
			r.Post("/rules/{ruleID}/acknowledge", governanceH.HandleAcknowledgeRule)
			r.Get("/rules/acknowledgements", governanceH.HandleMyAcknowledgements)
			r.Get("/documents", governanceH.HandleListDocuments)

			r.Get("/plants", plantsH.HandleListPlants)
			r.Get("/weather", weatherH.HandleCurrent)
		})

		// Admin routes.
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(tokens))
			r.Use(auth.RequireAdmin)

			r.Get("/admin/pending-users", membershipH.HandlePendingUsers)
			r.Post("/admin/users/{userID}/approve", membershipH.HandleApprove)

			r.Post("/plots", allotmentH.HandleCreatePlot)
			r.Put("/plots/{plotID}/holder", allotmentH.HandleAssignHolder)

			r.Post("/inspections", inspectionH.HandleCreateInspection)

			r.Post("/events", eventsH.HandleCreateEvent)
			r.Patch("/posts/{postID}/pin", communityH.HandlePinPost)
			r.Post("/rules", governanceH.HandleCreateRule)
			r.Post("/documents", governanceH.HandleCreateDocument)

			r.Get("/admin/analytics", adminH.HandleAnalytics)
			r.Get("/admin/export", adminH.HandleExport)
		})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
