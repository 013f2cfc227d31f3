package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/gleegrow/gleegrow-api/internal/api/http"
	"github.com/gleegrow/gleegrow-api/internal/assessment"
	"github.com/gleegrow/gleegrow-api/internal/auth"
	authmw "github.com/gleegrow/gleegrow-api/internal/auth/middleware"
	"github.com/gleegrow/gleegrow-api/internal/completion"
	"github.com/gleegrow/gleegrow-api/internal/config"
	"github.com/gleegrow/gleegrow-api/internal/content"
	"github.com/gleegrow/gleegrow-api/internal/db"
	"github.com/gleegrow/gleegrow-api/internal/leveltest"
	"github.com/gleegrow/gleegrow-api/internal/rbac"
	"github.com/gleegrow/gleegrow-api/internal/recognize"
	"github.com/gleegrow/gleegrow-api/internal/remotegrade"
	"github.com/gleegrow/gleegrow-api/internal/storage"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	var store storage.Store = storage.NewSQLStore(dbh)
	var cache storage.AssessmentCache
	if cfg.RedisURL != "" {
		rc, err := storage.NewRedisCache(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			log.Fatalf("redis cache: %v", err)
		}
		defer rc.Close()
		cache = rc
	} else {
		cache = storage.NewLocalCache(cfg.CacheTTL)
	}
	store = storage.NewCachedStore(store, cache)

	// --- Domain services ---
	registry := content.NewRegistry()
	gen := assessment.NewGenerator(registry, assessment.TierPolicy(cfg.TierPolicy))
	bands := assessment.Bands{TooHard: cfg.ScoreBandLow, TooEasy: cfg.ScoreBandHigh}

	var validator assessment.RemoteValidator
	if cfg.ValidatorURL != "" {
		validator = remotegrade.NewClient(cfg.ValidatorURL, cfg.ValidatorTimeout)
	}
	assessSvc := assessment.NewService(gen, bands, store, validator)

	var recognizer recognize.Recognizer
	if cfg.RecognizerURL != "" {
		recognizer = recognize.NewHTTPRecognizer(cfg.RecognizerURL, cfg.ValidatorTimeout)
	}

	rules := completion.DefaultRuleSet()
	if cfg.RulesFile != "" {
		rules, err = completion.LoadRuleSet(cfg.RulesFile)
		if err != nil {
			log.Fatalf("completion rules: %v", err)
		}
	}
	gate := completion.NewGate(rules, store)
	ltSvc := leveltest.NewService(registry, store)

	// --- Auth ---
	authSvc := authmw.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/register", auth.RegisterHandler(authSvc, store))
	r.Post("/auth/login", auth.LoginHandler(authSvc, store))

	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(authSvc))

		pr.With(rbac.Require("child:create")).
			Post("/children", api.CreateChildHandler(store))
		pr.With(rbac.Require("child:view")).
			Get("/children", api.ListChildrenHandler(store))

		pr.Route("/children/{childID}", func(cr chi.Router) {
			cr.Use(authmw.RequireChildOwnership(store))

			cr.With(rbac.Require("child:view")).
				Get("/", api.GetChildHandler(store))

			cr.With(rbac.Require("assessment:start")).
				Post("/assessments/{subject}/start", api.StartAssessmentHandler(assessSvc, store))
			cr.With(rbac.Require("assessment:submit")).
				Post("/assessments/{subject}/submit", api.SubmitAssessmentHandler(assessSvc, store, recognizer))
			cr.With(rbac.Require("assessment:view")).
				Get("/assessments/{subject}", api.GetAssessmentHandler(assessSvc))

			cr.With(rbac.Require("completion:save")).
				Post("/completions", api.SaveCompletionHandler(store, gate))
			cr.With(rbac.Require("completion:view")).
				Get("/completions", api.ListCompletionsHandler(store))

			cr.With(rbac.Require("gate:check")).
				Get("/gate/page", api.GatePageHandler(store, gate))
			cr.With(rbac.Require("gate:check")).
				Get("/gate/level", api.GateLevelHandler(store, gate))

			cr.With(rbac.Require("completion:save")).
				Post("/weekly", api.SaveWeeklyAssignmentHandler(store))
			cr.With(rbac.Require("completion:view")).
				Get("/weekly", api.ListWeeklyAssignmentsHandler(store))

			cr.With(rbac.Require("leveltest:take")).
				Get("/leveltest/{module}/eligibility", api.LevelTestEligibilityHandler(ltSvc))
			cr.With(rbac.Require("leveltest:take")).
				Post("/leveltest/{module}/start", api.LevelTestStartHandler(ltSvc))
			cr.With(rbac.Require("leveltest:take")).
				Post("/leveltest/{module}/submit", api.LevelTestSubmitHandler(ltSvc))
		})

		pr.With(rbac.Require("worksheet:view")).
			Get("/worksheets/math/{operation}/levels/{level}/pages/{page}", api.MathWorksheetHandler())
		pr.With(rbac.Require("worksheet:submit")).
			Post("/worksheets/math/{operation}/levels/{level}/pages/{page}/submit", api.MathWorksheetSubmitHandler())
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})

	log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
