package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/ankitkhedar12/trading-journal/src/config"
	"github.com/ankitkhedar12/trading-journal/src/database"
	"github.com/ankitkhedar12/trading-journal/src/handlers"
	"github.com/ankitkhedar12/trading-journal/src/logger"
	"github.com/ankitkhedar12/trading-journal/src/model"
	"github.com/ankitkhedar12/trading-journal/src/security"
	"github.com/ankitkhedar12/trading-journal/src/services"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == config.Cfg.FrontendBaseURL || origin == "http://localhost:3000" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Requested-With")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("Trading journal backend server starting...")

	if len(config.Cfg.JWTSecret) < 32 {
		stdlog.Fatal("JWT_SECRET configuration invalid: must be at least 32 characters")
	}

	// The React frontend consumes prices and pnl as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	database.RunMigrations(config.Cfg.DatabasePath)

	if config.Cfg.DemoUserEmail != "" && config.Cfg.DemoUserPassword != "" {
		if err := model.EnsureUser(database.DB, config.Cfg.DemoUserEmail, config.Cfg.DemoUserPassword); err != nil {
			logger.L.Error("Failed to seed demo user", "error", err)
		} else {
			logger.L.Info("Demo user available", "email", config.Cfg.DemoUserEmail)
		}
	}

	statsCache := cache.New(services.DefaultCacheExpiration, services.CacheCleanupInterval)

	authService := security.NewAuthService(config.Cfg.JWTSecret, config.Cfg.AccessTokenExpiry)
	tradeStore := services.NewTradeStore(database.DB)
	statsService := services.NewStatsService(tradeStore, statsCache)
	importService := services.NewImportService(tradeStore, statsService)

	authHandler := handlers.NewAuthHandler(authService)
	tradeHandler := handlers.NewTradeHandler(importService, statsService, tradeStore)
	journalHandler := handlers.NewJournalHandler()

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(enableCORS)
	r.Use(rateLimitMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Trading Journal backend is running"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Post("/auth/login", authHandler.LoginUserHandler)
			r.Post("/auth/register", authHandler.RegisterUserHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(authHandler.AuthMiddleware)

			r.Post("/auth/logout", authHandler.LogoutUserHandler)

			r.Post("/trades/import", tradeHandler.HandleImport)
			r.Get("/trades/dashboard", tradeHandler.HandleGetDashboardStats)
			r.Get("/trades/calendar", tradeHandler.HandleGetCalendar)
			r.Get("/trades", tradeHandler.HandleGetTrades)

			r.Post("/journal", journalHandler.HandleCreateEntry)
			r.Get("/journal", journalHandler.HandleGetEntries)
		})
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
