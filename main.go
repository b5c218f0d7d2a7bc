package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"dailyjournal/auth"
	"dailyjournal/config"
	"dailyjournal/db"
	"dailyjournal/mq"
	"dailyjournal/posts"
	"dailyjournal/ratelim"
	"dailyjournal/rdx"
	"dailyjournal/routes"
	"dailyjournal/session"
	"dailyjournal/utils"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// health is a simple liveness probe.
func health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func setupRouter(cfg config.Config, sessions *session.Manager, rateLimiter *ratelim.RateLimiter) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", health)

	authHandler := auth.NewHandler(sessions, auth.GoogleConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		CallbackURL:  cfg.OAuthCallbackURL,
	}, auth.MongoUserStore{})
	postHandler := posts.NewHandler(cfg.BaseURL, posts.MongoStore{})

	routes.AddPageRoutes(router)
	routes.AddAuthRoutes(router, authHandler, rateLimiter)
	routes.AddPostRoutes(router, postHandler, sessions)
	routes.AddStaticRoutes(router)

	return router
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	if err := db.Init(startCtx, cfg.MongoURI, cfg.MongoDB); err != nil {
		log.Fatalf("❌ %v", err)
	}
	if err := rdx.Init(cfg.RedisAddr); err != nil {
		log.Fatalf("❌ %v", err)
	}
	cancelStart()

	sessions := session.NewManager(cfg.SessionSecret, session.RedisStore{})
	sessions.Secure = cfg.CookieSecure
	rateLimiter := ratelim.NewRateLimiter()

	// activity worker consumes journal events until shutdown
	workerCtx, stopWorker := context.WithCancel(context.Background())
	go mq.StartActivityWorker(workerCtx)

	router := setupRouter(cfg, sessions, rateLimiter)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.BaseURL},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server listening on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}

	stopWorker()
	if err := db.Close(ctx); err != nil {
		log.Printf("MongoDB disconnect: %v", err)
	}
	if err := rdx.Close(); err != nil {
		log.Printf("Redis close: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}
