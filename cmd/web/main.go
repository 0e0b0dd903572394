package main

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/notegrid/notegrid-go/internal/backend"
	"github.com/notegrid/notegrid-go/internal/config"
	"github.com/notegrid/notegrid-go/internal/handler"
	"github.com/notegrid/notegrid-go/internal/middleware"
	"github.com/notegrid/notegrid-go/internal/notes"
	"github.com/notegrid/notegrid-go/internal/service"
	"github.com/notegrid/notegrid-go/internal/session"
	"github.com/notegrid/notegrid-go/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	client := backend.New(cfg.APIBaseURL, cfg.HTTPTimeout)
	sessions := session.NewStore(client)

	authService := service.NewAuthService(client)
	notesService := service.NewNotesService(client, notes.NewCache())

	renderer, err := handler.NewRenderer(web.Templates)
	if err != nil {
		slog.Error("parsing templates", "error", err)
		os.Exit(1)
	}

	authHandler := handler.NewAuthHandler(authService, notesService, sessions, renderer)
	notesHandler := handler.NewNotesHandler(notesService, sessions, renderer)

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		slog.Error("loading static assets", "error", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Page routes sit behind the session gate: signed-in visitors are kept
	// off /login and /signup, anonymous ones off everything else.
	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionGate(middleware.DefaultGateConfig()))

		r.Get("/", notesHandler.ShowDashboard)
		r.Get("/login", authHandler.ShowLogin)
		r.Get("/signup", authHandler.ShowSignup)
		r.Post("/logout", authHandler.HandleLogout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(5, 10))
			r.Post("/login", authHandler.HandleLogin)
			r.Post("/signup", authHandler.HandleSignup)
		})
	})

	// The dialog API answers 401s instead of redirecting, so it stays
	// outside the gate.
	r.Route("/api", func(r chi.Router) {
		r.Post("/notes", notesHandler.HandleCreateNote)
		r.Put("/notes/{note_id}", notesHandler.HandleUpdateNote)
		r.Delete("/notes/{note_id}", notesHandler.HandleDeleteNote)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "backend", cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
