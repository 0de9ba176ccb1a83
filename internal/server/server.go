/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package server

import (
	"context"
	"net/http"
	"time"

	"website/internal/config"
	"website/internal/handler"
	"website/internal/middleware"
	"website/internal/repository"
	"website/internal/service"
	"website/internal/view"
	"website/internal/wlog"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

// Server wraps an http.Server with all the site's routes configured
type Server struct {
	inner *http.Server
}

// NewRouter wires renderer, session store, services and handlers into the site's router.
// It's separate from New so tests can serve the exact same routes through httptest
func NewRouter(cfg config.Config, users repository.UserRepository, logger wlog.Logger) *mux.Router {
	cookieStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
	}

	renderer := view.NewSiteRenderer(cfg.TemplateDir)
	authService := service.NewPasswordAuthService(users, service.NewBcryptHasher(), logger)
	codec := service.NewSessionCodec(users)

	auth := handler.NewAuthHandler(authService, codec, cookieStore, renderer, logger)
	pages := handler.NewPageHandler(cookieStore, renderer, logger)

	r := mux.NewRouter()
	r.HandleFunc("/", pages.Index).Methods(http.MethodGet)
	r.HandleFunc("/nosotros", pages.Static("nosotros.html")).Methods(http.MethodGet)
	r.HandleFunc("/cursos", pages.Static("cursos.html")).Methods(http.MethodGet)
	r.HandleFunc("/tokens", pages.Static("tokens.html")).Methods(http.MethodGet)
	r.HandleFunc("/perfil", pages.Static("perfil.html")).Methods(http.MethodGet)

	r.HandleFunc("/login", auth.Login).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/register", auth.Register).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/profile", middleware.RequireAuth(codec, cookieStore, logger, auth.Profile)).Methods(http.MethodGet)
	r.HandleFunc("/logout", auth.Logout).Methods(http.MethodGet)

	r.HandleFunc("/health", handler.Health).Methods(http.MethodGet)
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	return r
}

// New builds a ready to start server for the given configuration and user store
func New(cfg config.Config, users repository.UserRepository, logger wlog.Logger) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewRouter(cfg, users, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
