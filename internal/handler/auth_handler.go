/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"errors"
	"net/http"

	"website/internal/middleware"
	"website/internal/repository"
	"website/internal/service"
	"website/internal/view"
	"website/internal/wlog"

	"github.com/gorilla/sessions"
)

// User facing messages. The two login failure causes share one message on purpose:
// the form must not reveal whether an email is registered
const (
	msgInvalidCredentials = "Correo o contraseña incorrectos"
	msgMissingFields      = "Correo y contraseña son obligatorios"
	msgEmailTaken         = "Ese correo ya está registrado"
	msgRegisterFailed     = "Error al registrar el usuario"
	msgSomethingWrong     = "Algo salió mal, inténtalo de nuevo"
)

// AuthHandler helps in managing user registration and authentication
type AuthHandler struct {
	authService service.AuthService
	codec       *service.SessionCodec
	cookieStore *sessions.CookieStore
	renderer    *view.PageRenderer
	logger      wlog.Logger
}

func NewAuthHandler(authService service.AuthService, codec *service.SessionCodec, cookieStore *sessions.CookieStore, renderer *view.PageRenderer, logger wlog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		codec:       codec,
		cookieStore: cookieStore,
		renderer:    renderer,
		logger:      logger,
	}
}

// Login handles the authentication phase
// If this function got called a GET request, it shows the login form (with the last flash, if any)
// Otherwise, for POST, it retrieves the form's input fields and tries to authenticate the user
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	session, _ := h.cookieStore.Get(r, "auth-session")

	if r.Method == http.MethodGet {
		data := pageData{Message: popFlash(session, w, r)}
		if err := h.renderer.RenderTemplate(w, "login.html", data); err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.flashAndRedirect(w, r, session, msgMissingFields, "/login")
		return
	}

	user, err := h.authService.Verify(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, service.ErrUnknownEmail) || errors.Is(err, service.ErrWrongPassword) {
			h.flashAndRedirect(w, r, session, msgInvalidCredentials, "/login")
			return
		}
		h.logger.Logf("Login failed on the store {%v}", err)
		h.flashAndRedirect(w, r, session, msgSomethingWrong, "/login")
		return
	}

	session.Values["user_uuid"] = h.codec.Serialize(user)
	if err := session.Save(r, w); err != nil {
		h.logger.Logf("Saving cookie {%v}", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// Registers a user
// If the method is GET, a registration form is shown
// If it's POST, it retrieves the input fields and uses the auth service to register the user
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	session, _ := h.cookieStore.Get(r, "auth-session")

	if r.Method == http.MethodGet {
		data := pageData{Message: popFlash(session, w, r)}
		if err := h.renderer.RenderTemplate(w, "register.html", data); err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	if !validateEmail(email) || password == "" {
		h.flashAndRedirect(w, r, session, msgMissingFields, "/register")
		return
	}

	if _, err := h.authService.Register(r.Context(), email, password); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			h.flashAndRedirect(w, r, session, msgEmailTaken, "/register")
		case errors.Is(err, repository.ErrValidation), errors.Is(err, service.ErrEmptyCredentials):
			h.flashAndRedirect(w, r, session, msgMissingFields, "/register")
		default:
			h.logger.Logf("Registration failed on the store {%v}", err)
			h.flashAndRedirect(w, r, session, msgRegisterFailed, "/register")
		}
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Profile shows the account page of the authenticated user
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.renderer.RenderTemplate(w, "profile.html", pageData{Email: user.Email}); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Logout deletes the current user's session, effectively logging him out.
// A session that fails to clear is logged, the redirect home happens regardless
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.cookieStore.Get(r, "auth-session")
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		h.logger.Logf("Error during logout {%v}", err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) flashAndRedirect(w http.ResponseWriter, r *http.Request, session *sessions.Session, message, target string) {
	session.AddFlash(message)
	if err := session.Save(r, w); err != nil {
		h.logger.Logf("Saving flash {%v}", err)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
