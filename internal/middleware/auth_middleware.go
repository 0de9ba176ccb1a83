/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package middleware

import (
	"context"
	"errors"
	"net/http"

	"website/internal/entity"
	"website/internal/repository"
	"website/internal/service"
	"website/internal/wlog"

	"github.com/gorilla/sessions"
)

type userKey struct{}

// RequireAuth guards a handler behind an authenticated session.
// Per request it reads the session identity and resolves it freshly through the codec:
// no identity, or an identity whose user no longer exists, sends the browser to /login
// (clearing the stale session). The wrapped handler only ever runs with a valid user,
// reachable through CurrentUser. A redirect is the only failure signal, this middleware
// never answers with an error status
func RequireAuth(codec *service.SessionCodec, store *sessions.CookieStore, logger wlog.Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := store.Get(r, "auth-session")
		if err != nil {
			// Cookie didn't decode, drop it and start over
			session.Options.MaxAge = -1
			_ = session.Save(r, w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		id, ok := session.Values["user_uuid"].(string)
		if !ok || id == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		user, err := codec.Deserialize(r.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// The user behind this session is gone, log the session out
				delete(session.Values, "user_uuid")
				session.Options.MaxAge = -1
				if err := session.Save(r, w); err != nil {
					logger.Logf("Could not clear stale session {%v}", err)
				}
			} else {
				logger.Logf("Could not resolve session identity {%v}", err)
				session.AddFlash("Algo salió mal, inténtalo de nuevo")
				_ = session.Save(r, w)
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), userKey{}, user)
		next(w, r.WithContext(ctx))
	}
}

// CurrentUser retrieves the authenticated user placed in the request context by RequireAuth
func CurrentUser(r *http.Request) (*entity.User, bool) {
	user, ok := r.Context().Value(userKey{}).(*entity.User)
	return user, ok
}
