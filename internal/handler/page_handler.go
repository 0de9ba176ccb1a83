/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"net/http"

	"website/internal/view"
	"website/internal/wlog"

	"github.com/gorilla/sessions"
)

// PageHandler renders the static pages of the site
type PageHandler struct {
	cookieStore *sessions.CookieStore
	renderer    *view.PageRenderer
	logger      wlog.Logger
}

func NewPageHandler(cookieStore *sessions.CookieStore, renderer *view.PageRenderer, logger wlog.Logger) *PageHandler {
	return &PageHandler{
		cookieStore: cookieStore,
		renderer:    renderer,
		logger:      logger,
	}
}

// Index renders the home page, surfacing the last flash message if one is pending
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	session, _ := h.cookieStore.Get(r, "auth-session")
	data := pageData{Message: popFlash(session, w, r)}
	if err := h.renderer.RenderTemplate(w, "index.html", data); err != nil {
		h.logger.Logf("Rendering index {%v}", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Static returns a handler that renders the page template with name "name"
func (h *PageHandler) Static(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.renderer.RenderTemplate(w, name, pageData{}); err != nil {
			h.logger.Logf("Rendering %s {%v}", name, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	}
}

// Health answers liveness probes
func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
