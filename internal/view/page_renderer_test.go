/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package view

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderTemplate(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "greeting.html")
	if err := os.WriteFile(page, []byte("<p>Hola {{.}}</p>"), 0644); err != nil {
		t.Fatalf("Could not write the test template: %v", err)
	}

	pr := NewPageRenderer(map[string][]string{"greeting.html": {page}})

	var out strings.Builder
	if err := pr.RenderTemplate(&out, "greeting.html", "mundo"); err != nil {
		t.Fatalf("RenderTemplate returned an error: %v", err)
	}
	if !strings.Contains(out.String(), "Hola mundo") {
		t.Errorf("Unexpected output: %s", out.String())
	}
}

func TestRenderMissingTemplate(t *testing.T) {
	pr := NewPageRenderer(map[string][]string{})

	var out strings.Builder
	if err := pr.RenderTemplate(&out, "nope.html", nil); err == nil {
		t.Error("Rendering an unknown template did not fail")
	}
}

func TestSiteRendererLoadsAllPages(t *testing.T) {
	pr := NewSiteRenderer(filepath.Join("..", "..", "web", "templates"))

	var out strings.Builder
	for _, page := range []string{"index.html", "login.html", "register.html", "profile.html"} {
		out.Reset()
		if err := pr.RenderTemplate(&out, page, struct{ Message, Email string }{}); err != nil {
			t.Errorf("Rendering %s failed: %v", page, err)
		}
	}
}
