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
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"website/internal/config"
	"website/internal/repository"
	"website/internal/wlog"
)

// Full site served over httptest, backed by a throwaway SQLite DB.
// The returned client carries a cookie jar, so it behaves like one browser
func newTestSite(t *testing.T) (*httptest.Server, *http.Client, *repository.SQLiteUserRepository) {
	t.Helper()

	repo, err := repository.OpenSQLite(filepath.Join(t.TempDir(), "site.db"), 5*time.Second)
	if err != nil {
		t.Fatalf("Could not open the test DB: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	cfg := config.Config{
		SessionSecret: "test-secret",
		TemplateDir:   filepath.Join("..", "..", "web", "templates"),
		StaticDir:     filepath.Join("..", "..", "web", "static"),
	}

	site := httptest.NewServer(NewRouter(cfg, repo, wlog.Nop()))
	t.Cleanup(site.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Could not build the cookie jar: %v", err)
	}

	return site, &http.Client{Jar: jar}, repo
}

// get follows redirects and returns the final path plus the body
func get(t *testing.T, client *http.Client, rawURL string) (string, string) {
	t.Helper()
	resp, err := client.Get(rawURL)
	if err != nil {
		t.Fatalf("GET %s failed: %v", rawURL, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.Request.URL.Path, string(body)
}

// postForm follows redirects (303 turns into a GET) and returns the final path plus the body
func postForm(t *testing.T, client *http.Client, rawURL string, form url.Values) (string, string) {
	t.Helper()
	resp, err := client.PostForm(rawURL, form)
	if err != nil {
		t.Fatalf("POST %s failed: %v", rawURL, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.Request.URL.Path, string(body)
}

func credentials(email, password string) url.Values {
	return url.Values{"email": {email}, "password": {password}}
}

func TestRegisterLoginLogoutFlow(t *testing.T) {
	site, client, _ := newTestSite(t)

	// The login page starts without errors
	_, body := get(t, client, site.URL+"/login")
	if strings.Contains(body, "flash") {
		t.Error("The login page shows an error before anything happened")
	}

	// Register, landing on the login page
	path, _ := postForm(t, client, site.URL+"/register", credentials("a@x.com", "secret1"))
	if path != "/login" {
		t.Fatalf("Registration ended on %s, expected /login", path)
	}

	// Login with the fresh credentials, landing on the profile
	path, body = postForm(t, client, site.URL+"/login", credentials("a@x.com", "secret1"))
	if path != "/profile" {
		t.Fatalf("Login ended on %s, expected /profile", path)
	}
	if !strings.Contains(body, "a@x.com") {
		t.Error("The profile page does not show the user's email")
	}

	// Logout lands on the home page, and the profile is locked again
	path, _ = get(t, client, site.URL+"/logout")
	if path != "/" {
		t.Errorf("Logout ended on %s, expected /", path)
	}
	path, _ = get(t, client, site.URL+"/profile")
	if path != "/login" {
		t.Errorf("The profile was reachable after logout, ended on %s", path)
	}
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	site, client, _ := newTestSite(t)

	if path, _ := postForm(t, client, site.URL+"/register", credentials("a@x.com", "secret1")); path != "/login" {
		t.Fatal("Could not register the test user")
	}

	// Wrong password for a registered email
	path, wrongPassBody := postForm(t, client, site.URL+"/login", credentials("a@x.com", "wrongpass"))
	if path != "/login" {
		t.Fatalf("Failed login ended on %s, expected /login", path)
	}
	if !strings.Contains(wrongPassBody, "Correo o contraseña incorrectos") {
		t.Error("The generic error message is missing after a wrong password")
	}

	// Unknown email: the page must look exactly as above, revealing nothing
	_, unknownBody := postForm(t, client, site.URL+"/login", credentials("nobody@x.com", "whatever"))
	if !strings.Contains(unknownBody, "Correo o contraseña incorrectos") {
		t.Error("The generic error message is missing for an unknown email")
	}
	if wrongPassBody != unknownBody {
		t.Error("Wrong-password and unknown-email render differently, this leaks which emails exist")
	}

	// The flash is single read: a fresh GET shows no error anymore
	_, cleanBody := get(t, client, site.URL+"/login")
	if strings.Contains(cleanBody, "Correo o contraseña incorrectos") {
		t.Error("The flash message survived a second read")
	}
}

func TestDuplicateRegistration(t *testing.T) {
	site, client, repo := newTestSite(t)

	if path, _ := postForm(t, client, site.URL+"/register", credentials("a@x.com", "secret1")); path != "/login" {
		t.Fatal("Could not register the test user")
	}

	path, body := postForm(t, client, site.URL+"/register", credentials("a@x.com", "other-pass"))
	if path != "/register" {
		t.Fatalf("Duplicate registration ended on %s, expected /register", path)
	}
	if !strings.Contains(body, "Ese correo ya está registrado") {
		t.Error("The duplicate-email message is missing")
	}

	// The original account is untouched: the first password still works
	if path, _ := postForm(t, client, site.URL+"/login", credentials("a@x.com", "secret1")); path != "/profile" {
		t.Error("The original credentials stopped working after the failed duplicate")
	}
	if _, err := repo.GetForLogin(context.Background(), "a@x.com"); err != nil {
		t.Errorf("The original user is gone from the store: %v", err)
	}
}

func TestProfileRequiresSession(t *testing.T) {
	site, client, _ := newTestSite(t)

	path, _ := get(t, client, site.URL+"/profile")
	if path != "/login" {
		t.Errorf("An anonymous visit to /profile ended on %s, expected /login", path)
	}
}

func TestStaticPages(t *testing.T) {
	site, client, _ := newTestSite(t)

	for _, page := range []string{"/", "/nosotros", "/cursos", "/tokens", "/perfil"} {
		resp, err := client.Get(site.URL + page)
		if err != nil {
			t.Fatalf("GET %s failed: %v", page, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s answered %d", page, resp.StatusCode)
		}
	}
}
