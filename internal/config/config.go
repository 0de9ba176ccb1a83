/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Store driver names accepted in STORE_DRIVER
const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

// Config holds the runtime configuration of the site, sourced from env vars.
// It's loaded once at startup and never mutated afterwards
type Config struct {
	Port          string
	SessionSecret string // Secret used to sign the session cookie. Required, there is no default on purpose

	StoreDriver  string
	MongoURI     string
	MongoDB      string
	SQLitePath   string
	StoreTimeout time.Duration // Bound on every single store call

	TemplateDir string
	StaticDir   string
}

// Load reads the configuration from the environment and validates it
func Load() (Config, error) {
	cfg := Config{
		Port:          fallback(os.Getenv("PORT"), "3000"),
		SessionSecret: strings.TrimSpace(os.Getenv("SESSION_SECRET")),
		StoreDriver:   fallback(os.Getenv("STORE_DRIVER"), DriverMongo),
		MongoURI:      fallback(os.Getenv("MONGO_URI"), "mongodb://localhost:27017"),
		MongoDB:       fallback(os.Getenv("MONGO_DB"), "login_demo"),
		SQLitePath:    fallback(os.Getenv("SQLITE_PATH"), "website.db"),
		TemplateDir:   fallback(os.Getenv("TEMPLATE_DIR"), "web/templates"),
		StaticDir:     fallback(os.Getenv("STATIC_DIR"), "web/static"),
	}

	cfg.StoreTimeout = 5 * time.Second
	if raw := strings.TrimSpace(os.Getenv("STORE_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("STORE_TIMEOUT is not a valid duration{%s}", raw)
		}
		cfg.StoreTimeout = d
	}

	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET is required")
	}
	if cfg.StoreDriver != DriverMongo && cfg.StoreDriver != DriverSQLite {
		return Config{}, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverMongo, DriverSQLite, cfg.StoreDriver)
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair the HTTP server binds to
func (c Config) HTTPAddress() string {
	return ":" + c.Port
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}
