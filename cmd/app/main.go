/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"website/internal/config"
	"website/internal/repository"
	"website/internal/server"
	"website/internal/wlog"

	"github.com/joho/godotenv"
)

func main() {
	logger := wlog.New("main")

	if err := godotenv.Load(); err != nil {
		logger.Logf("No .env file found, relying on the environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Logf("Could not load the configuration {%v}", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	users, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		// Without the database there is no site to serve
		logger.Logf("Could not reach the user store {%v}", err)
		os.Exit(1)
	}

	srv := server.New(cfg, users, wlog.New("http"))

	go func() {
		logger.Logf("Serving on http://localhost%s", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Logf("HTTP server error {%v}", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Logf("Shutting off...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logf("Graceful shutdown error {%v}", err)
	}
	if err := closeStore(shutdownCtx); err != nil {
		logger.Logf("Closing the user store {%v}", err)
	}
}

// openStore opens the user repository selected by the configuration,
// returning it together with its teardown function
func openStore(ctx context.Context, cfg config.Config) (repository.UserRepository, func(context.Context) error, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		repo, err := repository.OpenSQLite(cfg.SQLitePath, cfg.StoreTimeout)
		if err != nil {
			return nil, nil, err
		}
		return repo, func(context.Context) error { return repo.Close() }, nil
	default:
		repo, err := repository.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDB, cfg.StoreTimeout)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	}
}
