/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package config

import (
	"testing"
	"time"
)

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("Load accepted a configuration without SESSION_SECRET")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "some-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned an error: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("Default port is %s, expected 3000", cfg.Port)
	}
	if cfg.StoreDriver != DriverMongo {
		t.Errorf("Default store driver is %s, expected %s", cfg.StoreDriver, DriverMongo)
	}
	if cfg.StoreTimeout != 5*time.Second {
		t.Errorf("Default store timeout is %v, expected 5s", cfg.StoreTimeout)
	}
	if cfg.HTTPAddress() != ":3000" {
		t.Errorf("HTTPAddress gave %s", cfg.HTTPAddress())
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SESSION_SECRET", "some-secret")

	t.Setenv("STORE_DRIVER", "cassandra")
	if _, err := Load(); err == nil {
		t.Error("Load accepted an unknown store driver")
	}
	t.Setenv("STORE_DRIVER", DriverSQLite)

	t.Setenv("STORE_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Error("Load accepted a malformed store timeout")
	}
}
