/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"context"
	"errors"

	"website/internal/entity"
	"website/internal/repository"
	"website/internal/wlog"
)

// ErrUnknownEmail signals that no user has the submitted email.
// Callers may log it, but MUST show the same message as ErrWrongPassword, so that
// the login form never reveals which emails are registered
var ErrUnknownEmail = errors.New("unknown email")

// ErrWrongPassword signals that the user exists but the password didn't match its hash
var ErrWrongPassword = errors.New("wrong password")

// ErrEmptyCredentials signals that the email or the password was empty
var ErrEmptyCredentials = errors.New("email and password are required")

// CredentialVerifier is the sole gate for logging in: it decides whether a pair
// of submitted credentials identifies a user. The email/password service below is
// the one implementation, other strategies would be further implementations
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (*entity.User, error)
}

// Service used for the user registration and login phases
type AuthService interface {
	CredentialVerifier
	Register(ctx context.Context, email, password string) (*entity.User, error) // Tries to create a new user, returing it if successful
}

type passwordAuthService struct {
	users  repository.UserRepository // Repository for users
	hasher PasswordHasher            // One-way password hashing
	logger wlog.Logger               // Logs a format string
}

func NewPasswordAuthService(users repository.UserRepository, hasher PasswordHasher, logger wlog.Logger) AuthService {
	return &passwordAuthService{
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

// Register hashes the password and stores the new user.
// The plaintext is handed to the hasher and nothing else, it's never persisted nor logged
func (a *passwordAuthService) Register(ctx context.Context, email, password string) (*entity.User, error) {
	if email == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		a.logger.Logf("Could not calculate hash{%v}", err)
		return nil, err
	}

	user, err := a.users.Create(ctx, email, hash)
	if err != nil {
		return nil, err
	}

	a.logger.Logf("Registered user %s", user.UUID)
	return user, nil
}

// Verify checks the submitted credentials against the store.
// The two failure modes stay distinguishable here for logging, merging them into
// one generic message is the caller's job
func (a *passwordAuthService) Verify(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := a.users.GetForLogin(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			a.logger.Logf("Login attempt for an unknown email")
			return nil, ErrUnknownEmail
		}
		return nil, err
	}

	if !a.hasher.Verify(password, user.Secret.Hash) {
		a.logger.Logf("Wrong password for user %s", user.UUID)
		return nil, ErrWrongPassword
	}

	return user, nil
}
