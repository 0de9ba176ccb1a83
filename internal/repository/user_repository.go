/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"website/internal/entity"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ErrNotFound signals that no user matched the lookup
var ErrNotFound = errors.New("user not found")

// ErrDuplicateEmail signals that the email is already taken by another user
var ErrDuplicateEmail = errors.New("email already registered")

// ErrValidation signals that a required field was empty or malformed
var ErrValidation = errors.New("invalid user fields")

// This repository is used to manipulate the users of the site. It allows CR_D (Create, Read and Delete operations) on the users.
// The email uniqueness is enforced by the underlying database, so that two concurrent Create calls with the
// same email can never both succeed
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash string) (*entity.User, error) // Inserts a user, assigning it a fresh UUID

	GetForLogin(ctx context.Context, email string) (*entity.User, error) // Retrieves the user with given email, it also returns it's hashed password, hence, used for login.
	GetByUUID(ctx context.Context, uuid string) (*entity.User, error)    // Retrieves the user with the given uuid, WITHOUT its secret

	Delete(ctx context.Context, uuid string) error // Removes the user and its secret
}

// Implementation of the repository using a SQLite DB
type SQLiteUserRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// OpenSQLite opens (or creates) the SQLite DB at path and migrates the user tables.
// Every call on the returned repository is bounded by timeout
func OpenSQLite(path string, timeout time.Duration) (*SQLiteUserRepository, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	if err := db.AutoMigrate(&entity.User{}, &entity.UserSecret{}); err != nil {
		return nil, fmt.Errorf("migrating user tables: %w", err)
	}
	return NewSQLiteUserRepository(db, timeout), nil
}

func NewSQLiteUserRepository(db *gorm.DB, timeout time.Duration) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db, timeout: timeout}
}

func (repo *SQLiteUserRepository) Create(ctx context.Context, email, passwordHash string) (*entity.User, error) {
	if email == "" || passwordHash == "" {
		return nil, ErrValidation
	}

	ctx, cancel := repo.bound(ctx)
	defer cancel()

	id := uuid.New().String()
	user := &entity.User{
		UUID:      id,
		Email:     email,
		CreatedAt: time.Now(),

		Secret: entity.UserSecret{
			UserUUID: id,
			Hash:     passwordHash,
		},
	}

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

func (repo *SQLiteUserRepository) GetForLogin(ctx context.Context, email string) (*entity.User, error) {
	ctx, cancel := repo.bound(ctx)
	defer cancel()

	var user entity.User
	err := repo.db.WithContext(ctx).Preload("Secret").Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up user by email: %w", err)
	}
	return &user, nil
}

func (repo *SQLiteUserRepository) GetByUUID(ctx context.Context, id string) (*entity.User, error) {
	ctx, cancel := repo.bound(ctx)
	defer cancel()

	var user entity.User
	err := repo.db.WithContext(ctx).Where("uuid = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up user by uuid: %w", err)
	}
	return &user, nil
}

func (repo *SQLiteUserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := repo.bound(ctx)
	defer cancel()

	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("uuid = ?", id).Delete(&entity.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("user_uuid = ?", id).Delete(&entity.UserSecret{}).Error
	})
}

// Close releases the underlying SQLite handle
func (repo *SQLiteUserRepository) Close() error {
	sqlDB, err := repo.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (repo *SQLiteUserRepository) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if repo.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, repo.timeout)
}
