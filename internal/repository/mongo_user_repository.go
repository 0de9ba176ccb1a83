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
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Document shape of a user inside the "users" collection.
// The password hash lives in the same document so that the insert (and the unique
// index check on the email) is one atomic operation, but reads that don't need it
// project it away
type userDoc struct {
	UUID      string    `bson:"_id"`
	Email     string    `bson:"email"`
	Hash      string    `bson:"hash,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

// Implementation of the repository using a MongoDB database
type MongoUserRepository struct {
	client  *mongo.Client
	users   *mongo.Collection
	timeout time.Duration
}

// OpenMongo connects to the MongoDB at uri, pings it and prepares the unique index on the email.
// A database that can't be reached here is a startup failure, the caller is expected to abort
func OpenMongo(ctx context.Context, uri, database string, timeout time.Duration) (*MongoUserRepository, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	repo := &MongoUserRepository{
		client:  client,
		users:   client.Database(database).Collection("users"),
		timeout: timeout,
	}

	pingCtx, cancel := repo.bound(ctx)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongodb at %s: %w", uri, err)
	}

	idxCtx, cancel := repo.bound(ctx)
	defer cancel()
	_, err = repo.users.Indexes().CreateOne(idxCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("creating unique email index: %w", err)
	}

	return repo, nil
}

func (repo *MongoUserRepository) Create(ctx context.Context, email, passwordHash string) (*entity.User, error) {
	if email == "" || passwordHash == "" {
		return nil, ErrValidation
	}

	ctx, cancel := repo.bound(ctx)
	defer cancel()

	doc := userDoc{
		UUID:      uuid.New().String(),
		Email:     email,
		Hash:      passwordHash,
		CreatedAt: time.Now(),
	}
	if _, err := repo.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return doc.toEntity(), nil
}

func (repo *MongoUserRepository) GetForLogin(ctx context.Context, email string) (*entity.User, error) {
	ctx, cancel := repo.bound(ctx)
	defer cancel()

	var doc userDoc
	err := repo.users.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up user by email: %w", err)
	}
	return doc.toEntity(), nil
}

func (repo *MongoUserRepository) GetByUUID(ctx context.Context, id string) (*entity.User, error) {
	ctx, cancel := repo.bound(ctx)
	defer cancel()

	var doc userDoc
	err := repo.users.FindOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		options.FindOne().SetProjection(bson.D{{Key: "hash", Value: 0}}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up user by uuid: %w", err)
	}
	return doc.toEntity(), nil
}

func (repo *MongoUserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := repo.bound(ctx)
	defer cancel()

	res, err := repo.users.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close tears down the connection to the database
func (repo *MongoUserRepository) Close(ctx context.Context) error {
	return repo.client.Disconnect(ctx)
}

func (repo *MongoUserRepository) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if repo.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, repo.timeout)
}

func (d userDoc) toEntity() *entity.User {
	return &entity.User{
		UUID:      d.UUID,
		Email:     d.Email,
		CreatedAt: d.CreatedAt,

		Secret: entity.UserSecret{
			UserUUID: d.UUID,
			Hash:     d.Hash,
		},
	}
}
