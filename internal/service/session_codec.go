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

	"website/internal/entity"
	"website/internal/repository"
)

// SessionCodec converts an authenticated user into the compact identity kept in
// the session, and resolves it back into a full user on later requests.
// Only the UUID goes into the session: the user record itself stays owned by the
// store and is re-read fresh every time
type SessionCodec struct {
	users repository.UserRepository
}

func NewSessionCodec(users repository.UserRepository) *SessionCodec {
	return &SessionCodec{users: users}
}

// Serialize returns the identity to keep in the session for user u
func (c *SessionCodec) Serialize(u *entity.User) string {
	return u.UUID
}

// Deserialize resolves a previously serialized identity.
// A user that was deleted in the meantime comes back as repository.ErrNotFound,
// which callers treat as "this session is no longer authenticated", not as a fault
func (c *SessionCodec) Deserialize(ctx context.Context, id string) (*entity.User, error) {
	return c.users.GetByUUID(ctx, id)
}
