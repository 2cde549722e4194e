package auth

import (
	"context"
	"time"
)

type StoreAPI interface {
	FindActiveUserByEmail(ctx context.Context, email string) (User, error)
	FindUserByID(ctx context.Context, userID string) (User, error)
	CreateSession(ctx context.Context, userID, sessionHash string, expires time.Time) error
	SessionValid(ctx context.Context, userID, sessionHash string) (bool, error)
	RevokeSession(ctx context.Context, userID, sessionHash string) error
	UpdateLastLogin(ctx context.Context, userID string) error
	UpdateMFASecret(ctx context.Context, userID string, secretEnc []byte) error
	SetMFAEnabled(ctx context.Context, userID string, enabled bool) error
}
