package domain

import (
	"context"
	"time"
)

// Service handles account lifecycle and session authentication.
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*LoginResult, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (*Actor, error)
}

type SignupRequest struct {
	Username  string
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

type LoginRequest struct {
	Username  string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginResult carries the raw session token exactly once; only its hash is
// persisted.
type LoginResult struct {
	Actor     Actor
	RawToken  string
	ExpiresAt time.Time
}

// Repository persists users and sessions.
type Repository interface {
	InsertUser(ctx context.Context, user *User) error
	FindUserByUsername(ctx context.Context, username string) (*User, error)
	FindUserByID(ctx context.Context, id int64) (*User, error)
	InsertSession(ctx context.Context, session *Session) error
	FindSessionByTokenHash(ctx context.Context, tokenHash string) (*Session, error)
	RevokeSession(ctx context.Context, tokenHash string, at time.Time) error
	TouchSession(ctx context.Context, tokenHash string, at time.Time) error
}
