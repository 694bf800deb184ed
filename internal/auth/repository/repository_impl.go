package repository

import (
	"context"
	"errors"
	"time"

	authdomain "github.com/ParthhMahajann/rera-quotation-system/internal/auth/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) authdomain.Repository {
	return &repo{db: db}
}

func (r *repo) InsertUser(ctx context.Context, user *authdomain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repo) FindUserByUsername(ctx context.Context, username string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) FindUserByID(ctx context.Context, id int64) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) InsertSession(ctx context.Context, session *authdomain.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *repo) FindSessionByTokenHash(ctx context.Context, tokenHash string) (*authdomain.Session, error) {
	var session authdomain.Session
	err := r.db.WithContext(ctx).Where("session_token_hash = ?", tokenHash).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *repo) RevokeSession(ctx context.Context, tokenHash string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&authdomain.Session{}).
		Where("session_token_hash = ? AND revoked_at IS NULL", tokenHash).
		Update("revoked_at", at).Error
}

func (r *repo) TouchSession(ctx context.Context, tokenHash string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&authdomain.Session{}).
		Where("session_token_hash = ?", tokenHash).
		Update("last_seen_at", at).Error
}
