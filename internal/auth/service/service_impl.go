package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"time"

	authdomain "github.com/ParthhMahajann/rera-quotation-system/internal/auth/domain"
	"github.com/ParthhMahajann/rera-quotation-system/internal/auth/password"
	"github.com/ParthhMahajann/rera-quotation-system/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const sessionTTL = 24 * time.Hour

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  authdomain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  authdomain.Repository
}

func New(p Params) authdomain.Service {
	return &Service{
		log:   p.Log.Named("auth.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Signup(ctx context.Context, req authdomain.SignupRequest) (*authdomain.LoginResult, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" {
		return nil, authdomain.ErrInvalidUsername
	}
	if len(req.Password) < 6 {
		return nil, authdomain.ErrInvalidPassword
	}

	existing, err := s.repo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, authdomain.ErrUserExists
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &authdomain.User{
		ID:           s.genID.Generate(),
		Username:     username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hashed,
		Role:         authdomain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.InsertUser(ctx, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, authdomain.ErrUserExists
		}
		return nil, err
	}

	s.log.Info("user registered", zap.String("username", username))
	return s.openSession(ctx, user, req.UserAgent, req.IPAddress)
}

func (s *Service) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	user, err := s.repo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !password.Verify(req.Password, user.PasswordHash) {
		return nil, authdomain.ErrInvalidCredentials
	}

	return s.openSession(ctx, user, req.UserAgent, req.IPAddress)
}

func (s *Service) Logout(ctx context.Context, rawToken string) error {
	if strings.TrimSpace(rawToken) == "" {
		return nil
	}
	return s.repo.RevokeSession(ctx, hashToken(rawToken), time.Now().UTC())
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (*authdomain.Actor, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, authdomain.ErrInvalidSession
	}

	tokenHash := hashToken(rawToken)
	session, err := s.repo.FindSessionByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, authdomain.ErrInvalidSession
	}
	now := time.Now().UTC()
	if session.RevokedAt != nil {
		return nil, authdomain.ErrSessionRevoked
	}
	if now.After(session.ExpiresAt) {
		return nil, authdomain.ErrSessionExpired
	}

	user, err := s.repo.FindUserByID(ctx, session.UserID.Int64())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrInvalidSession
	}

	_ = s.repo.TouchSession(ctx, tokenHash, now)

	actor := actorFor(user)
	return &actor, nil
}

func (s *Service) openSession(ctx context.Context, user *authdomain.User, userAgent, ipAddress string) (*authdomain.LoginResult, error) {
	rawToken, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expiresAt := now.Add(sessionTTL)
	session := &authdomain.Session{
		ID:               s.genID.Generate(),
		UserID:           user.ID,
		SessionTokenHash: hashToken(rawToken),
		UserAgent:        userAgent,
		IPAddress:        ipAddress,
		ExpiresAt:        expiresAt,
		CreatedAt:        now,
		LastSeenAt:       now,
	}
	if err := s.repo.InsertSession(ctx, session); err != nil {
		return nil, err
	}

	return &authdomain.LoginResult{
		Actor:     actorFor(user),
		RawToken:  rawToken,
		ExpiresAt: expiresAt,
	}, nil
}

func actorFor(user *authdomain.User) authdomain.Actor {
	return authdomain.Actor{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      authdomain.ParseRole(string(user.Role)),
		Threshold: user.DiscountThreshold,
	}
}

func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
