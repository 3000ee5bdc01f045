package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/thenamakop/taskboard/internal/models"
)

type sessionServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
	ttl    time.Duration
}

func NewSessionService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
	ttl time.Duration,
) SessionService {
	return &sessionServiceImpl{
		logger: logger,
		pgPool: pgPool,
		ttl:    ttl,
	}
}

func (s *sessionServiceImpl) Create(ctx context.Context, userID string) (*models.Session, error) {
	token, err := generateSessionToken()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate session token")
		return nil, err
	}

	now := time.Now()
	session := &models.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	const insertSessionQuery = `
INSERT INTO sessions (token,
                      user_id,
                      created_at,
                      expires_at)
VALUES ($1, $2, $3, $4)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertSessionQuery,
		session.Token,
		session.UserID,
		session.CreatedAt,
		session.ExpiresAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", session.UserID).
			Msg("failed to insert session")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", session.UserID).
		Time("expires_at", session.ExpiresAt).
		Msg("created session")
	return session, nil
}

func (s *sessionServiceImpl) Resolve(ctx context.Context, token string) (*models.Session, error) {
	session := &models.Session{
		Token: token,
	}

	const selectSessionByTokenQuery = `
SELECT user_id,
       created_at,
       expires_at
FROM sessions
WHERE token = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectSessionByTokenQuery,
		session.Token,
	).Scan(
		&session.UserID,
		&session.CreatedAt,
		&session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().Msg("session not found")
			return nil, ErrSessionNotFound
		}

		s.logger.Error().
			Err(err).
			Msg("failed to select session by token")
		return nil, err
	}

	// Expired sessions are lazily ignored rather than purged.
	if session.Expired(time.Now()) {
		s.logger.Warn().
			Str("user_id", session.UserID).
			Time("expires_at", session.ExpiresAt).
			Msg("session expired")
		return nil, ErrSessionExpired
	}

	s.logger.Debug().
		Str("user_id", session.UserID).
		Msg("resolved session")
	return session, nil
}

func (s *sessionServiceImpl) Revoke(ctx context.Context, token string) error {
	const deleteSessionQuery = `
DELETE FROM sessions
       WHERE token = $1
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteSessionQuery,
		token,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to delete session")
		return err
	}

	// Revoking an unknown or already revoked token is not an error.
	s.logger.Info().
		Int64("affected", tag.RowsAffected()).
		Msg("revoked session")
	return nil
}

func generateSessionToken() (string, error) {
	const length = 32
	bytes := make([]byte, length)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
