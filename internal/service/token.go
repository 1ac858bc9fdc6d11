package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/logging"
	"github.com/Skotchmaster/eco_shop/internal/tokens"
)

const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// TokenService issues and rotates the access/refresh cookie pair.
type TokenService struct {
	Repo          TokenRepo
	Users         UserRepo
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Now           func() time.Time
}

type Session struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
	Principal    domain.Principal
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *TokenService) ttls() (time.Duration, time.Duration) {
	access, refresh := s.AccessTTL, s.RefreshTTL
	if access == 0 {
		access = DefaultAccessTTL
	}
	if refresh == 0 {
		refresh = DefaultRefreshTTL
	}
	return access, refresh
}

func (s *TokenService) mint(u domain.User) (*Session, domain.RefreshToken, error) {
	accessTTL, refreshTTL := s.ttls()
	now := s.now()
	sub := strconv.FormatUint(uint64(u.ID), 10)

	accessExp := now.Add(accessTTL)
	access, err := tokens.Sign(tokens.AccessClaims{
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(accessExp),
		},
	}, s.AccessSecret)
	if err != nil {
		return nil, domain.RefreshToken{}, fmt.Errorf("sign access token: %w", err)
	}

	refreshExp := now.Add(refreshTTL)
	jti := tokens.NewJTI()
	refresh, err := tokens.Sign(tokens.RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(refreshExp),
		},
	}, s.RefreshSecret)
	if err != nil {
		return nil, domain.RefreshToken{}, fmt.Errorf("sign refresh token: %w", err)
	}

	row := domain.RefreshToken{
		JTI:       jti,
		TokenHash: tokens.Sha256Hex(refresh),
		UserID:    u.ID,
		ExpiresAt: refreshExp,
	}
	return &Session{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		Principal:    domain.PrincipalOf(u),
	}, row, nil
}

// Issue starts a new session for u.
func (s *TokenService) Issue(ctx context.Context, u domain.User) (*Session, error) {
	sess, row, err := s.mint(u)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SaveRefresh(ctx, row); err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}
	return sess, nil
}

// Refresh exchanges a live refresh token for a new pair; the old one is revoked.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	l := logging.FromContext(ctx).With("svc", "tokens.refresh")

	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRefreshToken, err)
	}
	stored, err := s.Repo.RefreshByJTI(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if stored.TokenHash != tokens.Sha256Hex(refreshToken) {
		return nil, domain.ErrInvalidRefreshToken
	}

	u, err := s.Users.UserByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidRefreshToken
		}
		return nil, err
	}

	sess, row, err := s.mint(u)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.RotateRefresh(ctx, claims.ID, row); err != nil {
		if !errors.Is(err, domain.ErrInvalidRefreshToken) {
			l.Error("rotate_failed", "error", err)
		}
		return nil, err
	}
	return sess, nil
}

// Revoke invalidates a refresh token. An empty token is a no-op.
func (s *TokenService) Revoke(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.Repo.RevokeRefresh(ctx, tokens.Sha256Hex(refreshToken))
}

// Authenticate resolves an access token to its principal. Expired tokens
// return an error wrapping jwt.ErrTokenExpired.
func (s *TokenService) Authenticate(accessToken string) (domain.Principal, error) {
	claims, err := tokens.AccessClaimsFromToken(accessToken, s.AccessSecret)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	return domain.Principal{UserID: domain.UserID(id), Username: claims.Username}, nil
}
