// Package auth issues and validates the bearer tokens that identify a user
// on each request.
package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"wallet-ledger/internal/util"
)

// TokenType distinguishes access tokens from refresh tokens.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

const issuer = "wallet-ledger"

// Claims carried by both token types.
type Claims struct {
	UserID    int64     `json:"user_id"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair is returned on login and on refresh.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenManager signs HS256 tokens and rotates refresh tokens.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	denylist   Denylist
	now        func() time.Time
}

// NewTokenManager creates a TokenManager. A nil denylist disables revocation
// of rotated refresh tokens.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration, denylist Denylist) *TokenManager {
	if denylist == nil {
		denylist = NopDenylist{}
	}
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		denylist:   denylist,
		now:        time.Now,
	}
}

// Issue creates a new access/refresh pair for userID.
func (m *TokenManager) Issue(userID int64) (TokenPair, error) {
	access, err := m.sign(userID, AccessToken, m.accessTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := m.sign(userID, RefreshToken, m.refreshTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// ParseAccess validates an access token and returns its claims.
func (m *TokenManager) ParseAccess(token string) (*Claims, error) {
	return m.parse(token, AccessToken)
}

// Refresh exchanges a refresh token for a new pair. The presented refresh
// token is revoked, so it can be used only once.
func (m *TokenManager) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := m.parse(refreshToken, RefreshToken)
	if err != nil {
		return TokenPair{}, err
	}

	ttl := claims.ExpiresAt.Sub(m.now())
	revoked, err := m.denylist.Revoke(ctx, claims.ID, ttl)
	if err != nil {
		return TokenPair{}, fmt.Errorf("revoke refresh token: %w", err)
	}
	if !revoked {
		return TokenPair{}, fmt.Errorf("%w: refresh token already used", util.ErrUnauthorized)
	}
	return m.Issue(claims.UserID)
}

func (m *TokenManager) sign(userID int64, tokenType TokenType, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *TokenManager) parse(token string, want TokenType) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUnauthorized, err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid token", util.ErrUnauthorized)
	}
	if claims.TokenType != want {
		return nil, fmt.Errorf("%w: expected %s token", util.ErrUnauthorized, want)
	}
	if claims.UserID <= 0 {
		return nil, fmt.Errorf("%w: token has no user", util.ErrUnauthorized)
	}
	return claims, nil
}
