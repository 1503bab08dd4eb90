package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenManager(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	Type   string `json:"typ"` // "access" | "refresh"
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessExpiry time.Time
}

// GeneratePair signs an access and a refresh token for the user. Each kind
// uses its own secret.
func (tm *TokenManager) GeneratePair(userID, role string) (TokenPair, error) {
	now := tm.now()
	access, accExp, err := tm.sign(userID, role, TokenAccess, now, tm.accessTTL, tm.accessSecret)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, _, err := tm.sign(userID, role, TokenRefresh, now, tm.refreshTTL, tm.refreshSecret)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, AccessExpiry: accExp}, nil
}

func (tm *TokenManager) sign(userID, role, typ string, now time.Time, ttl time.Duration, secret []byte) (string, time.Time, error) {
	exp := now.Add(ttl)
	claims := Claims{
		UserID: userID,
		Role:   role,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tm.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", typ, err)
	}
	return s, exp, nil
}

func (tm *TokenManager) ParseAccess(token string) (*Claims, error) {
	return tm.parse(token, TokenAccess, tm.accessSecret)
}

func (tm *TokenManager) ParseRefresh(token string) (*Claims, error) {
	return tm.parse(token, TokenRefresh, tm.refreshSecret)
}

func (tm *TokenManager) parse(token, typ string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tm.issuer),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil || claims.Type != typ || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
