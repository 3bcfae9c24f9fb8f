package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenService emite e valida os dois tokens de sessão: o access token
// (curto, vai no header Authorization) e o refresh token (longo, só viaja
// no cookie HTTP-only e é rotacionado a cada uso).
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *TokenService) GenerateAccessToken(userID uuid.UUID) (string, error) {
	return s.generate(userID, tokenTypeAccess, s.accessTTL)
}

func (s *TokenService) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return s.generate(userID, tokenTypeRefresh, s.refreshTTL)
}

func (s *TokenService) generate(userID uuid.UUID, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID.String(),
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti único garante que a rotação sempre produz um cookie novo,
			// mesmo dois refreshes dentro do mesmo segundo.
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenService) ParseAccessToken(raw string) (uuid.UUID, error) {
	return s.parse(raw, tokenTypeAccess)
}

func (s *TokenService) ParseRefreshToken(raw string) (uuid.UUID, error) {
	return s.parse(raw, tokenTypeRefresh)
}

func (s *TokenService) parse(raw, wantType string) (uuid.UUID, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	// Um refresh token nunca serve como access token e vice-versa.
	if claims.TokenType != wantType {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}
