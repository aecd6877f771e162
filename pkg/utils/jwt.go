package utils

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 24 * time.Hour

type JWTClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

var (
	jwtMu     sync.RWMutex
	jwtSecret []byte
	jwtTTL    = defaultTokenTTL
)

// SetJWTConfig overrides the signing secret and token lifetime. Without it
// the secret is read from JWT_SECRET.
func SetJWTConfig(secret string, ttl time.Duration) {
	jwtMu.Lock()
	defer jwtMu.Unlock()
	jwtSecret = []byte(secret)
	if ttl > 0 {
		jwtTTL = ttl
	}
}

// TokenTTL is how long issued tokens stay valid.
func TokenTTL() time.Duration {
	jwtMu.RLock()
	defer jwtMu.RUnlock()
	return jwtTTL
}

func secret() ([]byte, error) {
	jwtMu.RLock()
	s := jwtSecret
	jwtMu.RUnlock()
	if len(s) == 0 {
		s = []byte(os.Getenv("JWT_SECRET"))
	}
	if len(s) == 0 {
		return nil, errors.New("jwt secret is not configured")
	}
	return s, nil
}

func GenerateJWT(userID, role string) (string, error) {
	key, err := secret()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := JWTClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL())),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

func ParseJWT(tokenString string) (*JWTClaims, error) {
	key, err := secret()
	if err != nil {
		return nil, err
	}

	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
