// Package auth implements issuing and verifying signed session tokens.
// Tokens are stateless: validity is purely cryptographic plus expiry, there
// is no server-side session table and no revocation list.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Adam9898/pw-manager-backend/internal/common"
)

// Claims is the session claim set: the standard registered claims plus the
// subject account id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// TokenService signs and verifies HS256 session tokens with a process-wide
// secret key.
type TokenService struct {
	secretKey []byte
	validity  time.Duration
}

// NewTokenService constructs a TokenService. An empty secret key is a fatal
// configuration error: callers must refuse to start rather than sign tokens
// with a guessable key.
func NewTokenService(secretKey []byte, validity time.Duration) (*TokenService, error) {
	if len(secretKey) == 0 {
		return nil, errors.New("jwt secret key is not configured")
	}
	if validity <= 0 {
		return nil, errors.New("token validity duration must be positive")
	}
	return &TokenService{secretKey: secretKey, validity: validity}, nil
}

// Issue produces a signed token embedding userID with an absolute expiry one
// validity interval in the future.
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
		UserID: userID,
	})

	return token.SignedString(s.secretKey)
}

// Verify checks the signature, structure, and expiry of a token and returns
// the embedded subject id. Failures come back as common.ErrTokenExpired or
// common.ErrInvalidToken; malformed input is an error value, never a panic,
// so callers can branch on invalidity directly.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
