package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shopfront/internal/apperr"
)

// DefaultTTL is how long an issued session stays valid.
const DefaultTTL = 30 * 24 * time.Hour

// Claims are the session token contents: registered claims plus the id of
// the authenticated user.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// Issue signs a stateless session token for userID. Validity is determined
// entirely by signature and expiry; nothing is stored server-side.
func Issue(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", apperr.Internal(err, "sign session token")
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded user id.
// Any failure comes back as an authentication error.
func Verify(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", apperr.Wrap(apperr.KindAuthentication, err, "invalid session token")
	}
	if !token.Valid || claims.UserID == "" {
		return "", apperr.Authentication("invalid session token")
	}

	return claims.UserID, nil
}
