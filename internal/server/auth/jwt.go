// Package auth issues and validates the signed session tokens handed to
// operators after login. Tokens are HS256 JWTs carrying the operator id and
// a fixed-window expiry.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/veritaslab/veritas/internal/common"
)

// Claims extends the registered JWT claims with the operator identity.
type Claims struct {
	jwt.RegisteredClaims
	OperatorID string `json:"operator_id"`
}

// GenerateToken mints a signed session token for operatorID, valid for
// validityDuration from now.
func GenerateToken(operatorID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		OperatorID: operatorID,
	})
	return token.SignedString(secretKey)
}

// ParseToken validates tokenString and returns the operator id and expiry.
// Expired tokens return common.ErrTokenExpired; any other validation
// failure returns common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (string, time.Time, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", time.Time{}, common.ErrTokenExpired
		}
		return "", time.Time{}, common.ErrInvalidToken
	}
	if !token.Valid || claims.OperatorID == "" {
		return "", time.Time{}, common.ErrInvalidToken
	}
	return claims.OperatorID, claims.ExpiresAt.Time, nil
}
