package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenLifetime is fixed; there is no refresh rotation or revocation —
// a token stays valid until natural expiry.
const tokenLifetime = 7 * 24 * time.Hour

// GenerateToken signs an HS256 token carrying the user's id and name.
func GenerateToken(secret []byte, userID int64, name string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"name":    name,
		"iat":     now.Unix(),
		"exp":     now.Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
