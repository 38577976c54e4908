package jwt

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const TypeAccess = "access"

type Claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// Fid subject 即 Farcaster fid
func (c *Claims) Fid() (uint64, error) {
	return strconv.ParseUint(c.Subject, 10, 64)
}

func GenerateToken(secret []byte, fid uint64, tokenType string, expire time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(fid, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ParseToken(secret []byte, expectedType string, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Type != expectedType {
		return nil, errors.New("invalid token type")
	}
	if _, err := claims.Fid(); err != nil {
		return nil, errors.New("invalid token subject")
	}
	return claims, nil
}
