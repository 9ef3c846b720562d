package service

import (
	"errors"
	"time"

	"filedrop/backend/common"
	"filedrop/backend/model"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenDuration  = 24 * time.Hour
	refreshTokenDuration = 7 * 24 * time.Hour
	tokenIssuer          = "filedrop"
)

// Claims is the JWT payload for both access and refresh tokens.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   int    `json:"role"`
	jwt.RegisteredClaims
}

func generateTokenWithSecret(user *model.User, duration time.Duration, secret string) (string, error) {
	claims := Claims{
		UserID: user.Id,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GenerateToken(user *model.User) (string, error) {
	return generateTokenWithSecret(user, accessTokenDuration, common.JWTSecret)
}

func GenerateRefreshToken(user *model.User) (string, error) {
	return generateTokenWithSecret(user, refreshTokenDuration, common.JWTRefreshSecret)
}

func validateTokenWithSecret(tokenString string, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func ValidateToken(tokenString string) (*Claims, error) {
	return validateTokenWithSecret(tokenString, common.JWTSecret)
}

func ValidateRefreshToken(tokenString string) (*Claims, error) {
	return validateTokenWithSecret(tokenString, common.JWTRefreshSecret)
}
