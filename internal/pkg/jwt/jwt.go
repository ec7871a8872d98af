package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"genfly-deploy/internal/pkg/config"
	"genfly-deploy/pkg/constants"
	pkgErrors "genfly-deploy/pkg/errors"
)

// UserClaims 用户Claims
type UserClaims struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Type        string `json:"type"` // access or refresh
	jwt.RegisteredClaims
}

// GenerateAccessToken 生成访问Token
func GenerateAccessToken(userID, username, email, displayName string) (string, error) {
	return generateToken(userID, username, email, displayName, constants.JWTTypeAccess,
		config.GlobalConfig.Auth.JWT.AccessTokenExpire)
}

// GenerateRefreshToken 生成刷新Token
func GenerateRefreshToken(userID, username, email, displayName string) (string, error) {
	return generateToken(userID, username, email, displayName, constants.JWTTypeRefresh,
		config.GlobalConfig.Auth.JWT.RefreshTokenExpire)
}

func generateToken(userID, username, email, displayName, tokenType string, expireSeconds int) (string, error) {
	cfg := config.GlobalConfig.Auth.JWT

	claims := UserClaims{
		UserID:      userID,
		Username:    username,
		Email:       email,
		DisplayName: displayName,
		Type:        tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expireSeconds) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ParseToken 解析Token（不校验类型）
func ParseToken(tokenString string) (*UserClaims, error) {
	cfg := config.GlobalConfig.Auth.JWT

	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, pkgErrors.ErrInvalidToken
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, pkgErrors.ErrTokenExpired
		}
		return nil, pkgErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, pkgErrors.ErrInvalidToken
	}

	return claims, nil
}

// ValidateToken 校验Token有效性
func ValidateToken(tokenString string) (*UserClaims, error) {
	return ParseToken(tokenString)
}
