package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"genfly-deploy/internal/dto"
	"genfly-deploy/internal/pkg/jwt"
	"genfly-deploy/pkg/constants"
	"genfly-deploy/pkg/utils"
)

// AuthMiddleware JWT认证中间件
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 获取Authorization header
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorWithCode(c, 401, "缺少Authorization Header")
			c.Abort()
			return
		}

		// 检查Bearer前缀
		if !strings.HasPrefix(authHeader, constants.HeaderBearerPrefix) {
			utils.ErrorWithCode(c, 401, "Authorization格式错误")
			c.Abort()
			return
		}

		// 提取Token
		token := strings.TrimPrefix(authHeader, constants.HeaderBearerPrefix)

		// 验证Token
		claims, err := jwt.ValidateToken(token)
		if err != nil {
			utils.Error(c, err)
			c.Abort()
			return
		}

		// 检查Token类型(必须是AccessToken)
		if claims.Type != constants.JWTTypeAccess {
			utils.ErrorWithCode(c, 401, "无效的Token类型")
			c.Abort()
			return
		}

		// 将用户信息存入context
		userInfo := &dto.UserInfo{
			UserID:      claims.UserID,
			Username:    claims.Username,
			Email:       claims.Email,
			DisplayName: claims.DisplayName,
		}
		c.Set("user", userInfo)
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)

		c.Next()
	}
}
