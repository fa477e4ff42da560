package middleware

import (
	"net/http"
	"strings"

	"Carnival/pkg/context"
	"Carnival/pkg/jwt"
	"Carnival/pkg/response"

	"github.com/gin-gonic/gin"
)

// Auth 解析外部身份服务签发的访问令牌
// 身份签发不在本服务，这里只认同一个 secret 的 HS256 token
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "缺少 Authorization")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Abort(c, http.StatusUnauthorized, "Authorization 格式错误")
			return
		}

		claims, err := jwt.ParseToken(secret, "access", parts[1])
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, err.Error())
			return
		}
		c.Set(context.CtxUserID, claims.UserID)
		c.Set(context.CtxRole, claims.Role)

		c.Next()
	}
}
