package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizrank-api/pkg/auth"
)

// contextUserID — ключ, под которым middleware кладет идентификатор
// аутентифицированного пользователя в контекст gin
const contextUserID = "userID"

// AuthMiddleware проверяет заголовок Authorization и кладет userID в контекст
func AuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token error"})
			return
		}

		claims, err := jwtService.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		c.Set(contextUserID, claims.UserID)
		c.Next()
	}
}

// currentUserID возвращает идентификатор пользователя из контекста запроса
func currentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(contextUserID)
	return userID, userID != ""
}
