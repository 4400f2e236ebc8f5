package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxClaimsKey = "auth_claims"

// AuthMiddleware requires a valid bearer token, read from the Authorization
// header or, without one, from the access_token query parameter (browser
// websocket handshakes). With a repo, the token's version must
// also match the operator's current one, so logout revokes every token issued
// before it.
func AuthMiddleware(tokens TokenService, repo *Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := requestToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if repo != nil {
			current, err := repo.GetTokenVersion(c.Request.Context(), claims.OperatorID)
			if err != nil || current != claims.TokenVersion {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
		}

		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

func requestToken(c *gin.Context) (string, bool) {
	if h := c.GetHeader("Authorization"); h != "" {
		return BearerToken(h)
	}
	t := strings.TrimSpace(c.Query("access_token"))
	return t, t != ""
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// value.
func BearerToken(header string) (string, bool) {
	if len(header) < len("Bearer ") || !strings.EqualFold(header[:len("Bearer ")], "bearer ") {
		return "", false
	}
	t := strings.TrimSpace(header[len("Bearer "):])
	return t, t != ""
}

func MustGetClaims(c *gin.Context) *Claims {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}
