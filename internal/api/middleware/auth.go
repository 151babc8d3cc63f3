package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lmt-transport/LMT-Driver-App/pkg/jwt"
	"github.com/lmt-transport/LMT-Driver-App/pkg/redis"
	"github.com/lmt-transport/LMT-Driver-App/pkg/response"
)

const claimsKey = "claims"

// JWTAuth validates the Authorization: Bearer <token> header and injects the
// claims into the context. A logged-out token is rejected via the Redis
// blacklist; when rdb is nil the blacklist check is skipped.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "malformed authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.Verify(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token invalid or expired")
			c.Abort()
			return
		}

		if rdb != nil {
			blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && blacklisted {
				response.Unauthorized(c, 10002, "token revoked")
				c.Abort()
				return
			}
			// Redis errors degrade open: an unreachable blacklist must not
			// lock every manager out of the board.
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom extracts the verified claims set by JWTAuth.
func ClaimsFrom(c *gin.Context) (*jwt.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}
