package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/stlgaming/lottery-api/internal/api/handler/v1/response"
)

const (
	ContextKeyAgentID = "agentID"
	ContextKeyRole    = "agentRole"
)

// Authenticator verifies bearer tokens issued by the external auth layer
// and exposes the caller's agent id and role to handlers. Issuing tokens,
// passwords and permission management all live outside this service.
type Authenticator struct {
	signingKey string
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: signingKey,
	}
}

type agentClaims struct {
	AgentID uint   `json:"agent_id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized("missing bearer token"))
			return
		}

		claims := &agentClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(a.signingKey), nil
		})
		if err != nil || !parsed.Valid {
			response.RenderErr(ctx, response.ErrUnauthorized("invalid token"))
			return
		}

		ctx.Set(ContextKeyAgentID, claims.AgentID)
		ctx.Set(ContextKeyRole, claims.Role)
		ctx.Next()
	}
}
