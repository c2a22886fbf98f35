package v1

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stlgaming/lottery-api/internal/api/handler/v1/response"
	"github.com/stlgaming/lottery-api/internal/domain"
)

// callerFromContext reads the agent identity the authenticator stored.
// The auth layer resolved it; this core trusts it.
func callerFromContext(ctx *gin.Context) (uint, domain.AgentRole, *response.Err) {
	agentID, ok := ctx.Get("agentID")
	if !ok {
		return 0, "", response.ErrUnauthorized("missing agent identity")
	}

	id, ok := agentID.(uint)
	if !ok || id == 0 {
		return 0, "", response.ErrUnauthorized("invalid agent identity")
	}

	role, _ := ctx.Get("agentRole")
	roleStr, _ := role.(string)

	return id, domain.AgentRole(roleStr), nil
}

func requireAdmin(role domain.AgentRole) *response.Err {
	if role != domain.AgentRoleAdmin {
		return response.ErrPermissionDenied(errors.New("operation requires the admin role"))
	}

	return nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, *response.Err) {
	raw := ctx.Param(name)

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(errors.New("invalid " + name))
	}

	return uint(id), nil
}
