package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stlgaming/lottery-api/internal/api/handler/v1/response"
	"github.com/stlgaming/lottery-api/internal/domain"
	"github.com/stlgaming/lottery-api/internal/service"
)

type AgentService interface {
	GetAgent(ctx context.Context, id uint) (domain.Agent, error)
	ListAgentsByCoordinator(ctx context.Context, coordinatorID uint) ([]domain.Agent, error)
}

type AgentHandler struct {
	svc AgentService
}

func NewAgentHandler(svc AgentService) *AgentHandler {
	return &AgentHandler{
		svc: svc,
	}
}

// HandleGetAgent godoc
// @Summary      Get an agent
// @Tags         agents
// @Produce      json
// @Param        agentID  path      int  true  "Agent ID"
// @Success      200      {object}  domain.Agent
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /agents/{agentID} [get]
// @Security BearerAuth
func (h *AgentHandler) HandleGetAgent(ctx *gin.Context) {
	agentID, respErr := parseIDParam(ctx, "agentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	agent, err := h.svc.GetAgent(ctx.Request.Context(), agentID)
	if err != nil {
		if errors.Is(err, service.ErrAgentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("agent", "ID", agentID))
			return
		}

		err = fmt.Errorf("HandleGetAgent -> h.svc.GetAgent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, agent)
}

// HandleListTeam godoc
// @Summary      List the agents under a coordinator
// @Tags         agents
// @Produce      json
// @Param        agentID  path      int  true  "Coordinator agent ID"
// @Success      200      {array}   domain.Agent
// @Failure      500      {object}  response.Err
// @Router       /agents/{agentID}/team [get]
// @Security BearerAuth
func (h *AgentHandler) HandleListTeam(ctx *gin.Context) {
	agentID, respErr := parseIDParam(ctx, "agentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	agents, err := h.svc.ListAgentsByCoordinator(ctx.Request.Context(), agentID)
	if err != nil {
		err = fmt.Errorf("HandleListTeam -> h.svc.ListAgentsByCoordinator -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, agents)
}
