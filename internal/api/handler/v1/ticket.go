package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/stlgaming/lottery-api/internal/api/handler/v1/request"
	"github.com/stlgaming/lottery-api/internal/api/handler/v1/response"
	"github.com/stlgaming/lottery-api/internal/domain"
	"github.com/stlgaming/lottery-api/internal/service"
)

type TicketService interface {
	SubmitTicket(ctx context.Context, agentID, drawID uint, lines []domain.BetLine) (domain.Ticket, error)
	GetTicketBySerial(ctx context.Context, serial string) (domain.Ticket, error)
}

type TicketHandler struct {
	svc TicketService
}

func NewTicketHandler(svc TicketService) *TicketHandler {
	return &TicketHandler{
		svc: svc,
	}
}

// HandleSubmitTicket godoc
// @Summary      Submit a ticket
// @Description  Sells a ticket of one or more bet lines against an open draw. Rejected wholly if any line exceeds its limit.
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        input  body      request.SubmitTicketRequest  true  "Ticket lines"
// @Success      201    {object}  domain.Ticket
// @Failure      400    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      422    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /tickets [post]
// @Security BearerAuth
func (h *TicketHandler) HandleSubmitTicket(ctx *gin.Context) {
	agentID, _, respErr := callerFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.SubmitTicketRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	lines := make([]domain.BetLine, 0, len(input.Bets))
	for i, bet := range input.Bets {
		if err := bet.Validate(); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("bet line %d: %w", i, err)))
			return
		}

		amount, err := decimal.NewFromString(bet.Amount)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("bet line %d: invalid amount %q", i, bet.Amount)))
			return
		}

		lines = append(lines, domain.BetLine{
			Combination: bet.Combination,
			Type:        domain.BetType(bet.BetType),
			Amount:      amount,
		})
	}

	ticket, err := h.svc.SubmitTicket(ctx.Request.Context(), agentID, input.DrawID, lines)
	if err != nil {
		var rejection *service.TicketRejection
		switch {
		case errors.Is(err, service.ErrDrawNotFound):
			response.RenderErr(ctx, response.ErrNotFound("draw", "ID", input.DrawID))
		case errors.Is(err, service.ErrEmptyTicket),
			errors.Is(err, service.ErrInvalidBetLine):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrDrawClosed):
			response.RenderErr(ctx, response.ErrUnprocessableEntity(err))
		case errors.As(err, &rejection):
			response.RenderErr(ctx, response.ErrUnprocessableEntity(rejection))
		default:
			err = fmt.Errorf("HandleSubmitTicket -> h.svc.SubmitTicket -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, ticket)
}

// HandleGetTicket godoc
// @Summary      Get a ticket by serial
// @Tags         tickets
// @Produce      json
// @Param        serial  path      string  true  "Ticket serial"
// @Success      200     {object}  domain.Ticket
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /tickets/{serial} [get]
// @Security BearerAuth
func (h *TicketHandler) HandleGetTicket(ctx *gin.Context) {
	serial := ctx.Param("serial")

	ticket, err := h.svc.GetTicketBySerial(ctx.Request.Context(), serial)
	if err != nil {
		if errors.Is(err, service.ErrTicketNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("ticket", "serial", serial))
			return
		}

		err = fmt.Errorf("HandleGetTicket -> h.svc.GetTicketBySerial -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, ticket)
}
