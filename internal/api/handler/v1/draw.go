package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stlgaming/lottery-api/internal/api/handler/v1/request"
	"github.com/stlgaming/lottery-api/internal/api/handler/v1/response"
	"github.com/stlgaming/lottery-api/internal/domain"
	"github.com/stlgaming/lottery-api/internal/service"
)

type DrawService interface {
	GetDraw(ctx context.Context, id uint) (domain.Draw, error)
	ListDraws(ctx context.Context, date time.Time) ([]domain.Draw, error)
	CloseDraw(ctx context.Context, id uint) (domain.Draw, error)
	RecordResult(ctx context.Context, id uint, winningNumber string) (domain.Draw, error)
	ExposureBoard(ctx context.Context, drawID uint) ([]domain.BetLimitEntry, error)
}

type SettlementService interface {
	SettleDraw(ctx context.Context, drawID uint, winningNumber string) (domain.SettlementReport, error)
	ListWinners(ctx context.Context, drawID uint) ([]domain.WinningTicket, error)
}

type DrawHandler struct {
	svc       DrawService
	settleSvc SettlementService
}

func NewDrawHandler(svc DrawService, settleSvc SettlementService) *DrawHandler {
	return &DrawHandler{
		svc:       svc,
		settleSvc: settleSvc,
	}
}

// HandleListDraws godoc
// @Summary      List draws for a date
// @Tags         draws
// @Produce      json
// @Param        date  query     string  false  "Date (YYYY-MM-DD), defaults to today"
// @Success      200   {array}   domain.Draw
// @Failure      400   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /draws [get]
// @Security BearerAuth
func (h *DrawHandler) HandleListDraws(ctx *gin.Context) {
	date := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := ctx.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid date %q", raw)))
			return
		}
		date = parsed
	}

	draws, err := h.svc.ListDraws(ctx.Request.Context(), date)
	if err != nil {
		err = fmt.Errorf("HandleListDraws -> h.svc.ListDraws -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, draws)
}

// HandleGetDraw godoc
// @Summary      Get a draw
// @Tags         draws
// @Produce      json
// @Param        drawID  path      int  true  "Draw ID"
// @Success      200     {object}  domain.Draw
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /draws/{drawID} [get]
// @Security BearerAuth
func (h *DrawHandler) HandleGetDraw(ctx *gin.Context) {
	drawID, respErr := parseIDParam(ctx, "drawID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	draw, err := h.svc.GetDraw(ctx.Request.Context(), drawID)
	if err != nil {
		if errors.Is(err, service.ErrDrawNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("draw", "ID", drawID))
			return
		}

		err = fmt.Errorf("HandleGetDraw -> h.svc.GetDraw -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, draw)
}

// HandleExposureBoard godoc
// @Summary      Ledger exposure for a draw
// @Description  Returns the per-combination exposure entries, including sold-out flags.
// @Tags         draws
// @Produce      json
// @Param        drawID  path      int  true  "Draw ID"
// @Success      200     {array}   domain.BetLimitEntry
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /draws/{drawID}/limits [get]
// @Security BearerAuth
func (h *DrawHandler) HandleExposureBoard(ctx *gin.Context) {
	drawID, respErr := parseIDParam(ctx, "drawID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	entries, err := h.svc.ExposureBoard(ctx.Request.Context(), drawID)
	if err != nil {
		if errors.Is(err, service.ErrDrawNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("draw", "ID", drawID))
			return
		}

		err = fmt.Errorf("HandleExposureBoard -> h.svc.ExposureBoard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// HandleCloseDraw godoc
// @Summary      Close a draw
// @Description  Administrative close ahead of the scheduler tick. Idempotent.
// @Tags         draws
// @Produce      json
// @Param        drawID  path      int  true  "Draw ID"
// @Success      200     {object}  domain.Draw
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /draws/{drawID}/close [post]
// @Security BearerAuth
func (h *DrawHandler) HandleCloseDraw(ctx *gin.Context) {
	_, role, respErr := callerFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireAdmin(role); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	drawID, respErr := parseIDParam(ctx, "drawID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	draw, err := h.svc.CloseDraw(ctx.Request.Context(), drawID)
	if err != nil {
		if errors.Is(err, service.ErrDrawNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("draw", "ID", drawID))
			return
		}

		err = fmt.Errorf("HandleCloseDraw -> h.svc.CloseDraw -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, draw)
}

// HandleRecordResult godoc
// @Summary      Record the official result
// @Description  Stores the winning number on a closed draw. Settlement is a separate call.
// @Tags         draws
// @Accept       json
// @Produce      json
// @Param        drawID  path      int                          true  "Draw ID"
// @Param        input   body      request.RecordResultRequest  true  "Official result"
// @Success      200     {object}  domain.Draw
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      409     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /draws/{drawID}/result [post]
// @Security BearerAuth
func (h *DrawHandler) HandleRecordResult(ctx *gin.Context) {
	_, role, respErr := callerFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireAdmin(role); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	drawID, respErr := parseIDParam(ctx, "drawID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.RecordResultRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	draw, err := h.svc.RecordResult(ctx.Request.Context(), drawID, input.WinningNumber)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDrawNotFound):
			response.RenderErr(ctx, response.ErrNotFound("draw", "ID", drawID))
		case errors.Is(err, service.ErrInvalidWinningNumber):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrInvalidStateTransition),
			errors.Is(err, service.ErrDrawAlreadySettled):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("HandleRecordResult -> h.svc.RecordResult -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, draw)
}

// HandleSettleDraw godoc
// @Summary      Settle a draw
// @Description  Computes winners and prizes for a closed draw, exactly once. Re-running with the same number returns the stored report.
// @Tags         draws
// @Accept       json
// @Produce      json
// @Param        drawID  path      int                        true  "Draw ID"
// @Param        input   body      request.SettleDrawRequest  true  "Official result"
// @Success      200     {object}  domain.SettlementReport
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      409     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /draws/{drawID}/settle [post]
// @Security BearerAuth
func (h *DrawHandler) HandleSettleDraw(ctx *gin.Context) {
	_, role, respErr := callerFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if respErr = requireAdmin(role); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	drawID, respErr := parseIDParam(ctx, "drawID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.SettleDrawRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	report, err := h.settleSvc.SettleDraw(ctx.Request.Context(), drawID, input.WinningNumber)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDrawNotFound):
			response.RenderErr(ctx, response.ErrNotFound("draw", "ID", drawID))
		case errors.Is(err, service.ErrInvalidWinningNumber):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrInvalidStateTransition),
			errors.Is(err, service.ErrResultMissing),
			errors.Is(err, service.ErrResultMismatch):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("HandleSettleDraw -> h.settleSvc.SettleDraw -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// HandleListWinners godoc
// @Summary      List settlement output
// @Tags         draws
// @Produce      json
// @Param        drawID  path      int  true  "Draw ID"
// @Success      200     {array}   domain.WinningTicket
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /draws/{drawID}/winners [get]
// @Security BearerAuth
func (h *DrawHandler) HandleListWinners(ctx *gin.Context) {
	drawID, respErr := parseIDParam(ctx, "drawID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	winners, err := h.settleSvc.ListWinners(ctx.Request.Context(), drawID)
	if err != nil {
		if errors.Is(err, service.ErrDrawNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("draw", "ID", drawID))
			return
		}

		err = fmt.Errorf("HandleListWinners -> h.settleSvc.ListWinners -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, winners)
}
