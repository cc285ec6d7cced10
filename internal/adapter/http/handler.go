package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"basaegochi/internal/app/leaderboard"
	"basaegochi/internal/app/petcare"
	"basaegochi/internal/app/ports"
	"basaegochi/internal/app/profile"
	"basaegochi/internal/app/session"
	"basaegochi/internal/domain/pet"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const ownerIDHeader = "X-Owner-ID"

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

type Handler struct {
	PetUC         petcare.UseCase
	Sessions      *session.Manager
	LeaderboardUC leaderboard.UseCase
	ProfileUC     profile.UseCase
	Chain         ports.ChainClient
	KPI           kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	petGroup := s.Group("/api/pet")
	petGroup.POST("/adopt", h.adopt)
	petGroup.GET("/state", h.petState)
	petGroup.POST("/care", h.care)

	battle := s.Group("/api/battle")
	battle.POST("/start", h.startBattle)
	battle.GET("/session", h.battleSession)
	battle.POST("/record", h.recordBattle)
	battle.POST("/lobby", h.returnToLobby)

	s.GET("/api/leaderboard", h.leaderboard)
	s.GET("/api/profile", h.profile)
	s.GET("/ops/kpi", h.kpi)
}

type adoptRequest struct {
	Species string `json:"species"`
	Name    string `json:"name"`
}

type careRequest struct {
	Action string `json:"action"`
}

type battleResponse struct {
	Session session.Snapshot `json:"session"`
}

func (h Handler) adopt(c context.Context, ctx *app.RequestContext) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}
	var body adoptRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.PetUC.Adopt(c, petcare.AdoptRequest{
		OwnerID: ownerID,
		Species: pet.Species(body.Species),
		Name:    body.Name,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) petState(c context.Context, ctx *app.RequestContext) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}
	resp, err := h.PetUC.State(c, petcare.StateRequest{OwnerID: ownerID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) care(c context.Context, ctx *app.RequestContext) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}
	var body careRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.PetUC.Care(c, petcare.CareRequest{
		OwnerID: ownerID,
		Action:  pet.CareAction(body.Action),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) startBattle(c context.Context, ctx *app.RequestContext) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	state, err := h.PetUC.State(c, petcare.StateRequest{OwnerID: ownerID})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctrl := h.Sessions.For(ownerID)
	if err := ctrl.StartBattle(state.BattleLevel); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, battleResponse{Session: ctrl.Snapshot()})
}

func (h Handler) battleSession(c context.Context, ctx *app.RequestContext) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}
	ctx.JSON(consts.StatusOK, battleResponse{Session: h.Sessions.For(ownerID).Snapshot()})
}

func (h Handler) recordBattle(c context.Context, ctx *app.RequestContext) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	ctrl := h.Sessions.For(ownerID)
	err := ctrl.RecordOnChain(c)
	if err != nil && !errors.Is(err, ports.ErrWalletNotConnected) && !errors.Is(err, ports.ErrTxFailed) {
		writeError(ctx, err)
		return
	}
	// Wallet and transaction failures stay in the session log and keep the
	// record action retryable; report them alongside the snapshot.
	resp := map[string]any{"session": ctrl.Snapshot()}
	if err != nil {
		resp["error"] = err.Error()
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) returnToLobby(c context.Context, ctx *app.RequestContext) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	ctrl := h.Sessions.For(ownerID)
	if err := ctrl.ReturnToLobby(); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, battleResponse{Session: ctrl.Snapshot()})
}

func (h Handler) leaderboard(c context.Context, ctx *app.RequestContext) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	caller := ""
	if addr, ok := h.Chain.Address(); ok {
		caller = addr
	}

	resp, err := h.LeaderboardUC.Execute(c, leaderboard.Request{CallerAddress: caller, Limit: limit})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) profile(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ProfileUC.Execute(c, profile.Request{})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		ctx.JSON(consts.StatusOK, map[string]any{})
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func requireOwner(ctx *app.RequestContext) (string, bool) {
	ownerID := strings.TrimSpace(string(ctx.GetHeader(ownerIDHeader)))
	if ownerID == "" {
		writeErrorBody(ctx, consts.StatusUnauthorized, "missing_owner", "X-Owner-ID header required")
		return "", false
	}
	return ownerID, true
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	return json.Unmarshal(ctx.Request.Body(), out)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	case errors.Is(err, petcare.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, petcare.ErrAlreadyAdopted):
		writeErrorBody(ctx, consts.StatusConflict, "already_adopted", err.Error())
	case errors.Is(err, session.ErrBattleInProgress):
		writeErrorBody(ctx, consts.StatusConflict, "battle_in_progress", err.Error())
	case errors.Is(err, session.ErrNoBattleResult):
		writeErrorBody(ctx, consts.StatusConflict, "no_battle_result", err.Error())
	case errors.Is(err, session.ErrSessionClosed):
		writeErrorBody(ctx, consts.StatusGone, "session_closed", err.Error())
	case errors.Is(err, ports.ErrWalletNotConnected):
		writeErrorBody(ctx, consts.StatusBadRequest, "wallet_not_connected", err.Error())
	case errors.Is(err, ports.ErrLeaderboardUnavailable):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "leaderboard_unavailable", err.Error())
	case errors.Is(err, ports.ErrTxFailed):
		writeErrorBody(ctx, consts.StatusBadGateway, "tx_failed", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal", err.Error())
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, errorBody{Code: code, Message: message})
}
