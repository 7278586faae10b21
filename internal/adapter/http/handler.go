package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"homestead/internal/app/ports"
	"homestead/internal/app/replay"
	"homestead/internal/app/session"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const actorIDHeader = "X-Actor-ID"

type Handler struct {
	Session  *session.UseCase
	Events   ports.EventRepository
	ReplayUC replay.UseCase
	KPI      kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	sim := s.Group("/api/sim")
	sim.POST("/invoke", h.invoke)
	sim.POST("/observe", h.observe)
	sim.GET("/observe", h.observe)
	sim.GET("/look", h.observe)
	sim.GET("/specs", h.specs)
	sim.GET("/state", h.state)
	sim.GET("/events", h.events)
	sim.GET("/replay", h.replay)

	s.GET("/ops/kpi", h.kpi)
}

type invokeRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args"`
}

func (h Handler) invoke(c context.Context, ctx *app.RequestContext) {
	actorID, err := requireActor(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var body invokeRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.Session.Execute(c, session.Request{
		ActorID: actorID,
		Tool:    body.Tool,
		Args:    body.Args,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) observe(c context.Context, ctx *app.RequestContext) {
	actorID, err := requireActor(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	view, err := h.Session.Observe(actorID)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, view)
}

func (h Handler) specs(c context.Context, ctx *app.RequestContext) {
	actorID, err := requireActor(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	view, err := h.Session.Observe(actorID)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, map[string]any{"tools": view.Tools})
}

func (h Handler) state(_ context.Context, ctx *app.RequestContext) {
	st := h.Session.State()
	ctx.JSON(consts.StatusOK, map[string]any{
		"turn":          st.Turn,
		"turn_index":    st.TurnIndex,
		"current_actor": st.CurrentActor(),
		"locations":     st.Locations,
		"room_locked":   st.RoomLocked,
		"tasks_done":    st.CompletedTasks,
	})
}

func (h Handler) events(c context.Context, ctx *app.RequestContext) {
	if h.Events == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "event repository not configured")
		return
	}
	fromTurn, _ := strconv.Atoi(string(ctx.Query("from_turn")))
	toTurn, _ := strconv.Atoi(string(ctx.Query("to_turn")))
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))

	events, err := h.Events.ListByTurnRange(c, fromTurn, toTurn, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"events": events})
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	fromTurn, _ := strconv.Atoi(string(ctx.Query("from_turn")))
	toTurn, _ := strconv.Atoi(string(ctx.Query("to_turn")))
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))

	resp, err := h.ReplayUC.Execute(c, replay.Request{
		FromTurn: fromTurn,
		ToTurn:   toTurn,
		Limit:    limit,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

var ErrMissingActorIDHeader = errors.New("missing x-actor-id header")

func requireActor(ctx *app.RequestContext) (string, error) {
	actorID := strings.TrimSpace(string(ctx.GetHeader(actorIDHeader)))
	if actorID == "" {
		return "", ErrMissingActorIDHeader
	}
	return actorID, nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingActorIDHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_actor_id", err.Error())
	case errors.Is(err, session.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
