package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studyzen/backend/api/transport"
	"github.com/studyzen/backend/pkg/httpcontext"
	"github.com/studyzen/backend/repository"
	sessionUC "github.com/studyzen/backend/usecase/studysession"
)

type SessionHandler struct {
	baseHandler
	uc *sessionUC.UseCase
}

func NewSessionHandler(uc *sessionUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List study sessions
// @Tags sessions
// @Router /api/v1/sessions [get]
func (h *SessionHandler) GetSessions(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	filter := repository.StudySessionFilter{
		OwnerID: userID,
		TopicID: string(ctx.QueryArgs().Peek("topic")),
		TaskID:  string(ctx.QueryArgs().Peek("task")),
		Limit:   parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset:  parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}
	if after := string(ctx.QueryArgs().Peek("started_after")); after != "" {
		t, err := time.Parse(time.RFC3339, after)
		if err != nil {
			h.respondInvalid(ctx, "started_after must be RFC3339")
			return
		}
		filter.StartedAfter = t
	}
	if before := string(ctx.QueryArgs().Peek("started_before")); before != "" {
		t, err := time.Parse(time.RFC3339, before)
		if err != nil {
			h.respondInvalid(ctx, "started_before must be RFC3339")
			return
		}
		filter.StartedBefore = t
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	sessions, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, sessions)
}

// @Summary Get a study session
// @Tags sessions
// @Router /api/v1/sessions/{id} [get]
func (h *SessionHandler) GetSession(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id := pathID(ctx)
	if id == "" {
		h.respondInvalid(ctx, "missing session id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.uc.Get(stdCtx, userID, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, session)
}

// @Summary Start a study session
// @Tags sessions
// @Router /api/v1/sessions [post]
func (h *SessionHandler) StartSession(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.SessionStartRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.uc.Start(stdCtx, userID, sessionUC.StartInput{
		TaskID:  req.TaskID,
		TopicID: req.TopicID,
		Notes:   req.Notes,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, session)
}

// @Summary Stop a running study session
// @Tags sessions
// @Router /api/v1/sessions/{id}/stop [patch]
func (h *SessionHandler) StopSession(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id := pathID(ctx)
	if id == "" {
		h.respondInvalid(ctx, "missing session id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.uc.Stop(stdCtx, userID, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, session)
}

// @Summary Delete a study session
// @Tags sessions
// @Router /api/v1/sessions/{id} [delete]
func (h *SessionHandler) DeleteSession(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id := pathID(ctx)
	if id == "" {
		h.respondInvalid(ctx, "missing session id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, userID, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
