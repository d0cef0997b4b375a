package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studyzen/backend/api/transport"
	"github.com/studyzen/backend/domain"
	"github.com/studyzen/backend/pkg/httpcontext"
	"github.com/studyzen/backend/repository"
	subjectUC "github.com/studyzen/backend/usecase/subject"
)

type SubjectHandler struct {
	baseHandler
	uc *subjectUC.UseCase
}

func NewSubjectHandler(uc *subjectUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *SubjectHandler {
	return &SubjectHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List subjects
// @Tags subjects
// @Router /api/v1/subjects [get]
func (h *SubjectHandler) GetSubjects(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	filter := repository.SubjectFilter{
		OwnerID: userID,
		Limit:   parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset:  parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	subjects, err := h.uc.ListSubjects(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, subjects)
}

// @Summary Create subject
// @Tags subjects
// @Router /api/v1/subjects [post]
func (h *SubjectHandler) CreateSubject(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	subject, ok := h.parseSubject(ctx, userID)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateSubject(stdCtx, subject)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update subject
// @Tags subjects
// @Router /api/v1/subjects/{id} [put]
func (h *SubjectHandler) UpdateSubject(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	subject, ok := h.parseSubject(ctx, userID)
	if !ok {
		return
	}
	if subject.ID == "" {
		subject.ID = pathID(ctx)
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateSubject(stdCtx, subject)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete subject
// @Tags subjects
// @Router /api/v1/subjects/{id} [delete]
func (h *SubjectHandler) DeleteSubject(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id := pathID(ctx)
	if id == "" {
		h.respondInvalid(ctx, "missing subject id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteSubject(stdCtx, id, userID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func (h *SubjectHandler) parseSubject(ctx *fasthttp.RequestCtx, userID string) (*domain.Subject, bool) {
	var req transport.SubjectRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return nil, false
	}
	return &domain.Subject{
		ID:     req.ID,
		UserID: userID,
		Name:   req.Name,
		Color:  req.Color,
	}, true
}
