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
	topicUC "github.com/studyzen/backend/usecase/topic"
)

type TopicHandler struct {
	baseHandler
	uc *topicUC.UseCase
}

func NewTopicHandler(uc *topicUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TopicHandler {
	return &TopicHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List topics
// @Tags topics
// @Router /api/v1/topics [get]
func (h *TopicHandler) GetTopics(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	filter := repository.TopicFilter{
		OwnerID:   userID,
		SubjectID: string(ctx.QueryArgs().Peek("subject")),
		Status:    domain.Status(ctx.QueryArgs().Peek("status")),
		Limit:     parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset:    parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	topics, err := h.uc.ListTopics(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, topics)
}

// @Summary Create topic
// @Tags topics
// @Router /api/v1/topics [post]
func (h *TopicHandler) CreateTopic(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	topic, ok := h.parseTopic(ctx, userID)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTopic(stdCtx, topic)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update topic
// @Tags topics
// @Router /api/v1/topics/{id} [put]
func (h *TopicHandler) UpdateTopic(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	topic, ok := h.parseTopic(ctx, userID)
	if !ok {
		return
	}
	if topic.ID == "" {
		topic.ID = pathID(ctx)
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateTopic(stdCtx, topic)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete topic
// @Tags topics
// @Router /api/v1/topics/{id} [delete]
func (h *TopicHandler) DeleteTopic(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id := pathID(ctx)
	if id == "" {
		h.respondInvalid(ctx, "missing topic id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTopic(stdCtx, id, userID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func (h *TopicHandler) parseTopic(ctx *fasthttp.RequestCtx, userID string) (*domain.Topic, bool) {
	var req transport.TopicRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return nil, false
	}
	return &domain.Topic{
		ID:            req.ID,
		UserID:        userID,
		SubjectID:     req.SubjectID,
		Title:         req.Title,
		Status:        domain.Status(req.Status),
		StruggleLevel: req.StruggleLevel,
	}, true
}
