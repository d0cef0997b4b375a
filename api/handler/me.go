package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studyzen/backend/pkg/httpcontext"
	analyticsUC "github.com/studyzen/backend/usecase/analytics"
)

// MeLimits bounds the query parameters of the analytics endpoints.
type MeLimits struct {
	WindowDefault    int
	WindowMax        int
	BlueprintDefault int
	BlueprintMax     int
}

type MeHandler struct {
	baseHandler
	uc     *analyticsUC.UseCase
	limits MeLimits
}

func NewMeHandler(uc *analyticsUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger, limits MeLimits) *MeHandler {
	if limits.WindowDefault <= 0 {
		limits.WindowDefault = analyticsUC.DefaultWindowDays
	}
	if limits.WindowMax <= 0 {
		limits.WindowMax = 30
	}
	if limits.BlueprintDefault <= 0 {
		limits.BlueprintDefault = analyticsUC.DefaultBlueprintLimit
	}
	if limits.BlueprintMax <= 0 {
		limits.BlueprintMax = 20
	}
	return &MeHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		limits:      limits,
	}
}

// @Summary Rolling activity summary
// @Tags me
// @Router /api/v1/me/summary [get]
func (h *MeHandler) Summary(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	windowDays, ok := h.boundedParam(ctx, "window_days", h.limits.WindowDefault, h.limits.WindowMax)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	summary, err := h.uc.Summary(stdCtx, userID, windowDays)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, summary)
}

// @Summary Blueprint task ranking
// @Tags me
// @Router /api/v1/me/blueprint [get]
func (h *MeHandler) Blueprint(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	limit, ok := h.boundedParam(ctx, "limit", h.limits.BlueprintDefault, h.limits.BlueprintMax)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	ranked, err := h.uc.Blueprint(stdCtx, userID, limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, ranked)
}

// boundedParam reads a positive integer query parameter, applying the
// default when absent and clamping to 1..max. A present but non-numeric
// value is a validation failure, not a silent default.
func (h *MeHandler) boundedParam(ctx *fasthttp.RequestCtx, name string, fallback, max int) (int, bool) {
	raw := string(ctx.QueryArgs().Peek(name))
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		h.respondInvalid(ctx, name+" must be an integer 1.."+strconv.Itoa(max))
		return 0, false
	}
	if value < 1 {
		value = 1
	}
	if value > max {
		value = max
	}
	return value, true
}
