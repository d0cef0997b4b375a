package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func queryCtx(query string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.SetRequestURI("/api/v1/me/summary?" + query)
	return ctx
}

func TestBoundedParam(t *testing.T) {
	h := NewMeHandler(nil, nil, nil, MeLimits{
		WindowDefault:    7,
		WindowMax:        30,
		BlueprintDefault: 5,
		BlueprintMax:     20,
	})

	tests := []struct {
		name      string
		query     string
		wantValue int
		wantOK    bool
	}{
		{"absent applies default", "", 7, true},
		{"in range passes through", "window_days=14", 14, true},
		{"above max clamps", "window_days=90", 30, true},
		{"below one clamps up", "window_days=0", 1, true},
		{"negative clamps up", "window_days=-3", 1, true},
		{"non-numeric rejects", "window_days=week", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := queryCtx(tt.query)
			value, ok := h.boundedParam(ctx, "window_days", h.limits.WindowDefault, h.limits.WindowMax)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantValue, value)
			} else {
				assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
				assert.Contains(t, string(ctx.Response.Body()), "window_days")
			}
		})
	}
}

func TestMeEndpointsRequireUser(t *testing.T) {
	h := NewMeHandler(nil, nil, nil, MeLimits{})

	ctx := queryCtx("")
	h.Summary(ctx)
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())

	ctx = queryCtx("")
	h.Blueprint(ctx)
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestMeLimitsDefaults(t *testing.T) {
	h := NewMeHandler(nil, nil, nil, MeLimits{})

	assert.Equal(t, 7, h.limits.WindowDefault)
	assert.Equal(t, 30, h.limits.WindowMax)
	assert.Equal(t, 5, h.limits.BlueprintDefault)
	assert.Equal(t, 20, h.limits.BlueprintMax)
}
