package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studyzen/backend/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrTaskNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrSessionAlreadyStopped, http.StatusConflict, "CONFLICT"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrInvalidPayload, http.StatusBadRequest, "INVALID"},
		{domain.NewError(domain.ErrCodeForbidden, "nope"), http.StatusForbidden, "FORBIDDEN"},
		{domain.WrapError(domain.ErrCodeInvalid, "bad topic", domain.ErrTopicNotFound), http.StatusBadRequest, "INVALID"},
		{errors.New("pg down"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		status, code := mapError(tt.err)
		assert.Equal(t, tt.wantStatus, status)
		assert.Equal(t, tt.wantCode, code)
	}
}
