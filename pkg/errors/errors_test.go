package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Classification(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		typ    ErrorType
		status int
	}{
		{"validation", NewValidationError("bad"), ErrorTypeValidation, http.StatusBadRequest},
		{"not found", NewNotFoundError("journey"), ErrorTypeNotFound, http.StatusNotFound},
		{"unauthorized", NewUnauthorizedError(""), ErrorTypeUnauthorized, http.StatusUnauthorized},
		{"internal", NewInternalError("oops"), ErrorTypeInternal, http.StatusInternalServerError},
		{"rate limit", NewRateLimitError(10, "minute"), ErrorTypeRateLimit, http.StatusTooManyRequests},
		{"limit", NewLimitError(CodeNodeLimit, 50, "too many nodes"), ErrorTypeValidation, http.StatusBadRequest},
		{"storage", NewStorageError("badger", "get", "journeys", fmt.Errorf("io")), ErrorTypeStorage, http.StatusInternalServerError},
		{"publish", NewPublishError("eventbridge", fmt.Errorf("io")), ErrorTypePublish, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.typ, tt.err.Type)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.NotEmpty(t, tt.err.StackTrace)

			wrapped := fmt.Errorf("context: %w", tt.err)
			assert.True(t, IsType(wrapped, tt.typ))
			assert.Same(t, tt.err, GetAppError(wrapped))
		})
	}

	assert.Equal(t, "journey not found", NewNotFoundError("journey").Message)
	assert.True(t, IsNotFound(NewNotFoundError("x")))
	assert.False(t, IsValidation(fmt.Errorf("plain")))
}

func TestAppError_CodesAndDetails(t *testing.T) {
	err := NewLimitError(CodeDepthLimit, 3, "condition groups nest at most 3 levels")
	assert.True(t, HasCode(fmt.Errorf("wrapped: %w", err), CodeDepthLimit))
	assert.False(t, HasCode(err, CodeNodeLimit))
	assert.Equal(t, 3, err.Details["limit"])
	assert.Equal(t, "VALIDATION/DEPTH_LIMIT: condition groups nest at most 3 levels", err.Error())

	cause := fmt.Errorf("throttled")
	storage := NewStorageError("dynamodb", "put", "segments", cause)
	assert.ErrorIs(t, storage, cause)
	assert.Equal(t, "segments", storage.Details["slot"])
	assert.Equal(t, "STORAGE: dynamodb put segments failed (caused by: throttled)", storage.Error())
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))

	err := Wrap(NewValidationError("name is required"), "create journey")
	assert.True(t, IsValidation(err))
	assert.Equal(t, "create journey: name is required", GetAppError(err).Message)

	plain := fmt.Errorf("disk full")
	err = Wrap(plain, "save")
	assert.True(t, IsType(err, ErrorTypeInternal))
	assert.ErrorIs(t, err, plain)
}

func TestErrorHandler_Handle(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		debug       bool
		wantStatus  int
		wantType    string
		wantMessage string
	}{
		{
			name:        "app error",
			err:         NewNotFoundError("segment").WithCode("SEGMENT_NOT_FOUND"),
			wantStatus:  http.StatusNotFound,
			wantType:    "NOT_FOUND",
			wantMessage: "segment not found",
		},
		{
			name:        "plain error hidden",
			err:         fmt.Errorf("connection reset"),
			wantStatus:  http.StatusInternalServerError,
			wantType:    "INTERNAL",
			wantMessage: "An internal error occurred",
		},
		{
			name:        "plain error in debug",
			err:         fmt.Errorf("connection reset"),
			debug:       true,
			wantStatus:  http.StatusInternalServerError,
			wantType:    "INTERNAL",
			wantMessage: "connection reset",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewErrorHandler(nil, tt.debug)
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/segments/x", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.True(t, body.Error)
			assert.Equal(t, tt.wantType, body.Type)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}

func TestErrorHandler_MiddlewareRecovers(t *testing.T) {
	h := NewErrorHandler(nil, false)
	handler := h.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "panic: boom")
}
