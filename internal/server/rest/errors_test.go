package rest

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", common.NewValidationError("bad"), http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("ctx: %w", common.ErrorValidation), http.StatusBadRequest},
		{"unauthorized", common.ErrorUnauthorized, http.StatusUnauthorized},
		{"invalid token", common.ErrInvalidToken, http.StatusUnauthorized},
		{"expired", common.ErrTokenExpired, http.StatusUnauthorized},
		{"not found", fmt.Errorf("db error: %w", common.ErrorNotFound), http.StatusNotFound},
		{"conflict", common.ErrorConflict, http.StatusConflict},
		{"internal", common.ErrorInternal, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := statusOf(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		debug      bool
		err        error
		overrides  messages
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation carries its own message",
			err:        common.NewValidationError("Title is required"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"Title is required"}`,
		},
		{
			name:       "default message",
			err:        common.ErrorNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"message":"Not found"}`,
		},
		{
			name:       "override",
			err:        common.ErrorNotFound,
			overrides:  messages{common.ErrorNotFound: "Task not found"},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"message":"Task not found"}`,
		},
		{
			name:       "internal hides detail",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"Server error"}`,
		},
		{
			name:       "internal in debug",
			debug:      true,
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"Server error","error":"connection refused"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewHTTPServer("", logging.Nop{}, nil, nil, nil, WithDebug(tt.debug))
			rec := httptest.NewRecorder()

			s.writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err, tt.overrides)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"ok", `{"title":"x","unknown":1}`, ""},
		{"empty", ``, "Request body is required"},
		{"malformed", `{"title":`, "Invalid JSON body"},
		{"wrong type", `{"title":5}`, "Invalid JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst createTaskRequest

			err := decodeJSON(httptest.NewRecorder(), req, &dst)

			if tt.wantMsg == "" {
				assert.NoError(t, err)
				assert.Equal(t, "x", dst.Title)
				return
			}
			var ve *common.ValidationError
			if assert.ErrorAs(t, err, &ve) {
				assert.Equal(t, tt.wantMsg, ve.Msg)
			}
		})
	}
}
