package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHealthHandler_Check(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		expectedStatus int
		expectedBody   string
	}{
		{name: "Store reachable", expectedStatus: http.StatusOK, expectedBody: `{"status":"healthy"}`},
		{name: "Store down", pingErr: errors.New("no reachable servers"), expectedStatus: http.StatusServiceUnavailable, expectedBody: `{"status":"unavailable"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pinger := new(MockPinger)
			pinger.On("Ping", mock.Anything).Return(tt.pingErr)

			w := httptest.NewRecorder()
			NewHealthHandler(pinger, zerolog.Nop()).Check(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			pinger.AssertExpectations(t)
		})
	}
}

func TestWelcome(t *testing.T) {
	w := httptest.NewRecorder()
	Welcome(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome to Gellie's Store backend!", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}
