package restapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"splits_checker/internal/domain/entity"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}

func TestWriteErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &BalanceHandler{logger: nopLogger{}}

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"indexer not configured", entity.ErrIndexerNotConfigured, http.StatusNotImplemented},
		{"native metadata request", entity.ErrNativeTokenMetadata, http.StatusBadRequest},
		{"unknown network", fmt.Errorf("network %q: %w", "hyperchain", entity.ErrNetworkNotConfigured), http.StatusNotFound},
		{"wrapped indexer error", fmt.Errorf("fetch failed: %w", entity.ErrIndexerNotConfigured), http.StatusNotImplemented},
		{"transport failure", errors.New("rpc unavailable"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)

			handler.writeError(c, "ethereum", tt.err)
			if recorder.Code != tt.status {
				t.Errorf("status = %d, want %d", recorder.Code, tt.status)
			}
		})
	}
}
