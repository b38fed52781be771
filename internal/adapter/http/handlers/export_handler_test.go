package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketindex/internal/adapter/http/handlers/mocks"
	"marketindex/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestExportHandler_ExportAnalysis(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success with query passthrough", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIExportUseCase(ctrl)
		h := NewExportHandler(uc)

		r := gin.New()
		r.GET("/v1/analysis/export", h.ExportAnalysis)

		uc.EXPECT().ExportAnalysis(gomock.Any(), "6mo", "energy").Return("UEsDBA==", nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/analysis/export?period=6mo&sector=energy", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["fileContent"] != "UEsDBA==" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("market data unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIExportUseCase(ctrl)
		h := NewExportHandler(uc)

		r := gin.New()
		r.GET("/v1/analysis/export", h.ExportAnalysis)

		uc.EXPECT().ExportAnalysis(gomock.Any(), "", "").
			Return("", fmt.Errorf("%w: connection refused", usecase.ErrMarketDataUnavailable))

		req := httptest.NewRequest(http.MethodGet, "/v1/analysis/export", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})

	t.Run("unexpected failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIExportUseCase(ctrl)
		h := NewExportHandler(uc)

		r := gin.New()
		r.GET("/v1/analysis/export", h.ExportAnalysis)

		uc.EXPECT().ExportAnalysis(gomock.Any(), "", "").Return("", errors.New("boom"))

		req := httptest.NewRequest(http.MethodGet, "/v1/analysis/export", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}
