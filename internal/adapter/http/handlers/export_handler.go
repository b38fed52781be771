package handlers

import (
	"errors"
	"log"
	"net/http"

	response "marketindex/internal/adapter/http/dto/response"
	"marketindex/internal/usecase"
	"marketindex/pkg"

	"github.com/gin-gonic/gin"
)

// ExportHandler serves the stock-analysis spreadsheet download.

type ExportHandler struct {
	usecase usecase.IExportUseCase
}

func NewExportHandler(uc usecase.IExportUseCase) *ExportHandler {
	return &ExportHandler{usecase: uc}
}

// ExportAnalysis fetches the analysis for the requested period/sector and returns
// the XLSX workbook base64-encoded.
func (h *ExportHandler) ExportAnalysis(c *gin.Context) {
	period := c.Query("period")
	sector := c.Query("sector")
	log.Printf("[export][handler] export start period=%q sector=%q", period, sector)

	fileContent, err := h.usecase.ExportAnalysis(c.Request.Context(), period, sector)
	if err != nil {
		log.Printf("[export][handler] export failed err=%v", err)
		appErr := mapExportError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.ExportResponse{FileContent: fileContent})
}

func mapExportError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrMarketDataUnavailable):
		return pkg.NewDomainErrorSimple("MARKET_DATA_UNAVAILABLE", "Failed to fetch stock analysis data", http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
