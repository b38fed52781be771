package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"

	"marketindex/internal/domain/entities"
	"marketindex/internal/usecase/interfaces"

	"github.com/xuri/excelize/v2"
)

var ErrMarketDataUnavailable = errors.New("market data service unavailable")

const (
	exportSheetName     = "Stock Analysis"
	defaultExportPeriod = "3mo"
	defaultExportSector = "most_active"
)

// IExportUseCase renders the current stock analysis as a spreadsheet for the
// front-end's download button. The workbook travels base64-encoded in JSON.

type IExportUseCase interface {
	ExportAnalysis(ctx context.Context, period, sector string) (string, error)
}

type ExportUseCase struct {
	marketData interfaces.IMarketDataClient
}

var _ IExportUseCase = (*ExportUseCase)(nil)

func NewExportUseCase(marketData interfaces.IMarketDataClient) *ExportUseCase {
	return &ExportUseCase{marketData: marketData}
}

func (u *ExportUseCase) ExportAnalysis(ctx context.Context, period, sector string) (string, error) {
	if u.marketData == nil {
		return "", errors.New("market data client not configured")
	}
	if period == "" {
		period = defaultExportPeriod
	}
	if sector == "" {
		sector = defaultExportSector
	}
	log.Printf("[export][usecase] export start period=%s sector=%s", period, sector)

	stocks, err := u.marketData.AnalyzeStocks(ctx, period, sector)
	if err != nil {
		log.Printf("[export][usecase] analysis fetch failed err=%v", err)
		return "", fmt.Errorf("%w: %v", ErrMarketDataUnavailable, err)
	}

	encoded, err := buildWorkbook(stocks)
	if err != nil {
		log.Printf("[export][usecase] workbook build failed err=%v", err)
		return "", err
	}

	log.Printf("[export][usecase] export success rows=%d", len(stocks))
	return encoded, nil
}

func buildWorkbook(stocks []entities.StockAnalysis) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return "", err
	}

	header := []any{
		"Symbol",
		"Last EMA Signal",
		"Last SMA Signal",
		"MACD Crossover",
		"Volume Divergence",
		"ADX Strength",
		"RSI",
		"RSI Condition",
		"Stochastic %K",
		"Stochastic %D",
		"Stochastic Condition",
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &header); err != nil {
		return "", err
	}

	for i, s := range stocks {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		row := []any{
			s.Symbol,
			s.EMASignal,
			s.SMASignal,
			s.MACDCrossover,
			s.VolumeDivergence,
			s.ADXStrength,
			s.RSI.Value,
			s.RSI.Condition,
			s.Stochastic.KValue,
			s.Stochastic.DValue,
			s.Stochastic.Condition,
		}
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return "", err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
