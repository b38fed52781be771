package interfaces

import (
	"context"

	"marketindex/internal/domain/entities"
)

// IMarketDataClient fetches precomputed technical-analysis signals from the
// external market-data service. Indicator computation happens in that service,
// never locally.
type IMarketDataClient interface {
	AnalyzeStocks(ctx context.Context, period, sector string) ([]entities.StockAnalysis, error)
}
