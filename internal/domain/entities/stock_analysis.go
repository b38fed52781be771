package entities

// StockAnalysis is the canonical row shape for one analyzed symbol.
//
// The upstream analyze_stocks endpoint has shown field-naming drift between
// versions (k_value vs K_Value, RSI condition field casing); encoding/json matches
// keys case-insensitively, so the canonical tags below absorb the drift at the
// boundary instead of propagating it.

type RSIReading struct {
	Value     float64 `json:"Value"`
	Condition string  `json:"Condition"`
}

type StochasticReading struct {
	KValue    float64 `json:"k_value"`
	DValue    float64 `json:"d_value"`
	Condition string  `json:"Condition"`
}

type StockAnalysis struct {
	Symbol           string            `json:"Symbol"`
	EMASignal        string            `json:"Last EMA Signal"`
	SMASignal        string            `json:"Last SMA Signal"`
	MACDCrossover    string            `json:"MACD Crossover"`
	VolumeDivergence string            `json:"Volume Divergence"`
	ADXStrength      string            `json:"ADX Strength"`
	RSI              RSIReading        `json:"RSI"`
	Stochastic       StochasticReading `json:"Stochastic"`
}
