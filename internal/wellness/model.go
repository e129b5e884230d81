package wellness

// PortfolioSnapshot is the caller-owned input to the scoring engine. Optional
// numeric fields are pointers; nil means "not reported" and takes the
// documented default rather than zero, so a sparse snapshot produces a sane
// mid-range score instead of an alarming one.
type PortfolioSnapshot struct {
	// TotalValue is the portfolio market value. Informational; not scored.
	TotalValue *float64 `json:"totalValue"`

	// Allocation maps asset-class name to percentage weight. Weights
	// conceptually sum to 100. The "cash" entry (case-insensitive) feeds the
	// liquidity score.
	Allocation map[string]float64 `json:"allocation"`

	// Volatility in percent. Default 15.
	Volatility *float64 `json:"volatility"`

	// MaxDrawdown in percent. Default 10.
	MaxDrawdown *float64 `json:"maxDrawdown"`

	// SharpeRatio of the portfolio. Default 1.0.
	SharpeRatio *float64 `json:"sharpeRatio"`

	// Returns maps period name to percentage return; "ytd" and "benchmark"
	// are the scored entries. Missing entries default to 0.
	Returns map[string]float64 `json:"returns"`

	// TaxLossHarvesting reports whether harvesting is enabled.
	TaxLossHarvesting bool `json:"taxLossHarvesting"`

	// TaxAdvantagedAccounts counts IRA/401k-style accounts.
	TaxAdvantagedAccounts int `json:"taxAdvantagedAccounts"`

	// CapitalGainsRate in percent. Default 15.
	CapitalGainsRate *float64 `json:"capitalGainsRate"`

	// LiquidAssets is the percentage of the portfolio held in liquid
	// instruments. Default 0.
	LiquidAssets *float64 `json:"liquidAssets"`
}

// Metrics are the five dimension sub-scores, each 0-100.
type Metrics struct {
	Diversification int `json:"diversification"`
	RiskManagement  int `json:"riskManagement"`
	TaxEfficiency   int `json:"taxEfficiency"`
	Performance     int `json:"performance"`
	Liquidity       int `json:"liquidity"`
}

// Advice is a per-category improvement suggestion derived from weak
// sub-scores.
type Advice struct {
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

// Score is the full wellness result: composite 0-100, the five sub-scores,
// and improvement advice. Derived and ephemeral; never persisted.
type Score struct {
	Overall int      `json:"overallScore"`
	Metrics Metrics  `json:"metrics"`
	Advice  []Advice `json:"recommendations"`
}
