package advisor

// Payload is the advisor recommendation document as returned by the upstream
// aiRecommendations operation. Field names follow the upstream GraphQL schema.
type Payload struct {
	PortfolioAnalysis    *PortfolioAnalysis    `json:"portfolioAnalysis"`
	BuyRecommendations   []BuyRecommendation   `json:"buyRecommendations"`
	SellRecommendations  []SellRecommendation  `json:"sellRecommendations"`
	RebalanceSuggestions []RebalanceSuggestion `json:"rebalanceSuggestions"`
	RiskAssessment       *RiskAssessment       `json:"riskAssessment"`
	MarketOutlook        *MarketOutlook        `json:"marketOutlook"`
	SchemaVersion        string                `json:"schemaVersion"`
}

// PortfolioAnalysis summarizes the holdings the recommendations were computed against.
type PortfolioAnalysis struct {
	TotalValue           float64          `json:"totalValue"`
	NumHoldings          int              `json:"numHoldings"`
	RiskScore            float64          `json:"riskScore"`
	DiversificationScore float64          `json:"diversificationScore"`
	AssetAllocation      *AssetAllocation `json:"assetAllocation"`
	Risk                 *RiskEstimate    `json:"risk"`
}

// AssetAllocation is a coarse stocks/bonds/cash split in percent.
type AssetAllocation struct {
	Stocks float64 `json:"stocks"`
	Bonds  float64 `json:"bonds"`
	Cash   float64 `json:"cash"`
}

// RiskEstimate carries the upstream risk model outputs.
type RiskEstimate struct {
	VolatilityEstimate float64 `json:"volatilityEstimate"`
	MaxDrawdownPct     float64 `json:"maxDrawdownPct"`
}

// BuyRecommendation is a single upstream buy pick.
type BuyRecommendation struct {
	Symbol         string          `json:"symbol"`
	CompanyName    string          `json:"companyName"`
	Recommendation string          `json:"recommendation"`
	Confidence     float64         `json:"confidence"`
	Reasoning      string          `json:"reasoning"`
	TargetPrice    float64         `json:"targetPrice"`
	CurrentPrice   float64         `json:"currentPrice"`
	ExpectedReturn float64         `json:"expectedReturn"`
	Allocation     []BuyAllocation `json:"allocation"`
}

// BuyAllocation sizes a buy as a percentage of the portfolio.
type BuyAllocation struct {
	Symbol     string  `json:"symbol"`
	Percentage float64 `json:"percentage"`
	Reasoning  string  `json:"reasoning"`
}

// SellRecommendation is a single upstream sell/reduce pick.
type SellRecommendation struct {
	Symbol        string  `json:"symbol"`
	Confidence    float64 `json:"confidence"`
	Reasoning     string  `json:"reasoning"`
	AllocationPct float64 `json:"allocationPct"` // current weight to shed
}

// RebalanceSuggestion is a weight adjustment for an existing holding.
type RebalanceSuggestion struct {
	Symbol     string  `json:"symbol"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
	DeltaPct   float64 `json:"deltaPct"` // signed weight change
}

// RiskAssessment carries the upstream portfolio-level risk verdict.
type RiskAssessment struct {
	OverallRisk        string   `json:"overallRisk"`
	VolatilityEstimate float64  `json:"volatilityEstimate"`
	Recommendations    []string `json:"recommendations"`
}

// MarketOutlook carries the upstream market sentiment summary.
type MarketOutlook struct {
	OverallSentiment string   `json:"overallSentiment"`
	Confidence       float64  `json:"confidence"`
	KeyFactors       []string `json:"keyFactors"`
}

// Action is what the caller should do with a symbol.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionHold Action = "HOLD"
	ActionTrim Action = "TRIM"
)

// Conviction buckets the upstream confidence for display.
type Conviction string

const (
	ConvictionCalm     Conviction = "calm"
	ConvictionBalanced Conviction = "balanced"
	ConvictionBold     Conviction = "bold"
)

// Idea is the normalized, caller-facing form of one recommendation.
// SizePct is signed; negative values mean a reduction.
type Idea struct {
	Symbol     string     `json:"symbol"`
	Action     Action     `json:"action"`
	Conviction Conviction `json:"conviction"`
	SizePct    float64    `json:"sizePct"`
	Thesis     string     `json:"thesis"`
}

// Channel identifies which transport produced a result.
type Channel string

const (
	ChannelPrimary  Channel = "primary"
	ChannelFallback Channel = "fallback"
)

// Result is the terminal success product of one logical fetch request.
type Result struct {
	RequestID      string   `json:"requestId"`
	Ideas          []Idea   `json:"ideas"`
	PortfolioValue float64  `json:"portfolioValue"`
	Degraded       bool     `json:"degraded"`
	Warnings       []string `json:"warnings,omitempty"`
	Channel        Channel  `json:"channel"`
	Attempts       int      `json:"attempts"`
	Payload        *Payload `json:"-"`
}
