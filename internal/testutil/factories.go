package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/advisor"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/model"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/wellness"
)

// CreateMockPayload builds a representative advisor payload with one buy, one
// sell, and one rebalance recommendation.
func CreateMockPayload() *advisor.Payload {
	return &advisor.Payload{
		PortfolioAnalysis: &advisor.PortfolioAnalysis{
			TotalValue:           125000,
			NumHoldings:          8,
			RiskScore:            42,
			DiversificationScore: 71,
			AssetAllocation:      &advisor.AssetAllocation{Stocks: 70, Bonds: 20, Cash: 10},
			Risk:                 &advisor.RiskEstimate{VolatilityEstimate: 14.5, MaxDrawdownPct: 12},
		},
		BuyRecommendations: []advisor.BuyRecommendation{
			{
				Symbol:         "VTI",
				CompanyName:    "Vanguard Total Stock Market ETF",
				Recommendation: "BUY",
				Confidence:     0.82,
				Reasoning:      "Broad market exposure at low cost",
				TargetPrice:    260,
				CurrentPrice:   245,
				ExpectedReturn: 0.06,
				Allocation: []advisor.BuyAllocation{
					{Symbol: "VTI", Percentage: 5, Reasoning: "core position"},
				},
			},
		},
		SellRecommendations: []advisor.SellRecommendation{
			{Symbol: "ARKK", Confidence: 0.65, Reasoning: "Concentration risk", AllocationPct: 3},
		},
		RebalanceSuggestions: []advisor.RebalanceSuggestion{
			{Symbol: "BND", Confidence: 0.5, Reasoning: "Restore bond target", DeltaPct: 2},
		},
		RiskAssessment: &advisor.RiskAssessment{
			OverallRisk:        "moderate",
			VolatilityEstimate: 14.5,
			Recommendations:    []string{"Keep cash buffer above 5%"},
		},
		MarketOutlook: &advisor.MarketOutlook{
			OverallSentiment: "neutral",
			Confidence:       0.6,
			KeyFactors:       []string{"rate environment", "earnings season"},
		},
		SchemaVersion: "1.0",
	}
}

// CreateTestSnapshot builds a fully populated portfolio snapshot that scores
// in the healthy range on every dimension.
func CreateTestSnapshot() wellness.PortfolioSnapshot {
	return wellness.PortfolioSnapshot{
		TotalValue: FloatPtr(100000),
		Allocation: map[string]float64{
			"stocks": 55,
			"bonds":  25,
			"reits":  10,
			"cash":   10,
		},
		Volatility:            FloatPtr(12),
		MaxDrawdown:           FloatPtr(8),
		SharpeRatio:           FloatPtr(1.4),
		Returns:               map[string]float64{"ytd": 9, "benchmark": 7},
		TaxLossHarvesting:     true,
		TaxAdvantagedAccounts: 2,
		CapitalGainsRate:      FloatPtr(15),
		LiquidAssets:          FloatPtr(85),
	}
}

// FetchEventBuilder provides a fluent interface for seeding fetch telemetry rows.
//
// Example usage:
//
//	event := testutil.NewFetchEvent().
//	    WithToState("failed").
//	    WithCreatedAt(cutoff.Add(-time.Hour)).
//	    Build(t, db)
type FetchEventBuilder struct {
	ID           string
	RequestID    string
	FromState    string
	ToState      string
	Attempt      int
	Channel      string
	ErrorKind    string
	ErrorMessage string
	CreatedAt    time.Time
}

// NewFetchEvent creates a FetchEventBuilder with sensible defaults.
func NewFetchEvent() *FetchEventBuilder {
	return &FetchEventBuilder{
		ID:        MakeID(),
		RequestID: MakeID(),
		FromState: "idle",
		ToState:   "primary_pending",
		Attempt:   0,
		Channel:   "primary",
		CreatedAt: time.Now().UTC(),
	}
}

// WithRequestID sets a custom request ID.
func (b *FetchEventBuilder) WithRequestID(id string) *FetchEventBuilder {
	b.RequestID = id
	return b
}

// WithStates sets the from and to states.
func (b *FetchEventBuilder) WithStates(from, to string) *FetchEventBuilder {
	b.FromState = from
	b.ToState = to
	return b
}

// WithToState sets the destination state.
func (b *FetchEventBuilder) WithToState(state string) *FetchEventBuilder {
	b.ToState = state
	return b
}

// WithAttempt sets the fallback attempt number.
func (b *FetchEventBuilder) WithAttempt(attempt int) *FetchEventBuilder {
	b.Attempt = attempt
	return b
}

// WithChannel sets the channel.
func (b *FetchEventBuilder) WithChannel(channel string) *FetchEventBuilder {
	b.Channel = channel
	return b
}

// WithError sets the error kind and message.
func (b *FetchEventBuilder) WithError(kind, message string) *FetchEventBuilder {
	b.ErrorKind = kind
	b.ErrorMessage = message
	return b
}

// WithCreatedAt sets the event timestamp.
func (b *FetchEventBuilder) WithCreatedAt(at time.Time) *FetchEventBuilder {
	b.CreatedAt = at
	return b
}

// Build inserts the event into the database and returns the model.
func (b *FetchEventBuilder) Build(t *testing.T, db *sql.DB) model.FetchEvent {
	t.Helper()

	var errorKind, errorMessage any
	if b.ErrorKind != "" {
		errorKind = b.ErrorKind
	}
	if b.ErrorMessage != "" {
		errorMessage = b.ErrorMessage
	}

	_, err := db.Exec(`
		INSERT INTO fetch_telemetry
			(id, request_id, from_state, to_state, attempt, channel, error_kind, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.RequestID, b.FromState, b.ToState, b.Attempt, b.Channel, errorKind, errorMessage, b.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to insert fetch event: %v", err)
	}

	return model.FetchEvent{
		ID:           b.ID,
		RequestID:    b.RequestID,
		FromState:    b.FromState,
		ToState:      b.ToState,
		Attempt:      b.Attempt,
		Channel:      b.Channel,
		ErrorKind:    b.ErrorKind,
		ErrorMessage: b.ErrorMessage,
		CreatedAt:    b.CreatedAt,
	}
}
