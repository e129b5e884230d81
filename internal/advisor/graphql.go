package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// operationName matches the upstream operation contract; both channels send it.
const operationName = "GetAIRecommendations"

// recommendationsQuery requests the full recommendation document. Field
// selection follows the upstream schema.
const recommendationsQuery = `query GetAIRecommendations($useDefaults: Boolean) {
  aiRecommendations(useDefaults: $useDefaults) {
    portfolioAnalysis {
      totalValue
      numHoldings
      riskScore
      diversificationScore
      assetAllocation { stocks bonds cash }
      risk { volatilityEstimate maxDrawdownPct }
    }
    buyRecommendations {
      symbol
      companyName
      recommendation
      confidence
      reasoning
      targetPrice
      currentPrice
      expectedReturn
      allocation { symbol percentage reasoning }
    }
    sellRecommendations { symbol confidence reasoning allocationPct }
    rebalanceSuggestions { symbol confidence reasoning deltaPct }
    riskAssessment { overallRisk volatilityEstimate recommendations }
    marketOutlook { overallSentiment confidence keyFactors }
    schemaVersion
  }
}`

// graphqlRequest is the JSON body posted to the advisor endpoint.
type graphqlRequest struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

// GraphQLError is a single entry of the response-level errors array.
type GraphQLError struct {
	Message string `json:"message"`
}

// TokenSource resolves the bearer token used on advisor calls. Implementations
// may consult stored credentials; an empty token sends no Authorization header.
type TokenSource interface {
	AdvisorToken(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource returning a fixed token.
type StaticToken string

// AdvisorToken returns the fixed token.
func (t StaticToken) AdvisorToken(_ context.Context) (string, error) {
	return string(t), nil
}

// PrimaryClient is the primary query channel for recommendations.
// This interface enables dependency injection and testing with mock implementations.
type PrimaryClient interface {
	FetchRecommendations(ctx context.Context, useDefaults bool) (*Payload, []string, error)
}

// Client posts the recommendation operation to the configured GraphQL
// endpoint. It is the production implementation of PrimaryClient.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      TokenSource
}

// NewClient creates a new advisor client for the given endpoint.
func NewClient(endpoint string, token TokenSource) *Client {
	return &Client{
		httpClient: &http.Client{},
		endpoint:   endpoint,
		token:      token,
	}
}

// FetchRecommendations executes the recommendation operation over the primary
// channel. Responses go through the standard validation policy; a payload
// accompanied by GraphQL errors is returned with warnings rather than failing.
func (c *Client) FetchRecommendations(ctx context.Context, useDefaults bool) (*Payload, []string, error) {
	return postRecommendations(ctx, c.httpClient, c.endpoint, c.token, useDefaults)
}

// postRecommendations builds, sends, and classifies one advisor request.
// Shared between the primary client and the fallback transport so both
// channels honor the same operation contract and validation policy.
func postRecommendations(ctx context.Context, httpClient *http.Client, endpoint string, token TokenSource, useDefaults bool) (*Payload, []string, error) {
	body, err := json.Marshal(graphqlRequest{
		Query:         recommendationsQuery,
		Variables:     map[string]any{"useDefaults": useDefaults},
		OperationName: operationName,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode advisor request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build advisor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	bearer, err := token.AdvisorToken(ctx)
	if err != nil {
		return nil, nil, err
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, nil, classifyRequestError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, classifyRequestError(ctx, err)
	}

	return classifyResponse(resp.StatusCode, data)
}
