package advisor

// maxIdeas caps how many normalized ideas a result carries.
const maxIdeas = 5

// Conviction thresholds on the upstream confidence value.
const (
	boldThreshold = 0.7
	calmThreshold = 0.4
)

// Normalize flattens the raw buy/sell/rebalance arrays into at most five
// Ideas, ordered buys, then sells, then rebalances. Buys size positive, sells
// map to TRIM with a negative size, rebalance deltas keep their sign under
// HOLD. Deterministic: same payload, same ideas.
func Normalize(payload *Payload) []Idea {
	if payload == nil {
		return nil
	}

	ideas := make([]Idea, 0, maxIdeas)

	for _, buy := range payload.BuyRecommendations {
		if len(ideas) == maxIdeas {
			return ideas
		}
		ideas = append(ideas, Idea{
			Symbol:     buy.Symbol,
			Action:     ActionBuy,
			Conviction: convictionFor(buy.Confidence),
			SizePct:    buySize(buy),
			Thesis:     buy.Reasoning,
		})
	}

	for _, sell := range payload.SellRecommendations {
		if len(ideas) == maxIdeas {
			return ideas
		}
		ideas = append(ideas, Idea{
			Symbol:     sell.Symbol,
			Action:     ActionTrim,
			Conviction: convictionFor(sell.Confidence),
			SizePct:    -sell.AllocationPct,
			Thesis:     sell.Reasoning,
		})
	}

	for _, rebalance := range payload.RebalanceSuggestions {
		if len(ideas) == maxIdeas {
			return ideas
		}
		ideas = append(ideas, Idea{
			Symbol:     rebalance.Symbol,
			Action:     ActionHold,
			Conviction: convictionFor(rebalance.Confidence),
			SizePct:    rebalance.DeltaPct,
			Thesis:     rebalance.Reasoning,
		})
	}

	return ideas
}

// convictionFor buckets a confidence value. Thresholds are fixed by the
// product contract: >= 0.7 bold, <= 0.4 calm, balanced between.
func convictionFor(confidence float64) Conviction {
	switch {
	case confidence >= boldThreshold:
		return ConvictionBold
	case confidence <= calmThreshold:
		return ConvictionCalm
	default:
		return ConvictionBalanced
	}
}

// buySize takes the first allocation entry's percentage when present,
// otherwise the expected return expressed in percent.
func buySize(buy BuyRecommendation) float64 {
	if len(buy.Allocation) > 0 {
		return buy.Allocation[0].Percentage
	}
	return buy.ExpectedReturn * 100
}
