package wellness

// Advice thresholds: dimensions under adviceThreshold get a suggestion,
// under highPriorityThreshold it is marked high priority.
const (
	adviceThreshold       = 70
	highPriorityThreshold = 50
)

// adviceEntry pairs a dimension with its canned improvement copy. Categories
// use the wire names the mobile client renders.
type adviceEntry struct {
	category    string
	description string
	impact      string
	score       func(Metrics) int
}

// Fixed evaluation order keeps advice output deterministic.
var adviceEntries = []adviceEntry{
	{
		category:    "diversification",
		description: "Spread concentrated positions across more asset classes",
		impact:      "Reduce single-position risk and smooth portfolio swings",
		score:       func(m Metrics) int { return m.Diversification },
	},
	{
		category:    "risk_management",
		description: "Consider adding more defensive holdings to reduce volatility",
		impact:      "Lower portfolio volatility and drawdown exposure",
		score:       func(m Metrics) int { return m.RiskManagement },
	},
	{
		category:    "tax_efficiency",
		description: "Optimize tax-loss harvesting and tax-advantaged accounts",
		impact:      "Keep more of your returns after taxes",
		score:       func(m Metrics) int { return m.TaxEfficiency },
	},
	{
		category:    "performance",
		description: "Review underperforming positions against your benchmark",
		impact:      "Close the gap to benchmark returns",
		score:       func(m Metrics) int { return m.Performance },
	},
	{
		category:    "liquidity",
		description: "Adjust your cash buffer toward the 5-20% range",
		impact:      "Stay able to cover expenses without forced selling",
		score:       func(m Metrics) int { return m.Liquidity },
	},
}

// adviceFor derives improvement suggestions for dimensions scoring under the
// advice threshold. Deterministic: fixed category order, priority from the
// sub-score alone.
func adviceFor(metrics Metrics) []Advice {
	advice := []Advice{}
	for _, entry := range adviceEntries {
		score := entry.score(metrics)
		if score >= adviceThreshold {
			continue
		}
		priority := "medium"
		if score < highPriorityThreshold {
			priority = "high"
		}
		advice = append(advice, Advice{
			Category:    entry.category,
			Priority:    priority,
			Description: entry.description,
			Impact:      entry.impact,
		})
	}
	return advice
}
