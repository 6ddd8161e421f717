package assistant_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kmutua/metertrack/internal/assistant"
	"github.com/kmutua/metertrack/internal/report"
)

func TestPrompt(t *testing.T) {
	summary := &report.Summary{
		Remaining:  map[string]int{"split": 40, "integrated": 12},
		WithAgents: map[string]int{"split": 8},
		Earnings: map[string]report.TypeEarnings{
			"split": {Units: 15, Revenue: decimal.NewFromInt(16500)},
		},
		CustomerTypes:  map[string]int{"landlord": 10, "tenant": 5},
		Counties:       map[string]int{"Nakuru": 9, "Kisumu": 6},
		FaultsByStatus: map[string]int{"pending": 2},
		TotalRevenue:   decimal.NewFromInt(16500),
		TotalUnitsSold: 15,
	}

	prompt := assistant.Prompt(summary, "How many split meters are left?")

	assert.Contains(t, prompt, "split: 40")
	assert.Contains(t, prompt, "split: 15 units, KES 16500.00")
	assert.Contains(t, prompt, "pending: 2")
	assert.Contains(t, prompt, "Total sold: 15 units, KES 16500.00")
	assert.Contains(t, prompt, "Question: How many split meters are left?")

	// Map iteration must not leak into the prompt: keys are sorted so the
	// same summary always renders the same prompt.
	assert.Equal(t, prompt, assistant.Prompt(summary, "How many split meters are left?"))
}
