package model

import (
	"strings"
	"sync"
)

// Usage tracks token usage for a model.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	Requests         int
}

// Add adds the given usage to this usage.
func (u *Usage) Add(other Usage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.Requests += other.Requests
}

// TotalTokens returns the total tokens used.
func (u *Usage) TotalTokens() int {
	return u.PromptTokens + u.CompletionTokens
}

// Pricing holds per-million-token pricing for a model.
type Pricing struct {
	PromptPerMillion     float64
	CompletionPerMillion float64
}

// Prices holds list pricing keyed by price tier (as of the 0613 snapshots).
var Prices = map[string]Pricing{
	"gpt-3.5-turbo":     {PromptPerMillion: 1.5, CompletionPerMillion: 2.0},
	"gpt-3.5-turbo-16k": {PromptPerMillion: 3.0, CompletionPerMillion: 4.0},
	"gpt-4":             {PromptPerMillion: 30.0, CompletionPerMillion: 60.0},
	"gpt-4-32k":         {PromptPerMillion: 60.0, CompletionPerMillion: 120.0},
}

// PricingFor returns the price tier for a model identifier.
func PricingFor(name ModelName) (Pricing, bool) {
	lower := strings.ToLower(string(name))
	var tier string
	switch FamilyOf(lower) {
	case FamilyGPT35:
		tier = "gpt-3.5-turbo"
		if strings.Contains(lower, "16k") {
			tier = "gpt-3.5-turbo-16k"
		}
	case FamilyGPT4:
		tier = "gpt-4"
		if strings.Contains(lower, "32k") {
			tier = "gpt-4-32k"
		}
	default:
		return Pricing{}, false
	}
	p, ok := Prices[tier]
	return p, ok
}

// Cost returns the estimated USD cost of usage at the given pricing.
func (p Pricing) Cost(u Usage) float64 {
	return float64(u.PromptTokens)/1_000_000*p.PromptPerMillion +
		float64(u.CompletionTokens)/1_000_000*p.CompletionPerMillion
}

// UsageTracker tracks token usage and estimated costs across models.
type UsageTracker struct {
	mu     sync.RWMutex
	totals map[ModelName]Usage
}

// NewUsageTracker creates a new usage tracker.
func NewUsageTracker() *UsageTracker {
	return &UsageTracker{
		totals: make(map[ModelName]Usage),
	}
}

// Record adds a usage record for the given model.
func (t *UsageTracker) Record(model ModelName, prompt, completion int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	u := t.totals[model]
	u.PromptTokens += prompt
	u.CompletionTokens += completion
	u.Requests++
	t.totals[model] = u
}

// Usage returns the usage for a specific model.
func (t *UsageTracker) Usage(model ModelName) Usage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.totals[model]
}

// Summary returns a copy of all usage totals.
func (t *UsageTracker) Summary() map[ModelName]Usage {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make(map[ModelName]Usage, len(t.totals))
	for k, v := range t.totals {
		result[k] = v
	}
	return result
}

// TotalUsage returns aggregated usage across all models.
func (t *UsageTracker) TotalUsage() Usage {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var total Usage
	for _, u := range t.totals {
		total.Add(u)
	}
	return total
}

// EstimatedCost calculates the estimated cost based on list pricing.
// Models without known pricing contribute nothing.
func (t *UsageTracker) EstimatedCost() float64 {
	var total float64
	for _, cost := range t.EstimatedCostByModel() {
		total += cost
	}
	return total
}

// EstimatedCostByModel returns the estimated cost for each priced model.
func (t *UsageTracker) EstimatedCostByModel() map[ModelName]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make(map[ModelName]float64, len(t.totals))
	for model, usage := range t.totals {
		prices, ok := PricingFor(model)
		if !ok {
			continue
		}
		result[model] = prices.Cost(usage)
	}
	return result
}

// Reset clears all tracked usage.
func (t *UsageTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.totals = make(map[ModelName]Usage)
}
