// Package model classifies chat model identifiers and tracks token usage.
//
// OpenAI chat models are released as dated snapshots ("gpt-4-0613") behind
// floating aliases ("gpt-4") that move over time. Framing rules and prices
// are only known for snapshots, so the package maps any identifier to a
// Family and, for floating names, to the canonical snapshot that stands in
// for it.
//
// # Families
//
//	model.FamilyOf("gpt-3.5-turbo-16k")       // FamilyGPT35
//	model.IsPinned("gpt-4-0613")              // true
//	model.CanonicalSnapshot(model.FamilyGPT4) // "gpt-4-0613"
//
// # Usage Tracking
//
//	tracker := model.NewUsageTracker()
//	tracker.Record("gpt-4-0613", 1000, 500)  // prompt, completion tokens
//	cost := tracker.EstimatedCost()
package model
