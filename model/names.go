package model

import "strings"

// ModelName is a model identifier as sent to the completion endpoint.
type ModelName string

// Family groups model identifiers that share tokenization and framing rules.
type Family string

// Known model families.
const (
	FamilyUnknown Family = ""
	FamilyGPT35   Family = "gpt-3.5-turbo"
	FamilyGPT4    Family = "gpt-4"
)

// Snapshot identifiers with documented framing rules.
const (
	GPT35Turbo0301    ModelName = "gpt-3.5-turbo-0301"
	GPT35Turbo0613    ModelName = "gpt-3.5-turbo-0613"
	GPT35Turbo16k0613 ModelName = "gpt-3.5-turbo-16k-0613"
	GPT40314          ModelName = "gpt-4-0314"
	GPT432k0314       ModelName = "gpt-4-32k-0314"
	GPT40613          ModelName = "gpt-4-0613"
	GPT432k0613       ModelName = "gpt-4-32k-0613"
)

// String returns the family name, or "unknown".
func (f Family) String() string {
	if f == FamilyUnknown {
		return "unknown"
	}
	return string(f)
}

// FamilyOf returns the family an identifier belongs to.
// Matching is by substring so that fine-tuned and regional names
// ("ft:gpt-3.5-turbo-0613:acme", "gpt-4-32k") resolve to their family.
func FamilyOf(name string) Family {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "gpt-3.5-turbo"):
		return FamilyGPT35
	case strings.Contains(lower, "gpt-4"):
		return FamilyGPT4
	default:
		return FamilyUnknown
	}
}

// IsPinned reports whether name is one of the dated snapshots whose
// framing overhead is documented.
func IsPinned(name string) bool {
	switch ModelName(name) {
	case GPT35Turbo0301, GPT35Turbo0613, GPT35Turbo16k0613,
		GPT40314, GPT432k0314, GPT40613, GPT432k0613:
		return true
	}
	return false
}

// CanonicalSnapshot returns the snapshot assumed for floating identifiers
// of the given family. Returns "" for FamilyUnknown.
func CanonicalSnapshot(f Family) ModelName {
	switch f {
	case FamilyGPT35:
		return GPT35Turbo0613
	case FamilyGPT4:
		return GPT40613
	default:
		return ""
	}
}
