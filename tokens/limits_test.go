package tokens

import "testing"

func TestLimitFor(t *testing.T) {
	tests := []struct {
		model string
		limit int
		ok    bool
	}{
		{"gpt-3.5-turbo", 4096, true},
		{"gpt-3.5-turbo-0301", 4096, true},
		{"gpt-3.5-turbo-0613", 4096, true},
		{"gpt-3.5-turbo-16k-0613", 16384, true},
		{"gpt-4-0314", 8192, true},
		{"gpt-4-0613", 8192, true},
		{"gpt-4-32k-0314", 32768, true},
		{"gpt-4-32k-0613", 32768, true},
		{"gpt-4", 0, false},
		{"llama3", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			limit, ok := LimitFor(tt.model)
			if limit != tt.limit || ok != tt.ok {
				t.Errorf("LimitFor(%q) = %d, %v; want %d, %v", tt.model, limit, ok, tt.limit, tt.ok)
			}
		})
	}
}

func TestModelLimits_AllPositive(t *testing.T) {
	for model, limit := range ModelLimits {
		if limit <= 0 {
			t.Errorf("ModelLimits[%q] = %d, should be positive", model, limit)
		}
	}
}

func TestModelLimits_HaveFraming(t *testing.T) {
	for model := range ModelLimits {
		if _, _, _, ok := FramingFor(model); !ok {
			t.Errorf("ModelLimits lists %q but no framing resolves for it", model)
		}
	}
}
