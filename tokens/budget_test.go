package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBudget(t *testing.T) {
	tests := []struct {
		name       string
		budget     Budget
		prompt     int
		promptFits bool
		fits       bool
		remaining  int
	}{
		{"room to spare", Budget{Window: 4096, MaxOutput: 2000}, 1000, true, true, 3096},
		{"exact fit", Budget{Window: 4096, MaxOutput: 596}, 3500, true, true, 596},
		{"completion too long", Budget{Window: 4096, MaxOutput: 2000}, 3500, true, false, 596},
		{"prompt fills window", Budget{Window: 4096, MaxOutput: 1}, 4096, false, false, 0},
		{"prompt over window", Budget{Window: 4096, MaxOutput: 1}, 5000, false, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.promptFits, tt.budget.PromptFits(tt.prompt))
			assert.Equal(t, tt.fits, tt.budget.Fits(tt.prompt))
			assert.Equal(t, tt.remaining, tt.budget.Remaining(tt.prompt))
		})
	}
}
