package engine

import (
	"testing"

	"github.com/hammamikhairi/stepcook/internal/domain"
)

func TestProgress(t *testing.T) {
	r := makeRecipe("r", 1, 2)

	tests := []struct {
		name        string
		session     domain.Session
		wantStep    int
		wantOverall int
	}{
		{"fresh", domain.Session{StepRemainingSec: 60, OverallRemainingSec: 180}, 0, 0},
		{"half first step", domain.Session{StepRemainingSec: 30, OverallRemainingSec: 150}, 50, 17},
		{"second step start", domain.Session{CurrentStepIndex: 1, StepRemainingSec: 120, OverallRemainingSec: 120}, 0, 33},
		{"overshoot clamps", domain.Session{CurrentStepIndex: 1, StepRemainingSec: -5, OverallRemainingSec: -5}, 100, 100},
		{"carry above duration clamps", domain.Session{CurrentStepIndex: 1, StepRemainingSec: 130, OverallRemainingSec: 130}, 0, 28},
		{"index out of range", domain.Session{CurrentStepIndex: 7, StepRemainingSec: 10, OverallRemainingSec: 10}, 0, 94},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StepProgress(r, tt.session); got != tt.wantStep {
				t.Fatalf("step progress: expected %d, got %d", tt.wantStep, got)
			}
			if got := OverallProgress(r, tt.session); got != tt.wantOverall {
				t.Fatalf("overall progress: expected %d, got %d", tt.wantOverall, got)
			}
		})
	}
}
