package stories_test

import (
	"testing"
	"time"

	"github.com/glimpsesocial/glimpse/pkg/stories"
)

func TestIsActive(t *testing.T) {
	story := &stories.Story{CreatedAt: 100, ExpiresAt: 200}

	var tests = []struct {
		now    int64
		active bool
	}{
		{now: 100, active: true},
		{now: 199, active: true},
		{now: 200, active: false},
		{now: 300, active: false},
	}

	for _, tt := range tests {
		if stories.IsActive(story, time.Unix(tt.now, 0)) != tt.active {
			t.Fatalf("IsActive at %d should be %v", tt.now, tt.active)
		}
	}
}

func TestRemainingFraction(t *testing.T) {
	story := &stories.Story{CreatedAt: 100, ExpiresAt: 200}

	var tests = []struct {
		now      int64
		fraction float64
	}{
		{now: 100, fraction: 1},
		{now: 150, fraction: 0.5},
		{now: 200, fraction: 0},
		{now: 300, fraction: 0},
	}

	for _, tt := range tests {
		fraction := stories.RemainingFraction(story, time.Unix(tt.now, 0))
		if fraction != tt.fraction {
			t.Fatalf("RemainingFraction at %d should be %v, got %v", tt.now, tt.fraction, fraction)
		}
	}
}
