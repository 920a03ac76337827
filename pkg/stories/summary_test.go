package stories_test

import (
	"reflect"
	"testing"

	"github.com/glimpsesocial/glimpse/pkg/stories"
)

func TestSummarizeReactions(t *testing.T) {
	reactions := []stories.Reaction{
		{UserID: 1, Emoji: "🔥", ReactedAt: 10},
		{UserID: 2, Emoji: "🔥", ReactedAt: 20},
		{UserID: 1, Emoji: "❤️", ReactedAt: 30},
	}

	expected := map[string]stories.Summary{
		"🔥":  {Count: 2, UserIDs: []int{1, 2}},
		"❤️": {Count: 1, UserIDs: []int{1}},
	}

	result := stories.SummarizeReactions(reactions)

	if !reflect.DeepEqual(result, expected) {
		t.Fatalf("expected %v, got %v", expected, result)
	}
}

func TestSummarizeReactions_Empty(t *testing.T) {
	result := stories.SummarizeReactions([]stories.Reaction{})

	if len(result) != 0 {
		t.Fatalf("expected empty map, got %v", result)
	}
}
