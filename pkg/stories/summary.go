package stories

// Summary aggregates the reactions for a single emoji.
type Summary struct {
	Count   int   `json:"count"`
	UserIDs []int `json:"user_ids"`
}

// SummarizeReactions groups reactions by emoji.
func SummarizeReactions(reactions []Reaction) map[string]Summary {
	result := make(map[string]Summary)

	for _, reaction := range reactions {
		summary := result[reaction.Emoji]
		summary.Count++
		summary.UserIDs = append(summary.UserIDs, reaction.UserID)
		result[reaction.Emoji] = summary
	}

	return result
}
