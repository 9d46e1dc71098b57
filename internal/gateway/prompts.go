package gateway

import (
	"fmt"
	"strings"

	"scholarsync/internal/types"
)

// MatchPrompt builds the two-profile comparison prompt.
func MatchPrompt(a, b types.User) string {
	return fmt.Sprintf(`
Compare the following two research profiles and provide a brief, 2-sentence analysis on why they might be a good collaboration match.

User 1: %s
User 2: %s
`, profileLine(a), profileLine(b))
}

func profileLine(u types.User) string {
	return fmt.Sprintf("%s (%s at %s). Interests: %s. Bio: %s.",
		u.Name, u.Role, u.Institution, strings.Join(u.Interests, ", "), u.Bio)
}

// PolishPrompt builds the pitch rewrite prompt.
func PolishPrompt(draft string) string {
	return fmt.Sprintf(`
Rewrite the following research pitch to be more engaging, professional, and suitable for a social media post for academics (like LinkedIn or Twitter). Keep it under 280 characters if possible, but prioritize clarity.

Draft: "%s"
`, draft)
}

// AssistantPrompt prefixes the raw user text with the assistant preamble.
func AssistantPrompt(query string) string {
	return `You are an AI assistant within ScholarSync. Help the user (a researcher) with their query: "` + query + `"`
}
