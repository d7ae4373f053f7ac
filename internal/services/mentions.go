package services

import "regexp"

var mentionPattern = regexp.MustCompile(`@([A-Za-z0-9_]{3,30})`)

// extractMentions returns the distinct usernames mentioned as @username in
// content, in order of first appearance.
func extractMentions(content string) []string {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	var usernames []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			usernames = append(usernames, m[1])
		}
	}
	return usernames
}
