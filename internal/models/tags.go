package models

import "strings"

// TagList is an ordered sequence of post tags
type TagList []string

// NormalizeTags trims and lowercases each tag and drops empty entries.
// Order and duplicates are preserved.
func NormalizeTags(tags []string) TagList {
	out := make(TagList, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	return out
}
