package align

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxSynonyms is how many deduplicated synonyms callers write into the
// enriched graph per alignment.
const MaxSynonyms = 3

// minSynonymLength filters out entries too short to be meaningful.
const minSynonymLength = 3

// maxDescriptionLength caps cleaned descriptions; longer text is
// truncated with an ellipsis marker.
const maxDescriptionLength = 200

// boilerplatePrefixes are stripped from the front of descriptions, first
// match only, checked in this order.
var boilerplatePrefixes = []string{
	"A ",
	"An ",
	"The ",
	"This is a ",
	"This is an ",
	"This is the ",
	"Definition: ",
	"Description: ",
}

// DeduplicateSynonyms returns a cleaned synonym list: blank entries,
// entries shorter than three characters, and entries whose lowercased
// trimmed form already appears in existingLabels or earlier in the same
// call are dropped. Survivors are sorted by length, then
// lexicographically. Applying the function to its own output is a no-op.
func DeduplicateSynonyms(synonyms []string, existingLabels map[string]struct{}) []string {
	if len(synonyms) == 0 {
		return nil
	}

	unique := make([]string, 0, len(synonyms))
	seen := make(map[string]struct{}, len(synonyms))

	for _, syn := range synonyms {
		trimmed := strings.TrimSpace(syn)
		if trimmed == "" {
			continue
		}
		normalized := strings.ToLower(trimmed)
		if len(normalized) < minSynonymLength {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		if _, ok := existingLabels[normalized]; ok {
			continue
		}
		unique = append(unique, trimmed)
		seen[normalized] = struct{}{}
	}

	sort.Slice(unique, func(i, j int) bool {
		if len(unique[i]) != len(unique[j]) {
			return len(unique[i]) < len(unique[j])
		}
		return strings.ToLower(unique[i]) < strings.ToLower(unique[j])
	})

	return unique
}

// CleanDescription normalizes free-text descriptions before they are
// written into the graph: whitespace runs collapse to single spaces, one
// boilerplate prefix is stripped, the first letter is capitalized, and
// text longer than 200 characters is truncated with "...". Empty input
// yields an empty string. Already-clean text passes through unchanged.
func CleanDescription(text string) string {
	cleaned := strings.Join(strings.Fields(text), " ")
	if cleaned == "" {
		return ""
	}

	for _, prefix := range boilerplatePrefixes {
		if strings.HasPrefix(cleaned, prefix) {
			cleaned = cleaned[len(prefix):]
			break
		}
	}

	if cleaned != "" {
		r, size := utf8.DecodeRuneInString(cleaned)
		cleaned = string(unicode.ToUpper(r)) + cleaned[size:]
	}

	if runes := []rune(cleaned); len(runes) > maxDescriptionLength {
		cleaned = string(runes[:maxDescriptionLength-3]) + "..."
	}

	return cleaned
}
