// Package textutil holds the text cleanup helpers shared by the
// classifier, the record matcher and the response formatters.
package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	wordPattern   = regexp.MustCompile(`[а-яёa-z0-9-]+`)
)

// Clean normalizes a raw message: NFKC Unicode form, single spaces, no
// leading or trailing whitespace. Clean(Clean(s)) == Clean(s).
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFKC.String(text)
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Tokens splits lowercased text into word tokens (Cyrillic and Latin
// letters, digits, hyphen). Everything else is a separator.
func Tokens(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

var stopwords = buildStopwords()

func buildStopwords() map[string]struct{} {
	words := []string{
		// Russian
		"и", "в", "на", "с", "по", "для", "о", "об", "от", "до",
		"за", "из", "к", "у", "не", "но", "а", "или", "же", "бы",
		"то", "это", "вот", "так", "как", "уже", "тоже", "лишь",
		"он", "она", "оно", "они", "мы", "вы", "я", "ты", "его",
		"ее", "их", "мой", "твой", "наш", "ваш", "свой",
		// English
		"the", "a", "an", "and", "or", "but", "in", "on", "at",
		"to", "for", "of", "with", "by", "from", "up", "about",
		"into", "over", "after", "is", "are", "was", "were",
		"be", "been", "being", "have", "has", "had", "do", "does",
		"did", "will", "would", "shall", "should", "may", "might",
		"must", "can", "could", "i", "you", "he", "she", "it",
		"we", "they", "me", "him", "her", "us", "them", "my",
		"your", "his", "its", "our", "their", "mine", "yours",
	}

	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Keywords extracts the content words of a text: tokenized, stopwords
// removed, words shorter than minLength dropped.
func Keywords(text string, minLength int) []string {
	var keywords []string
	for _, word := range Tokens(text) {
		if len([]rune(word)) < minLength {
			continue
		}
		if _, stop := stopwords[word]; stop {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}

// Similarity computes the Jaccard coefficient of the word sets of two
// texts, in [0, 1].
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range Tokens(text) {
		set[w] = struct{}{}
	}
	return set
}

// Truncate cuts text to maxLength runes, appending an ellipsis when
// something was removed.
func Truncate(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	const ellipsis = "..."
	if maxLength <= len(ellipsis) {
		return string(runes[:maxLength])
	}
	return string(runes[:maxLength-len(ellipsis)]) + ellipsis
}

// SplitChunks breaks a long reply into pieces of at most maxLength
// characters, preferring paragraph boundaries.
func SplitChunks(text string, maxLength int) []string {
	if len(text) <= maxLength {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	for _, paragraph := range strings.Split(text, "\n") {
		if current.Len()+len(paragraph)+1 > maxLength && current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(paragraph)
		current.WriteString("\n")
	}
	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}
	return chunks
}
