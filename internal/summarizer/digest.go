package summarizer

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// FrequencyDigest produces a short extract of a converted document by
// ranking its sentences on token frequency. It runs fully locally and
// never calls an external service; the ingest command uses it to show
// what was just indexed.
type FrequencyDigest struct {
	maxSentences int
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

var (
	digestSentenceRe = regexp.MustCompile(`(?m)(?U)[^.!?]+[.!?]`)
	markdownMarkupRe = regexp.MustCompile("(?m)^#{1,6} |[*_`>]|\\[|\\]\\([^)]*\\)|^\\|.*\\|$|^---+$")
)

func New(maxSentences int) *FrequencyDigest {
	if maxSentences <= 0 {
		maxSentences = 3
	}
	return &FrequencyDigest{
		maxSentences: maxSentences,
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
	}
}

// Digest returns the highest-scoring sentences of the markdown, in
// document order. Markdown syntax is stripped before ranking.
func (d *FrequencyDigest) Digest(markdown string) string {
	plain := strings.TrimSpace(markdownMarkupRe.ReplaceAllString(markdown, ""))
	if plain == "" {
		return ""
	}
	sentences := digestSentenceRe.FindAllString(plain, -1)
	if len(sentences) == 0 {
		sentences = []string{plain}
	}

	freq := map[string]float64{}
	for _, sent := range sentences {
		for _, tok := range d.tokens(sent) {
			if _, ok := d.stopwords[tok]; ok {
				continue
			}
			freq[tok]++
		}
	}
	maxF := 0.0
	for _, v := range freq {
		if v > maxF {
			maxF = v
		}
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}

	type ranked struct {
		idx   int
		score float64
	}
	scores := make([]ranked, len(sentences))
	for i, sent := range sentences {
		toks := d.tokens(sent)
		score := 0.0
		for _, tok := range toks {
			score += freq[tok]
		}
		if n := float64(len(toks)); n > 0 {
			score /= math.Sqrt(n)
		}
		scores[i] = ranked{i, score}
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	n := d.maxSentences
	if n > len(scores) {
		n = len(scores)
	}
	selected := make([]int, n)
	for i := 0; i < n; i++ {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)

	out := make([]string, 0, n)
	for _, idx := range selected {
		out = append(out, strings.Join(strings.Fields(sentences[idx]), " "))
	}
	return strings.Join(out, " ")
}

func (d *FrequencyDigest) tokens(text string) []string {
	return d.tokenPattern.FindAllString(strings.ToLower(text), -1)
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
