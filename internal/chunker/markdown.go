package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MarkdownChunker splits markdown into chunks bounded by a maximum
// character count, carrying a tail overlap between consecutive chunks so
// context is not lost at a hard boundary. Splitting prefers markdown
// structure: heading sections first, then paragraphs, then sentences,
// and raw runes only as a last resort. Chunks never split a UTF-8
// sequence.
type MarkdownChunker struct {
	maxChars int
	overlap  int
}

var (
	headingRe  = regexp.MustCompile(`(?m)^#{1,6} `)
	sentenceRe = regexp.MustCompile(`(?m)(?U)[^.!?]+[.!?]`)
)

func NewMarkdownChunker(maxChars, overlap int) *MarkdownChunker {
	if maxChars <= 0 {
		maxChars = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChars {
		overlap = maxChars / 10
	}
	return &MarkdownChunker{maxChars: maxChars, overlap: overlap}
}

// Split returns the chunk texts for the given markdown. Empty or
// whitespace-only input yields no chunks.
func (c *MarkdownChunker) Split(markdown string) []string {
	text := strings.TrimSpace(markdown)
	if text == "" {
		return nil
	}
	segments := c.segments(text)
	if len(segments) == 0 {
		return nil
	}

	var chunks []string
	var cur strings.Builder
	curLen := 0
	for _, seg := range segments {
		segLen := utf8.RuneCountInString(seg)
		if curLen > 0 && curLen+2+segLen > c.maxChars {
			chunk := cur.String()
			chunks = append(chunks, chunk)
			cur.Reset()
			tail := overlapTail(chunk, c.overlap)
			cur.WriteString(tail)
			curLen = utf8.RuneCountInString(tail)
		}
		if curLen > 0 {
			cur.WriteString("\n\n")
			curLen += 2
		}
		cur.WriteString(seg)
		curLen += segLen
	}
	if curLen > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}

// segments breaks the text into pieces small enough that any piece plus
// the overlap tail and a separator still fits within maxChars.
func (c *MarkdownChunker) segments(text string) []string {
	limit := c.maxChars - c.overlap - 2
	if limit < 1 {
		limit = c.maxChars
	}
	var segs []string
	for _, section := range splitBeforeHeadings(text) {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		if utf8.RuneCountInString(section) <= limit {
			segs = append(segs, section)
			continue
		}
		for _, para := range strings.Split(section, "\n\n") {
			para = strings.TrimSpace(para)
			if para == "" {
				continue
			}
			if utf8.RuneCountInString(para) <= limit {
				segs = append(segs, para)
				continue
			}
			for _, piece := range packStrings(splitSentences(para), " ", limit) {
				if utf8.RuneCountInString(piece) <= limit {
					segs = append(segs, piece)
					continue
				}
				segs = append(segs, hardSplit(piece, limit)...)
			}
		}
	}
	return segs
}

// splitBeforeHeadings cuts the text immediately before every markdown
// heading line, keeping each heading with the content that follows it.
func splitBeforeHeadings(text string) []string {
	idxs := headingRe.FindAllStringIndex(text, -1)
	if len(idxs) == 0 {
		return []string{text}
	}
	var parts []string
	last := 0
	for _, ix := range idxs {
		if ix[0] > last {
			parts = append(parts, text[last:ix[0]])
		}
		last = ix[0]
	}
	parts = append(parts, text[last:])
	return parts
}

func splitSentences(text string) []string {
	idxs := sentenceRe.FindAllStringIndex(text, -1)
	if len(idxs) == 0 {
		return []string{text}
	}
	var out []string
	last := 0
	for _, ix := range idxs {
		s := strings.TrimSpace(text[ix[0]:ix[1]])
		if s != "" {
			out = append(out, s)
		}
		last = ix[1]
	}
	if rest := strings.TrimSpace(text[last:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

// packStrings greedily joins parts with sep without exceeding limit
// runes per group. A single part longer than limit passes through
// unchanged for the caller to split harder.
func packStrings(parts []string, sep string, limit int) []string {
	var out []string
	var cur strings.Builder
	curLen := 0
	sepLen := utf8.RuneCountInString(sep)
	for _, p := range parts {
		pLen := utf8.RuneCountInString(p)
		if curLen > 0 && curLen+sepLen+pLen > limit {
			out = append(out, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteString(sep)
			curLen += sepLen
		}
		cur.WriteString(p)
		curLen += pLen
	}
	if curLen > 0 {
		out = append(out, cur.String())
	}
	return out
}

func hardSplit(s string, limit int) []string {
	runes := []rune(s)
	var out []string
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}

// overlapTail returns the last n runes of s, used to seed the next chunk.
func overlapTail(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
