// Package keyword extracts mechanical keywords from card rules text and
// turns the remaining markup into plain text.
package keyword

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// escapedMarkup turns entity-escaped angle brackets back into markup so
// double-escaped rules text is tokenized like plain markup
var escapedMarkup = strings.NewReplacer(
	"&lt;", "<", "&gt;", ">",
	"&#60;", "<", "&#62;", ">",
	"&#x3c;", "<", "&#x3e;", ">",
	"&#x3C;", "<", "&#x3E;", ">",
)

// leftoverTag matches markup that survives tokenizing
var leftoverTag = regexp.MustCompile(`</?[A-Za-z][^<>]*>`)

// Bullet is the separator used between keywords on a keyword line
const Bullet = "•"

// Result is the outcome of normalizing one rules text
type Result struct {
	Keywords []string
	Text     string
}

// Normalizer extracts keywords against a fixed vocabulary
type Normalizer struct {
	vocab *Vocabulary
}

// NewNormalizer returns a normalizer for the vocabulary. A nil vocabulary
// selects the built-in one.
func NewNormalizer(vocab *Vocabulary) *Normalizer {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Normalizer{vocab: vocab}
}

// Vocabulary returns the vocabulary the normalizer matches against
func (n *Normalizer) Vocabulary() *Vocabulary {
	return n.vocab
}

type pieceKind int

const (
	pieceText pieceKind = iota
	pieceBold
	pieceItalic // a single emphasis marker
)

type piece struct {
	kind pieceKind
	text string
}

// Normalize splits raw rules text into keywords and readable text.
// Empty input yields an empty result.
func (n *Normalizer) Normalize(raw string) Result {
	if strings.TrimSpace(raw) == "" {
		return Result{Keywords: []string{}}
	}

	lines := tokenize(escapedMarkup.Replace(raw))
	kw := &keywordSet{}

	body := lines
	if len(lines) > 0 && n.isKeywordLine(lines[0]) {
		for _, seg := range segments(plain(lines[0])) {
			if w, ok := n.vocab.Match(seg); ok {
				kw.add(w)
			}
		}
		body = lines[1:]
	}

	var out []string
	for _, line := range body {
		out = append(out, n.renderLine(line, kw))
	}

	return Result{
		Keywords: kw.list(),
		Text:     joinLines(out),
	}
}

// isKeywordLine decides whether the first block is a keyword preamble: it
// holds a bullet separator, or every segment is a vocabulary entry.
func (n *Normalizer) isKeywordLine(line []piece) bool {
	text := plain(line)
	if strings.Contains(text, Bullet) || strings.Contains(text, "·") {
		return true
	}
	segs := segments(text)
	if len(segs) == 0 {
		return false
	}
	for _, seg := range segs {
		if strings.HasSuffix(seg, ":") {
			return false
		}
		if _, ok := n.vocab.Lookup(seg); !ok {
			return false
		}
	}
	return true
}

func (n *Normalizer) renderLine(line []piece, kw *keywordSet) string {
	var b strings.Builder
	for _, p := range line {
		switch p.kind {
		case pieceText:
			b.WriteString(p.text)
		case pieceItalic:
			b.WriteString("*")
		case pieceBold:
			content := strings.TrimSpace(p.text)
			if content == "" {
				continue
			}
			if !strings.HasSuffix(content, ":") {
				if w, ok := n.vocab.Lookup(content); ok {
					kw.add(w)
					continue
				}
			}
			b.WriteString("**" + content + "**")
		}
	}
	return collapseSpaces(b.String())
}

// tokenize walks the markup and returns the pieces of each line
func tokenize(raw string) [][]piece {
	var (
		lines   [][]piece
		current []piece
		bold    *strings.Builder
	)

	newline := func() {
		lines = append(lines, current)
		current = nil
	}
	emitText := func(s string) {
		s = normalizeBullets(leftoverTag.ReplaceAllString(s, ""))
		parts := strings.Split(s, "\n")
		for i, part := range parts {
			if i > 0 {
				if bold != nil {
					bold.WriteString(" ")
					continue
				}
				newline()
			}
			if part == "" {
				continue
			}
			if bold != nil {
				bold.WriteString(part)
			} else {
				current = append(current, piece{kind: pieceText, text: part})
			}
		}
	}

	z := html.NewTokenizer(strings.NewReader(raw))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}

		switch tt {
		case html.TextToken:
			emitText(string(z.Text()))
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			closing := tt == html.EndTagToken

			switch tag {
			case "br", "p":
				if tag == "p" && !closing {
					continue
				}
				if bold != nil {
					bold.WriteString(" ")
					continue
				}
				newline()
			case "b", "strong":
				if !closing && bold == nil && tt != html.SelfClosingTagToken {
					bold = &strings.Builder{}
				} else if closing && bold != nil {
					current = append(current, piece{kind: pieceBold, text: bold.String()})
					bold = nil
				}
			case "i", "em":
				if bold == nil && tt != html.SelfClosingTagToken {
					current = append(current, piece{kind: pieceItalic})
				}
			}
		}
	}

	// Unterminated bold keeps its content as plain text
	if bold != nil {
		current = append(current, piece{kind: pieceText, text: bold.String()})
	}
	lines = append(lines, current)
	return lines
}

// normalizeBullets maps bullet look-alikes to a single bullet glyph.
// Entities are already decoded by the tokenizer, including the
// windows-1252 form &#149;.
func normalizeBullets(s string) string {
	return strings.NewReplacer("•", Bullet, "\u0095", Bullet, "&#8226;", Bullet, "&#149;", Bullet).Replace(s)
}

// plain returns the text of a line without emphasis
func plain(line []piece) string {
	var b strings.Builder
	for _, p := range line {
		if p.kind == pieceItalic {
			continue
		}
		b.WriteString(p.text)
		if p.kind == pieceBold {
			b.WriteString(" ")
		}
	}
	return b.String()
}

// segments splits a keyword line on bullets and middle dots
func segments(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '•' || r == '·'
	})
	out := fields[:0]
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// joinLines trims leading and trailing blank lines and squeezes runs of blank lines
func joinLines(lines []string) string {
	var out []string
	blank := false
	for _, l := range lines {
		if l == "" {
			if len(out) > 0 {
				blank = true
			}
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}
		out = append(out, l)
	}
	return strings.Join(out, "\n")
}

type keywordSet struct {
	words []string
}

func (k *keywordSet) add(w string) {
	for _, have := range k.words {
		if strings.EqualFold(have, w) {
			return
		}
	}
	k.words = append(k.words, w)
}

func (k *keywordSet) list() []string {
	if k.words == nil {
		return []string{}
	}
	return k.words
}
