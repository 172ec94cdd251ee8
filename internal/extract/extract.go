// Package extract implements the best-effort job-posting field suggester.
// It decodes a document to text, walks the trimmed non-blank lines and
// applies an ordered rule table. The result is a sparse suggestion: absent
// fields are omitted, never defaulted.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

var ErrUndecodable = errors.New("document could not be decoded")

// JobFields is the sparse extraction result. Pointer and slice fields stay
// nil when no evidence for them was found, so downstream consumers can tell
// "not found" from "found empty".
type JobFields struct {
	Title            *string  `json:"title,omitempty"`
	Company          *string  `json:"company,omitempty"`
	Location         *string  `json:"location,omitempty"`
	Salary           *string  `json:"salary,omitempty"`
	JobType          *string  `json:"job_type,omitempty"`
	Remote           *bool    `json:"remote,omitempty"`
	International    *bool    `json:"international,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Requirements     []string `json:"requirements,omitempty"`
	Qualifications   []string `json:"qualifications,omitempty"`
}

// Extract decodes the document and runs the rule table over it. A document
// that cannot be decoded fails as a whole; there are no partial results on
// decode errors.
func Extract(documentBytes []byte) (*JobFields, error) {
	text, err := decode(documentBytes)
	if err != nil {
		return nil, err
	}

	lines := splitLines(text)
	fields := &JobFields{}

	// Pass 1: same-line "Header: value" and header-on-own-line rules.
	for i := 0; i < len(lines); i++ {
		for _, rule := range fieldRules {
			if rule.applied(fields) {
				continue
			}
			if value, ok := matchHeaderValue(lines, i, rule); ok {
				rule.assign(fields, value)
			}
		}
	}

	// Pass 2: section bodies (bullet lists under a section header).
	for i := 0; i < len(lines); i++ {
		for _, rule := range sectionRules {
			if rule.applied(fields) {
				continue
			}
			if !rule.header.MatchString(lines[i]) {
				continue
			}
			body := collectSection(lines, i+1)
			if len(body) > 0 {
				rule.assign(fields, body)
			}
		}
	}

	// Pass 3: whole-document heuristics for fields without explicit headers.
	applyDocumentHeuristics(fields, text)

	return fields, nil
}

// decode turns document bytes into plain text. PDF payloads go through the
// PDF reader; anything else must already be valid UTF-8 text.
func decode(documentBytes []byte) (string, error) {
	if len(documentBytes) == 0 {
		return "", ErrUndecodable
	}

	if bytes.HasPrefix(documentBytes, []byte("%PDF")) {
		reader, err := pdf.NewReader(bytes.NewReader(documentBytes), int64(len(documentBytes)))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUndecodable, err)
		}
		plain, err := reader.GetPlainText()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUndecodable, err)
		}
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, plain); err != nil {
			return "", fmt.Errorf("%w: %v", ErrUndecodable, err)
		}
		return buf.String(), nil
	}

	if !utf8.Valid(documentBytes) {
		return "", ErrUndecodable
	}
	return string(documentBytes), nil
}

// splitLines yields trimmed, non-blank lines in document order.
func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if trimmed := strings.TrimSpace(l); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// matchHeaderValue tries, in priority order, the same-line "Header: value"
// form and then the header-on-its-own-line / value-on-next-line form.
func matchHeaderValue(lines []string, i int, rule fieldRule) (string, bool) {
	line := lines[i]

	if m := rule.header.FindStringSubmatchIndex(line); m != nil {
		rest := strings.TrimSpace(line[m[1]:])
		rest = strings.TrimLeft(rest, ":")
		rest = strings.TrimSpace(rest)
		if rest != "" {
			return rest, true
		}
		// Header alone on its line: value is the next line unless that is
		// itself a known header. The looser looksLikeHeader test would
		// swallow Title Case values like "Senior Go Developer".
		if i+1 < len(lines) && !isKnownHeader(lines[i+1]) {
			return lines[i+1], true
		}
	}
	return "", false
}

// collectSection gathers the body lines of a section: everything up to the
// next line that itself looks like a header. Approximate on purpose.
func collectSection(lines []string, start int) []string {
	var body []string
	for i := start; i < len(lines); i++ {
		if looksLikeHeader(lines[i]) {
			break
		}
		if item := stripBullet(lines[i]); item != "" {
			body = append(body, item)
		}
	}
	return body
}

// isKnownHeader recognizes only colon-terminated lines and headers from the
// rule tables.
func isKnownHeader(line string) bool {
	if len(line) > 48 {
		return false
	}
	return strings.HasSuffix(line, ":") || anyHeaderPattern(line)
}

// looksLikeHeader flags lines that plausibly start a new section: short
// lines that end in a colon, are fully upper-case, or are title-cased words
// without sentence punctuation.
func looksLikeHeader(line string) bool {
	if len(line) > 48 {
		return false
	}
	if strings.HasSuffix(line, ":") {
		return true
	}
	if anyHeaderPattern(line) {
		return true
	}
	letters := 0
	uppers := 0
	for _, r := range line {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				uppers++
			}
		}
	}
	if letters == 0 {
		return false
	}
	if uppers == letters {
		return true
	}
	// Title Case words, no trailing sentence punctuation, few words.
	if strings.HasSuffix(line, ".") || strings.HasSuffix(line, ",") {
		return false
	}
	words := strings.Fields(line)
	if len(words) > 5 {
		return false
	}
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// stripBullet removes a leading bullet or numbering glyph from a list line.
func stripBullet(line string) string {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range []string{"•", "●", "◦", "·", "–", "—", "*", "-", "+"} {
		if strings.HasPrefix(trimmed, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, prefix))
		}
	}
	// Numbered lists: "1.", "2)", "10."
	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	if i > 0 && i < len(trimmed) && (trimmed[i] == '.' || trimmed[i] == ')') {
		return strings.TrimSpace(trimmed[i+1:])
	}
	return trimmed
}
