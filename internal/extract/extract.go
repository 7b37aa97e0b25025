// Package extract pulls typed artifacts (fenced code blocks, JSON objects)
// out of raw completion text. The model output is untrusted: fences may be
// missing, unterminated, mislabeled, or wrapped in prose.
package extract

import (
	"encoding/json"
	"strings"
)

// Kind names an extractable artifact type.
type Kind string

// Artifact kinds.
const (
	KindHTML Kind = "html"
	KindCSS  Kind = "css"
	KindJS   Kind = "js"
	KindJSON Kind = "json"
)

// fenceLabels maps a kind to the fence language tags that count as a match.
var fenceLabels = map[Kind][]string{
	KindHTML: {"html"},
	KindCSS:  {"css"},
	KindJS:   {"javascript", "js"},
	KindJSON: {"json"},
}

const fenceMarker = "```"

// fence is one fence line found in the text: its language tag (may be empty)
// and the offset where the following line starts.
type fence struct {
	tag          string
	contentStart int
	lineStart    int
}

// scanFences returns every fence line in order of appearance.
func scanFences(text string) []fence {
	var fences []fence
	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, fenceMarker) {
			fences = append(fences, fence{
				tag:          strings.ToLower(strings.TrimSpace(strings.TrimPrefix(trimmed, fenceMarker))),
				contentStart: offset + len(line),
				lineStart:    offset,
			})
		}
		offset += len(line)
	}
	return fences
}

// Code extracts the payload of a fenced code block for the given kind.
//
// The language-tagged fence wins over any untagged fence; with neither
// present, strict mode fails with NotFoundError while lenient mode treats
// the whole text as the payload. A missing closing fence is tolerated: the
// payload runs to the end of the text. Prose after the closing fence is
// discarded. The result is always trimmed.
func Code(text string, kind Kind, strict bool) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &NotFoundError{Kind: kind}
	}

	fences := scanFences(text)
	opener := matchFence(fences, kind)
	if opener == nil {
		if strict {
			return "", &NotFoundError{Kind: kind}
		}
		return strings.TrimSpace(stripAllFenceLines(text)), nil
	}

	payload := text[opener.contentStart:]
	if closeIdx := strings.Index(payload, fenceMarker); closeIdx >= 0 {
		payload = payload[:closeIdx]
	}
	return strings.TrimSpace(payload), nil
}

// matchFence picks the opening fence for a kind: first the tagged fence,
// then the first untagged fence if it opens a block (untagged fences that
// close an earlier tagged block are skipped by the tagged-first rule).
func matchFence(fences []fence, kind Kind) *fence {
	labels := fenceLabels[kind]
	for i := range fences {
		for _, label := range labels {
			if fences[i].tag == label {
				return &fences[i]
			}
		}
	}
	for i := range fences {
		if fences[i].tag == "" {
			return &fences[i]
		}
	}
	return nil
}

// stripAllFenceLines removes fence marker lines, keeping their content.
// Used in lenient mode when no usable fence was identified.
func stripAllFenceLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), fenceMarker) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// JSON extracts a JSON object or array from raw completion text.
//
// Fence markers and language tags are stripped first; if the remainder is
// not valid JSON, the first balanced object or array embedded in the text
// is tried (models often wrap JSON in prose). A final parse failure is a
// MalformedJSONError carrying the offending text.
func JSON(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &NotFoundError{Kind: KindJSON}
	}

	candidate, err := Code(text, KindJSON, false)
	if err != nil {
		return "", err
	}
	if json.Valid([]byte(candidate)) {
		return candidate, nil
	}

	if embedded := balancedJSON(candidate); embedded != "" && json.Valid([]byte(embedded)) {
		return embedded, nil
	}

	return "", &MalformedJSONError{Text: candidate}
}

// Unmarshal extracts JSON from raw completion text and decodes it into v.
func Unmarshal(text string, v any) error {
	payload, err := JSON(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return &MalformedJSONError{Text: payload, Cause: err}
	}
	return nil
}

// balancedJSON returns the first balanced {...} or [...] substring,
// respecting string literals and escapes. Empty when none is found.
func balancedJSON(text string) string {
	start := -1
	var open, close byte
	for i := 0; i < len(text); i++ {
		if text[i] == '{' || text[i] == '[' {
			start = i
			open = text[i]
			if open == '{' {
				close = '}'
			} else {
				close = ']'
			}
			break
		}
	}
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
