package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	// fencedBlock matches the first ``` or ```json fenced block; the interior is group 1.
	fencedBlock = regexp.MustCompile("(?is)```(?:json)?\\r?\\n(.*?)\\r?\\n```")
	// trailingComma matches a comma that only precedes a closing brace or bracket.
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
)

// ExtractJSON recovers a JSON value from free-text model output.
//
// Steps, each skipped when it does not apply: trim whitespace; take the interior
// of the first fenced code block; when the text does not open with '{' or '[',
// slice from the first '{' to the last '}'; drop trailing commas before '}' or
// ']'; parse. The brace slice and the comma strip are textual and do not track
// string literals, so braces or ",}" sequences inside quoted values can misfire.
//
// The shape of the value is not checked here.
func ExtractJSON(raw string) (json.RawMessage, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, &ParseError{Message: "model output", Cause: ErrEmptyResponse}
	}

	text = stripFence(text)
	text = sliceObject(text)
	text = stripTrailingCommas(text)

	var probe any
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return nil, &ParseError{Message: "model output is not valid JSON", Cause: err}
	}
	return json.RawMessage(text), nil
}

func stripFence(text string) string {
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

func sliceObject(text string) string {
	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") {
		return text
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}
	return text
}

func stripTrailingCommas(text string) string {
	return trailingComma.ReplaceAllString(text, "$1")
}
