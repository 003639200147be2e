package stages

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrSchema marks model output that failed schema validation. It is never
// coerced into a best guess; the stage fails and the session pauses.
var ErrSchema = errors.New("capability returned schema-invalid output")

var lineCommentPattern = regexp.MustCompile(`(?m)//[^\n"]*$`)

// stripCodeFence removes a surrounding markdown code block, which chat models
// routinely wrap JSON answers in.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// decodeStrict parses model output into the target schema. Unknown fields are
// rejected so drifting output shapes surface as failures instead of zero
// values.
func decodeStrict(raw string, target any) error {
	cleaned := stripCodeFence(raw)
	cleaned = lineCommentPattern.ReplaceAllString(cleaned, "")

	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}
