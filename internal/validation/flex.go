package validation

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/skywebdev/server/internal/domain"
)

// Structured fields may arrive either as native JSON values or as
// JSON-encoded strings inside multipart form fields. DecodeFlexible accepts
// both transparently: a raw JSON string is unquoted and its contents decoded
// into dest, anything else is decoded directly.
func DecodeFlexible(raw json.RawMessage, dest any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return err
		}
		return decodeEncoded(inner, dest)
	}

	return json.Unmarshal(trimmed, dest)
}

// DecodeString decodes a JSON-encoded string (as submitted in a multipart
// form field) into dest. Empty input leaves dest untouched; malformed input
// yields a ValidationError naming field.
func DecodeString(field, value string, dest any) error {
	if err := decodeEncoded(value, dest); err != nil {
		return domain.Invalid(field, "must be a valid JSON value")
	}
	return nil
}

func decodeEncoded(value string, dest any) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return json.Unmarshal([]byte(value), dest)
}

// StringList decodes as a JSON array of strings, or as a string containing
// one.
type StringList []string

func (l *StringList) UnmarshalJSON(raw []byte) error {
	var items []string
	if err := DecodeFlexible(raw, &items); err != nil {
		return err
	}
	*l = items
	return nil
}
