package answerkey

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/sheet-scorer/internal/types"
	"github.com/xeipuuv/gojsonschema"
)

// keySchema accepts a flat object of question ids to options. Numeric
// values are allowed for numeric-entry answers and kept as their literal text.
const keySchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"additionalProperties": {"type": ["string", "number"]}
}`

var schemaLoader = gojsonschema.NewStringLoader(keySchema)

// Parse decodes an answer key document.
func Parse(data []byte) (types.AnswerKey, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty answer key document")
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to load answer key JSON: %w", err)
	}

	if !result.Valid() {
		shapeErr := &ShapeError{Errors: make([]FieldError, 0, len(result.Errors()))}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			shapeErr.Errors = append(shapeErr.Errors, FieldError{Field: field, Message: desc.Description()})
		}
		return nil, shapeErr
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode answer key JSON: %w", err)
	}

	key := make(types.AnswerKey, len(raw))
	for id, v := range raw {
		var s string
		if len(v) > 0 && v[0] == '"' {
			if err := json.Unmarshal(v, &s); err != nil {
				return nil, fmt.Errorf("failed to decode answer for %s: %w", id, err)
			}
		} else {
			s = string(v)
		}
		key[strings.TrimSpace(id)] = strings.TrimSpace(s)
	}

	return key, nil
}
