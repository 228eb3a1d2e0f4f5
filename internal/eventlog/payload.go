package eventlog

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"
)

// ContextIDField is the one field every event must carry.
const ContextIDField = "contextId"

// event is a validated body ready to append.
type event struct {
	contextID string
	// line is the compacted object followed by '\n'.
	line []byte
}

func decodeEvent(body []byte) (event, error) {
	if len(body) == 0 {
		return event{}, newError(KindEmptyBody, nil)
	}
	if !utf8.Valid(body) {
		return event{}, newError(KindMalformedPayload, nil)
	}

	// Unmarshalling into a map rejects arrays, scalars and trailing data;
	// "null" decodes to a nil map without error.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return event{}, newError(KindMalformedPayload, err)
	}
	if fields == nil {
		return event{}, newError(KindMalformedPayload, nil)
	}

	raw, ok := fields[ContextIDField]
	if !ok {
		return event{}, newError(KindMissingField, nil)
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return event{}, newError(KindInvalidField, err)
	}
	if id == "" {
		return event{}, newError(KindInvalidField, nil)
	}

	var buf bytes.Buffer
	buf.Grow(len(body) + 1)
	if err := json.Compact(&buf, body); err != nil {
		return event{}, newError(KindMalformedPayload, err)
	}
	buf.WriteByte('\n')
	return event{contextID: id, line: buf.Bytes()}, nil
}
