package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/behavioral-data/Data-Assistant-Interface/internal/eventlog"
)

// baseURLFromEnv returns the HTTP base URL from JLOG_URL or a default.
func baseURLFromEnv() string {
	if u := os.Getenv("JLOG_URL"); u != "" {
		return u
	}
	return "http://127.0.0.1:8888"
}

// grpcAddrFromEnv returns the gRPC server address from JLOG_GRPC_ADDR or a default.
func grpcAddrFromEnv() string {
	if addr := os.Getenv("JLOG_GRPC_ADDR"); addr != "" {
		return addr
	}
	return "127.0.0.1:50051"
}

// grpcDialer returns a dialer for addr with insecure transport for local/dev.
func grpcDialer(addr string) func(ctx context.Context) (*grpc.ClientConn, error) {
	return func(ctx context.Context) (*grpc.ClientConn, error) {
		return grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
}

// eventField is one member of an event object, kept in input order.
type eventField struct {
	key   string
	value json.RawMessage
}

// setField replaces key in place, or appends it when absent.
func setField(fields []eventField, key string, value json.RawMessage) []eventField {
	for i := range fields {
		if fields[i].key == key {
			fields[i].value = value
			return fields
		}
	}
	return append(fields, eventField{key: key, value: value})
}

var errNotObject = errors.New("invalid --data, expected a JSON object")

// decodeObject reads a JSON object's members in document order. A repeated
// key keeps its first position and its last value.
func decodeObject(data string) ([]eventField, error) {
	dec := json.NewDecoder(strings.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errNotObject, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotObject
	}
	var fields []eventField
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errNotObject, err)
		}
		key, _ := tok.(string)
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: %v", errNotObject, err)
		}
		fields = setField(fields, key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", errNotObject, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data", errNotObject)
	}
	return fields, nil
}

// buildEvent merges --data, repeated --field key=value pairs and
// --context-id into one JSON object. Keys keep their --data order; new keys
// follow in flag order. Field values that parse as JSON keep their type;
// anything else is sent as a string.
func buildEvent(data string, fields []string, contextID string) ([]byte, error) {
	var event []eventField
	if strings.TrimSpace(data) != "" {
		var err error
		if event, err = decodeObject(data); err != nil {
			return nil, err
		}
	}
	for _, fv := range fields {
		if fv == "" {
			continue
		}
		k, v, ok := strings.Cut(fv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --field, expected key=value: %s", fv)
		}
		key := strings.TrimSpace(k)
		if json.Valid([]byte(v)) {
			event = setField(event, key, json.RawMessage(v))
			continue
		}
		b, _ := json.Marshal(v)
		event = setField(event, key, b)
	}
	if contextID != "" {
		b, _ := json.Marshal(contextID)
		event = setField(event, eventlog.ContextIDField, b)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range event {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(f.key)
		buf.Write(k)
		buf.WriteByte(':')
		if err := json.Compact(&buf, f.value); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
