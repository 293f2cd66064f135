package entity

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ruudy-sib/udpout/internal/domain/valueobject"
)

const (
	timestampField = "@timestamp"
	idField        = "@id"
)

// fieldRefPattern matches a field reference such as %{message} or %{[a][b]}.
var fieldRefPattern = regexp.MustCompile(`%\{([^}]+)\}`)

// Event is a single unit of data flowing through the forwarder.
// Fields holds arbitrary decoded JSON; nested objects are map[string]any.
type Event struct {
	ID        valueobject.EventID
	Timestamp time.Time
	Fields    map[string]any
}

// NewEvent creates an event stamped with a fresh ID and the current time.
func NewEvent(fields map[string]any) *Event {
	if fields == nil {
		fields = make(map[string]any)
	}
	return &Event{
		ID:        valueobject.GenerateEventID(),
		Timestamp: time.Now().UTC(),
		Fields:    fields,
	}
}

// DecodeEvent builds an event from a JSON object. "@timestamp" and "@id"
// are lifted out of the field map when present.
func DecodeEvent(raw []byte) (*Event, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decoding event: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("decoding event: expected a JSON object")
	}
	return EventFromFields(fields), nil
}

// EventFromFields builds an event from an already decoded field map.
func EventFromFields(fields map[string]any) *Event {
	event := NewEvent(fields)

	if v, ok := fields[idField].(string); ok {
		if id, err := valueobject.NewEventID(v); err == nil {
			event.ID = id
		}
		delete(fields, idField)
	}
	if v, ok := fields[timestampField].(string); ok {
		if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
			event.Timestamp = ts.UTC()
			delete(fields, timestampField)
		}
	}

	return event
}

// Get looks up a field reference. Both "name" and "[outer][inner]" forms
// are accepted; slice elements are addressed by numeric index.
func (e *Event) Get(ref string) (any, bool) {
	if ref == timestampField {
		if v, ok := e.Fields[timestampField]; ok {
			return v, true
		}
		return e.Timestamp.Format(time.RFC3339Nano), true
	}

	path := parseFieldRef(ref)
	if len(path) == 0 {
		return nil, false
	}

	var cur any = e.Fields
	for _, seg := range path {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}

	if cur == nil {
		return nil, false
	}
	return cur, true
}

// Sprintf substitutes every %{ref} in format with the referenced field value.
// References that do not resolve are left in place verbatim.
func (e *Event) Sprintf(format string) string {
	if !strings.Contains(format, "%{") {
		return format
	}
	return fieldRefPattern.ReplaceAllStringFunc(format, func(match string) string {
		v, ok := e.Get(match[2 : len(match)-1])
		if !ok {
			return match
		}
		return formatValue(v)
	})
}

// MarshalJSON renders the event fields together with its timestamp.
func (e *Event) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Fields)+1)
	for k, v := range e.Fields {
		out[k] = v
	}
	if _, ok := out[timestampField]; !ok {
		out[timestampField] = e.Timestamp.Format(time.RFC3339Nano)
	}
	return json.Marshal(out)
}

// String returns the JSON form, used in diagnostics.
func (e *Event) String() string {
	data, err := e.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("%v", e.Fields)
	}
	return string(data)
}

// HasFieldReference reports whether s contains at least one %{...} reference.
func HasFieldReference(s string) bool {
	return fieldRefPattern.MatchString(s)
}

func parseFieldRef(ref string) []string {
	if !strings.HasPrefix(ref, "[") {
		return []string{ref}
	}

	var path []string
	rest := ref
	for len(rest) > 0 {
		if rest[0] != '[' {
			return nil
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil
		}
		path = append(path, rest[1:end])
		rest = rest[end+1:]
	}
	return path
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case bool, int, int64, int32, uint, uint16, uint32, uint64:
		return fmt.Sprint(val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
