package fit

import (
	"sort"
	"strconv"

	"github.com/ssargent/fitkit/pkg/profile"
)

// Message is one decoded (or to be encoded) global message. Field values are scalars
// (int64, uint64, float64, string, bool, time.Time) or []any for arrays and merged
// component values.
type Message struct {
	Num             profile.MesgNum `json:"mesgNum"`
	Name            string          `json:"name"`
	Fields          map[string]any  `json:"fields"`
	DeveloperFields map[int]any     `json:"developerFields,omitempty"`
}

// NewMessage creates an empty message for num
func NewMessage(num profile.MesgNum) Message {
	return Message{Num: num, Name: mesgName(num), Fields: make(map[string]any)}
}

// Get returns a field value by name
func (m Message) Get(name string) (any, bool) {
	v, ok := m.Fields[name]
	return v, ok
}

// Set stores a field value and returns the message for chaining
func (m Message) Set(name string, v any) Message {
	if m.Fields == nil {
		m.Fields = make(map[string]any)
	}
	m.Fields[name] = v
	return m
}

// FieldNames returns the field names in sorted order
func (m Message) FieldNames() []string {
	names := make([]string, 0, len(m.Fields))
	for name := range m.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mesgName(num profile.MesgNum) string {
	if mp := profile.Message(num); mp != nil {
		return mp.Name
	}
	return strconv.Itoa(int(num))
}

// messagesKey is the result collection of a message: the profile key, or the decimal
// number for messages the profile does not know
func messagesKey(num profile.MesgNum) string {
	if mp := profile.Message(num); mp != nil {
		return mp.MessagesKey
	}
	return strconv.Itoa(int(num))
}

// MessagesKey returns the ReadResult collection key for a message number
func MessagesKey(num profile.MesgNum) string { return messagesKey(num) }

// ReadResult is the outcome of one decode pass. It is owned by the caller.
type ReadResult struct {
	Messages       map[string][]Message `json:"messages"`
	Errors         []error              `json:"-"`
	ProfileVersion uint16               `json:"profileVersion"`
}

func newReadResult() *ReadResult {
	return &ReadResult{Messages: make(map[string][]Message)}
}

// Mesgs returns the collection of a message number
func (r *ReadResult) Mesgs(num profile.MesgNum) []Message {
	return r.Messages[messagesKey(num)]
}

// Count is the total number of decoded messages
func (r *ReadResult) Count() int {
	n := 0
	for _, mesgs := range r.Messages {
		n += len(mesgs)
	}
	return n
}

// Counts returns the number of messages per collection
func (r *ReadResult) Counts() map[string]int {
	out := make(map[string]int, len(r.Messages))
	for key, mesgs := range r.Messages {
		out[key] = len(mesgs)
	}
	return out
}

// ErrorStrings renders Errors for serialisation
func (r *ReadResult) ErrorStrings() []string {
	out := make([]string, len(r.Errors))
	for i, err := range r.Errors {
		out[i] = err.Error()
	}
	return out
}

func (r *ReadResult) append(key string, m Message) {
	r.Messages[key] = append(r.Messages[key], m)
}
