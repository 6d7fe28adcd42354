package ask

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Answers is the ordered, name-keyed result of one ask sequence.
//
// Keys keep the order in which they were first set, which for a session is
// the order in which questions were asked. Skipped questions never appear.
// Callbacks such as When, Validate and Filter receive the live Answers and
// must treat it as read-only.
type Answers struct {
	keys   []string
	values map[string]any
}

// NewAnswers returns an empty Answers.
func NewAnswers() *Answers {
	return &Answers{values: make(map[string]any)}
}

// AnswersFrom builds Answers from a plain map. Go maps are unordered, so the
// keys are inserted in sorted order.
func AnswersFrom(m map[string]any) *Answers {
	a := NewAnswers()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		a.Set(k, m[k])
	}
	return a
}

// Set records value under name. An existing name keeps its position.
func (a *Answers) Set(name string, value any) {
	if a.values == nil {
		a.values = make(map[string]any)
	}
	if _, exists := a.values[name]; !exists {
		a.keys = append(a.keys, name)
	}
	a.values[name] = value
}

// Get returns the answer recorded under name.
func (a *Answers) Get(name string) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a.values[name]
	return v, ok
}

// Value returns the answer under name, or nil.
func (a *Answers) Value(name string) any {
	v, _ := a.Get(name)
	return v
}

// Has reports whether name was answered.
func (a *Answers) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// String returns the answer under name converted to a string.
func (a *Answers) String(name string) string {
	return cast.ToString(a.Value(name))
}

// Bool returns the answer under name converted to a bool.
func (a *Answers) Bool(name string) bool {
	return cast.ToBool(a.Value(name))
}

// Keys returns the answered names in order.
func (a *Answers) Keys() []string {
	if a == nil {
		return nil
	}
	return slices.Clone(a.keys)
}

// Len returns the number of answers.
func (a *Answers) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

// Map returns an unordered copy of the answers.
func (a *Answers) Map() map[string]any {
	m := make(map[string]any, a.Len())
	if a == nil {
		return m
	}
	for _, k := range a.keys {
		m[k] = a.values[k]
	}
	return m
}

// Clone returns a shallow copy. Cloning nil yields an empty Answers.
func (a *Answers) Clone() *Answers {
	c := NewAnswers()
	if a == nil {
		return c
	}
	for _, k := range a.keys {
		c.Set(k, a.values[k])
	}
	return c
}

// Merge sets every answer of other into a, in other's order.
func (a *Answers) Merge(other *Answers) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		a.Set(k, other.values[k])
	}
}

// MarshalJSON encodes the answers as a JSON object in answer order.
func (a *Answers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if a != nil {
		for i, k := range a.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			value, err := json.Marshal(a.values[k])
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(value)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the answers as a YAML mapping in answer order.
func (a *Answers) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if a == nil {
		return node, nil
	}
	for _, k := range a.keys {
		value := &yaml.Node{}
		if err := value.Encode(a.values[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			value,
		)
	}
	return node, nil
}
