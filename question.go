package ask

import (
	"errors"
	"fmt"
)

// Type identifies the prompt primitive a question is dispatched to.
//
// Both the Inquirer-style names (input, list, rawlist, checkbox) and the
// primitive names (text, select, multiselect) are accepted.
type Type string

// Supported question types.
const (
	TypeInput                   Type = "input"
	TypeText                    Type = "text"
	TypePassword                Type = "password"
	TypeNumber                  Type = "number"
	TypeConfirm                 Type = "confirm"
	TypeList                    Type = "list"
	TypeRawList                 Type = "rawlist"
	TypeSelect                  Type = "select"
	TypeCheckbox                Type = "checkbox"
	TypeMultiSelect             Type = "multiselect"
	TypeAutocomplete            Type = "autocomplete"
	TypeAutocompleteMultiSelect Type = "autocompleteMultiselect"
	TypeExpand                  Type = "expand"
)

// Valid reports whether t is one of the supported question types.
// The empty type is valid and means TypeInput.
func (t Type) Valid() bool {
	switch t {
	case "", TypeInput, TypeText, TypePassword, TypeNumber, TypeConfirm,
		TypeList, TypeRawList, TypeSelect, TypeCheckbox, TypeMultiSelect,
		TypeAutocomplete, TypeAutocompleteMultiSelect, TypeExpand:
		return true
	}
	return false
}

// Question errors
var (
	// ErrUnsupportedType is matched by every *UnsupportedTypeError.
	ErrUnsupportedType = errors.New("unsupported question type")
	// ErrMissingName is returned when a question has no name.
	ErrMissingName = errors.New("question name is required")
	// ErrDuplicateName is returned when two questions of one session share a name.
	ErrDuplicateName = errors.New("duplicate question name")
)

// UnsupportedTypeError reports a question whose type has no primitive.
type UnsupportedTypeError struct {
	Type     Type
	Question string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unknown prompt type %q for question %q", string(e.Type), e.Question)
}

// Is makes errors.Is(err, ErrUnsupportedType) work.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// ValidateFunc checks a raw prompt value.
//
// Return nil when the value is acceptable, Invalid(message) to show message
// to the user, or ErrInvalidInput for the generic "Invalid input" message.
// Any other error aborts the whole session.
type ValidateFunc func(value any, answers *Answers) error

// FilterFunc transforms a raw prompt value before it is recorded.
type FilterFunc func(value any, answers *Answers) (any, error)

// Question is one declarative unit of requested input.
//
// Fields from both authoring dialects live side by side: Default, Choices and
// PageSize come from the Inquirer dialect; InitialValue, InitialValues,
// Options, MaxItems, CursorAt, Placeholder, DefaultValue, Active and Inactive
// are primitive-native. When both a native initial value and a legacy
// default resolve to non-nil values, the native one wins.
type Question struct {
	Name        string
	Type        Type
	Message     string
	MessageFunc func(answers *Answers) (string, error)

	Default       any
	DefaultFunc   func(answers *Answers) (any, error)
	InitialValue  any
	InitialValues []any

	Validate ValidateFunc
	Filter   FilterFunc
	When     Condition
	Store    bool
	Required bool

	Choices  []Choice
	Options  []Option
	PageSize int
	MaxItems int
	// CursorAt is the option value the multiselect cursor starts on.
	CursorAt any

	Placeholder  string
	DefaultValue string
	Active       string
	Inactive     string
}

// Choice is an Inquirer-style list entry.
type Choice struct {
	Value any
	// Name and Label are aliases; Label wins when both are set.
	Name    string
	Label   string
	Hint    string
	Key     string
	Checked bool
	// Separator entries are dropped from expand prompts.
	Separator bool
}

// Option is the value/label pair handed to choice primitives.
type Option struct {
	Value any
	Label string
	Hint  string
}

// StringChoices builds choices whose value and label are the same string.
func StringChoices(values ...string) []Choice {
	choices := make([]Choice, len(values))
	for i, v := range values {
		choices[i] = Choice{Value: v, Label: v}
	}
	return choices
}

// SeparatorChoice returns a visual separator entry.
func SeparatorChoice() Choice {
	return Choice{Separator: true}
}

func (c Choice) label() string {
	switch {
	case c.Label != "":
		return c.Label
	case c.Name != "":
		return c.Name
	case c.Value != nil:
		return fmt.Sprint(c.Value)
	}
	return c.Key
}

// Normalize turns one or more questions into the canonical ordered sequence.
//
// The order is never changed. An empty Type becomes TypeInput. Questions
// with an unknown type, a missing name or a repeated name are rejected before
// anything is asked.
func Normalize(questions ...Question) ([]Question, error) {
	normalized := make([]Question, 0, len(questions))
	seen := make(map[string]struct{}, len(questions))
	for i, q := range questions {
		if q.Name == "" {
			return nil, fmt.Errorf("question #%d: %w", i+1, ErrMissingName)
		}
		if _, dup := seen[q.Name]; dup {
			return nil, fmt.Errorf("question %q: %w", q.Name, ErrDuplicateName)
		}
		seen[q.Name] = struct{}{}
		if !q.Type.Valid() {
			return nil, &UnsupportedTypeError{Type: q.Type, Question: q.Name}
		}
		if q.Type == "" {
			q.Type = TypeInput
		}
		normalized = append(normalized, q)
	}
	return normalized, nil
}
