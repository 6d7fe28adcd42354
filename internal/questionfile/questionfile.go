// Package questionfile loads declarative question definitions from YAML,
// TOML or JSON files.
//
// A file is either a bare list of questions or a table with a questions key
// and optional intro and outro notices:
//
//	intro: create-demo
//	questions:
//	  - name: projectName
//	    message: Project name?
//	    default: my-app
//	    store: true
//	  - name: useTS
//	    type: confirm
//	  - name: tsPath
//	    when: useTS
//	    choices: [src, lib]
//	    type: list
//
// A when value is either a boolean or the name of an earlier answer, which
// is asked only when that answer is truthy. Prefix the name with ! to negate.
package questionfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	"github.com/idleberg/go-ask"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Errors
var (
	// ErrInvalidCondition is returned for a when value that is neither a
	// boolean nor an answer name.
	ErrInvalidCondition = errors.New("invalid when condition")
	// ErrEmptyFile is returned when a file defines no questions.
	ErrEmptyFile = errors.New("no questions defined")
)

// DefaultPatternMessage is shown when an answer does not match its pattern
// and the file gives no patternMessage.
const DefaultPatternMessage = "Does not match the expected format"

// File is a loaded question file.
type File struct {
	Path      string
	Intro     string
	Outro     string
	Questions []ask.Question
}

type document struct {
	Intro     string         `mapstructure:"intro"`
	Outro     string         `mapstructure:"outro"`
	Questions []questionSpec `mapstructure:"questions"`
}

type questionSpec struct {
	Name           string       `mapstructure:"name"`
	Type           string       `mapstructure:"type"`
	Message        string       `mapstructure:"message"`
	Default        any          `mapstructure:"default"`
	InitialValue   any          `mapstructure:"initialValue"`
	InitialValues  []any        `mapstructure:"initialValues"`
	When           any          `mapstructure:"when"`
	Store          bool         `mapstructure:"store"`
	Required       bool         `mapstructure:"required"`
	Pattern        string       `mapstructure:"pattern"`
	PatternMessage string       `mapstructure:"patternMessage"`
	Choices        []choiceSpec `mapstructure:"choices"`
	PageSize       int          `mapstructure:"pageSize"`
	MaxItems       int          `mapstructure:"maxItems"`
	CursorAt       any          `mapstructure:"cursorAt"`
	Placeholder    string       `mapstructure:"placeholder"`
	DefaultValue   string       `mapstructure:"defaultValue"`
	Active         string       `mapstructure:"active"`
	Inactive       string       `mapstructure:"inactive"`
}

type choiceSpec struct {
	Value     any    `mapstructure:"value"`
	Name      string `mapstructure:"name"`
	Label     string `mapstructure:"label"`
	Hint      string `mapstructure:"hint"`
	Key       string `mapstructure:"key"`
	Checked   bool   `mapstructure:"checked"`
	Separator bool   `mapstructure:"separator"`
}

// Load reads and decodes the question file at path. The format follows the
// file extension.
func Load(path string) (*File, error) {
	format, err := ask.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question file: %w", err)
	}
	file, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	file.Path = path
	return file, nil
}

// Decode parses question definitions encoded in format.
func Decode(data []byte, format ask.Format) (*File, error) {
	raw, err := unmarshal(data, format)
	if err != nil {
		return nil, err
	}
	if list, ok := raw.([]any); ok {
		raw = map[string]any{"questions": list}
	}

	var doc document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(stringToChoiceHook),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}
	if len(doc.Questions) == 0 {
		return nil, ErrEmptyFile
	}

	questions := make([]ask.Question, 0, len(doc.Questions))
	for _, qs := range doc.Questions {
		q, err := qs.question()
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	normalized, err := ask.Normalize(questions...)
	if err != nil {
		return nil, err
	}

	return &File{
		Intro:     doc.Intro,
		Outro:     doc.Outro,
		Questions: normalized,
	}, nil
}

func unmarshal(data []byte, format ask.Format) (any, error) {
	var raw any
	switch format {
	case ask.FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ask.FormatJSON:
		if err := json.Unmarshal(bytes.TrimSpace(data), &raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case ask.FormatTOML:
		table := make(map[string]any)
		if _, err := toml.Decode(string(data), &table); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		raw = table
	default:
		return nil, fmt.Errorf("%w: %q", ask.ErrUnknownFormat, string(format))
	}
	return raw, nil
}

// stringToChoiceHook lets a choice be written as a bare string.
func stringToChoiceHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(choiceSpec{}) || from.Kind() != reflect.String {
		return data, nil
	}
	s := data.(string)
	return map[string]any{"value": s, "label": s}, nil
}

func (s questionSpec) question() (ask.Question, error) {
	when, err := condition(s.When)
	if err != nil {
		return ask.Question{}, fmt.Errorf("question %q: %w", s.Name, err)
	}

	q := ask.Question{
		Name:          s.Name,
		Type:          ask.Type(s.Type),
		Message:       s.Message,
		Default:       s.Default,
		InitialValue:  s.InitialValue,
		InitialValues: s.InitialValues,
		When:          when,
		Store:         s.Store,
		Required:      s.Required,
		PageSize:      s.PageSize,
		MaxItems:      s.MaxItems,
		CursorAt:      s.CursorAt,
		Placeholder:   s.Placeholder,
		DefaultValue:  s.DefaultValue,
		Active:        s.Active,
		Inactive:      s.Inactive,
	}
	if q.Message == "" {
		q.Message = s.Name
	}
	for _, c := range s.Choices {
		q.Choices = append(q.Choices, ask.Choice{
			Value:     c.Value,
			Name:      c.Name,
			Label:     c.Label,
			Hint:      c.Hint,
			Key:       c.Key,
			Checked:   c.Checked,
			Separator: c.Separator,
		})
	}

	if s.Pattern != "" {
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			return ask.Question{}, fmt.Errorf("question %q: invalid pattern: %w", s.Name, err)
		}
		message := s.PatternMessage
		if message == "" {
			message = DefaultPatternMessage
		}
		q.Validate = func(value any, _ *ask.Answers) error {
			text := fmt.Sprint(value)
			if text == "" || re.MatchString(text) {
				return nil
			}
			return ask.Invalid(message)
		}
	}
	return q, nil
}

func condition(v any) (ask.Condition, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return ask.Bool(v), nil
	case string:
		name := strings.TrimSpace(v)
		negate := strings.HasPrefix(name, "!")
		name = strings.TrimSpace(strings.TrimPrefix(name, "!"))
		if name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCondition, v)
		}
		return ask.When(func(a *ask.Answers) bool {
			return truthy(a.Value(name)) != negate
		}), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidCondition, v)
}

// truthy treats unparsable non-empty strings and non-empty lists as true.
func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case string:
		if b, err := cast.ToBoolE(v); err == nil {
			return b
		}
		return strings.TrimSpace(v) != ""
	case []any:
		return len(v) > 0
	}
	if b, err := cast.ToBoolE(v); err == nil {
		return b
	}
	return true
}
